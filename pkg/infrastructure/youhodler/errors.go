package youhodler

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidMethod GET・POST以外のメソッド
	ErrInvalidMethod = errors.New("invalid HTTP method, supported methods are GET and POST")
	// ErrEmptyBody パーサに空のレスポンスが渡された
	ErrEmptyBody = errors.New("response body is empty")
)

// APIError 200・204以外のレスポンス
type APIError struct {
	Method     Method
	URL        string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed, method: %s, url: %s, code: %d, body: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// IsRequestFailed APIがエラーを返したかどうか
func IsRequestFailed(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
