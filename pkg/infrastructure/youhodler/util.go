package youhodler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// Method HTTPメソッド
type Method string

const (
	// MethodGet GET
	MethodGet Method = http.MethodGet
	// MethodPost POST
	MethodPost Method = http.MethodPost
)

// Recorder リクエスト・レスポンスの記録先
type Recorder interface {
	RecordRequest(method, url string, headers, params map[string]string, payload []byte)
	RecordResponse(body []byte)
}

type nopRecorder struct{}

func (nopRecorder) RecordRequest(string, string, map[string]string, map[string]string, []byte) {}
func (nopRecorder) RecordResponse([]byte)                                                      {}

func makeURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// maskHeaders 記録用に認証トークンを伏せたヘッダ
func maskHeaders(headers map[string]string) map[string]string {
	masked := make(map[string]string, len(headers))
	for k, v := range headers {
		if strings.EqualFold(k, "Authorization") {
			v = "bearer ***"
		}
		masked[k] = v
	}
	return masked
}

// Request APIへリクエストを送信し、レスポンスのJSONを返す
//
// 204の場合は nil, nil を返す。
// 200・204以外の場合は nil と *APIError を返す。
func (c *Client) Request(ctx context.Context, method Method, endpoint string, params map[string]string, payload interface{}) (json.RawMessage, error) {
	if method != MethodGet && method != MethodPost {
		return nil, errors.Wrapf(ErrInvalidMethod, "method: %s", method)
	}

	u := makeURL(c.endpoint, endpoint)
	req := c.http.R().SetContext(ctx).SetHeaders(c.headers)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal payload, url: %s", u)
	}
	if method == MethodPost && payload != nil {
		req.SetBody(data)
	}

	c.recorder.RecordRequest(string(method), u, maskHeaders(c.headers), params, data)

	res, err := req.Execute(string(method), u)
	if err != nil {
		c.logger.Error("request to %s failed, error: %v", endpoint, err)
		return nil, errors.Wrapf(err, "failed to send request, url: %s", u)
	}

	body := res.Body()
	switch res.StatusCode() {
	case http.StatusOK:
		c.logger.Info("request to %s returned code %d", endpoint, res.StatusCode())
		c.recorder.RecordResponse(body)
		if !json.Valid(body) {
			return nil, errors.Errorf("response is not json, url: %s, body: %s", u, body)
		}
		return json.RawMessage(body), nil
	case http.StatusNoContent:
		c.logger.Info("request to %s returned code %d", endpoint, res.StatusCode())
		c.recorder.RecordResponse(nil)
		return nil, nil
	default:
		c.logger.Error("request to %s returned code %d, body: %s", endpoint, res.StatusCode(), body)
		c.recorder.RecordResponse(body)
		return nil, &APIError{
			Method:     method,
			URL:        u,
			StatusCode: res.StatusCode(),
			Body:       string(body),
		}
	}
}

// Call リクエストを送信し、parseでレスポンスを変換する
func Call[T any](ctx context.Context, c *Client, method Method, endpoint string, params map[string]string, payload interface{}, parse Parser[T]) (T, error) {
	var zero T
	raw, err := c.Request(ctx, method, endpoint, params, payload)
	if err != nil {
		return zero, err
	}
	v, err := parse(raw)
	if err != nil {
		c.logger.Error("failed to parse response of %s, error: %v", endpoint, err)
		return zero, err
	}
	return v, nil
}
