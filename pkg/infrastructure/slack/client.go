package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/randomsuffer/youhodler-connector/pkg/domain"
)

// TextMessage テキストメッセージ
type TextMessage struct {
	Text string `json:"text"`
}

// Client Slack Webhook 用クライアント
type Client struct {
	url  string
	http *resty.Client
}

var _ domain.Notifier = (*Client)(nil)

// NewClient 生成
func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: resty.New().SetTimeout(10 * time.Second),
	}
}

// PostMessage メッセージを送信
func (c *Client) PostMessage(ctx context.Context, messageObj interface{}) error {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(messageObj).
		Post(c.url)
	if err != nil {
		return errors.Wrap(err, "failed to post slack message")
	}

	if res.StatusCode() != http.StatusOK {
		return errors.Errorf("slack response %d error: %s", res.StatusCode(), res.Body())
	}

	return nil
}

// Notify テキストを通知
func (c *Client) Notify(format string, v ...interface{}) error {
	return c.PostMessage(context.Background(), &TextMessage{Text: fmt.Sprintf(format, v...)})
}
