// Package telegram содержит минимальный клиент Telegram Bot API:
// отправка и удаление сообщений, инвойсы Stars, рефанды и получение обновлений.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client — HTTP-клиент Bot API с ограничением исходящей частоты.
// Telegram допускает порядка 30 сообщений в секунду на бота.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	// pollClient без общего таймаута: long polling живёт дольше 10 секунд,
	// его время жизни ограничивает контекст.
	pollClient *http.Client
	limiter    *rate.Limiter
}

// NewClient создаёт клиент Bot API. baseURL обычно https://api.telegram.org.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		pollClient: &http.Client{},
		limiter:    rate.NewLimiter(25, 5),
	}
}

// call выполняет метод Bot API и декодирует result в out (если out != nil).
func (c *Client) call(ctx context.Context, method string, params any, out any) error {
	const op = "telegram.call"

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	if params != nil {
		if err := json.NewEncoder(&buf).Encode(params); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, method, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("%s: %s: %w", op, method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("%s: %s: api error: %s", op, method, envelope.Description)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("%s: %s: %w", op, method, err)
		}
	}
	return nil
}

// SendMessage отправляет текстовое сообщение.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var msg Message
	if err := c.call(ctx, "sendMessage", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// SendInvoice выставляет инвойс Telegram Stars.
func (c *Client) SendInvoice(ctx context.Context, req SendInvoiceRequest) (*Message, error) {
	var msg Message
	if err := c.call(ctx, "sendInvoice", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AnswerPreCheckoutQuery отвечает на pre-checkout запрос. При ok=false
// errorMessage показывается пользователю.
func (c *Client) AnswerPreCheckoutQuery(ctx context.Context, queryID string, ok bool, errorMessage string) error {
	params := map[string]any{
		"pre_checkout_query_id": queryID,
		"ok":                    ok,
	}
	if !ok {
		params["error_message"] = errorMessage
	}
	return c.call(ctx, "answerPreCheckoutQuery", params, nil)
}

// SendMediaGroup отправляет группу видео одним альбомом.
func (c *Client) SendMediaGroup(ctx context.Context, chatID int64, media []InputMediaVideo, protectContent bool) ([]Message, error) {
	params := map[string]any{
		"chat_id":         chatID,
		"media":           media,
		"protect_content": protectContent,
	}
	var msgs []Message
	if err := c.call(ctx, "sendMediaGroup", params, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// DeleteMessage удаляет сообщение. Ошибка «message to delete not found»
// приходит как api error и обрабатывается вызывающей стороной.
func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	params := map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}
	return c.call(ctx, "deleteMessage", params, nil)
}

// RefundStarPayment выполняет возврат платежа Stars.
// Возвращает true только при ответе {ok:true, result:true}; отказ шлюза
// не является ошибкой транспорта.
func (c *Client) RefundStarPayment(ctx context.Context, userID int64, chargeID string) (bool, error) {
	const op = "telegram.RefundStarPayment"

	if err := c.limiter.Wait(ctx); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	params := map[string]any{
		"user_id":                    userID,
		"telegram_payment_charge_id": chargeID,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(params); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	url := fmt.Sprintf("%s/bot%s/refundStarPayment", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var data struct {
		OK     bool `json:"ok"`
		Result bool `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return data.OK && data.Result, nil
}

// GetUpdates забирает очередные обновления long polling-ом.
func (c *Client) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	const op = "telegram.GetUpdates"

	params := map[string]any{
		"offset":  offset,
		"timeout": int(timeout.Seconds()),
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(params); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	url := fmt.Sprintf("%s/bot%s/getUpdates", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.pollClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !envelope.OK {
		return nil, fmt.Errorf("%s: api error: %s", op, envelope.Description)
	}
	var updates []Update
	if err := json.Unmarshal(envelope.Result, &updates); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updates, nil
}
