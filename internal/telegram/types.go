package telegram

import "encoding/json"

// Update — входящее обновление Bot API. Заполнено ровно одно из полей.
type Update struct {
	UpdateID         int64             `json:"update_id"`
	Message          *Message          `json:"message,omitempty"`
	PreCheckoutQuery *PreCheckoutQuery `json:"pre_checkout_query,omitempty"`
}

// User — отправитель сообщения.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username,omitempty"`
}

// Chat — чат, из которого пришло сообщение.
type Chat struct {
	ID int64 `json:"id"`
}

// Message — сообщение Bot API в объёме, нужном боту.
type Message struct {
	MessageID         int64              `json:"message_id"`
	From              *User              `json:"from,omitempty"`
	Chat              Chat               `json:"chat"`
	Text              string             `json:"text,omitempty"`
	Video             *File              `json:"video,omitempty"`
	Document          *File              `json:"document,omitempty"`
	SuccessfulPayment *SuccessfulPayment `json:"successful_payment,omitempty"`
}

// File — вложение, из которого боту нужен только file_id.
type File struct {
	FileID string `json:"file_id"`
}

// SuccessfulPayment — подтверждение завершённого платежа Stars.
type SuccessfulPayment struct {
	Currency                string `json:"currency"`
	TotalAmount             int64  `json:"total_amount"`
	InvoicePayload          string `json:"invoice_payload"`
	TelegramPaymentChargeID string `json:"telegram_payment_charge_id"`
}

// PreCheckoutQuery — синхронный запрос подтверждения перед списанием.
type PreCheckoutQuery struct {
	ID             string `json:"id"`
	From           User   `json:"from"`
	Currency       string `json:"currency"`
	TotalAmount    int64  `json:"total_amount"`
	InvoicePayload string `json:"invoice_payload"`
}

// KeyboardButton — кнопка reply-клавиатуры.
type KeyboardButton struct {
	Text string `json:"text"`
}

// ReplyKeyboardMarkup — reply-клавиатура под полем ввода.
type ReplyKeyboardMarkup struct {
	Keyboard       [][]KeyboardButton `json:"keyboard"`
	ResizeKeyboard bool               `json:"resize_keyboard"`
}

// NewReplyKeyboard собирает клавиатуру из строк с подписями кнопок.
func NewReplyKeyboard(rows ...[]string) *ReplyKeyboardMarkup {
	kb := &ReplyKeyboardMarkup{ResizeKeyboard: true}
	for _, row := range rows {
		var buttons []KeyboardButton
		for _, label := range row {
			buttons = append(buttons, KeyboardButton{Text: label})
		}
		kb.Keyboard = append(kb.Keyboard, buttons)
	}
	return kb
}

// LabeledPrice — позиция счёта в инвойсе.
type LabeledPrice struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"`
}

// InputMediaVideo — элемент медиагруппы.
type InputMediaVideo struct {
	Type  string `json:"type"`
	Media string `json:"media"`
}

// apiResponse — конверт всех ответов Bot API.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
}

// SendMessageRequest — параметры sendMessage.
type SendMessageRequest struct {
	ChatID         int64                `json:"chat_id"`
	Text           string               `json:"text"`
	ParseMode      string               `json:"parse_mode,omitempty"`
	ReplyMarkup    *ReplyKeyboardMarkup `json:"reply_markup,omitempty"`
	ProtectContent bool                 `json:"protect_content,omitempty"`
}

// SendInvoiceRequest — параметры sendInvoice (валюта XTR, provider_token пустой).
type SendInvoiceRequest struct {
	ChatID        int64          `json:"chat_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Payload       string         `json:"payload"`
	ProviderToken string         `json:"provider_token"`
	Currency      string         `json:"currency"`
	Prices        []LabeledPrice `json:"prices"`
	MaxTipAmount  int            `json:"max_tip_amount"`
}
