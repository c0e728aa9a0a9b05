// Package notifier delivers price alerts to a Telegram chat.
package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	sendTimeout    = 10 * time.Second
)

// Alert is one price change worth telling the user about.
type Alert struct {
	ProductName string
	OldPrice    decimal.Decimal
	NewPrice    decimal.Decimal
	PctChange   decimal.Decimal
	URL         string
}

// Telegram sends alerts through the bot sendMessage endpoint. Delivery is
// one shot with a fixed timeout; callers treat failures as best-effort.
type Telegram struct {
	client *resty.Client
	token  string
	chatID string
	log    *logrus.Entry
}

// NewTelegram returns a notifier posting to chatID as the given bot.
func NewTelegram(token, chatID string, log *logrus.Entry) *Telegram {
	client := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(sendTimeout)

	return &Telegram{
		client: client,
		token:  token,
		chatID: chatID,
		log:    log,
	}
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send posts one formatted alert message.
func (t *Telegram) Send(ctx context.Context, alert Alert) error {
	payload := sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  formatMessage(alert),
		ParseMode:             "Markdown",
		DisableWebPagePreview: false,
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(fmt.Sprintf("/bot%s/sendMessage", t.token))
	if err != nil {
		return fmt.Errorf("send telegram alert: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("send telegram alert: status %d: %s", resp.StatusCode(), resp.String())
	}

	t.log.Infof("sent telegram alert for %s", alert.ProductName)
	return nil
}

// formatMessage renders the Markdown alert body.
func formatMessage(alert Alert) string {
	emoji := "📈"
	if !alert.NewPrice.GreaterThan(alert.OldPrice) {
		emoji = "📉"
	}

	return fmt.Sprintf(
		"%s *Price Alert: %s*\n\n"+
			"Old Price: RM %s\n"+
			"New Price: RM %s\n"+
			"Change: %s%%\n\n"+
			"[View Product](%s)",
		emoji,
		alert.ProductName,
		alert.OldPrice.StringFixed(2),
		alert.NewPrice.StringFixed(2),
		signedPct(alert.PctChange),
		alert.URL,
	)
}

// signedPct renders a percentage with an explicit sign, "+2.00" or "-2.00".
func signedPct(pct decimal.Decimal) string {
	s := pct.StringFixed(2)
	if !pct.IsNegative() {
		s = "+" + s
	}
	return s
}
