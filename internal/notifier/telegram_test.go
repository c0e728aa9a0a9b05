package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func testTelegram(t *testing.T, ts *httptest.Server) *Telegram {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tg := NewTelegram("123:abc", "42", logrus.NewEntry(logger))
	tg.client.SetBaseURL(ts.URL)
	return tg
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return v
}

func TestSendPayload(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		io.WriteString(w, `{"ok":true}`)
	}))
	defer ts.Close()

	alert := Alert{
		ProductName: "Milo 1kg",
		OldPrice:    dec(t, "10.00"),
		NewPrice:    dec(t, "12.00"),
		PctChange:   dec(t, "20"),
		URL:         "https://store.example/milo",
	}
	if err := testTelegram(t, ts).Send(context.Background(), alert); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("path = %q, want bot sendMessage path", gotPath)
	}
	if gotBody.ChatID != "42" {
		t.Errorf("chat_id = %q, want %q", gotBody.ChatID, "42")
	}
	if gotBody.ParseMode != "Markdown" {
		t.Errorf("parse_mode = %q, want %q", gotBody.ParseMode, "Markdown")
	}
	if gotBody.DisableWebPagePreview {
		t.Error("disable_web_page_preview = true, want false")
	}

	for _, want := range []string{
		"📈 *Price Alert: Milo 1kg*",
		"Old Price: RM 10.00",
		"New Price: RM 12.00",
		"Change: +20.00%",
		"[View Product](https://store.example/milo)",
	} {
		if !strings.Contains(gotBody.Text, want) {
			t.Errorf("message %q missing %q", gotBody.Text, want)
		}
	}
}

func TestSendDecreaseMessage(t *testing.T) {
	alert := Alert{
		ProductName: "Eggs",
		OldPrice:    dec(t, "10.00"),
		NewPrice:    dec(t, "8.50"),
		PctChange:   dec(t, "-15"),
		URL:         "https://store.example/eggs",
	}

	got := formatMessage(alert)

	if !strings.HasPrefix(got, "📉") {
		t.Errorf("message %q does not start with the decrease indicator", got)
	}
	if !strings.Contains(got, "Change: -15.00%") {
		t.Errorf("message %q missing signed percent", got)
	}
}

func TestSendErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false,"description":"chat not found"}`, http.StatusBadRequest)
	}))
	defer ts.Close()

	err := testTelegram(t, ts).Send(context.Background(), Alert{ProductName: "Milo"})
	if err == nil {
		t.Fatal("Send returned nil error for 400 response")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("err = %v, want status in message", err)
	}
}
