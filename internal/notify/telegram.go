package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Telegram sends messages through the Bot API. Only sendMessage is needed
// here; the conversational side lives in the bot package.
type Telegram struct {
	BaseURL string // overridable for tests
	Token   string
	Client  *http.Client
}

func NewTelegram(token string) *Telegram {
	if token == "" {
		return nil
	}
	return &Telegram{
		BaseURL: "https://api.telegram.org",
		Token:   token,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessagePayload struct {
	ChatID int64  `json:"chat_id"`
	Text   string `json:"text"`
}

func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	if t == nil || t.Token == "" {
		return errors.New("telegram disabled")
	}
	body, _ := json.Marshal(sendMessagePayload{ChatID: chatID, Text: text})
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.Token)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("telegram sendMessage: %s", resp.Status)
	}
	return nil
}
