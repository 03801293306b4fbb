package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Telegram update wire types, trimmed to the fields the router reads.

type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	Chat    Chat     `json:"chat"`
	From    *User    `json:"from"`
	Text    string   `json:"text"`
	Contact *Contact `json:"contact"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type User struct {
	ID int64 `json:"id"`
}

type Contact struct {
	PhoneNumber string `json:"phone_number"`
	UserID      int64  `json:"user_id"`
}

type updatesResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

// Handler consumes one inbound update.
type Handler interface {
	Handle(ctx context.Context, upd Update)
}

// Poller long-polls getUpdates and feeds every update to the handler. It is
// the only reader of the update stream; the offset acknowledges processed
// updates so Telegram does not redeliver them.
type Poller struct {
	BaseURL string
	Token   string
	Client  *http.Client
	Logger  *zap.Logger
	Handler Handler

	PollTimeout time.Duration
	offset      int64
}

func NewPoller(logger *zap.Logger, token string, h Handler) *Poller {
	return &Poller{
		BaseURL:     "https://api.telegram.org",
		Token:       token,
		Logger:      logger,
		Handler:     h,
		PollTimeout: 30 * time.Second,
		// client timeout must exceed the long-poll window
		Client: &http.Client{Timeout: 40 * time.Second},
	}
}

func (p *Poller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.Logger.Info("poller_stopped")
			return ctx.Err()
		default:
		}

		updates, err := p.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.Logger.Warn("poller_get_updates_error", zap.Error(err))
			time.Sleep(3 * time.Second)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= p.offset {
				p.offset = u.UpdateID + 1
			}
			p.Handler.Handle(ctx, u)
		}
	}
}

func (p *Poller) getUpdates(ctx context.Context) ([]Update, error) {
	q := url.Values{}
	q.Set("timeout", strconv.Itoa(int(p.PollTimeout/time.Second)))
	if p.offset > 0 {
		q.Set("offset", strconv.FormatInt(p.offset, 10))
	}
	u := fmt.Sprintf("%s/bot%s/getUpdates?%s", p.BaseURL, p.Token, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("getUpdates: %s", resp.Status)
	}

	var body updatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("getUpdates: decode: %w", err)
	}
	if !body.OK {
		return nil, fmt.Errorf("getUpdates: api returned ok=false")
	}
	return body.Result, nil
}
