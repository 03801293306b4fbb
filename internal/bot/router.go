package bot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/domainwatch/internal/domain"
	"github.com/hamed0406/domainwatch/internal/notify"
	"github.com/hamed0406/domainwatch/internal/store"
	"github.com/hamed0406/domainwatch/internal/tracker"
)

// Router executes the conversation flow: parse the update, compute the facts
// the transition needs, step the state machine, then run the resulting side
// effect and reply. Each chat owns its own session; sessions never interact.
type Router struct {
	Logger        *zap.Logger
	Ignores       store.IgnoreStore
	Admins        store.AdminStore
	Tracker       *tracker.Tracker
	Replies       notify.Notifier
	AllowedPhones map[string]struct{}
	Kick          func() // manual cycle trigger, nil-safe

	mu       sync.Mutex
	sessions map[int64]State
}

func NewRouter(
	logger *zap.Logger,
	ignores store.IgnoreStore,
	admins store.AdminStore,
	tr *tracker.Tracker,
	replies notify.Notifier,
	allowedPhones []string,
	kick func(),
) *Router {
	allowed := make(map[string]struct{}, len(allowedPhones))
	for _, p := range allowedPhones {
		allowed[domain.NormalizePhone(p)] = struct{}{}
	}
	return &Router{
		Logger:        logger,
		Ignores:       ignores,
		Admins:        admins,
		Tracker:       tr,
		Replies:       replies,
		AllowedPhones: allowed,
		Kick:          kick,
		sessions:      make(map[int64]State),
	}
}

func (r *Router) state(chatID int64) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[chatID]
}

func (r *Router) setState(chatID int64, s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s == StateIdle {
		delete(r.sessions, chatID)
		return
	}
	r.sessions[chatID] = s
}

// Handle processes one inbound update end to end.
func (r *Router) Handle(ctx context.Context, upd Update) {
	if upd.Message == nil {
		return
	}
	msg := upd.Message
	chatID := msg.Chat.ID

	in := parseInput(msg)
	cur := r.state(chatID)

	facts := Facts{Verified: r.isVerified(ctx, chatID)}
	if in.Phone != "" {
		_, facts.PhoneAllowed = r.AllowedPhones[in.Phone]
	}
	if cur == StateAwaitingRemove && in.Text != "" {
		ignored, err := r.Ignores.Contains(ctx, in.Text)
		if err != nil {
			r.Logger.Error("bot_ignore_lookup_error", zap.Error(err))
		}
		facts.TargetIgnored = ignored
	}

	next, action := Step(cur, in, facts)
	r.setState(chatID, next)

	r.Logger.Debug("bot_transition",
		zap.Int64("chat_id", chatID),
		zap.Int("from", int(cur)),
		zap.Int("to", int(next)),
		zap.Int("action", int(action)),
	)

	r.apply(ctx, chatID, in, action)
}

func (r *Router) apply(ctx context.Context, chatID int64, in Input, action Action) {
	switch action {
	case ActionNone:

	case ActionPromptPhone:
		r.reply(ctx, chatID, "To verify you are an operator, send your phone number in international format (e.g. +46701234567), or share your contact.")

	case ActionAlreadyVerified:
		r.reply(ctx, chatID, "You are already verified and receiving alerts.")

	case ActionVerify:
		a := domain.Admin{Phone: in.Phone, ChatID: chatID, VerifiedAt: time.Now().UTC()}
		if err := r.Admins.Put(ctx, a); err != nil {
			// best-effort durability: the admin is still effective in memory
			// for stores that keep state, but here a Put failure means the
			// registry did not take the entry, so say so
			r.Logger.Error("bot_admin_put_error", zap.String("phone", in.Phone), zap.Error(err))
			r.reply(ctx, chatID, "Verification succeeded but saving failed, please try again.")
			return
		}
		r.Logger.Info("admin_verified", zap.String("phone", in.Phone), zap.Int64("chat_id", chatID))
		r.reply(ctx, chatID, "✅ Verified. You will now receive domain alerts and can use /ignore, /unignore, /ignored and /restart.")

	case ActionVerifyDenied:
		r.Logger.Warn("admin_verification_denied", zap.String("phone", in.Phone), zap.Int64("chat_id", chatID))
		r.reply(ctx, chatID, "❌ That phone number is not on the operator list. Try another number or /cancel.")

	case ActionPromptAdd:
		r.reply(ctx, chatID, "Which hostname should be ignored? (e.g. example.com)")

	case ActionPromptRemove:
		r.reply(ctx, chatID, "Which hostname should be monitored again?")

	case ActionAddIgnore:
		host := in.Text
		if err := r.Ignores.Add(ctx, host); err != nil {
			r.Logger.Error("bot_ignore_add_error", zap.String("hostname", host), zap.Error(err))
			r.reply(ctx, chatID, "Could not save the ignore list, please try again.")
			return
		}
		r.Tracker.Forget(host)
		r.Logger.Info("ignore_added", zap.String("hostname", host), zap.Int64("chat_id", chatID))
		r.reply(ctx, chatID, fmt.Sprintf("%s is now ignored and will not be checked.", host))

	case ActionRemoveIgnore:
		host := in.Text
		if _, err := r.Ignores.Remove(ctx, host); err != nil {
			r.Logger.Error("bot_ignore_remove_error", zap.String("hostname", host), zap.Error(err))
			r.reply(ctx, chatID, "Could not save the ignore list, please try again.")
			return
		}
		r.Logger.Info("ignore_removed", zap.String("hostname", host), zap.Int64("chat_id", chatID))
		r.reply(ctx, chatID, fmt.Sprintf("%s re-enters monitoring on the next cycle.", host))

	case ActionRemoveMissing:
		r.reply(ctx, chatID, fmt.Sprintf("%s is not on the ignore list. Send another hostname or /cancel.", in.Text))

	case ActionListIgnored:
		hosts, err := r.Ignores.List(ctx)
		if err != nil {
			r.Logger.Error("bot_ignore_list_error", zap.Error(err))
			r.reply(ctx, chatID, "Could not read the ignore list.")
			return
		}
		if len(hosts) == 0 {
			r.reply(ctx, chatID, "The ignore list is empty.")
			return
		}
		r.reply(ctx, chatID, "Ignored domains:\n - "+strings.Join(hosts, "\n - "))

	case ActionRestart:
		if r.Kick != nil {
			r.Kick()
		}
		r.reply(ctx, chatID, "Check cycle restarted.")

	case ActionCancelled:
		r.reply(ctx, chatID, "Cancelled.")

	case ActionDenied:
		r.reply(ctx, chatID, "You are not verified. Use /start to verify first.")

	case ActionBusy:
		r.reply(ctx, chatID, "Finish the pending action first, or send /cancel.")

	case ActionUnknown:
		r.reply(ctx, chatID, "Unknown command. Available: /start /ignore /unignore /ignored /restart /cancel")
	}
}

// isVerified reports whether some verified admin is bound to this chat.
func (r *Router) isVerified(ctx context.Context, chatID int64) bool {
	admins, err := r.Admins.List(ctx)
	if err != nil {
		r.Logger.Error("bot_admin_list_error", zap.Error(err))
		return false
	}
	for _, a := range admins {
		if a.ChatID == chatID {
			return true
		}
	}
	return false
}

func (r *Router) reply(ctx context.Context, chatID int64, text string) {
	if err := r.Replies.Send(ctx, chatID, text); err != nil {
		r.Logger.Error("bot_reply_error", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// parseInput splits an update into command, free text and phone. A shared
// contact only counts when it belongs to the sender, so an operator cannot
// verify with somebody else's contact card.
func parseInput(msg *Message) Input {
	var in Input
	if msg.Contact != nil {
		if msg.From == nil || msg.Contact.UserID == msg.From.ID {
			in.Phone = domain.NormalizePhone(msg.Contact.PhoneNumber)
		}
		return in
	}

	text := strings.TrimSpace(msg.Text)
	if strings.HasPrefix(text, "/") {
		cmd := text
		if i := strings.IndexAny(cmd, " @"); i > 0 {
			cmd = cmd[:i]
		}
		in.Command = strings.ToLower(cmd)
		return in
	}

	in.Text = strings.ToLower(text)
	if looksLikePhone(text) {
		in.Phone = domain.NormalizePhone(text)
	}
	return in
}

func looksLikePhone(s string) bool {
	s = strings.TrimPrefix(strings.TrimSpace(s), "+")
	if len(s) < 6 {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != ' ' && r != '-' {
			return false
		}
	}
	return true
}
