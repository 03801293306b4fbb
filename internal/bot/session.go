// Package bot implements the operator control plane: a per-chat conversation
// state machine driving admin verification and ignore-list editing, plus the
// Telegram long-poll transport that feeds it.
package bot

// State is the conversation position of one operator chat. Sessions are
// in-memory only; losing them on restart just makes the operator reissue the
// command.
type State int

const (
	StateIdle State = iota
	StateAwaitingPhone
	StateAwaitingAdd
	StateAwaitingRemove
)

// Action is the side effect the router must execute after a transition.
type Action int

const (
	ActionNone Action = iota
	ActionPromptPhone   // ask the operator for their phone number
	ActionAlreadyVerified
	ActionVerify        // phone allowed: persist admin, confirm
	ActionVerifyDenied  // phone not on the allow-list
	ActionPromptAdd     // ask which hostname to ignore
	ActionPromptRemove  // ask which hostname to unignore
	ActionAddIgnore     // insert hostname, drop its tracker record
	ActionRemoveIgnore  // remove hostname from the ignore set
	ActionRemoveMissing // hostname was not ignored; reported no-op
	ActionListIgnored
	ActionRestart // trigger an immediate check cycle
	ActionCancelled
	ActionDenied // unverified operator tried an admin command
	ActionBusy   // command issued while another action is pending
	ActionUnknown
)

// Input is one inbound operator message, already parsed by the router.
type Input struct {
	Command string // "/start", "/ignore", ... empty for plain text
	Text    string // free text (hostname or typed phone number)
	Phone   string // normalized phone, set when a contact or number arrived
}

// Facts are the pieces of world state a transition depends on. The router
// computes them before stepping so Step itself stays a pure function and the
// whole flow is testable without a live channel.
type Facts struct {
	Verified      bool // chat belongs to a verified admin
	PhoneAllowed  bool // supplied phone is on the configured allow-list
	TargetIgnored bool // supplied hostname is currently in the ignore set
}

// Step maps (state, input, facts) to (next state, side effect). Total: every
// combination yields a definite answer.
func Step(s State, in Input, f Facts) (State, Action) {
	if in.Command == "/cancel" {
		return StateIdle, ActionCancelled
	}

	switch s {
	case StateIdle:
		switch in.Command {
		case "/start":
			if f.Verified {
				return StateIdle, ActionAlreadyVerified
			}
			return StateAwaitingPhone, ActionPromptPhone
		case "/ignore":
			if !f.Verified {
				return StateIdle, ActionDenied
			}
			return StateAwaitingAdd, ActionPromptAdd
		case "/unignore":
			if !f.Verified {
				return StateIdle, ActionDenied
			}
			return StateAwaitingRemove, ActionPromptRemove
		case "/ignored":
			if !f.Verified {
				return StateIdle, ActionDenied
			}
			return StateIdle, ActionListIgnored
		case "/restart":
			if !f.Verified {
				return StateIdle, ActionDenied
			}
			return StateIdle, ActionRestart
		case "":
			return StateIdle, ActionNone
		default:
			return StateIdle, ActionUnknown
		}

	case StateAwaitingPhone:
		if in.Command != "" {
			return StateAwaitingPhone, ActionBusy
		}
		if in.Phone == "" {
			return StateAwaitingPhone, ActionPromptPhone
		}
		if f.PhoneAllowed {
			return StateIdle, ActionVerify
		}
		// denied is not fatal; the operator may try another number
		return StateAwaitingPhone, ActionVerifyDenied

	case StateAwaitingAdd:
		if in.Command != "" {
			return StateAwaitingAdd, ActionBusy
		}
		if in.Text == "" {
			return StateAwaitingAdd, ActionPromptAdd
		}
		return StateIdle, ActionAddIgnore

	case StateAwaitingRemove:
		if in.Command != "" {
			return StateAwaitingRemove, ActionBusy
		}
		if in.Text == "" {
			return StateAwaitingRemove, ActionPromptRemove
		}
		if !f.TargetIgnored {
			return StateAwaitingRemove, ActionRemoveMissing
		}
		return StateIdle, ActionRemoveIgnore
	}

	return StateIdle, ActionNone
}
