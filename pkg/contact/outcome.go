package contact

import (
	"log/slog"
	"time"

	"github.com/pagecraft/contactd/pkg/ratelimit"
)

// State is the terminal state of one submission.
type State int

const (
	StateRejected State = iota + 1
	StateRateLimited
	StateHoneypotAbsorbed
	StateDeliveryFailed
	StateAccepted
)

func (s State) String() string {
	switch s {
	case StateRejected:
		return "rejected"
	case StateRateLimited:
		return "rate_limited"
	case StateHoneypotAbsorbed:
		return "honeypot_absorbed"
	case StateDeliveryFailed:
		return "delivery_failed"
	case StateAccepted:
		return "accepted"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the caller receives the success response.
// A honeypot hit answers like an accepted submission.
func (s State) Succeeded() bool {
	return s == StateAccepted || s == StateHoneypotAbsorbed
}

// Result is what the transport needs to answer the caller.
type Result struct {
	// Decision is nil when the limiter could not be consulted or the
	// submission was rejected before reaching it.
	Decision *ratelimit.Decision
	Errors   ValidationErrors
	Record   Record
	State    State
}

// Record is the observability summary of one submission.
type Record struct {
	Notification *DeliveryOutcome
	Confirmation *DeliveryOutcome // nil when not attempted
	RequestID    string
	IdentityHash string
	State        State
	Duration     time.Duration
}

// ConfirmationFailed reports whether the acknowledgment was attempted and failed.
func (r Record) ConfirmationFailed() bool {
	return r.Confirmation != nil && !r.Confirmation.OK
}

// LogValue implements slog.LogValuer.
func (r Record) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("state", r.State.String()),
		slog.String("identity_hash", r.IdentityHash),
		slog.Int64("duration_ms", r.Duration.Milliseconds()),
	}
	if r.Notification != nil {
		attrs = append(attrs, deliveryAttr("notification", *r.Notification))
	}
	switch {
	case r.Confirmation != nil:
		attrs = append(attrs, deliveryAttr("confirmation", *r.Confirmation))
	case r.Notification != nil && r.Notification.OK:
		attrs = append(attrs, slog.String("confirmation", "skipped"))
	}
	return slog.GroupValue(attrs...)
}

func deliveryAttr(name string, o DeliveryOutcome) slog.Attr {
	if o.OK {
		return slog.Group(name, slog.Bool("ok", true), slog.String("provider_id", o.ProviderID))
	}
	return slog.Group(name, slog.Bool("ok", false), slog.String("error", o.Err.Error()))
}
