package mailer

import (
	"context"
	"errors"

	"golang.org/x/time/rate"
)

type throttledSender struct {
	next    Sender
	limiter *rate.Limiter
}

// Throttle wraps next so that at most perSecond sends start per second, with
// the given burst. Callers wait for capacity until ctx is done; a message is
// never re-sent. A non-positive perSecond returns next unchanged.
func Throttle(next Sender, perSecond float64, burst int) Sender {
	if perSecond <= 0 {
		return next
	}
	return &throttledSender{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), max(burst, 1)),
	}
}

func (s *throttledSender) Send(ctx context.Context, email *Email) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", errors.Join(ErrThrottled, err)
	}
	return s.next.Send(ctx, email)
}
