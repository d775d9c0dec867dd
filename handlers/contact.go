package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pagecraft/contactd/internal"
	"github.com/pagecraft/contactd/middlewares"
	"github.com/pagecraft/contactd/pkg/contact"
	"github.com/pagecraft/contactd/pkg/ratelimit"
)

// Client-facing messages. They never carry internal detail.
const (
	MsgInvalidForm     = "Invalid form data"
	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgSendFailed      = "Failed to send message. Please try again later."
)

// ContactConfig configures the contact endpoint.
type ContactConfig struct {
	Path string `env:"CONTACT_PATH" envDefault:"/api/contact"`
	// ClientIPHeader names the header carrying the client address. Empty
	// means the connection's remote address.
	ClientIPHeader string `env:"CLIENT_IP_HEADER" envDefault:"X-Forwarded-For"`
}

// Submitter runs one submission. *contact.Pipeline implements it.
type Submitter interface {
	Submit(ctx context.Context, req contact.Request) contact.Result
}

// Contact serves the contact form endpoint.
type Contact struct {
	pipeline Submitter
	now      func() time.Time
	cfg      ContactConfig
}

// NewContact creates the handler.
func NewContact(pipeline Submitter, cfg ContactConfig) *Contact {
	if cfg.Path == "" {
		cfg.Path = "/api/contact"
	}
	return &Contact{pipeline: pipeline, cfg: cfg, now: time.Now}
}

func (h *Contact) Routes(r internal.Router) {
	r.POST(h.cfg.Path, h.submit)
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *Contact) submit(c internal.Context) error {
	var in contact.Input
	if err := c.BindJSON(&in); err != nil {
		return fmt.Errorf("read contact payload: %w", err)
	}

	res := h.pipeline.Submit(c, contact.Request{
		Input:     in,
		Identity:  contact.ClientIdentity(c.Request(), h.cfg.ClientIPHeader),
		RequestID: middlewares.GetRequestID(c),
	})

	now := h.now()
	if res.Decision != nil {
		setRateLimitHeaders(c, *res.Decision, now)
	}

	switch res.State {
	case contact.StateRejected:
		return c.Error(http.StatusBadRequest, MsgInvalidForm, internal.WithDetails(res.Errors))
	case contact.StateRateLimited:
		c.SetHeader("Retry-After", strconv.Itoa(res.Decision.RetryAfterSeconds(now)))
		return c.Error(http.StatusTooManyRequests, MsgTooManyRequests)
	case contact.StateDeliveryFailed:
		return c.Error(http.StatusInternalServerError, MsgSendFailed)
	default:
		return c.JSON(http.StatusOK, successResponse{Success: true})
	}
}

func setRateLimitHeaders(c internal.Context, d ratelimit.Decision, now time.Time) {
	c.SetHeader("X-RateLimit-Limit", strconv.Itoa(d.Limit))
	c.SetHeader("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
	c.SetHeader("X-RateLimit-Reset", strconv.Itoa(d.RetryAfterSeconds(now)))
}
