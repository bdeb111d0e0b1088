package notification

import "context"

// Notifier delivers a plain-text message to one address. Each call is an
// independent attempt; a returned error carries apperr.ErrDispatch.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}
