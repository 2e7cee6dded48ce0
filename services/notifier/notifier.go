// Package notifier delivers direct messages to users identified by an
// opaque ID. An unreachable recipient is a normal outcome, not an error:
// callers get one of three outcomes and own the retry policy.
package notifier

import "context"

// Outcome is the result of one delivery attempt
type Outcome int

const (
	// Delivered means the message reached the recipient
	Delivered Outcome = iota
	// Undeliverable means the recipient cannot currently receive direct
	// messages (blocked the sender, closed DMs, unknown chat)
	Undeliverable
	// TransportError means the delivery failed before reaching the
	// recipient (network, provider outage)
	TransportError
)

func (o Outcome) String() string {
	switch o {
	case Delivered:
		return "delivered"
	case Undeliverable:
		return "undeliverable"
	case TransportError:
		return "transport error"
	}
	return "unknown"
}

// Notifier sends a direct text message to a user
type Notifier interface {
	SendDirect(ctx context.Context, userID, text string) Outcome
}
