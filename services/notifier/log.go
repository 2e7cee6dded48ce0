package notifier

import (
	"context"
	"log"
)

// LogNotifier writes messages to the process log instead of delivering
// them. Used when no Telegram token is configured, so development setups
// still exercise the full alert path.
type LogNotifier struct{}

// SendDirect logs the message and reports it delivered
func (LogNotifier) SendDirect(ctx context.Context, userID, text string) Outcome {
	log.Printf("[notify %s] %s", userID, text)
	return Delivered
}
