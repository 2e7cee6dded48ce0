package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"financepal/models"
	"financepal/services/notifier"
	"financepal/services/quotes"
	"financepal/store"

	"github.com/go-co-op/gocron"
	"github.com/shopspring/decimal"
)

// AlertScheduler periodically re-evaluates all stored alerts
type AlertScheduler struct {
	cron        *gocron.Scheduler
	store       *store.Store
	quotes      quotes.Gateway
	notifier    notifier.Notifier
	interval    time.Duration
	concurrency int

	stopOnce sync.Once
	stopped  chan struct{}
}

// removal identifies an alert marked for end-of-cycle deletion.
// The key deliberately omits condition, matching the store's removal key.
type removal struct {
	userID string
	symbol string
	target decimal.Decimal
}

// NewAlertScheduler creates the scheduler. Interval is the cycle period,
// concurrency bounds the per-alert fan-out against the quote gateway.
func NewAlertScheduler(st *store.Store, gateway quotes.Gateway, n notifier.Notifier, interval time.Duration, concurrency int) *AlertScheduler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AlertScheduler{
		cron:        gocron.NewScheduler(time.UTC),
		store:       st,
		quotes:      gateway,
		notifier:    n,
		interval:    interval,
		concurrency: concurrency,
		stopped:     make(chan struct{}),
	}
}

// Start waits for the readiness signal once, then begins the recurring
// cycle. It returns immediately; the wait happens in the background.
func (s *AlertScheduler) Start(ready <-chan struct{}) {
	go func() {
		select {
		case <-ready:
		case <-s.stopped:
			return
		}
		log.Printf("Alert scheduler starting, interval %s", s.interval)
		s.cron.Every(s.interval).Do(s.RunCycle)
		s.cron.StartAsync()
	}()
}

// Stop halts scheduling cooperatively. An in-progress cycle runs to
// completion; no new cycle begins afterwards.
func (s *AlertScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		s.cron.Stop()
		log.Println("Alert scheduler stopped")
	})
}

// RunCycle executes one full evaluation pass over every stored alert.
// Per-alert failures are isolated; deletions of notified alerts are
// deferred to the end of the cycle so no alert is evaluated twice within
// one pass. A crash after a send but before the deferred deletion means
// at most one duplicate notification on the next cycle.
func (s *AlertScheduler) RunCycle() {
	select {
	case <-s.stopped:
		return
	default:
	}

	alerts, err := s.store.ListAllAlerts()
	if err != nil {
		log.Printf("Error loading alerts: %v", err)
		return
	}
	if len(alerts) == 0 {
		return
	}

	ctx := context.Background()

	var mu sync.Mutex
	var toRemove []removal

	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup
	for _, alert := range alerts {
		wg.Add(1)
		sem <- struct{}{}
		go func(alert models.Alert) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					log.Printf("Alert evaluation panic for %s %s: %v", alert.UserID, alert.Symbol, r)
				}
			}()

			if !s.evaluate(ctx, alert) {
				return
			}
			mu.Lock()
			toRemove = append(toRemove, removal{alert.UserID, alert.Symbol, alert.Target})
			mu.Unlock()
		}(alert)
	}
	wg.Wait()

	for _, r := range toRemove {
		if _, err := s.store.RemoveAlert(r.userID, r.symbol, r.target); err != nil {
			log.Printf("Error removing triggered alert %s %s: %v", r.userID, r.symbol, err)
		}
	}

	if len(toRemove) > 0 {
		log.Printf("Alert cycle done: %d evaluated, %d triggered and removed", len(alerts), len(toRemove))
	}
}

// evaluate checks one alert and reports whether it should be removed,
// which requires both a trigger and a delivered notification. An empty
// price series or a failed delivery leaves the alert for the next cycle.
func (s *AlertScheduler) evaluate(ctx context.Context, alert models.Alert) bool {
	series := s.quotes.History(ctx, alert.Symbol, 1)
	if series.Empty() {
		return false
	}

	current := series.Latest()
	if !alert.Triggered(current) {
		return false
	}

	text := formatAlertMessage(alert, current)
	outcome := s.notifier.SendDirect(ctx, alert.UserID, text)
	if outcome != notifier.Delivered {
		log.Printf("Alert for %s %s not removed: %s", alert.UserID, alert.Symbol, outcome)
		return false
	}
	return true
}

// formatAlertMessage renders the notification text
func formatAlertMessage(alert models.Alert, current decimal.Decimal) string {
	arrow := "📈"
	if alert.Condition == models.ConditionBelow {
		arrow = "📉"
	}
	return fmt.Sprintf("%s Alert: `%s` is now at $%s (%s %s)",
		arrow, alert.Symbol, current.StringFixed(2), alert.Condition, alert.Target.StringFixed(2))
}
