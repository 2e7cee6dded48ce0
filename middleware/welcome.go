package middleware

import (
	"log"

	"financepal/services/notifier"
	"financepal/store"

	"github.com/gin-gonic/gin"
)

const welcomeText = "👋 Welcome to FinancePal!\n\n" +
	"Thanks for trying out the service. Add symbols to your watchlist, " +
	"set price alerts, and tune your preferences in settings.\n\n" +
	"You will get a direct message whenever one of your alerts triggers."

// FirstContactWelcome sends a one-time welcome direct message the first
// time a user identity appears on any request. Delivery is best effort:
// the marker is written even when the user cannot receive messages, so
// nobody is welcomed twice.
func FirstContactWelcome(st *store.Store, n notifier.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID != "" {
			seen, err := st.HasSeenUser(userID)
			if err != nil {
				log.Printf("Error checking first contact for %s: %v", userID, err)
			} else if !seen {
				if outcome := n.SendDirect(c.Request.Context(), userID, welcomeText); outcome != notifier.Delivered {
					log.Printf("Welcome message for %s: %s", userID, outcome)
				}
				if err := st.MarkSeenUser(userID); err != nil {
					log.Printf("Error marking user %s seen: %v", userID, err)
				}
			}
		}
		c.Next()
	}
}
