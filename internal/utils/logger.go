package utils

import (
	"log"
	"strings"
)

// LogEvent prints one structured line per booking action. requestID may be
// empty for background work such as the expiry sweeper; it is normalized to
// "-" so the columns stay grep-friendly. Keep messages summarized, never
// passenger data.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
