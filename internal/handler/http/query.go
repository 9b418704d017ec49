package http

import (
	"net/http"
	"strconv"
	"time"
)

// periodParams reads month/year query parameters, defaulting to the
// current UTC month when absent.
func periodParams(r *http.Request) (month, year int) {
	now := time.Now().UTC()
	month, year = int(now.Month()), now.Year()

	if raw := r.URL.Query().Get("month"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			month = v
		}
	}
	if raw := r.URL.Query().Get("year"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			year = v
		}
	}
	return month, year
}
