package chi

import (
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"github.com/kailas-cloud/surfcmp/internal/domain"
)

// RateLimitMiddleware applies a shared token bucket to all non-exempt routes.
// requestsPerSec <= 0 disables limiting.
func RateLimitMiddleware(requestsPerSec float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if requestsPerSec <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(requestsPerSec), burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				secs := int(delay.Seconds()) + 1
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				writeError(w, http.StatusTooManyRequests, ErrorCodeRateLimited,
					fmt.Sprintf("%s, retry in %ds", domain.ErrRateLimited.Error(), secs))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
