package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Paths exempt from the request deadline. Liveness probes and Prometheus
// scrapes finish fast and manage their own client-side timeouts.
var timeoutExempt = []string{"/metrics", "/health"}

func isTimeoutExempt(path string) bool {
	for _, prefix := range timeoutExempt {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestTimeout puts a deadline on every request context. Handlers that
// overrun it get cancelled and the client receives a 504. A handler that
// needs longer for a specific operation can derive its own context with a
// later deadline.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if isTimeoutExempt(c.Request().URL.Path) {
				return next(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()
			c.SetRequest(c.Request().WithContext(ctx))

			// The handler runs in its own goroutine so a blocked database
			// call cannot stop us from answering the client.
			done := make(chan error, 1)
			go func() {
				done <- next(c)
			}()

			select {
			case err := <-done:
				return err
			case <-ctx.Done():
				if ctx.Err() != context.DeadlineExceeded {
					// Client went away; nothing useful left to write.
					return ctx.Err()
				}
				if c.Response().Committed {
					return nil
				}
				return c.JSON(http.StatusGatewayTimeout, map[string]string{
					"error": "request processing exceeded the allowed time limit",
				})
			}
		}
	}
}
