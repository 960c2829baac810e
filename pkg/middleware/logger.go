package middleware

import (
	"net/http"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/alloy/pkg/context"
	"github.com/Ramsey-B/alloy/pkg/tracing"
)

// Logger writes one structured line per request. Errors are handed to the
// echo error handler first so the logged status is the one sent.
func Logger(logger ectologger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			ctx := req.Context()

			fields := map[string]any{
				"request_id":    context.GetRequestID(ctx),
				"trace_id":      tracing.GetTraceID(ctx),
				"method":        req.Method,
				"uri":           req.RequestURI,
				"route":         c.Path(),
				"status":        res.Status,
				"remote_ip":     c.RealIP(),
				"user_agent":    req.UserAgent(),
				"latency_ms":    time.Since(start).Milliseconds(),
				"response_size": res.Size,
			}
			if userID := context.GetUserID(ctx); userID != "" {
				fields["user_id"] = userID
			}

			entry := logger.WithContext(ctx).WithFields(fields)
			switch {
			case res.Status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case res.Status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request served")
			}

			return nil
		}
	}
}
