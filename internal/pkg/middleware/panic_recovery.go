package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/toolshare/internal/pkg/logger"
	"github.com/piresc/toolshare/internal/utils"
)

// PanicRecoveryWithZapMiddleware turns a handler panic into a 500, logs the
// stack and reports it to New Relic when a transaction is active.
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		zapLogger = logger.NewNopZapLogger()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler must keep aborting the connection
				if e, ok := r.(error); ok && e.Error() == "net/http: abort Handler" {
					panic(r)
				}

				req := c.Request()
				requestID := c.Response().Header().Get(echo.HeaderXRequestID)
				txn := newrelic.FromContext(req.Context())

				zapLogger.WithNewRelicContext(txn).Error("Panic recovered",
					logger.String("panic_value", fmt.Sprintf("%v", r)),
					logger.String("panic_type", fmt.Sprintf("%T", r)),
					logger.String("stack_trace", string(debug.Stack())),
					logger.String("method", req.Method),
					logger.String("path", req.URL.Path),
					logger.String("request_id", requestID),
					logger.Any("user_id", c.Get("user_id")),
				)

				if txn != nil {
					txn.NoticeError(newrelic.Error{
						Message: fmt.Sprintf("panic: %v", r),
						Class:   "PanicError",
					})
				}

				if !c.Response().Committed {
					err = utils.InternalServerErrorResponse(c, "")
				}
			}()

			return next(c)
		}
	}
}
