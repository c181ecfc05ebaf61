package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
	"github.com/piresc/angkut/internal/utils"
)

// PanicRecoveryMiddleware recovers from handler panics, logs the stack and
// answers 500 if nothing was written yet
func PanicRecoveryMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		zapLogger = logger.GetGlobalLogger()
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					handlePanic(c, r, zapLogger)
					err = nil
				}
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, zapLogger *logger.ZapLogger) {
	fields := []logger.Field{
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", string(debug.Stack())),
		logger.String("method", c.Request().Method),
		logger.String("route", c.Path()),
		logger.String("client_ip", c.RealIP()),
	}
	if info, ok := requestcontext.FromContext(c.Request().Context()); ok {
		fields = append(fields,
			logger.String("request_id", info.RequestID),
			logger.String("actor_id", info.ActorID))
	}
	zapLogger.Error("Panic recovered during request processing", fields...)

	if !c.Response().Committed {
		_ = utils.ErrorResponseHandler(c, http.StatusInternalServerError, utils.KindInternal, "Internal server error")
	}
}
