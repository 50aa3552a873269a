package echoapi

import (
	"time"

	"github.com/labstack/echo/v4"
)

type requestObserver interface {
	ObserveRequest(method, route string, status int, d time.Duration)
}

// metricsMiddleware records every request under its route pattern, not its raw path.
func metricsMiddleware(obs requestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			obs.ObserveRequest(ctx.Request().Method, route, ctx.Response().Status, time.Since(start))
			return nil
		}
	}
}
