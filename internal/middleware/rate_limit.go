package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimitはコマンド投入を一定間隔に制限するミドルウェア。
// ネイバーAPIを叩くジョブの多重投入を入口で弾く。
func RateLimit(interval time.Duration) echo.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, errorJSON("too many requests"))
			}
			return next(c)
		}
	}
}
