package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/cleberrangel/project-estimator-api/internal/logger"
	"github.com/cleberrangel/project-estimator-api/internal/model"
)

// RateLimit limita as requisições do grupo a perMinute por minuto (token bucket com rajada perMinute)
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		perMinute = 1
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(c *gin.Context) {
		reservation := limiter.Reserve()
		if !reservation.OK() {
			abortTooManyRequests(c, time.Minute)
			return
		}

		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			abortTooManyRequests(c, delay)
			return
		}

		c.Next()
	}
}

func abortTooManyRequests(c *gin.Context, retryAfter time.Duration) {
	seconds := int(math.Ceil(retryAfter.Seconds()))
	c.Header("Retry-After", strconv.Itoa(seconds))

	logger.FromGin(c).Warn().
		Str("path", c.Request.URL.Path).
		Int("retry_after_s", seconds).
		Msg("Limite de exportações atingido")

	c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
		Success: false,
		Error:   "Muitas exportações em sequência, tente novamente em instantes",
	})
}
