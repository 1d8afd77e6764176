package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/SeakMengs/DocSign/internal/util"
	"github.com/gin-gonic/gin"
)

func (m Middleware) RateLimiterMiddleware(ctx *gin.Context) {
	if m.rateLimiter == nil || !m.app.Config.RateLimiter.Enabled {
		ctx.Next()
		return
	}

	allowed, retryAfter := m.rateLimiter.Allow(ctx.ClientIP())
	if !allowed {
		ctx.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		util.ResponseFailed(ctx, http.StatusTooManyRequests, "Too many requests", util.GenerateErrorMessages(errors.New("rate limit exceeded, try again later")), nil)
		return
	}

	ctx.Next()
}

// BodyLimitMiddleware caps the request body at Config.MaxUploadSize.
func (m Middleware) BodyLimitMiddleware(ctx *gin.Context) {
	if limit := m.app.Config.MaxUploadSize; limit > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)
	}
	ctx.Next()
}
