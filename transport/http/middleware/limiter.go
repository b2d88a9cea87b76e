package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"denta/config"
	"denta/shared"
	"denta/shared/cache"
	"denta/shared/constant"
	"denta/transport/http/response"
)

const (
	cacheKeyRateLimit = "limiter"
)

// RateLimit counts requests per client IP in a fixed redis window. When redis
// is unreachable the request is let through rather than refused.
func RateLimit(cfg *config.Config, redisCache cache.RedisCache) func(http.Handler) http.Handler {
	if !cfg.App.RateLimiter.Enable {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	maxReqs := cfg.App.RateLimiter.MaxRequests
	windowSecs := cfg.App.RateLimiter.WindowSeconds

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, getClientIP(request))

			var count int
			err := redisCache.Get(ctx, cacheKey, &count)

			switch {
			case err == nil:
				count++
			case errors.Is(err, cache.Nil):
				count = 1
			default:
				next.ServeHTTP(writer, request)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(writer)

				return
			}

			if err := redisCache.Save(ctx, cacheKey, count, windowSecs); err != nil {
				next.ServeHTTP(writer, request)

				return
			}

			writer.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			writer.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			writer.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(writer, request)
		})
	}
}
