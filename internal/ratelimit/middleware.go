package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	limiter "github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewStore returns a limiter store backed by Redis when a client is
// provided, falling back to an in-memory store otherwise.
func NewStore(client *redis.Client) (limiter.Store, error) {
	if client == nil {
		return memorystore.NewStore(), nil
	}
	return redisstore.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: "postershop:ratelimit"})
}

// Handler enforces a request rate per client IP before delegating.
type Handler struct {
	Limiter *limiter.Limiter
	Log     zerolog.Logger
}

// Middleware implements the http.Handler middleware interface. Limiter
// store failures are logged and the request is allowed through.
func (h Handler) Middleware(next http.Handler) http.Handler {
	if h.Limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lctx, err := h.Limiter.Get(r.Context(), clientKey(r))
		if err != nil {
			h.Log.Error().Err(err).Msg("rate limiter store")
			next.ServeHTTP(w, r)
			return
		}

		headers := w.Header()
		headers.Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		headers.Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
