package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"

	"loancalc/internal/app/server/api/http/middleware"
)

const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter ограничивает частоту запросов с одного IP.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	now      func() time.Time
	log      *slog.Logger
}

func New(rps float64, burst int, log *slog.Logger) *Limiter {
	if burst < 1 {
		burst = 1
	}

	return &Limiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		log:      log.With(slog.String("component", "rate_limiter")),
	}
}

// Allow расходует токен клиента и заодно выкидывает давно неактивных клиентов.
func (l *Limiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > idleTTL {
			delete(l.visitors, key)
		}
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

func (l *Limiter) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ip := clientIP(ctx.RemoteAddr())
		if !l.Allow(ip) {
			l.log.Warn("rate limit exceeded", "ip", ip, "path", ctx.URL().Path)
			ctx.SetHeader("Retry-After", "1")
			if err := middleware.WriteError(ctx, http.StatusTooManyRequests, "Too many requests"); err != nil {
				l.log.Error("write response", "error", err)
			}
			return
		}

		next(ctx)
	}
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
