package middleware

import (
	"net"
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewRateLimiter limits anonymous write endpoints per client IP. A non-positive
// http.rateLimit.requestsPerSecond disables limiting.
func NewRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	limits := cfg.HTTP.RateLimit
	if limits.RequestsPerSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	burst := limits.Burst
	if burst <= 0 {
		burst = int(limits.RequestsPerSecond) + 1
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(limits.RequestsPerSecond),
		Burst:     burst,
		ExpiresIn: limits.ExpiresIn,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Error(c, http.StatusForbidden, "RATE_LIMIT_IDENTIFIER", "client could not be identified", nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, please retry later", nil)
		},
	})
}

// NewIPExtractor returns how c.RealIP resolves the client. Forwarding headers are
// only believed when the TCP peer is inside http.trustedProxies, so a client
// cannot choose its own rate-limit bucket.
func NewIPExtractor(cfg *config.Config) echo.IPExtractor {
	if len(cfg.HTTP.TrustedProxies) == 0 {
		return echo.ExtractIPDirect()
	}

	options := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range cfg.HTTP.TrustedProxies {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			options = append(options, echo.TrustIPRange(ipNet))
		}
	}

	return echo.ExtractIPFromXFFHeader(options...)
}
