package middleware

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/gofiber/fiber/v2"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

// AuthConfig defines the config for the bearer secret middleware
type AuthConfig struct {
	// Next defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Secret is compared against the "Authorization: Bearer <secret>" header.
	// An empty secret leaves the route open.
	Secret string

	// ErrorHandler is executed for a missing or wrong token.
	// Optional. Default: 401 {"error":"Unauthorized"}
	ErrorHandler fiber.ErrorHandler
}

// ConfigDefault is the default config
var ConfigDefault = AuthConfig{
	ErrorHandler: func(c *fiber.Ctx, err error) error {
		logger.Get().Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Err(err).
			Msg("Authentication failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	},
}

// NewAuth creates a bearer secret middleware handler
func NewAuth(config ...AuthConfig) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
		if cfg.ErrorHandler == nil {
			cfg.ErrorHandler = ConfigDefault.ErrorHandler
		}
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}
		if cfg.Secret == "" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return cfg.ErrorHandler(c, errMissingToken)
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Secret)) != 1 {
			return cfg.ErrorHandler(c, errInvalidToken)
		}

		return c.Next()
	}
}

// CronAuth guards the scheduled job endpoints.
func CronAuth(secret string) fiber.Handler {
	return NewAuth(AuthConfig{Secret: secret})
}
