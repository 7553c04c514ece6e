package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/piresc/toolshare/internal/pkg/models"
	"github.com/piresc/toolshare/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"

	ServiceRental = "rental-service"
	ServiceAdmin  = "admin-service"
)

// ServiceKeys maps calling service names to their configured API keys
func ServiceKeys(cfg models.APIKeyConfig) map[string]string {
	return map[string]string{
		ServiceRental: cfg.RentalService,
		ServiceAdmin:  cfg.AdminService,
	}
}

// ValidateAPIKey admits requests carrying the key of one of allowedServices
// and records the caller under "service".
func ValidateAPIKey(keys map[string]string, allowedServices ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.UnauthorizedResponse(c, "API key is required")
			}

			for _, service := range allowedServices {
				expected := keys[service]
				if expected != "" && subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) == 1 {
					c.Set("service", service)
					return next(c)
				}
			}

			return utils.UnauthorizedResponse(c, "Invalid API key")
		}
	}
}
