package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/giveshare/giveshare-back/internal/db"
)

const contextUserKey = "user"

// Middleware resolves the caller from the Authorization header. Absence is a
// normal state: anonymous requests pass through with no user set, and each
// operation decides whether a caller is required.
func Middleware(client *gorm.DB, tokens *TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				return next(c)
			}
			userID, err := tokens.Parse(raw)
			if err != nil {
				return next(c)
			}
			user := db.User{}
			res := client.Where("id = ?", userID).First(&user)
			if res.Error != nil {
				return next(c)
			}
			c.Set(contextUserKey, &user)
			return next(c)
		}
	}
}

func CallerFromContext(c echo.Context) *db.User {
	user, _ := c.Get(contextUserKey).(*db.User)
	return user
}

func bearerToken(c echo.Context) string {
	for key, values := range c.Request().Header {
		if strings.ToLower(key) == "authorization" && len(values) != 0 {
			return strings.TrimSpace(strings.TrimPrefix(values[0], "Bearer"))
		}
	}
	return ""
}
