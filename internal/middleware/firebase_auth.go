package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
	"gorm.io/gorm"
)

// FirebaseAuthMiddleware verifies the Firebase ID token of every request and
// resolves it to a local user row, auto-provisioning first-time users with
// the student role. The verified UID is the only identity the service
// trusts; nothing identity-related is read from the request body.
func FirebaseAuthMiddleware(authClient *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			// Verify the ID token
			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			user, err := userRepo.GetUserByFirebaseUID(token.UID)
			if err != nil {
				if err != gorm.ErrRecordNotFound {
					return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
				}
				user, err = provisionUser(userRepo, token)
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
				}
			}

			c.Set("user", user)
			c.Set("firebaseUID", token.UID)

			return next(c)
		}
	}
}

// provisionUser creates the local row for a first-time Firebase user from
// the token claims.
func provisionUser(userRepo repositories.UserRepository, token *auth.Token) (*models.User, error) {
	email, _ := token.Claims["email"].(string)

	user := &models.User{
		FirebaseUID: token.UID,
		Email:       email,
		Role:        models.RoleStudent,
	}
	if name, ok := token.Claims["name"].(string); ok && name != "" {
		first, last, _ := strings.Cut(name, " ")
		user.FirstName = first
		user.LastName = last
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		user.PhotoURL = picture
	}

	if err := userRepo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}
