package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// currentUser returns the authenticated user placed in the context by the
// Firebase auth middleware, or nil on unauthenticated routes.
func currentUser(c echo.Context) *models.User {
	user, _ := c.Get("user").(*models.User)
	return user
}

// resolveRecipient prefers the document's stored author uid and falls back
// to an email lookup for documents that predate the author_id field.
// Returns "" when no recipient resolves; callers must treat that as a
// silent no-op, not an error.
func resolveRecipient(userRepo repositories.UserRepository, authorID, authorEmail string) string {
	if authorID != "" {
		return authorID
	}
	if authorEmail == "" {
		return ""
	}
	user, err := userRepo.GetUserByEmail(authorEmail)
	if err != nil {
		return ""
	}
	return user.FirebaseUID
}

// notify writes a notification as a side effect of an already-landed write.
// Failures are logged and swallowed: the primary write is never rolled back.
// An empty recipient skips the write entirely.
func notify(ctx context.Context, repo repositories.NotificationRepository, n *models.Notification) {
	if n.RecipientID == "" {
		return
	}
	if err := repo.CreateNotification(ctx, n); err != nil {
		log.Printf("Failed to create notification for %s: %v", n.RecipientID, err)
	}
}

// pageParams parses page/limit query parameters with the platform defaults.
func pageParams(c echo.Context) (page, limit int) {
	page = atoiDefault(c.QueryParam("page"), 1)
	limit = atoiDefault(c.QueryParam("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}
	return page, limit
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
