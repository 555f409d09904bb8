// Package badges recomputes the badge-unlock thresholds from the project
// collection whenever a qualifying event happens. Counts are queried fresh
// on every check, never maintained incrementally.
package badges

import (
	"context"
	"fmt"

	"github.com/uideverse/hub/backend/internal/models"
)

// ProjectCounter is the slice of the project repository the rules need.
type ProjectCounter interface {
	CountByAuthorEmail(ctx context.Context, email string) (int64, error)
	SumLikesByAuthorEmail(ctx context.Context, email string) (int, error)
}

// BadgeStore persists unlocks. Unlock reports whether the badge was new.
type BadgeStore interface {
	Unlock(ctx context.Context, userID, badgeID, name string) (bool, error)
}

// Notifier delivers the unlock notification.
type Notifier interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// Service evaluates badge rules for submission and like events.
type Service struct {
	projects      ProjectCounter
	badges        BadgeStore
	notifications Notifier
}

// NewService creates a new badge Service
func NewService(projects ProjectCounter, badges BadgeStore, notifications Notifier) *Service {
	return &Service{projects: projects, badges: badges, notifications: notifications}
}

// OnProjectSubmitted checks the submission-time thresholds: first project,
// ten projects, and the eco flag.
func (s *Service) OnProjectSubmitted(ctx context.Context, userID, email string, isEcological bool) error {
	count, err := s.projects.CountByAuthorEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("counting projects for %s: %w", email, err)
	}

	if count == 1 {
		if err := s.unlock(ctx, userID, models.BadgeFirstProject); err != nil {
			return err
		}
	}
	if count >= 10 {
		if err := s.unlock(ctx, userID, models.BadgeTenProjects); err != nil {
			return err
		}
	}
	if isEcological {
		if err := s.unlock(ctx, userID, models.BadgeEcoWarrior); err != nil {
			return err
		}
	}
	return nil
}

// OnProjectLiked checks the like-sum threshold for the liked project's author.
func (s *Service) OnProjectLiked(ctx context.Context, authorID, authorEmail string) error {
	total, err := s.projects.SumLikesByAuthorEmail(ctx, authorEmail)
	if err != nil {
		return fmt.Errorf("summing likes for %s: %w", authorEmail, err)
	}
	if total >= 10 {
		return s.unlock(ctx, authorID, models.BadgeTenLikes)
	}
	return nil
}

// unlock upserts the badge and notifies the user on the first unlock only.
func (s *Service) unlock(ctx context.Context, userID, badgeID string) error {
	name := models.BadgeNames[badgeID]
	newlyUnlocked, err := s.badges.Unlock(ctx, userID, badgeID, name)
	if err != nil {
		return fmt.Errorf("unlocking badge %s: %w", badgeID, err)
	}
	if !newlyUnlocked {
		return nil
	}
	return s.notifications.CreateNotification(ctx, &models.Notification{
		RecipientID: userID,
		Type:        models.NotificationTypeBadge,
		Title:       "¡Nueva insignia desbloqueada!",
		Message:     fmt.Sprintf("Has desbloqueado la insignia \"%s\".", name),
	})
}
