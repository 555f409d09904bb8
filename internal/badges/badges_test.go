package badges

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uideverse/hub/backend/internal/models"
)

type fakeCounter struct {
	projectCount int64
	likeSum      int
}

func (f *fakeCounter) CountByAuthorEmail(ctx context.Context, email string) (int64, error) {
	return f.projectCount, nil
}

func (f *fakeCounter) SumLikesByAuthorEmail(ctx context.Context, email string) (int, error) {
	return f.likeSum, nil
}

type fakeBadgeStore struct {
	unlocked map[string]bool // badge id -> present
}

func newFakeBadgeStore() *fakeBadgeStore {
	return &fakeBadgeStore{unlocked: make(map[string]bool)}
}

func (f *fakeBadgeStore) Unlock(ctx context.Context, userID, badgeID, name string) (bool, error) {
	if f.unlocked[badgeID] {
		return false, nil
	}
	f.unlocked[badgeID] = true
	return true, nil
}

type fakeNotifier struct {
	sent []models.Notification
}

func (f *fakeNotifier) CreateNotification(ctx context.Context, n *models.Notification) error {
	f.sent = append(f.sent, *n)
	return nil
}

func newTestService(counter *fakeCounter) (*Service, *fakeBadgeStore, *fakeNotifier) {
	store := newFakeBadgeStore()
	notifier := &fakeNotifier{}
	return NewService(counter, store, notifier), store, notifier
}

func TestOnProjectSubmitted_FirstProject(t *testing.T) {
	svc, store, notifier := newTestService(&fakeCounter{projectCount: 1})

	err := svc.OnProjectSubmitted(context.Background(), "uid-1", "ana@uni.edu", false)
	require.NoError(t, err)

	assert.True(t, store.unlocked[models.BadgeFirstProject])
	assert.False(t, store.unlocked[models.BadgeTenProjects])
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, models.NotificationTypeBadge, notifier.sent[0].Type)
	assert.Equal(t, "uid-1", notifier.sent[0].RecipientID)
}

func TestOnProjectSubmitted_TenProjects(t *testing.T) {
	svc, store, _ := newTestService(&fakeCounter{projectCount: 12})

	err := svc.OnProjectSubmitted(context.Background(), "uid-1", "ana@uni.edu", false)
	require.NoError(t, err)

	assert.False(t, store.unlocked[models.BadgeFirstProject], "first-project only unlocks at exactly one")
	assert.True(t, store.unlocked[models.BadgeTenProjects])
}

func TestOnProjectSubmitted_EcoWarrior(t *testing.T) {
	svc, store, _ := newTestService(&fakeCounter{projectCount: 3})

	err := svc.OnProjectSubmitted(context.Background(), "uid-1", "ana@uni.edu", true)
	require.NoError(t, err)

	assert.True(t, store.unlocked[models.BadgeEcoWarrior])
}

func TestOnProjectLiked_BelowThreshold(t *testing.T) {
	svc, store, notifier := newTestService(&fakeCounter{likeSum: 9})

	err := svc.OnProjectLiked(context.Background(), "uid-1", "ana@uni.edu")
	require.NoError(t, err)

	assert.False(t, store.unlocked[models.BadgeTenLikes])
	assert.Empty(t, notifier.sent)
}

func TestOnProjectLiked_ThresholdReached(t *testing.T) {
	svc, store, notifier := newTestService(&fakeCounter{likeSum: 10})

	err := svc.OnProjectLiked(context.Background(), "uid-1", "ana@uni.edu")
	require.NoError(t, err)

	assert.True(t, store.unlocked[models.BadgeTenLikes])
	require.Len(t, notifier.sent, 1)
}

func TestUnlock_RepeatDoesNotRenotify(t *testing.T) {
	svc, _, notifier := newTestService(&fakeCounter{likeSum: 15})

	require.NoError(t, svc.OnProjectLiked(context.Background(), "uid-1", "ana@uni.edu"))
	require.NoError(t, svc.OnProjectLiked(context.Background(), "uid-1", "ana@uni.edu"))

	assert.Len(t, notifier.sent, 1, "re-unlocking must not re-notify")
}
