package repositories

import (
	"context"
	"time"

	"github.com/uideverse/hub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BadgeRepository defines the interface for badge unlock operations
type BadgeRepository interface {
	Unlock(ctx context.Context, userID, badgeID, name string) (bool, error)
	GetBadgesByUserID(ctx context.Context, userID string) ([]models.Badge, error)
}

// MongoBadgeRepository implements BadgeRepository for MongoDB
type MongoBadgeRepository struct {
	collection *mongo.Collection
}

// NewMongoBadgeRepository creates a new MongoBadgeRepository
func NewMongoBadgeRepository(db *mongo.Database) *MongoBadgeRepository {
	return &MongoBadgeRepository{collection: db.Collection("badges")}
}

// Unlock upserts the (userID, badgeID) badge document and reports whether it
// was newly created. Re-unlocking is harmless and reports false, so the
// caller only notifies on the first unlock.
func (r *MongoBadgeRepository) Unlock(ctx context.Context, userID, badgeID, name string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "badge_id": badgeID},
		bson.M{"$setOnInsert": bson.M{
			"user_id":     userID,
			"badge_id":    badgeID,
			"name":        name,
			"unlocked_at": time.Now(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// GetBadgesByUserID lists a user's unlocked badges
func (r *MongoBadgeRepository) GetBadgesByUserID(ctx context.Context, userID string) ([]models.Badge, error) {
	var badges []models.Badge
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}
