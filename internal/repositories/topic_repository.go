package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uideverse/hub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TopicRepository defines the interface for forum topic data operations
type TopicRepository interface {
	CreateTopic(ctx context.Context, topic *models.ForumTopic) error
	GetTopicByID(ctx context.Context, id string) (*models.ForumTopic, error)
	GetTopicsByStatus(ctx context.Context, status string, skip, limit int64) ([]models.ForumTopic, error)
	UpdateTopic(ctx context.Context, id string, topic *models.ForumTopic) error
	DeleteTopic(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, from, to, reason, message string) error
	AddLike(ctx context.Context, id, uid string) (bool, error)
	RemoveLike(ctx context.Context, id, uid string) (bool, error)
	BumpRepliesCount(ctx context.Context, id string, delta int) error
}

// MongoTopicRepository implements TopicRepository for MongoDB
type MongoTopicRepository struct {
	collection *mongo.Collection
}

// NewMongoTopicRepository creates a new MongoTopicRepository
func NewMongoTopicRepository(db *mongo.Database) *MongoTopicRepository {
	return &MongoTopicRepository{collection: db.Collection("forum_topics")}
}

// CreateTopic creates a new forum topic in MongoDB with status pending
func (r *MongoTopicRepository) CreateTopic(ctx context.Context, topic *models.ForumTopic) error {
	topic.ID = primitive.NewObjectID()
	topic.Status = models.StatusPending
	topic.CreatedAt = time.Now()
	if topic.LikedBy == nil {
		topic.LikedBy = []string{}
	}
	_, err := r.collection.InsertOne(ctx, topic)
	return err
}

// GetTopicByID retrieves a forum topic by ID from MongoDB
func (r *MongoTopicRepository) GetTopicByID(ctx context.Context, id string) (*models.ForumTopic, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid topic ID format: %w", err)
	}

	var topic models.ForumTopic
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&topic)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &topic, nil
}

// GetTopicsByStatus retrieves topics in the given moderation state, most
// recently active first
func (r *MongoTopicRepository) GetTopicsByStatus(ctx context.Context, status string, skip, limit int64) ([]models.ForumTopic, error) {
	var topics []models.ForumTopic
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).
		SetSort(bson.D{{Key: "last_reply_at", Value: -1}, {Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, statusFilter(status), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// UpdateTopic updates a topic's editable fields and stamps the edit
func (r *MongoTopicRepository) UpdateTopic(ctx context.Context, id string, topic *models.ForumTopic) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid topic ID format: %w", err)
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":     topic.Title,
			"content":   topic.Content,
			"tag":       topic.Tag,
			"is_edited": true,
			"edited_at": now,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTopic deletes a forum topic by ID from MongoDB. The caller is
// responsible for deleting the topic's replies first.
func (r *MongoTopicRepository) DeleteTopic(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid topic ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus transitions a topic's moderation status conditionally, same
// compare-and-swap semantics as the project repository.
func (r *MongoTopicRepository) SetStatus(ctx context.Context, id, from, to, reason, message string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid topic ID format: %w", err)
	}

	filter := statusFilter(from)
	filter["_id"] = objID

	set := bson.M{"status": to}
	if to == models.StatusRejected {
		set["rejection_reason"] = reason
		set["rejection_message"] = message
	}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, getErr := r.GetTopicByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

// AddLike records uid's like atomically and reports whether it was new
func (r *MongoTopicRepository) AddLike(ctx context.Context, id, uid string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid topic ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "liked_by": bson.M{"$ne": uid}},
		bson.M{"$addToSet": bson.M{"liked_by": uid}, "$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveLike removes uid's like atomically and reports whether it existed
func (r *MongoTopicRepository) RemoveLike(ctx context.Context, id, uid string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid topic ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "liked_by": uid},
		bson.M{"$pull": bson.M{"liked_by": uid}, "$inc": bson.M{"likes": -1}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// BumpRepliesCount adjusts the top-level reply counter. A positive delta also
// stamps last_reply_at.
func (r *MongoTopicRepository) BumpRepliesCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid topic ID format: %w", err)
	}

	update := bson.M{"$inc": bson.M{"replies_count": delta}}
	if delta > 0 {
		update["$set"] = bson.M{"last_reply_at": time.Now()}
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	return err
}
