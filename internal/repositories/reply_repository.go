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

// ReplyRepository defines the interface for forum reply data operations
type ReplyRepository interface {
	CreateReply(ctx context.Context, reply *models.ForumReply) error
	GetReplyByID(ctx context.Context, id string) (*models.ForumReply, error)
	GetRepliesByTopicID(ctx context.Context, topicID string) ([]models.ForumReply, error)
	UpdateReply(ctx context.Context, id, content string) error
	DeleteReplies(ctx context.Context, ids []string) error
	DeleteRepliesByTopicID(ctx context.Context, topicID string) error
	AddLike(ctx context.Context, id, uid string) (bool, error)
	RemoveLike(ctx context.Context, id, uid string) (bool, error)
}

// MongoReplyRepository implements ReplyRepository for MongoDB
type MongoReplyRepository struct {
	collection *mongo.Collection
}

// NewMongoReplyRepository creates a new MongoReplyRepository
func NewMongoReplyRepository(db *mongo.Database) *MongoReplyRepository {
	return &MongoReplyRepository{collection: db.Collection("forum_replies")}
}

// CreateReply creates a new reply in MongoDB
func (r *MongoReplyRepository) CreateReply(ctx context.Context, reply *models.ForumReply) error {
	reply.ID = primitive.NewObjectID()
	reply.CreatedAt = time.Now()
	if reply.LikedBy == nil {
		reply.LikedBy = []string{}
	}
	_, err := r.collection.InsertOne(ctx, reply)
	return err
}

// GetReplyByID retrieves a reply by ID from MongoDB
func (r *MongoReplyRepository) GetReplyByID(ctx context.Context, id string) (*models.ForumReply, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reply ID format: %w", err)
	}

	var reply models.ForumReply
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&reply)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reply, nil
}

// GetRepliesByTopicID retrieves the full flat reply set of a topic, oldest
// first. The discussion tree is built in memory from this list.
func (r *MongoReplyRepository) GetRepliesByTopicID(ctx context.Context, topicID string) ([]models.ForumReply, error) {
	var replies []models.ForumReply
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"topic_id": topicID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &replies); err != nil {
		return nil, err
	}
	return replies, nil
}

// UpdateReply replaces a reply's content and stamps the edit
func (r *MongoReplyRepository) UpdateReply(ctx context.Context, id, content string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid reply ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"content": content, "is_edited": true, "edited_at": time.Now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteReplies deletes the given replies one by one, in the order given.
// Cascades pass ids children-first so an interrupted run never leaves a
// child pointing at a deleted parent.
func (r *MongoReplyRepository) DeleteReplies(ctx context.Context, ids []string) error {
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return fmt.Errorf("invalid reply ID format: %w", err)
		}
		if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
			return err
		}
	}
	return nil
}

// DeleteRepliesByTopicID deletes every reply of a topic in one flat scan.
// Order-independent: used by topic deletion, where the whole tree goes.
func (r *MongoReplyRepository) DeleteRepliesByTopicID(ctx context.Context, topicID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"topic_id": topicID})
	return err
}

// AddLike records uid's like atomically and reports whether it was new
func (r *MongoReplyRepository) AddLike(ctx context.Context, id, uid string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid reply ID format: %w", err)
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
func (r *MongoReplyRepository) RemoveLike(ctx context.Context, id, uid string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid reply ID format: %w", err)
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
