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

// CollaborationRepository defines the interface for collaboration board data
// operations, including join requests
type CollaborationRepository interface {
	CreateCollaboration(ctx context.Context, collab *models.Collaboration) error
	GetCollaborationByID(ctx context.Context, id string) (*models.Collaboration, error)
	GetCollaborations(ctx context.Context, status string, skip, limit int64) ([]models.Collaboration, error)
	SetCollaborationStatus(ctx context.Context, id, status string) error
	DeleteCollaboration(ctx context.Context, id string) error

	CreateRequest(ctx context.Context, req *models.CollaborationRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.CollaborationRequest, error)
	GetRequestsByCollaborationID(ctx context.Context, collaborationID string) ([]models.CollaborationRequest, error)
	SetRequestStatus(ctx context.Context, id, status string) error
}

// MongoCollaborationRepository implements CollaborationRepository for MongoDB
type MongoCollaborationRepository struct {
	collabs  *mongo.Collection
	requests *mongo.Collection
}

// NewMongoCollaborationRepository creates a new MongoCollaborationRepository
func NewMongoCollaborationRepository(db *mongo.Database) *MongoCollaborationRepository {
	return &MongoCollaborationRepository{
		collabs:  db.Collection("collaborations"),
		requests: db.Collection("collaboration_requests"),
	}
}

// CreateCollaboration creates a new open collaboration in MongoDB
func (r *MongoCollaborationRepository) CreateCollaboration(ctx context.Context, collab *models.Collaboration) error {
	collab.ID = primitive.NewObjectID()
	collab.Status = models.CollaborationOpen
	collab.CreatedAt = time.Now()
	_, err := r.collabs.InsertOne(ctx, collab)
	return err
}

// GetCollaborationByID retrieves a collaboration by ID from MongoDB
func (r *MongoCollaborationRepository) GetCollaborationByID(ctx context.Context, id string) (*models.Collaboration, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid collaboration ID format: %w", err)
	}

	var collab models.Collaboration
	err = r.collabs.FindOne(ctx, bson.M{"_id": objID}).Decode(&collab)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &collab, nil
}

// GetCollaborations retrieves collaborations, optionally filtered by status,
// newest first
func (r *MongoCollaborationRepository) GetCollaborations(ctx context.Context, status string, skip, limit int64) ([]models.Collaboration, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	var collabs []models.Collaboration
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collabs.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &collabs); err != nil {
		return nil, err
	}
	return collabs, nil
}

// SetCollaborationStatus toggles a collaboration between open and closed
func (r *MongoCollaborationRepository) SetCollaborationStatus(ctx context.Context, id, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid collaboration ID format: %w", err)
	}

	res, err := r.collabs.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCollaboration deletes a collaboration and its join requests
func (r *MongoCollaborationRepository) DeleteCollaboration(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid collaboration ID format: %w", err)
	}

	res, err := r.collabs.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	_, err = r.requests.DeleteMany(ctx, bson.M{"collaboration_id": id})
	return err
}

// CreateRequest records a join request and bumps the collaboration's
// request counter atomically
func (r *MongoCollaborationRepository) CreateRequest(ctx context.Context, req *models.CollaborationRequest) error {
	req.ID = primitive.NewObjectID()
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()
	if _, err := r.requests.InsertOne(ctx, req); err != nil {
		return err
	}

	objID, err := primitive.ObjectIDFromHex(req.CollaborationID)
	if err != nil {
		return fmt.Errorf("invalid collaboration ID format: %w", err)
	}
	_, err = r.collabs.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"requests": 1}})
	return err
}

// GetRequestByID retrieves a join request by ID from MongoDB
func (r *MongoCollaborationRepository) GetRequestByID(ctx context.Context, id string) (*models.CollaborationRequest, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request ID format: %w", err)
	}

	var req models.CollaborationRequest
	err = r.requests.FindOne(ctx, bson.M{"_id": objID}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetRequestsByCollaborationID lists a collaboration's join requests, oldest first
func (r *MongoCollaborationRepository) GetRequestsByCollaborationID(ctx context.Context, collaborationID string) ([]models.CollaborationRequest, error) {
	var reqs []models.CollaborationRequest
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.requests.Find(ctx, bson.M{"collaboration_id": collaborationID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SetRequestStatus marks a join request accepted or rejected
func (r *MongoCollaborationRepository) SetRequestStatus(ctx context.Context, id, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid request ID format: %w", err)
	}

	res, err := r.requests.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
