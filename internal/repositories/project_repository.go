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

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	CreateProject(ctx context.Context, project *models.Project) error
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	GetProjectsByStatus(ctx context.Context, status string, skip, limit int64) ([]models.Project, error)
	GetProjectsByAuthorID(ctx context.Context, authorID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id string, project *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, from, to, reason, message string) error
	AddLike(ctx context.Context, id, uid string) (bool, error)
	RemoveLike(ctx context.Context, id, uid string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	CountByAuthorEmail(ctx context.Context, email string) (int64, error)
	SumLikesByAuthorEmail(ctx context.Context, email string) (int, error)
}

// MongoProjectRepository implements ProjectRepository for MongoDB
type MongoProjectRepository struct {
	collection *mongo.Collection
}

// NewMongoProjectRepository creates a new MongoProjectRepository
func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{collection: db.Collection("projects")}
}

// statusFilter matches documents in the given moderation state. Documents
// written without a status field count as pending.
func statusFilter(status string) bson.M {
	if status == models.StatusPending {
		return bson.M{"$or": bson.A{
			bson.M{"status": models.StatusPending},
			bson.M{"status": bson.M{"$exists": false}},
			bson.M{"status": ""},
		}}
	}
	return bson.M{"status": status}
}

// CreateProject creates a new project in MongoDB with status pending
func (r *MongoProjectRepository) CreateProject(ctx context.Context, project *models.Project) error {
	project.ID = primitive.NewObjectID()
	project.Status = models.StatusPending
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	if project.LikedBy == nil {
		project.LikedBy = []string{}
	}
	_, err := r.collection.InsertOne(ctx, project)
	return err
}

// GetProjectByID retrieves a project by ID from MongoDB
func (r *MongoProjectRepository) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid project ID format: %w", err)
	}

	var project models.Project
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetProjectsByStatus retrieves projects in the given moderation state with pagination
func (r *MongoProjectRepository) GetProjectsByStatus(ctx context.Context, status string, skip, limit int64) ([]models.Project, error) {
	var projects []models.Project
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, statusFilter(status), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectsByAuthorID retrieves every project submitted by the given user,
// regardless of moderation state
func (r *MongoProjectRepository) GetProjectsByAuthorID(ctx context.Context, authorID string) ([]models.Project, error) {
	var projects []models.Project
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"author_id": authorID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateProject updates an existing project's editable fields and resets its
// status to pending, requiring re-review
func (r *MongoProjectRepository) UpdateProject(ctx context.Context, id string, project *models.Project) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid project ID format: %w", err)
	}

	project.UpdatedAt = time.Now()
	update := bson.M{
		"$set": bson.M{
			"title":               project.Title,
			"description":         project.Description,
			"category":            project.Category,
			"other_category":      project.OtherCategory,
			"technologies":        project.Technologies,
			"image_urls":          project.ImageURLs,
			"video_url":           project.VideoURL,
			"development_pdf_url": project.DevelopmentPDF,
			"is_ecological":       project.IsEcological,
			"status":              models.StatusPending,
			"updated_at":          project.UpdatedAt,
		},
		"$unset": bson.M{
			"rejection_reason":  "",
			"rejection_message": "",
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

// DeleteProject deletes a project by ID from MongoDB
func (r *MongoProjectRepository) DeleteProject(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid project ID format: %w", err)
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

// SetStatus transitions a project's moderation status conditionally: the
// write only lands while the document is still in the `from` state, so two
// admins racing on the same submission cannot both win.
func (r *MongoProjectRepository) SetStatus(ctx context.Context, id, from, to, reason, message string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid project ID format: %w", err)
	}

	filter := statusFilter(from)
	filter["_id"] = objID

	set := bson.M{"status": to, "updated_at": time.Now()}
	if to == models.StatusRejected {
		set["rejection_reason"] = reason
		set["rejection_message"] = message
	}

	res, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// Either the id is unknown or another admin got there first.
		if _, getErr := r.GetProjectByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}
	return nil
}

// AddLike records uid's like atomically ($addToSet + $inc in one write) and
// reports whether the like was new. A repeated like is a no-op.
func (r *MongoProjectRepository) AddLike(ctx context.Context, id, uid string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid project ID format: %w", err)
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

// RemoveLike removes uid's like atomically and reports whether it existed.
func (r *MongoProjectRepository) RemoveLike(ctx context.Context, id, uid string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid project ID format: %w", err)
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

// IncrementViews increments the view counter of a project
func (r *MongoProjectRepository) IncrementViews(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid project ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"views": 1}})
	return err
}

// CountByAuthorEmail counts projects whose authors list contains the email
func (r *MongoProjectRepository) CountByAuthorEmail(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"authors": email})
}

// SumLikesByAuthorEmail sums likes across every project the email co-authors.
// Queried fresh on each like, not maintained incrementally.
func (r *MongoProjectRepository) SumLikesByAuthorEmail(ctx context.Context, email string) (int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"authors": email}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$likes"}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total int `bson:"total"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
