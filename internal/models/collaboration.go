package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collaboration board states. Collaborations are never moderated by admins;
// the owner toggles them open/closed.
const (
	CollaborationOpen   = "open"
	CollaborationClosed = "closed"
)

// Request states for joining a collaboration.
const (
	RequestPending  = "pending"
	RequestAccepted = "accepted"
	RequestRejected = "rejected"
)

// Collaboration represents a "looking for teammates" posting stored in MongoDB.
type Collaboration struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Author      string             `json:"author" bson:"author"` // display name
	AuthorID    string             `json:"author_id" bson:"author_id"`
	Skills      []string           `json:"skills" bson:"skills"`
	ProjectName string             `json:"project_name,omitempty" bson:"project_name,omitempty"`
	Status      string             `json:"status" bson:"status"`
	Requests    int                `json:"requests" bson:"requests"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// CollaborationRequest represents one user asking to join a collaboration.
// ContactInfo is echoed back to the sender inside the acceptance notification.
type CollaborationRequest struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CollaborationID string             `json:"collaboration_id" bson:"collaboration_id"`
	SenderID        string             `json:"sender_id" bson:"sender_id"`
	SenderName      string             `json:"sender_name" bson:"sender_name"`
	Message         string             `json:"message" bson:"message"`
	Status          string             `json:"status" bson:"status"`
	ContactInfo     string             `json:"contact_info,omitempty" bson:"contact_info,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCollaborationRequest defines the request body for posting a
// collaboration. Skills arrives as a comma-separated string from the form.
type CreateCollaborationRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"required,min=10"`
	Skills      string `json:"skills" validate:"required"`
	ProjectName string `json:"project_name,omitempty" validate:"omitempty,max=120"`
}

// SendCollaborationRequest defines the request body for asking to join.
type SendCollaborationRequest struct {
	Message     string `json:"message" validate:"required,min=1,max=2000"`
	ContactInfo string `json:"contact_info,omitempty" validate:"omitempty,max=300"`
}
