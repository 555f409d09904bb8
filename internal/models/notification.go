package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types. Moderation outcomes reuse the badge type, matching the
// bell icon the dashboard renders for them.
const (
	NotificationTypeBadge         = "badge"
	NotificationTypeComment       = "comment"
	NotificationTypeLike          = "like"
	NotificationTypeCollaboration = "collaboration"
	NotificationTypeProjectInvite = "project_invite"
)

// Notification represents a per-user inbox entry stored in MongoDB.
// Created as a side effect of moderation, likes, replies and collaboration
// actions; only the read flag is ever updated afterwards.
type Notification struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RecipientID     string             `json:"recipient_id" bson:"recipient_id"` // Firebase UID
	Type            string             `json:"type" bson:"type"`
	Title           string             `json:"title" bson:"title"`
	Message         string             `json:"message" bson:"message"`
	Read            bool               `json:"read" bson:"read"`
	TopicID         string             `json:"topic_id,omitempty" bson:"topic_id,omitempty"`
	CollaborationID string             `json:"collaboration_id,omitempty" bson:"collaboration_id,omitempty"`
	Link            string             `json:"link,omitempty" bson:"link,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
}
