package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tags a forum topic can carry.
var ForumTopicTags = []string{
	"general",
	"proyectos",
	"ayuda",
	"recursos",
	"eventos",
	"off-topic",
}

// IsValidTopicTag reports whether tag is one of the fixed forum tags.
func IsValidTopicTag(tag string) bool {
	for _, t := range ForumTopicTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ForumTopic represents a moderated discussion thread stored in MongoDB.
// RepliesCount tracks direct (top-level) replies only.
type ForumTopic struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title            string             `json:"title" bson:"title"`
	Content          string             `json:"content" bson:"content"`
	Tag              string             `json:"tag" bson:"tag"`
	Author           string             `json:"author" bson:"author"` // display name
	AuthorID         string             `json:"author_id" bson:"author_id"`
	AuthorAvatar     string             `json:"author_avatar,omitempty" bson:"author_avatar,omitempty"`
	Status           string             `json:"status" bson:"status,omitempty"`
	RejectionReason  string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	RejectionMessage string             `json:"rejection_message,omitempty" bson:"rejection_message,omitempty"`
	Likes            int                `json:"likes" bson:"likes"`
	LikedBy          []string           `json:"liked_by" bson:"liked_by"`
	RepliesCount     int                `json:"replies_count" bson:"replies_count"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	LastReplyAt      *time.Time         `json:"last_reply_at,omitempty" bson:"last_reply_at,omitempty"`
	IsEdited         bool               `json:"is_edited,omitempty" bson:"is_edited,omitempty"`
	EditedAt         *time.Time         `json:"edited_at,omitempty" bson:"edited_at,omitempty"`
}

// EffectiveStatus maps a missing status field to pending.
func (t *ForumTopic) EffectiveStatus() string {
	if t.Status == "" {
		return StatusPending
	}
	return t.Status
}

// CreateTopicRequest defines the request body for opening a forum topic.
type CreateTopicRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=150"`
	Content string `json:"content" validate:"required,min=10,max=10000"`
	Tag     string `json:"tag" validate:"required"`
}

// UpdateTopicRequest defines the request body for editing a topic.
type UpdateTopicRequest struct {
	Title   string `json:"title,omitempty" validate:"omitempty,min=3,max=150"`
	Content string `json:"content,omitempty" validate:"omitempty,min=10,max=10000"`
	Tag     string `json:"tag,omitempty"`
}
