package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ForumReply represents one node of a topic's discussion tree stored in
// MongoDB. ParentID is nil for top-level replies; the parent graph must
// stay acyclic, rooted at the nil-parent replies.
type ForumReply struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	TopicID       string             `json:"topic_id" bson:"topic_id"`
	Content       string             `json:"content" bson:"content"`
	Author        string             `json:"author" bson:"author"` // display name
	AuthorID      string             `json:"author_id" bson:"author_id"`
	AuthorAvatar  string             `json:"author_avatar,omitempty" bson:"author_avatar,omitempty"`
	ParentID      *string            `json:"parent_id,omitempty" bson:"parent_id,omitempty"`
	ReplyToAuthor string             `json:"reply_to_author,omitempty" bson:"reply_to_author,omitempty"`
	Likes         int                `json:"likes" bson:"likes"`
	LikedBy       []string           `json:"liked_by" bson:"liked_by"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	IsEdited      bool               `json:"is_edited,omitempty" bson:"is_edited,omitempty"`
	EditedAt      *time.Time         `json:"edited_at,omitempty" bson:"edited_at,omitempty"`
}

// IsTopLevel reports whether the reply hangs directly off the topic.
// Only top-level replies count toward ForumTopic.RepliesCount.
func (r *ForumReply) IsTopLevel() bool {
	return r.ParentID == nil || *r.ParentID == ""
}

// CreateReplyRequest defines the request body for posting a reply.
type CreateReplyRequest struct {
	Content       string  `json:"content" validate:"required,min=1,max=5000"`
	ParentID      *string `json:"parent_id,omitempty"`
	ReplyToAuthor string  `json:"reply_to_author,omitempty"`
}

// UpdateReplyRequest defines the request body for editing a reply.
type UpdateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}
