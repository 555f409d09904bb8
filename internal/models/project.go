package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation states shared by projects and forum topics. Documents written
// before the moderation workflow existed carry no status field at all; those
// are treated as pending.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Project represents a student project showcase entry stored in MongoDB.
type Project struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title            string             `json:"title" bson:"title"`
	Description      string             `json:"description" bson:"description"`
	Category         string             `json:"category" bson:"category"`
	OtherCategory    string             `json:"other_category,omitempty" bson:"other_category,omitempty"`
	Technologies     []string           `json:"technologies" bson:"technologies"`
	Authors          []string           `json:"authors" bson:"authors"`           // author emails, submission order
	AuthorNames      []string           `json:"author_names" bson:"author_names"` // parallel to Authors
	AuthorID         string             `json:"author_id" bson:"author_id"`       // Firebase UID of the submitter
	Status           string             `json:"status" bson:"status,omitempty"`
	RejectionReason  string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	RejectionMessage string             `json:"rejection_message,omitempty" bson:"rejection_message,omitempty"`
	ImageURLs        []string           `json:"image_urls,omitempty" bson:"image_urls,omitempty"`
	VideoURL         string             `json:"video_url,omitempty" bson:"video_url,omitempty"`
	DevelopmentPDF   string             `json:"development_pdf_url,omitempty" bson:"development_pdf_url,omitempty"`
	Likes            int                `json:"likes" bson:"likes"`
	LikedBy          []string           `json:"liked_by" bson:"liked_by"`
	Views            int                `json:"views" bson:"views"`
	IsEcological     bool               `json:"is_ecological" bson:"is_ecological"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// EffectiveStatus maps a missing status field to pending.
func (p *Project) EffectiveStatus() string {
	if p.Status == "" {
		return StatusPending
	}
	return p.Status
}

// CreateProjectRequest defines the request body for submitting a project.
// Technologies arrives as a comma-separated string, as the submission form
// sends it. Authors/AuthorNames are additional co-authors; the submitter is
// always prepended server-side.
type CreateProjectRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=120"`
	Description    string   `json:"description" validate:"required,min=10"`
	Category       string   `json:"category" validate:"required"`
	OtherCategory  string   `json:"other_category,omitempty"`
	Technologies   string   `json:"technologies" validate:"required"`
	Authors        []string `json:"authors,omitempty" validate:"omitempty,dive,email"`
	AuthorNames    []string `json:"author_names,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURL       string   `json:"video_url,omitempty" validate:"omitempty,url"`
	DevelopmentPDF string   `json:"development_pdf_url,omitempty" validate:"omitempty,url"`
	IsEcological   bool     `json:"is_ecological,omitempty"`
}

// UpdateProjectRequest defines the request body for editing a project.
// Any edit resets the project to pending for re-review.
type UpdateProjectRequest struct {
	Title          string   `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Description    string   `json:"description,omitempty" validate:"omitempty,min=10"`
	Category       string   `json:"category,omitempty"`
	OtherCategory  string   `json:"other_category,omitempty"`
	Technologies   string   `json:"technologies,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
	VideoURL       string   `json:"video_url,omitempty" validate:"omitempty,url"`
	DevelopmentPDF string   `json:"development_pdf_url,omitempty" validate:"omitempty,url"`
	IsEcological   *bool    `json:"is_ecological,omitempty"`
}

// SplitTechnologies turns the form's comma-separated technologies string
// into a trimmed list, dropping empty entries.
func SplitTechnologies(s string) []string {
	parts := strings.Split(s, ",")
	techs := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}
