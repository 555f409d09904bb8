package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge identifiers and their display names. Unlocks are upserts keyed by
// (user_id, badge_id), so re-unlocking is harmless.
const (
	BadgeFirstProject = "first-project"
	BadgeTenProjects  = "10-projects"
	BadgeEcoWarrior   = "eco-warrior"
	BadgeTenLikes     = "10-likes"
)

// BadgeNames maps badge identifiers to the Spanish display names used in
// unlock notifications.
var BadgeNames = map[string]string{
	BadgeFirstProject: "Primer Proyecto",
	BadgeTenProjects:  "10 Proyectos",
	BadgeEcoWarrior:   "Eco Guerrero",
	BadgeTenLikes:     "10 Me Gusta",
}

// Badge represents a per-user unlock document stored in MongoDB.
type Badge struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string             `json:"user_id" bson:"user_id"` // Firebase UID
	BadgeID    string             `json:"badge_id" bson:"badge_id"`
	Name       string             `json:"name" bson:"name"`
	UnlockedAt time.Time          `json:"unlocked_at" bson:"unlocked_at"`
}
