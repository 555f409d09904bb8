package models

// Rejection reasons an admin can pick from. The sets are closed: a reject
// request whose reason is not in the matching set is refused before any
// write happens.
var (
	ProjectRejectionReasons = []string{
		"Contenido inapropiado",
		"Información incompleta",
		"Proyecto duplicado",
		"Calidad insuficiente",
		"Fuera del alcance académico",
	}

	TopicRejectionReasons = []string{
		"Contenido inapropiado",
		"Spam o autopromoción",
		"Tema duplicado",
		"Fuera de lugar",
	}
)

// IsValidRejectionReason reports whether reason belongs to the given set.
func IsValidRejectionReason(set []string, reason string) bool {
	for _, r := range set {
		if r == reason {
			return true
		}
	}
	return false
}

// RejectRequest defines the request body for rejecting a project or topic.
type RejectRequest struct {
	Reason  string `json:"reason" validate:"required"`
	Message string `json:"message,omitempty" validate:"omitempty,max=1000"`
}
