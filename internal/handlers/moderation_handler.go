package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// ModerationHandler handles the admin review queue for projects and topics
type ModerationHandler struct {
	projectRepository      repositories.ProjectRepository
	topicRepository        repositories.TopicRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(projectRepo repositories.ProjectRepository, topicRepo repositories.TopicRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *ModerationHandler {
	return &ModerationHandler{
		projectRepository:      projectRepo,
		topicRepository:        topicRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterModerationRoutes registers the admin moderation routes
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.GET("/admin/projects", h.GetPendingProjects)
	g.POST("/admin/projects/:id/approve", h.ApproveProject)
	g.POST("/admin/projects/:id/reject", h.RejectProject)
	g.GET("/admin/topics", h.GetPendingTopics)
	g.POST("/admin/topics/:id/approve", h.ApproveTopic)
	g.POST("/admin/topics/:id/reject", h.RejectTopic)
}

// GetPendingProjects lists the project review queue
func (h *ModerationHandler) GetPendingProjects(c echo.Context) error {
	page, limit := pageParams(c)
	skip := int64((page - 1) * limit)
	projects, err := h.projectRepository.GetProjectsByStatus(c.Request().Context(), models.StatusPending, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, projects)
}

// ApproveProject transitions a pending project to approved and notifies its
// author. A submission already decided by another admin yields 409.
func (h *ModerationHandler) ApproveProject(c echo.Context) error {
	projectID := c.Param("id")

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err = h.projectRepository.SetStatus(c.Request().Context(), projectID, models.StatusPending, models.StatusApproved, "", "")
	if err != nil {
		return moderationError(err)
	}

	h.notifyAuthor(c, project.AuthorID, firstAuthor(project.Authors),
		"Proyecto Aprobado",
		"Tu proyecto \""+project.Title+"\" fue aprobado y ya es visible para todos.")

	project.Status = models.StatusApproved
	return c.JSON(http.StatusOK, project)
}

// RejectProject transitions a pending project to rejected. The reason must
// come from the fixed project rejection set; nothing is written otherwise.
func (h *ModerationHandler) RejectProject(c echo.Context) error {
	projectID := c.Param("id")

	var req models.RejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !models.IsValidRejectionReason(models.ProjectRejectionReasons, req.Reason) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown rejection reason")
	}

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err = h.projectRepository.SetStatus(c.Request().Context(), projectID, models.StatusPending, models.StatusRejected, req.Reason, req.Message)
	if err != nil {
		return moderationError(err)
	}

	message := "Tu proyecto \"" + project.Title + "\" fue rechazado. Motivo: " + req.Reason + "."
	if req.Message != "" {
		message += " " + req.Message
	}
	h.notifyAuthor(c, project.AuthorID, firstAuthor(project.Authors), "Proyecto Rechazado", message)

	project.Status = models.StatusRejected
	project.RejectionReason = req.Reason
	project.RejectionMessage = req.Message
	return c.JSON(http.StatusOK, project)
}

// GetPendingTopics lists the forum topic review queue
func (h *ModerationHandler) GetPendingTopics(c echo.Context) error {
	page, limit := pageParams(c)
	skip := int64((page - 1) * limit)
	topics, err := h.topicRepository.GetTopicsByStatus(c.Request().Context(), models.StatusPending, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, topics)
}

// ApproveTopic transitions a pending topic to approved and notifies its author
func (h *ModerationHandler) ApproveTopic(c echo.Context) error {
	topicID := c.Param("id")

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err = h.topicRepository.SetStatus(c.Request().Context(), topicID, models.StatusPending, models.StatusApproved, "", "")
	if err != nil {
		return moderationError(err)
	}

	h.notifyAuthor(c, topic.AuthorID, "",
		"Tema Aprobado",
		"Tu tema \""+topic.Title+"\" fue aprobado y ya es visible en el foro.")

	topic.Status = models.StatusApproved
	return c.JSON(http.StatusOK, topic)
}

// RejectTopic transitions a pending topic to rejected against the topic
// rejection reason set
func (h *ModerationHandler) RejectTopic(c echo.Context) error {
	topicID := c.Param("id")

	var req models.RejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !models.IsValidRejectionReason(models.TopicRejectionReasons, req.Reason) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown rejection reason")
	}

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	err = h.topicRepository.SetStatus(c.Request().Context(), topicID, models.StatusPending, models.StatusRejected, req.Reason, req.Message)
	if err != nil {
		return moderationError(err)
	}

	message := "Tu tema \"" + topic.Title + "\" fue rechazado. Motivo: " + req.Reason + "."
	if req.Message != "" {
		message += " " + req.Message
	}
	h.notifyAuthor(c, topic.AuthorID, "", "Tema Rechazado", message)

	topic.Status = models.StatusRejected
	topic.RejectionReason = req.Reason
	topic.RejectionMessage = req.Message
	return c.JSON(http.StatusOK, topic)
}

// notifyAuthor sends the moderation outcome as a badge-type notification so
// the dashboard renders it with the bell icon.
func (h *ModerationHandler) notifyAuthor(c echo.Context, authorID, authorEmail, title, message string) {
	recipient := resolveRecipient(h.userRepository, authorID, authorEmail)
	notify(c.Request().Context(), h.notificationRepository, &models.Notification{
		RecipientID: recipient,
		Type:        models.NotificationTypeBadge,
		Title:       title,
		Message:     message,
	})
}

// moderationError maps repository errors from a status transition to the
// matching HTTP status.
func moderationError(err error) error {
	switch err {
	case repositories.ErrStatusConflict:
		return echo.NewHTTPError(http.StatusConflict, "Submission was already reviewed")
	case repositories.ErrNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "Submission not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func firstAuthor(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	return authors[0]
}
