package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// ForumHandler handles HTTP requests for forum topics
type ForumHandler struct {
	topicRepository        repositories.TopicRepository
	replyRepository        repositories.ReplyRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewForumHandler creates a new ForumHandler
func NewForumHandler(topicRepo repositories.TopicRepository, replyRepo repositories.ReplyRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *ForumHandler {
	return &ForumHandler{
		topicRepository:        topicRepo,
		replyRepository:        replyRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterForumRoutes registers forum topic routes
func (h *ForumHandler) RegisterForumRoutes(g *echo.Group) {
	g.POST("/forum/topics", h.CreateTopic)
	g.GET("/forum/topics", h.GetTopics)
	g.GET("/forum/topics/:id", h.GetTopic)
	g.PUT("/forum/topics/:id", h.UpdateTopic)
	g.DELETE("/forum/topics/:id", h.DeleteTopic)
	g.POST("/forum/topics/:id/like", h.LikeTopic)
	g.DELETE("/forum/topics/:id/like", h.UnlikeTopic)
}

// CreateTopic opens a new forum topic. Like projects, topics enter the
// moderation queue as pending.
func (h *ForumHandler) CreateTopic(c echo.Context) error {
	user := currentUser(c)

	var req models.CreateTopicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !models.IsValidTopicTag(req.Tag) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown topic tag")
	}

	topic := &models.ForumTopic{
		Title:        req.Title,
		Content:      req.Content,
		Tag:          req.Tag,
		Author:       user.DisplayName(),
		AuthorID:     user.FirebaseUID,
		AuthorAvatar: user.PhotoURL,
	}

	if err := h.topicRepository.CreateTopic(c.Request().Context(), topic); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, topic)
}

// GetTopics lists approved topics, most recently active first. Admins can
// request any state with ?status=.
func (h *ForumHandler) GetTopics(c echo.Context) error {
	user := currentUser(c)

	status := models.StatusApproved
	if s := c.QueryParam("status"); s != "" && user.IsAdmin() {
		status = s
	}

	page, limit := pageParams(c)
	skip := int64((page - 1) * limit)
	topics, err := h.topicRepository.GetTopicsByStatus(c.Request().Context(), status, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, topics)
}

// GetTopic retrieves one topic. Unapproved topics are only visible to their
// author and to admins.
func (h *ForumHandler) GetTopic(c echo.Context) error {
	user := currentUser(c)

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if topic.EffectiveStatus() != models.StatusApproved && topic.AuthorID != user.FirebaseUID && !user.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "Topic is not public")
	}

	return c.JSON(http.StatusOK, topic)
}

// UpdateTopic edits a topic. Author only; the edit is stamped visibly.
func (h *ForumHandler) UpdateTopic(c echo.Context) error {
	user := currentUser(c)
	topicID := c.Param("id")

	var req models.UpdateTopicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Tag != "" && !models.IsValidTopicTag(req.Tag) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown topic tag")
	}

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if topic.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this topic")
	}

	if req.Title != "" {
		topic.Title = req.Title
	}
	if req.Content != "" {
		topic.Content = req.Content
	}
	if req.Tag != "" {
		topic.Tag = req.Tag
	}

	if err := h.topicRepository.UpdateTopic(c.Request().Context(), topicID, topic); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	topic.IsEdited = true
	return c.JSON(http.StatusOK, topic)
}

// DeleteTopic deletes a topic and its whole reply tree. Author or admin.
// Replies go first; a crash between the two deletes leaves only replies
// whose topic is gone, never a topic with dangling reply counts.
func (h *ForumHandler) DeleteTopic(c echo.Context) error {
	user := currentUser(c)
	topicID := c.Param("id")

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if topic.AuthorID != user.FirebaseUID && !user.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this topic")
	}

	if err := h.replyRepository.DeleteRepliesByTopicID(c.Request().Context(), topicID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := h.topicRepository.DeleteTopic(c.Request().Context(), topicID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// LikeTopic records the caller's like with toggle semantics
func (h *ForumHandler) LikeTopic(c echo.Context) error {
	user := currentUser(c)
	topicID := c.Param("id")

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, err := h.topicRepository.AddLike(c.Request().Context(), topicID, user.FirebaseUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if added && topic.AuthorID != user.FirebaseUID {
		notify(c.Request().Context(), h.notificationRepository, &models.Notification{
			RecipientID: topic.AuthorID,
			Type:        models.NotificationTypeLike,
			Title:       "Nuevo me gusta",
			Message:     user.DisplayName() + " le dio me gusta a tu tema \"" + topic.Title + "\".",
			TopicID:     topicID,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"topic_id": topicID, "liked": true})
}

// UnlikeTopic removes the caller's like. Removing an absent like is a no-op.
func (h *ForumHandler) UnlikeTopic(c echo.Context) error {
	user := currentUser(c)
	topicID := c.Param("id")

	if _, err := h.topicRepository.RemoveLike(c.Request().Context(), topicID, user.FirebaseUID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"topic_id": topicID, "liked": false})
}
