package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/replytree"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// ReplyHandler handles HTTP requests for forum replies
type ReplyHandler struct {
	replyRepository        repositories.ReplyRepository
	topicRepository        repositories.TopicRepository
	notificationRepository repositories.NotificationRepository
}

// NewReplyHandler creates a new ReplyHandler
func NewReplyHandler(replyRepo repositories.ReplyRepository, topicRepo repositories.TopicRepository, notifRepo repositories.NotificationRepository) *ReplyHandler {
	return &ReplyHandler{
		replyRepository:        replyRepo,
		topicRepository:        topicRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterReplyRoutes registers reply routes
func (h *ReplyHandler) RegisterReplyRoutes(g *echo.Group) {
	g.POST("/forum/topics/:topic_id/replies", h.CreateReply)
	g.GET("/forum/topics/:topic_id/replies", h.GetReplies)
	g.PUT("/forum/replies/:id", h.UpdateReply)
	g.DELETE("/forum/replies/:id", h.DeleteReply)
	g.POST("/forum/replies/:id/like", h.LikeReply)
	g.DELETE("/forum/replies/:id/like", h.UnlikeReply)
}

// CreateReply posts a reply on an approved topic. A parent id, when given,
// must name an existing reply of the same topic. Only top-level replies bump
// the topic's reply counter.
func (h *ReplyHandler) CreateReply(c echo.Context) error {
	user := currentUser(c)
	topicID := c.Param("topic_id")

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if topic.EffectiveStatus() != models.StatusApproved {
		return echo.NewHTTPError(http.StatusForbidden, "Topic is not open for replies")
	}

	var parent *models.ForumReply
	if req.ParentID != nil && *req.ParentID != "" {
		parent, err = h.replyRepository.GetReplyByID(c.Request().Context(), *req.ParentID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return echo.NewHTTPError(http.StatusBadRequest, "Parent reply not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if parent.TopicID != topicID {
			return echo.NewHTTPError(http.StatusBadRequest, "Parent reply belongs to another topic")
		}
	}

	reply := &models.ForumReply{
		TopicID:       topicID,
		Content:       req.Content,
		Author:        user.DisplayName(),
		AuthorID:      user.FirebaseUID,
		AuthorAvatar:  user.PhotoURL,
		ParentID:      req.ParentID,
		ReplyToAuthor: req.ReplyToAuthor,
	}
	if parent != nil && reply.ReplyToAuthor == "" {
		reply.ReplyToAuthor = parent.Author
	}

	if err := h.replyRepository.CreateReply(c.Request().Context(), reply); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if reply.IsTopLevel() {
		if err := h.topicRepository.BumpRepliesCount(c.Request().Context(), topicID, 1); err != nil {
			log.Printf("Bumping replies count for topic %s failed: %v", topicID, err)
		}
	}

	// Nested replies notify the parent's author, top-level ones the topic's.
	recipient := topic.AuthorID
	if parent != nil {
		recipient = parent.AuthorID
	}
	if recipient != user.FirebaseUID {
		notify(c.Request().Context(), h.notificationRepository, &models.Notification{
			RecipientID: recipient,
			Type:        models.NotificationTypeComment,
			Title:       "Nueva respuesta",
			Message:     user.DisplayName() + " respondió en \"" + topic.Title + "\".",
			TopicID:     topicID,
		})
	}

	return c.JSON(http.StatusCreated, reply)
}

// GetReplies returns a topic's replies: the flat list, oldest first, plus
// the materialized discussion tree
func (h *ReplyHandler) GetReplies(c echo.Context) error {
	topicID := c.Param("topic_id")

	if _, err := h.topicRepository.GetTopicByID(c.Request().Context(), topicID); err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Topic not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	replies, err := h.replyRepository.GetRepliesByTopicID(c.Request().Context(), topicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if replies == nil {
		replies = []models.ForumReply{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"replies": replies,
		"tree":    replytree.Build(replies).Nested(),
	})
}

// UpdateReply edits a reply's content. Author only.
func (h *ReplyHandler) UpdateReply(c echo.Context) error {
	user := currentUser(c)
	replyID := c.Param("id")

	var req models.UpdateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reply, err := h.replyRepository.GetReplyByID(c.Request().Context(), replyID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if reply.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this reply")
	}

	if err := h.replyRepository.UpdateReply(c.Request().Context(), replyID, req.Content); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	now := time.Now()
	reply.Content = req.Content
	reply.IsEdited = true
	reply.EditedAt = &now
	return c.JSON(http.StatusOK, reply)
}

// DeleteReply deletes a reply and its whole subtree, children first. Allowed
// to the reply's author and the topic's author. Deleting a top-level reply
// decrements the topic's reply counter by one; nested descendants never
// counted toward it.
func (h *ReplyHandler) DeleteReply(c echo.Context) error {
	user := currentUser(c)
	replyID := c.Param("id")

	reply, err := h.replyRepository.GetReplyByID(c.Request().Context(), replyID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	topic, err := h.topicRepository.GetTopicByID(c.Request().Context(), reply.TopicID)
	if err != nil && err != repositories.ErrNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	allowed := reply.AuthorID == user.FirebaseUID || user.IsAdmin()
	if !allowed && topic != nil && topic.AuthorID == user.FirebaseUID {
		allowed = true
	}
	if !allowed {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this reply")
	}

	replies, err := h.replyRepository.GetRepliesByTopicID(c.Request().Context(), reply.TopicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	order := replytree.Build(replies).DeletionOrder(replyID)
	if err := h.replyRepository.DeleteReplies(c.Request().Context(), order); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if reply.IsTopLevel() && topic != nil {
		if err := h.topicRepository.BumpRepliesCount(c.Request().Context(), reply.TopicID, -1); err != nil {
			log.Printf("Bumping replies count for topic %s failed: %v", reply.TopicID, err)
		}
	}

	return c.NoContent(http.StatusNoContent)
}

// LikeReply records the caller's like with toggle semantics
func (h *ReplyHandler) LikeReply(c echo.Context) error {
	user := currentUser(c)
	replyID := c.Param("id")

	reply, err := h.replyRepository.GetReplyByID(c.Request().Context(), replyID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, err := h.replyRepository.AddLike(c.Request().Context(), replyID, user.FirebaseUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if added && reply.AuthorID != user.FirebaseUID {
		notify(c.Request().Context(), h.notificationRepository, &models.Notification{
			RecipientID: reply.AuthorID,
			Type:        models.NotificationTypeLike,
			Title:       "Nuevo me gusta",
			Message:     user.DisplayName() + " le dio me gusta a tu respuesta.",
			TopicID:     reply.TopicID,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"reply_id": replyID, "liked": true})
}

// UnlikeReply removes the caller's like. Removing an absent like is a no-op.
func (h *ReplyHandler) UnlikeReply(c echo.Context) error {
	user := currentUser(c)
	replyID := c.Param("id")

	if _, err := h.replyRepository.RemoveLike(c.Request().Context(), replyID, user.FirebaseUID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"reply_id": replyID, "liked": false})
}
