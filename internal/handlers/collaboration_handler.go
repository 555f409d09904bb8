package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// CollaborationHandler handles HTTP requests for the collaboration board
type CollaborationHandler struct {
	collaborationRepository repositories.CollaborationRepository
	notificationRepository  repositories.NotificationRepository
}

// NewCollaborationHandler creates a new CollaborationHandler
func NewCollaborationHandler(collabRepo repositories.CollaborationRepository, notifRepo repositories.NotificationRepository) *CollaborationHandler {
	return &CollaborationHandler{
		collaborationRepository: collabRepo,
		notificationRepository:  notifRepo,
	}
}

// RegisterCollaborationRoutes registers collaboration board routes
func (h *CollaborationHandler) RegisterCollaborationRoutes(g *echo.Group) {
	g.POST("/collaborations", h.CreateCollaboration)
	g.GET("/collaborations", h.GetCollaborations)
	g.GET("/collaborations/:id", h.GetCollaboration)
	g.POST("/collaborations/:id/close", h.CloseCollaboration)
	g.POST("/collaborations/:id/reopen", h.ReopenCollaboration)
	g.DELETE("/collaborations/:id", h.DeleteCollaboration)
	g.POST("/collaborations/:id/requests", h.SendRequest)
	g.GET("/collaborations/:id/requests", h.GetRequests)
	g.POST("/collaborations/requests/:request_id/accept", h.AcceptRequest)
	g.POST("/collaborations/requests/:request_id/reject", h.RejectRequest)
}

// CreateCollaboration posts a teammate search. Unlike projects and topics,
// collaborations go live immediately, no moderation queue.
func (h *CollaborationHandler) CreateCollaboration(c echo.Context) error {
	user := currentUser(c)
	if !user.CanSubmit() {
		return echo.NewHTTPError(http.StatusForbidden, "Viewers cannot post collaborations")
	}

	var req models.CreateCollaborationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	collab := &models.Collaboration{
		Title:       req.Title,
		Description: req.Description,
		Author:      user.DisplayName(),
		AuthorID:    user.FirebaseUID,
		Skills:      models.SplitTechnologies(req.Skills),
		ProjectName: req.ProjectName,
	}

	if err := h.collaborationRepository.CreateCollaboration(c.Request().Context(), collab); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, collab)
}

// GetCollaborations lists collaborations, open ones by default. ?status=all
// returns every posting.
func (h *CollaborationHandler) GetCollaborations(c echo.Context) error {
	status := models.CollaborationOpen
	switch c.QueryParam("status") {
	case "all":
		status = ""
	case models.CollaborationClosed:
		status = models.CollaborationClosed
	}

	page, limit := pageParams(c)
	skip := int64((page - 1) * limit)
	collabs, err := h.collaborationRepository.GetCollaborations(c.Request().Context(), status, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, collabs)
}

// GetCollaboration retrieves one collaboration
func (h *CollaborationHandler) GetCollaboration(c echo.Context) error {
	collab, err := h.collaborationRepository.GetCollaborationByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Collaboration not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, collab)
}

// CloseCollaboration marks a collaboration closed. Owner only.
func (h *CollaborationHandler) CloseCollaboration(c echo.Context) error {
	return h.setStatus(c, models.CollaborationClosed)
}

// ReopenCollaboration marks a collaboration open again. Owner only.
func (h *CollaborationHandler) ReopenCollaboration(c echo.Context) error {
	return h.setStatus(c, models.CollaborationOpen)
}

func (h *CollaborationHandler) setStatus(c echo.Context, status string) error {
	user := currentUser(c)
	collabID := c.Param("id")

	collab, err := h.collaborationRepository.GetCollaborationByID(c.Request().Context(), collabID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Collaboration not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if collab.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to change this collaboration")
	}

	if err := h.collaborationRepository.SetCollaborationStatus(c.Request().Context(), collabID, status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	collab.Status = status
	return c.JSON(http.StatusOK, collab)
}

// DeleteCollaboration deletes a collaboration and its join requests. Owner
// or admin.
func (h *CollaborationHandler) DeleteCollaboration(c echo.Context) error {
	user := currentUser(c)
	collabID := c.Param("id")

	collab, err := h.collaborationRepository.GetCollaborationByID(c.Request().Context(), collabID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Collaboration not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if collab.AuthorID != user.FirebaseUID && !user.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this collaboration")
	}

	if err := h.collaborationRepository.DeleteCollaboration(c.Request().Context(), collabID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// SendRequest asks to join a collaboration and notifies the owner. Only open
// collaborations accept requests; owners cannot request their own posting.
func (h *CollaborationHandler) SendRequest(c echo.Context) error {
	user := currentUser(c)
	collabID := c.Param("id")

	var req models.SendCollaborationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	collab, err := h.collaborationRepository.GetCollaborationByID(c.Request().Context(), collabID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Collaboration not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if collab.Status != models.CollaborationOpen {
		return echo.NewHTTPError(http.StatusConflict, "Collaboration is closed")
	}
	if collab.AuthorID == user.FirebaseUID {
		return echo.NewHTTPError(http.StatusBadRequest, "You cannot request to join your own collaboration")
	}

	request := &models.CollaborationRequest{
		CollaborationID: collabID,
		SenderID:        user.FirebaseUID,
		SenderName:      user.DisplayName(),
		Message:         req.Message,
		ContactInfo:     req.ContactInfo,
	}

	if err := h.collaborationRepository.CreateRequest(c.Request().Context(), request); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notify(c.Request().Context(), h.notificationRepository, &models.Notification{
		RecipientID:     collab.AuthorID,
		Type:            models.NotificationTypeCollaboration,
		Title:           "Nueva solicitud de colaboración",
		Message:         user.DisplayName() + " quiere unirse a \"" + collab.Title + "\".",
		CollaborationID: collabID,
	})

	return c.JSON(http.StatusCreated, request)
}

// GetRequests lists a collaboration's join requests. Owner only.
func (h *CollaborationHandler) GetRequests(c echo.Context) error {
	user := currentUser(c)
	collabID := c.Param("id")

	collab, err := h.collaborationRepository.GetCollaborationByID(c.Request().Context(), collabID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Collaboration not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if collab.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the owner can view join requests")
	}

	requests, err := h.collaborationRepository.GetRequestsByCollaborationID(c.Request().Context(), collabID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, requests)
}

// AcceptRequest accepts a pending join request and notifies the sender,
// echoing the owner's reply with the collaboration name.
func (h *CollaborationHandler) AcceptRequest(c echo.Context) error {
	return h.decideRequest(c, models.RequestAccepted)
}

// RejectRequest rejects a pending join request and notifies the sender
func (h *CollaborationHandler) RejectRequest(c echo.Context) error {
	return h.decideRequest(c, models.RequestRejected)
}

func (h *CollaborationHandler) decideRequest(c echo.Context, status string) error {
	user := currentUser(c)
	requestID := c.Param("request_id")

	request, err := h.collaborationRepository.GetRequestByID(c.Request().Context(), requestID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Request not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	collab, err := h.collaborationRepository.GetCollaborationByID(c.Request().Context(), request.CollaborationID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Collaboration not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if collab.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the owner can decide join requests")
	}
	if request.Status != models.RequestPending {
		return echo.NewHTTPError(http.StatusConflict, "Request was already decided")
	}

	if err := h.collaborationRepository.SetRequestStatus(c.Request().Context(), requestID, status); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	title := "Solicitud aceptada"
	message := "Tu solicitud para unirte a \"" + collab.Title + "\" fue aceptada."
	if status == models.RequestAccepted && request.ContactInfo != "" {
		message += " Contacto: " + request.ContactInfo
	}
	if status == models.RequestRejected {
		title = "Solicitud rechazada"
		message = "Tu solicitud para unirte a \"" + collab.Title + "\" fue rechazada."
	}
	notify(c.Request().Context(), h.notificationRepository, &models.Notification{
		RecipientID:     request.SenderID,
		Type:            models.NotificationTypeCollaboration,
		Title:           title,
		Message:         message,
		CollaborationID: request.CollaborationID,
	})

	request.Status = status
	return c.JSON(http.StatusOK, request)
}
