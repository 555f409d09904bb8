package handlers

import (
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/uideverse/hub/backend/internal/badges"
	"github.com/uideverse/hub/backend/internal/models"
	"github.com/uideverse/hub/backend/internal/repositories"
)

// ProjectHandler handles HTTP requests related to project showcase entries
type ProjectHandler struct {
	projectRepository      repositories.ProjectRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	badgeService           *badges.Service
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectRepo repositories.ProjectRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository, badgeService *badges.Service) *ProjectHandler {
	return &ProjectHandler{
		projectRepository:      projectRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		badgeService:           badgeService,
	}
}

// RegisterProjectRoutes registers project-related routes
func (h *ProjectHandler) RegisterProjectRoutes(g *echo.Group) {
	g.POST("/projects", h.CreateProject)
	g.GET("/projects", h.GetProjects)
	g.GET("/projects/:id", h.GetProject)
	g.PUT("/projects/:id", h.UpdateProject)
	g.DELETE("/projects/:id", h.DeleteProject)
	g.POST("/projects/:id/view", h.RegisterView)
	g.POST("/projects/:id/like", h.LikeProject)
	g.DELETE("/projects/:id/like", h.UnlikeProject)
}

// CreateProject submits a new project. It enters the moderation queue as
// pending; the submitter is always the first author.
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	user := currentUser(c)
	if !user.CanSubmit() {
		return echo.NewHTTPError(http.StatusForbidden, "Viewers cannot submit projects")
	}

	var req models.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Co-author lists must stay parallel.
	if len(req.AuthorNames) > 0 && len(req.AuthorNames) != len(req.Authors) {
		return echo.NewHTTPError(http.StatusBadRequest, "authors and author_names must have the same length")
	}

	authors := []string{user.Email}
	authorNames := []string{user.DisplayName()}
	for i, email := range req.Authors {
		if email == user.Email {
			continue
		}
		authors = append(authors, email)
		if len(req.AuthorNames) > 0 {
			authorNames = append(authorNames, req.AuthorNames[i])
		} else {
			authorNames = append(authorNames, "")
		}
	}

	project := &models.Project{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		OtherCategory:  req.OtherCategory,
		Technologies:   models.SplitTechnologies(req.Technologies),
		Authors:        authors,
		AuthorNames:    authorNames,
		AuthorID:       user.FirebaseUID,
		ImageURLs:      req.ImageURLs,
		VideoURL:       req.VideoURL,
		DevelopmentPDF: req.DevelopmentPDF,
		IsEcological:   req.IsEcological,
	}

	if err := h.projectRepository.CreateProject(c.Request().Context(), project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Badge thresholds are recomputed from the store; a failure here never
	// affects the submission itself.
	if err := h.badgeService.OnProjectSubmitted(c.Request().Context(), user.FirebaseUID, user.Email, project.IsEcological); err != nil {
		log.Printf("Badge check after submission failed: %v", err)
	}

	// Co-authors get an invite-style notification.
	for _, email := range authors[1:] {
		recipient := resolveRecipient(h.userRepository, "", email)
		notify(c.Request().Context(), h.notificationRepository, &models.Notification{
			RecipientID: recipient,
			Type:        models.NotificationTypeProjectInvite,
			Title:       "Te agregaron a un proyecto",
			Message:     "Has sido agregado como autor del proyecto \"" + project.Title + "\".",
		})
	}

	return c.JSON(http.StatusCreated, project)
}

// GetProjects lists approved projects, or the caller's own submissions in
// every state with ?mine=1
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	user := currentUser(c)

	if c.QueryParam("mine") == "1" {
		projects, err := h.projectRepository.GetProjectsByAuthorID(c.Request().Context(), user.FirebaseUID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, projects)
	}

	page, limit := pageParams(c)
	skip := int64((page - 1) * limit)
	projects, err := h.projectRepository.GetProjectsByStatus(c.Request().Context(), models.StatusApproved, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject retrieves one project. Unapproved projects are only visible to
// their author and to admins.
func (h *ProjectHandler) GetProject(c echo.Context) error {
	user := currentUser(c)

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if project.EffectiveStatus() != models.StatusApproved && project.AuthorID != user.FirebaseUID && !user.IsAdmin() {
		return echo.NewHTTPError(http.StatusForbidden, "Project is not public")
	}

	return c.JSON(http.StatusOK, project)
}

// UpdateProject edits a project. Author only; any edit resets the project
// to pending for re-review.
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	user := currentUser(c)
	projectID := c.Param("id")

	var req models.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if project.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to update this project")
	}

	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Category != "" {
		project.Category = req.Category
	}
	if req.OtherCategory != "" {
		project.OtherCategory = req.OtherCategory
	}
	if req.Technologies != "" {
		project.Technologies = models.SplitTechnologies(req.Technologies)
	}
	if req.ImageURLs != nil {
		project.ImageURLs = req.ImageURLs
	}
	if req.VideoURL != "" {
		project.VideoURL = req.VideoURL
	}
	if req.DevelopmentPDF != "" {
		project.DevelopmentPDF = req.DevelopmentPDF
	}
	if req.IsEcological != nil {
		project.IsEcological = *req.IsEcological
	}

	if err := h.projectRepository.UpdateProject(c.Request().Context(), projectID, project); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	project.Status = models.StatusPending
	project.RejectionReason = ""
	project.RejectionMessage = ""
	return c.JSON(http.StatusOK, project)
}

// DeleteProject deletes a project. Author only.
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	user := currentUser(c)
	projectID := c.Param("id")

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if project.AuthorID != user.FirebaseUID {
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to delete this project")
	}

	if err := h.projectRepository.DeleteProject(c.Request().Context(), projectID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}

// RegisterView bumps the project's view counter
func (h *ProjectHandler) RegisterView(c echo.Context) error {
	if err := h.projectRepository.IncrementViews(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// LikeProject records the caller's like. Toggle semantics: a repeated like
// is a no-op, never a double count.
func (h *ProjectHandler) LikeProject(c echo.Context) error {
	user := currentUser(c)
	projectID := c.Param("id")

	project, err := h.projectRepository.GetProjectByID(c.Request().Context(), projectID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Project not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	added, err := h.projectRepository.AddLike(c.Request().Context(), projectID, user.FirebaseUID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Side effects fire only on the like transition, not on repeats.
	if added {
		authorEmail := ""
		if len(project.Authors) > 0 {
			authorEmail = project.Authors[0]
		}
		recipient := resolveRecipient(h.userRepository, project.AuthorID, authorEmail)
		if recipient != user.FirebaseUID {
			notify(c.Request().Context(), h.notificationRepository, &models.Notification{
				RecipientID: recipient,
				Type:        models.NotificationTypeLike,
				Title:       "Nuevo me gusta",
				Message:     user.DisplayName() + " le dio me gusta a tu proyecto \"" + project.Title + "\".",
			})
		}
		if recipient != "" {
			if err := h.badgeService.OnProjectLiked(c.Request().Context(), recipient, authorEmail); err != nil {
				log.Printf("Badge check after like failed: %v", err)
			}
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"project_id": projectID, "liked": true})
}

// UnlikeProject removes the caller's like. Removing an absent like is a no-op.
func (h *ProjectHandler) UnlikeProject(c echo.Context) error {
	user := currentUser(c)
	projectID := c.Param("id")

	if _, err := h.projectRepository.RemoveLike(c.Request().Context(), projectID, user.FirebaseUID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"project_id": projectID, "liked": false})
}
