package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"tuberank/internal/db"
	"tuberank/internal/models"
)

// ProjectHandler manages user-scoped keyword research projects.
type ProjectHandler struct {
	db *db.DB
}

// NewProjectHandler creates a project handler.
func NewProjectHandler(database *db.DB) *ProjectHandler {
	return &ProjectHandler{db: database}
}

func userID(c fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}

// Create creates a new project for the calling user.
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		return jsonError(c, fiber.StatusBadRequest, "title is required")
	}

	project := &models.Project{
		UserID: userID(c),
		Title:  body.Title,
	}
	if err := h.db.CreateProject(c.Context(), project); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create project")
	}

	return jsonCreated(c, project)
}

// List returns the calling user's projects.
func (h *ProjectHandler) List(c fiber.Ctx) error {
	projects, err := h.db.GetProjectsByUser(c.Context(), userID(c))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch projects")
	}
	return jsonSuccess(c, projects)
}

// Get returns one project with its saved keywords. Projects are scoped
// to their owner; other users get 404.
func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.db.GetProject(c.Context(), id, userID(c))
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}

	keywords, err := h.db.GetProjectKeywords(c.Context(), project.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch project keywords")
	}

	return jsonSuccess(c, fiber.Map{
		"project":  project,
		"keywords": keywords,
	})
}

// AddKeyword saves a scored keyword into a project.
func (h *ProjectHandler) AddKeyword(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var body struct {
		Keyword     string `json:"keyword"`
		Competition *int   `json:"competition"`
		Demand      *int   `json:"demand"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	body.Keyword = strings.TrimSpace(body.Keyword)
	if body.Keyword == "" || body.Competition == nil || body.Demand == nil {
		return jsonError(c, fiber.StatusBadRequest, "keyword, competition, and demand are required")
	}
	if *body.Competition < 0 || *body.Competition > 100 {
		return jsonError(c, fiber.StatusBadRequest, "competition must be between 0 and 100")
	}
	if *body.Demand < 0 {
		return jsonError(c, fiber.StatusBadRequest, "demand must be a non-negative number")
	}

	project, err := h.db.GetProject(c.Context(), id, userID(c))
	if err != nil {
		if errors.Is(err, db.ErrProjectNotFound) {
			return jsonError(c, fiber.StatusNotFound, "project not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch project")
	}

	keyword := &models.ProjectKeyword{
		ProjectID:   project.ID,
		Keyword:     body.Keyword,
		Competition: *body.Competition,
		Demand:      *body.Demand,
	}
	if err := h.db.AddProjectKeyword(c.Context(), keyword); err != nil {
		if errors.Is(err, db.ErrDuplicateProjectKeyword) {
			return jsonError(c, fiber.StatusConflict, "this keyword already exists in the project")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to add keyword")
	}

	return jsonCreated(c, keyword)
}
