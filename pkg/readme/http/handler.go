package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/readmelens/readmelens/pkg/errors"
	"github.com/readmelens/readmelens/pkg/http/response"
	"github.com/readmelens/readmelens/pkg/logger"
	"github.com/readmelens/readmelens/pkg/readme"
	"github.com/readmelens/readmelens/pkg/readme/service"
)

const invalidURLMessage = "Invalid URL. Format: https://github.com/:owner/:repo"

type Handler struct {
	service  *service.ReadmeService
	validate *validator.Validate
	logger   *logger.Logger
}

func NewHandler(service *service.ReadmeService, logger *logger.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the readme routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/fetch-readme", response.Middleware(h.FetchReadme))
}

// FetchReadme godoc
// @Summary Fetch and render a repository README
// @Description Fetch the README of the given GitHub repository, convert it to sanitized HTML and return it
// @Tags readme
// @Accept json
// @Produce json
// @Param request body FetchReadmeRequest true "Repository URL"
// @Success 200 {object} FetchReadmeResponse
// @Failure 400 {object} response.ErrorResponse "Invalid URL"
// @Failure 404 {object} response.ErrorResponse "Repository or README not found"
// @Failure 429 {object} response.ErrorResponse "GitHub API rate limit exceeded"
// @Failure 500 {object} response.ErrorResponse "Internal server error"
// @Router /fetch-readme [post]
func (h *Handler) FetchReadme(w http.ResponseWriter, r *http.Request) error {
	var req FetchReadmeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return errors.NewValidationError(invalidURLMessage, map[string]interface{}{
			"detail": err.Error(),
			"code":   "INVALID_REQUEST_BODY",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return errors.NewValidationError(invalidURLMessage, map[string]interface{}{
			"detail": "url is required",
			"code":   "VALIDATION_ERROR",
		})
	}

	ref, err := readme.ParseRepoURL(req.URL)
	if err != nil {
		return errors.NewValidationError(invalidURLMessage, map[string]interface{}{
			"url":  req.URL,
			"code": "INVALID_REPO_URL",
		})
	}

	html, err := h.service.RenderReadme(r.Context(), ref)
	if err != nil {
		if appErr, ok := err.(*errors.AppError); ok {
			switch appErr.Type {
			case errors.NotFoundError, errors.RateLimitError:
				return appErr
			}
		}
		h.logger.Error("failed to fetch readme", "repo", ref.Key(), "error", err)
		return errors.NewInternalError("Internal Server Error", err, nil)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, FetchReadmeResponse{HTML: html})
	return nil
}
