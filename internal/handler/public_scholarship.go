package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// ScholarshipHandler serves the public catalog: the paged browse grid,
// the landing-page top picks and the detail page.  These routes are
// unauthenticated and sit behind the Redis response cache.
type ScholarshipHandler struct {
	Scholarships *repository.ScholarshipRepo
	Reviews      *repository.ReviewRepo
}

func NewScholarshipHandler(s *repository.ScholarshipRepo, r *repository.ReviewRepo) *ScholarshipHandler {
	return &ScholarshipHandler{Scholarships: s, Reviews: r}
}

// List serves GET /scholarships.  Query parameters: search (matches
// scholarship, university and degree names), category, page and limit.
// The response carries the total match count so clients can paginate.
func (h *ScholarshipHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if limit <= 0 {
		limit = 12
	}
	if page < 1 {
		page = 1
	}
	f := repository.ListFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Scholarships.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"scholarships": toScholarshipResps(items),
		"total":        total,
		"page":         page,
		"limit":        limit,
	})
}

// Top serves GET /scholarships/top: the six entries with the lowest
// application fee, most recently posted first among ties.
func (h *ScholarshipHandler) Top(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Scholarships.ListTop(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"scholarships": toScholarshipResps(items)})
}

// Get serves GET /scholarships/:id, the detail page.  Reviews for the
// scholarship ride along so the page renders in one request.
func (h *ScholarshipHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Scholarships.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "scholarship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	reviews, err := h.Reviews.ListByScholarship(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"scholarship": toScholarshipResp(s),
		"reviews":     toReviewResps(reviews),
	})
}
