package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/lifecycle"
	"github.com/scholarbridge/scholarship-portal/internal/model"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// reviewStore is the persistence surface the review handlers need.
// *repository.ReviewRepo implements it; tests substitute a fake to
// exercise the gate without a database.
type reviewStore interface {
	Create(ctx context.Context, rv *model.Review) error
	GetByID(ctx context.Context, id uint64) (model.Review, error)
	ListByEmail(ctx context.Context, email string) ([]model.Review, error)
	ListAll(ctx context.Context) ([]model.Review, error)
	UpdateByAuthor(ctx context.Context, id uint64, email string, rating uint8, comment string) error
	Delete(ctx context.Context, id uint64) (int64, error)
	CompletedApplication(ctx context.Context, email string, scholarshipID uint64) (model.Application, error)
}

// userDirectory resolves author identity fields for new reviews.
type userDirectory interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// ReviewHandler serves review authoring and moderation.  Authoring is
// gated twice: field validation (integer rating 1..5, non-blank
// comment) runs before any storage work, and the caller must own a
// completed application for the scholarship being reviewed.  The new
// review copies its scholarship and university names from that
// application, never from the live catalog, so a later catalog rename
// cannot drift into it.
type ReviewHandler struct {
	Reviews reviewStore
	Users   userDirectory
}

func NewReviewHandler(r *repository.ReviewRepo, u *repository.UserRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Users: u}
}

type createReviewReq struct {
	ScholarshipID uint64 `json:"scholarshipId"`
	RatingPoint   int    `json:"ratingPoint"`
	ReviewComment string `json:"reviewComment"`
}

type updateReviewReq struct {
	RatingPoint   int    `json:"ratingPoint"`
	ReviewComment string `json:"reviewComment"`
}

// fieldErrorsResp renders validation failures field by field so forms
// can attach each message to its input.
func fieldErrorsResp(c echo.Context, errs []lifecycle.FieldError) error {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": out})
}

// Create serves POST /reviews.  Validation runs first; no storage is
// touched on invalid input.  The review gate then requires a completed
// application owned by the caller for the same scholarship, and that
// application supplies the denormalized names.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := lifecycle.ValidateReview(req.RatingPoint, req.ReviewComment); len(errs) > 0 {
		return fieldErrorsResp(c, errs)
	}
	if req.ScholarshipID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scholarshipId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Reviews.CompletedApplication(ctx, email, req.ScholarshipID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "review requires a completed application for this scholarship"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	rv := model.Review{
		ScholarshipID:   app.ScholarshipID,
		ScholarshipName: app.ScholarshipName,
		UniversityName:  app.UniversityName,
		UserID:          uid,
		UserName:        u.Name,
		UserEmail:       email,
		UserImage:       u.PhotoURL,
		RatingPoint:     uint8(req.RatingPoint),
		ReviewComment:   strings.TrimSpace(req.ReviewComment),
	}
	// Create reads the stored row back, so rv carries the database's
	// review_date rather than a handler-side guess.
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"insertedId": rv.ID,
		"review":     toReviewResp(rv),
	})
}

// ListByEmail serves GET /reviews?email=: the caller's own reviews,
// unless the caller holds the moderation override.
func (h *ReviewHandler) ListByEmail(c echo.Context) error {
	caller, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		email = caller
	}
	if email != caller && !getRole(c).CanModerate() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reviews.ListByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": toReviewResps(items)})
}

// ListAll serves GET /all/reviews, the moderator review table.
func (h *ReviewHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Reviews.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": toReviewResps(items)})
}

// Update serves PATCH /reviews/:id.  Only the author may rewrite the
// rating and comment, and the replacement values face the same
// validation as creation.
func (h *ReviewHandler) Update(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := lifecycle.ValidateReview(req.RatingPoint, req.ReviewComment); len(errs) > 0 {
		return fieldErrorsResp(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err = h.Reviews.UpdateByAuthor(ctx, id, email, uint8(req.RatingPoint), strings.TrimSpace(req.ReviewComment))
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": 1})
}

// Delete serves DELETE /all/reviews/:id.  The author may remove their
// own review; moderators and admins may remove any.
func (h *ReviewHandler) Delete(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if rv.UserEmail != email && !getRole(c).CanModerate() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	n, err := h.Reviews.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": n})
}
