package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/model"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// ApplicationHandler serves the application dashboard for students and
// the review table for moderators.  Lifecycle legality is enforced by
// the repository's guarded updates; the handler translates guard misses
// into 403/404/409 responses and tells stale clients to refetch.
type ApplicationHandler struct {
	Apps         *repository.ApplicationRepo
	Scholarships *repository.ScholarshipRepo
}

func NewApplicationHandler(a *repository.ApplicationRepo, s *repository.ScholarshipRepo) *ApplicationHandler {
	return &ApplicationHandler{Apps: a, Scholarships: s}
}

type applyReq struct {
	ScholarshipID    uint64 `json:"scholarshipId"`
	Degree           string `json:"degree"`
	ApplicantPhone   string `json:"applicantPhone"`
	ApplicantAddress string `json:"applicantAddress"`
}

// Apply serves POST /applications.  A new application always starts at
// pending/unpaid; names and fees are copied from the scholarship row so
// the record stays renderable even if the listing changes later.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req applyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ScholarshipID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "scholarshipId required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s, err := h.Scholarships.GetByID(ctx, req.ScholarshipID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "scholarship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	degree := strings.TrimSpace(req.Degree)
	if degree == "" {
		degree = s.Degree
	}
	app := model.Application{
		UserID:               uid,
		UserEmail:            email,
		ScholarshipID:        s.ID,
		ScholarshipName:      s.Name,
		UniversityName:       s.UniversityName,
		Degree:               degree,
		ApplicantPhone:       strings.TrimSpace(req.ApplicantPhone),
		ApplicantAddress:     strings.TrimSpace(req.ApplicantAddress),
		ApplicationFeesCents: s.ApplicationFeesCents,
		ServiceChargeCents:   s.ServiceChargeCents,
	}
	if err := h.Apps.Create(ctx, &app); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create application failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"insertedId":  app.ID,
		"application": toApplicationResp(app),
	})
}

// List serves GET /applications.  With ?email= it returns that user's
// applications; the caller must be that user unless they hold the
// moderation override.  Without the parameter it is the moderator
// review table and lists everything.
func (h *ApplicationHandler) List(c echo.Context) error {
	caller, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role := getRole(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(c.QueryParam("email")))
	if email == "" {
		if !role.CanModerate() {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		items, err := h.Apps.ListAll(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		return c.JSON(http.StatusOK, echo.Map{"applications": toApplicationResps(items)})
	}

	if email != caller && !role.CanModerate() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	items, err := h.Apps.ListByEmail(ctx, email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": toApplicationResps(items)})
}

// Delete serves DELETE /applications?id=.  Only the owner may delete
// and only while the application is still pending; completed and
// rejected records are retained for audit.
func (h *ApplicationHandler) Delete(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Apps.DeleteOwnedPending(ctx, id, email); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrStaleState:
			return c.JSON(http.StatusConflict, echo.Map{"error": "state changed, refresh required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": 1})
}
