package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/model"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// AdminScholarshipHandler manages the scholarship catalog.  All routes
// sit behind the admin role gate.
type AdminScholarshipHandler struct {
	Scholarships *repository.ScholarshipRepo
}

func NewAdminScholarshipHandler(s *repository.ScholarshipRepo) *AdminScholarshipHandler {
	return &AdminScholarshipHandler{Scholarships: s}
}

type scholarshipReq struct {
	Name                string `json:"name"`
	UniversityName      string `json:"universityName"`
	Country             string `json:"country"`
	City                string `json:"city"`
	WorldRank           uint32 `json:"worldRank"`
	SubjectCategory     string `json:"subjectCategory"`
	ScholarshipCategory string `json:"scholarshipCategory"`
	Degree              string `json:"degree"`
	TuitionFees         uint32 `json:"tuitionFees"`
	ApplicationFees     uint32 `json:"applicationFees"`
	ServiceCharge       uint32 `json:"serviceCharge"`
	ApplicationDeadline string `json:"applicationDeadline"` // YYYY-MM-DD
}

func (r scholarshipReq) validate() (time.Time, string) {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.UniversityName) == "" {
		return time.Time{}, "name and universityName are required"
	}
	deadline, err := time.Parse("2006-01-02", r.ApplicationDeadline)
	if err != nil {
		return time.Time{}, "applicationDeadline must be YYYY-MM-DD"
	}
	return deadline, ""
}

// ListAll serves GET /adminScholarships, the full catalog for the
// management table.
func (h *AdminScholarshipHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Scholarships.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"scholarships": toScholarshipResps(items)})
}

// Create serves POST /scholarships.
func (h *AdminScholarshipHandler) Create(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req scholarshipReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	deadline, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Scholarship{
		Name:                 strings.TrimSpace(req.Name),
		UniversityName:       strings.TrimSpace(req.UniversityName),
		Country:              strings.TrimSpace(req.Country),
		City:                 strings.TrimSpace(req.City),
		WorldRank:            req.WorldRank,
		SubjectCategory:      strings.TrimSpace(req.SubjectCategory),
		ScholarshipCategory:  strings.TrimSpace(req.ScholarshipCategory),
		Degree:               strings.TrimSpace(req.Degree),
		TuitionFeesCents:     req.TuitionFees,
		ApplicationFeesCents: req.ApplicationFees,
		ServiceChargeCents:   req.ServiceCharge,
		ApplicationDeadline:  deadline,
		PostedByEmail:        email,
	}
	if err := h.Scholarships.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create scholarship failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"insertedId": s.ID})
}

// Update serves PATCH /scholarships/:id.
func (h *AdminScholarshipHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req scholarshipReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	deadline, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	s := model.Scholarship{
		ID:                   id,
		Name:                 strings.TrimSpace(req.Name),
		UniversityName:       strings.TrimSpace(req.UniversityName),
		Country:              strings.TrimSpace(req.Country),
		City:                 strings.TrimSpace(req.City),
		WorldRank:            req.WorldRank,
		SubjectCategory:      strings.TrimSpace(req.SubjectCategory),
		ScholarshipCategory:  strings.TrimSpace(req.ScholarshipCategory),
		Degree:               strings.TrimSpace(req.Degree),
		TuitionFeesCents:     req.TuitionFees,
		ApplicationFeesCents: req.ApplicationFees,
		ServiceChargeCents:   req.ServiceCharge,
		ApplicationDeadline:  deadline,
	}
	n, err := h.Scholarships.Update(ctx, s)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "scholarship not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": n})
}

// Delete serves DELETE /scholarships/:id.
func (h *AdminScholarshipHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Scholarships.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	if n == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "scholarship not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deletedCount": n})
}
