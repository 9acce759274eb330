package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/scholarbridge/scholarship-portal/internal/lifecycle"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// updateApplicationReq is the PATCH /applications/:id body.  The
// contract multiplexes two writers onto one endpoint: moderators send
// applicationStatus or feedback, owners send the applicant detail
// fields while the record is still pending.  Pointers distinguish
// "absent" from "empty".
type updateApplicationReq struct {
	ApplicationStatus *string `json:"applicationStatus"`
	Feedback          *string `json:"feedback"`
	Degree            *string `json:"degree"`
	ApplicantPhone    *string `json:"applicantPhone"`
	ApplicantAddress  *string `json:"applicantAddress"`
}

// Update serves PATCH /applications/:id.  Status transitions run under
// the lifecycle guard: an illegal or raced transition comes back as
// 409 and the client must refetch the authoritative record.  Feedback
// is informational and last-write-wins.
func (h *ApplicationHandler) Update(c echo.Context) error {
	email, err := getEmail(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	role := getRole(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Moderator writes: status transition and/or feedback.
	if req.ApplicationStatus != nil || req.Feedback != nil {
		if !role.CanModerate() {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		modified := int64(0)
		if req.ApplicationStatus != nil {
			to, ok := lifecycle.ParseApplicationStatus(*req.ApplicationStatus)
			if !ok {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown applicationStatus"})
			}
			if err := h.Apps.UpdateStatus(ctx, id, to); err != nil {
				switch err {
				case repository.ErrNotFound:
					return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
				case repository.ErrStaleState:
					return c.JSON(http.StatusConflict, echo.Map{"error": "state changed, refresh required"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
			}
			modified++
		}
		if req.Feedback != nil {
			n, err := h.Apps.SetFeedback(ctx, id, strings.TrimSpace(*req.Feedback))
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
			}
			if n == 0 && modified == 0 {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
			}
			modified += n
		}
		return c.JSON(http.StatusOK, echo.Map{"modifiedCount": modified})
	}

	// Owner self-edit of applicant details, legal only while pending.
	current, err := h.Apps.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	}
	phone := current.ApplicantPhone
	address := current.ApplicantAddress
	degree := current.Degree
	if req.ApplicantPhone != nil {
		phone = strings.TrimSpace(*req.ApplicantPhone)
	}
	if req.ApplicantAddress != nil {
		address = strings.TrimSpace(*req.ApplicantAddress)
	}
	if req.Degree != nil {
		degree = strings.TrimSpace(*req.Degree)
	}
	if err := h.Apps.UpdateApplicantDetails(ctx, id, email, phone, address, degree); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		case repository.ErrStaleState:
			return c.JSON(http.StatusConflict, echo.Map{"error": "state changed, refresh required"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"modifiedCount": 1})
}
