package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types
	"time"    // time formats timestamps for responses

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/scholarbridge/scholarship-portal/internal/access"
	"github.com/scholarbridge/scholarship-portal/internal/lifecycle"
	"github.com/scholarbridge/scholarship-portal/internal/model"
)

// getUserID extracts the user_id from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getEmail extracts the authenticated email stored by the JWT middleware.
func getEmail(c echo.Context) (string, error) {
	if v, ok := c.Get("email").(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("missing email in context")
}

// getRole extracts the resolved role stored by the JWT middleware.
// Absent or mistyped values collapse to the least privileged role.
func getRole(c echo.Context) access.Role {
	if r, ok := c.Get("role").(access.Role); ok {
		return r
	}
	return access.RoleStudent
}

// applicationResp is the wire shape of an application row.  Besides the
// stored fields it carries the derived action flags and badge classes
// so every dashboard re-derives legal actions from the authoritative
// record after each refetch instead of trusting local state.
type applicationResp struct {
	ID                uint64            `json:"id"`
	UserID            uint64            `json:"userId"`
	UserEmail         string            `json:"userEmail"`
	ScholarshipID     uint64            `json:"scholarshipId"`
	ScholarshipName   string            `json:"scholarshipName"`
	UniversityName    string            `json:"universityName"`
	Degree            string            `json:"degree"`
	ApplicantPhone    string            `json:"applicantPhone"`
	ApplicantAddress  string            `json:"applicantAddress"`
	ApplicationFees   uint32            `json:"applicationFees"`
	ServiceCharge     uint32            `json:"serviceCharge"`
	ApplicationStatus string            `json:"applicationStatus"`
	PaymentStatus     string            `json:"paymentStatus"`
	StatusBadge       string            `json:"statusBadge"`
	PaymentBadge      string            `json:"paymentBadge"`
	Feedback          *string           `json:"feedback"`
	TransactionID     *string           `json:"transactionId"`
	ApplicationDate   string            `json:"applicationDate"`
	Actions           lifecycle.Actions `json:"actions"`
}

// toApplicationResp derives the response shape from a stored row.
func toApplicationResp(a model.Application) applicationResp {
	st := lifecycle.ApplicationStatus(a.ApplicationStatus)
	pay := lifecycle.PaymentStatus(a.PaymentStatus)
	return applicationResp{
		ID:                a.ID,
		UserID:            a.UserID,
		UserEmail:         a.UserEmail,
		ScholarshipID:     a.ScholarshipID,
		ScholarshipName:   a.ScholarshipName,
		UniversityName:    a.UniversityName,
		Degree:            a.Degree,
		ApplicantPhone:    a.ApplicantPhone,
		ApplicantAddress:  a.ApplicantAddress,
		ApplicationFees:   a.ApplicationFeesCents,
		ServiceCharge:     a.ServiceChargeCents,
		ApplicationStatus: a.ApplicationStatus,
		PaymentStatus:     a.PaymentStatus,
		StatusBadge:       st.Badge(),
		PaymentBadge:      pay.Badge(),
		Feedback:          a.Feedback,
		TransactionID:     a.TransactionID,
		ApplicationDate:   a.ApplicationDate.UTC().Format(time.RFC3339),
		Actions:           lifecycle.ActionsFor(lifecycle.State{Status: st, Payment: pay}),
	}
}

func toApplicationResps(items []model.Application) []applicationResp {
	out := make([]applicationResp, 0, len(items))
	for _, a := range items {
		out = append(out, toApplicationResp(a))
	}
	return out
}

// scholarshipResp is the wire shape of a catalog entry.
type scholarshipResp struct {
	ID                  uint64 `json:"id"`
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
	ApplicationDeadline string `json:"applicationDeadline"`
	PostedByEmail       string `json:"postedByEmail"`
	PostedAt            string `json:"postedAt"`
}

func toScholarshipResp(s model.Scholarship) scholarshipResp {
	return scholarshipResp{
		ID:                  s.ID,
		Name:                s.Name,
		UniversityName:      s.UniversityName,
		Country:             s.Country,
		City:                s.City,
		WorldRank:           s.WorldRank,
		SubjectCategory:     s.SubjectCategory,
		ScholarshipCategory: s.ScholarshipCategory,
		Degree:              s.Degree,
		TuitionFees:         s.TuitionFeesCents,
		ApplicationFees:     s.ApplicationFeesCents,
		ServiceCharge:       s.ServiceChargeCents,
		ApplicationDeadline: s.ApplicationDeadline.UTC().Format("2006-01-02"),
		PostedByEmail:       s.PostedByEmail,
		PostedAt:            s.PostedAt.UTC().Format(time.RFC3339),
	}
}

func toScholarshipResps(items []model.Scholarship) []scholarshipResp {
	out := make([]scholarshipResp, 0, len(items))
	for _, s := range items {
		out = append(out, toScholarshipResp(s))
	}
	return out
}

// reviewResp is the wire shape of a review.
type reviewResp struct {
	ID              uint64 `json:"id"`
	ScholarshipID   uint64 `json:"scholarshipId"`
	ScholarshipName string `json:"scholarshipName"`
	UniversityName  string `json:"universityName"`
	UserID          uint64 `json:"userId"`
	UserName        string `json:"userName"`
	UserEmail       string `json:"userEmail"`
	UserImage       string `json:"userImage"`
	RatingPoint     uint8  `json:"ratingPoint"`
	ReviewComment   string `json:"reviewComment"`
	ReviewDate      string `json:"reviewDate"`
}

func toReviewResp(rv model.Review) reviewResp {
	return reviewResp{
		ID:              rv.ID,
		ScholarshipID:   rv.ScholarshipID,
		ScholarshipName: rv.ScholarshipName,
		UniversityName:  rv.UniversityName,
		UserID:          rv.UserID,
		UserName:        rv.UserName,
		UserEmail:       rv.UserEmail,
		UserImage:       rv.UserImage,
		RatingPoint:     rv.RatingPoint,
		ReviewComment:   rv.ReviewComment,
		ReviewDate:      rv.ReviewDate.UTC().Format(time.RFC3339),
	}
}

func toReviewResps(items []model.Review) []reviewResp {
	out := make([]reviewResp, 0, len(items))
	for _, rv := range items {
		out = append(out, toReviewResp(rv))
	}
	return out
}
