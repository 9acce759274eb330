package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/scholarbridge/scholarship-portal/internal/access"
	"github.com/scholarbridge/scholarship-portal/internal/model"
	"github.com/scholarbridge/scholarship-portal/internal/repository"
)

// fakeReviewStore satisfies reviewStore for create-path tests.  Create
// mimics the real repository: it assigns an ID and overwrites the
// record with database-stamped values, including review_date.
type fakeReviewStore struct {
	app     model.Application
	appErr  error
	stamp   time.Time
	created *model.Review
}

func (f *fakeReviewStore) CompletedApplication(_ context.Context, _ string, _ uint64) (model.Application, error) {
	return f.app, f.appErr
}

func (f *fakeReviewStore) Create(_ context.Context, rv *model.Review) error {
	stored := *rv
	stored.ID = 41
	stored.ReviewDate = f.stamp
	f.created = &stored
	*rv = stored
	return nil
}

func (f *fakeReviewStore) GetByID(context.Context, uint64) (model.Review, error) {
	return model.Review{}, sql.ErrNoRows
}
func (f *fakeReviewStore) ListByEmail(context.Context, string) ([]model.Review, error) {
	return nil, nil
}
func (f *fakeReviewStore) ListAll(context.Context) ([]model.Review, error) { return nil, nil }
func (f *fakeReviewStore) UpdateByAuthor(context.Context, uint64, string, uint8, string) error {
	return repository.ErrNotFound
}
func (f *fakeReviewStore) Delete(context.Context, uint64) (int64, error) { return 0, nil }

type fakeUserDirectory struct{ u model.User }

func (f *fakeUserDirectory) GetByEmail(context.Context, string) (model.User, error) {
	return f.u, nil
}

// A review must carry the scholarship and university names from the
// owner's completed application, not from the live catalog: renaming
// the catalog entry after completion must not leak into the review.
func TestCreateReview_NamesCopiedFromApplication(t *testing.T) {
	stamp := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	store := &fakeReviewStore{
		app: model.Application{
			ID:                11,
			UserEmail:         "student@example.com",
			ScholarshipID:     3,
			ScholarshipName:   "Global Merit Award",
			UniversityName:    "Aarhus University",
			ApplicationStatus: "completed",
			PaymentStatus:     "paid",
		},
		stamp: stamp,
	}
	h := &ReviewHandler{
		Reviews: store,
		Users:   &fakeUserDirectory{u: model.User{Name: "Sam Student", PhotoURL: "https://img.example/s.png"}},
	}

	c, rec := newCtx(t, http.MethodPost, "/reviews",
		`{"scholarshipId":3,"ratingPoint":5,"reviewComment":"great program"}`,
		access.RoleStudent)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want 201", rec.Code)
	}
	if store.created == nil {
		t.Fatal("no review reached the store")
	}
	if store.created.ScholarshipName != "Global Merit Award" {
		t.Errorf("scholarship name: got %q, want the application's value", store.created.ScholarshipName)
	}
	if store.created.UniversityName != "Aarhus University" {
		t.Errorf("university name: got %q, want the application's value", store.created.UniversityName)
	}

	var body struct {
		InsertedID uint64     `json:"insertedId"`
		Review     reviewResp `json:"review"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Review.ScholarshipName != "Global Merit Award" || body.Review.UniversityName != "Aarhus University" {
		t.Errorf("response names: got %q/%q, want the application's values",
			body.Review.ScholarshipName, body.Review.UniversityName)
	}
	// The response date is the store's stamp, not a handler-side guess.
	if body.Review.ReviewDate != stamp.Format(time.RFC3339) {
		t.Errorf("review date: got %q, want store-stamped %q",
			body.Review.ReviewDate, stamp.Format(time.RFC3339))
	}
	if body.InsertedID != 41 {
		t.Errorf("insertedId: got %d, want 41", body.InsertedID)
	}
}

func TestCreateReview_RefusedWithoutCompletedApplication(t *testing.T) {
	store := &fakeReviewStore{appErr: sql.ErrNoRows}
	h := &ReviewHandler{Reviews: store, Users: &fakeUserDirectory{}}

	c, rec := newCtx(t, http.MethodPost, "/reviews",
		`{"scholarshipId":3,"ratingPoint":4,"reviewComment":"nice"}`,
		access.RoleStudent)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want 403", rec.Code)
	}
	if store.created != nil {
		t.Error("review stored despite a refused gate")
	}
}

// fakePaymentStore reports an unknown application on LogFailure.
type fakePaymentStore struct{}

func (fakePaymentStore) CreateSession(context.Context, *model.CheckoutSession) error { return nil }
func (fakePaymentStore) Confirm(context.Context, string) (model.Application, error) {
	return model.Application{}, sql.ErrNoRows
}
func (fakePaymentStore) LogFailure(context.Context, uint64, string) error {
	return repository.ErrNotFound
}

func TestPaymentError_UnknownApplicationIs404(t *testing.T) {
	h := &PaymentHandler{Cfg: configForTest(), Payments: fakePaymentStore{}}
	c, rec := newCtx(t, http.MethodPost, "/payment-error?apl_id=999", "", access.RoleStudent)
	if err := h.PaymentError(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
