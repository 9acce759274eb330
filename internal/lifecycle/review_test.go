package lifecycle

import "testing"

func TestValidateReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, 6, -1, 100} {
		errs := ValidateReview(rating, "great scholarship")
		if len(errs) != 1 || errs[0].Field != "ratingPoint" {
			t.Errorf("rating %d: got %v, want single ratingPoint error", rating, errs)
		}
	}
	for rating := MinRating; rating <= MaxRating; rating++ {
		if errs := ValidateReview(rating, "great scholarship"); len(errs) != 0 {
			t.Errorf("rating %d: unexpected errors %v", rating, errs)
		}
	}
}

func TestValidateReview_CommentMustNotBeBlank(t *testing.T) {
	for _, comment := range []string{"", "   ", "\t\n  "} {
		errs := ValidateReview(3, comment)
		if len(errs) != 1 || errs[0].Field != "reviewComment" {
			t.Errorf("comment %q: got %v, want single reviewComment error", comment, errs)
		}
	}
}

func TestValidateReview_CollectsAllViolations(t *testing.T) {
	errs := ValidateReview(0, "  ")
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
}

func TestCanReview_OnlyCompleted(t *testing.T) {
	if !CanReview(State{Status: StatusCompleted, Payment: PaymentPaid}) {
		t.Error("completed application cannot review")
	}
	for _, s := range []ApplicationStatus{StatusPending, StatusProcessing, StatusRejected} {
		if CanReview(State{Status: s, Payment: PaymentPaid}) {
			t.Errorf("%v application can review, want refused", s)
		}
	}
}
