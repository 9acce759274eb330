package lifecycle

import "testing"

func state(s ApplicationStatus, p PaymentStatus) State {
	return State{Status: s, Payment: p}
}

func TestActionsFor_PayOnlyWhilePendingUnpaid(t *testing.T) {
	cases := []struct {
		state State
		want  bool
	}{
		{state(StatusPending, PaymentUnpaid), true},
		{state(StatusPending, PaymentPaid), false},
		{state(StatusProcessing, PaymentPaid), false},
		{state(StatusCompleted, PaymentPaid), false},
		{state(StatusRejected, PaymentPaid), false},
		{state(StatusRejected, PaymentUnpaid), false},
	}
	for _, tc := range cases {
		if got := ActionsFor(tc.state).Pay; got != tc.want {
			t.Errorf("Pay for %v/%v: got %v, want %v", tc.state.Status, tc.state.Payment, got, tc.want)
		}
	}
}

func TestActionsFor_EditDeleteOnlyWhilePending(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentUnpaid, PaymentPaid} {
		a := ActionsFor(state(StatusPending, p))
		if !a.Edit || !a.Delete {
			t.Errorf("pending/%v: Edit=%v Delete=%v, want both true", p, a.Edit, a.Delete)
		}
	}
	for _, s := range []ApplicationStatus{StatusProcessing, StatusCompleted, StatusRejected} {
		a := ActionsFor(state(s, PaymentPaid))
		if a.Edit || a.Delete {
			t.Errorf("%v: Edit=%v Delete=%v, want both false", s, a.Edit, a.Delete)
		}
	}
}

func TestActionsFor_ReviewOnlyWhenCompleted(t *testing.T) {
	for _, s := range []ApplicationStatus{StatusPending, StatusProcessing, StatusRejected} {
		if ActionsFor(state(s, PaymentPaid)).Review {
			t.Errorf("%v: Review enabled, want disabled", s)
		}
	}
	if !ActionsFor(state(StatusCompleted, PaymentPaid)).Review {
		t.Error("completed: Review disabled, want enabled")
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	targets := []ApplicationStatus{StatusPending, StatusProcessing, StatusCompleted, StatusRejected}
	for _, from := range []ApplicationStatus{StatusCompleted, StatusRejected} {
		for _, to := range targets {
			if CanTransition(state(from, PaymentPaid), to) {
				t.Errorf("transition %v -> %v allowed, want refused", from, to)
			}
		}
	}
}

func TestCanTransition_ModeratorTable(t *testing.T) {
	cases := []struct {
		from State
		to   ApplicationStatus
		want bool
	}{
		{state(StatusPending, PaymentPaid), StatusProcessing, true},
		{state(StatusPending, PaymentUnpaid), StatusProcessing, false}, // moderation starts after payment
		{state(StatusProcessing, PaymentPaid), StatusCompleted, true},
		{state(StatusPending, PaymentPaid), StatusCompleted, false}, // cannot skip processing
		{state(StatusPending, PaymentPaid), StatusRejected, true},
		{state(StatusPending, PaymentUnpaid), StatusRejected, true}, // reject does not require payment
		{state(StatusProcessing, PaymentPaid), StatusRejected, true},
		{state(StatusProcessing, PaymentPaid), StatusPending, false}, // no moving backwards
		{state(StatusPending, PaymentPaid), StatusPending, false},    // no-op is not a transition
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%v/%v -> %v): got %v, want %v",
				tc.from.Status, tc.from.Payment, tc.to, got, tc.want)
		}
	}
}

func TestCanConfirmPayment(t *testing.T) {
	if !CanConfirmPayment(state(StatusPending, PaymentUnpaid)) {
		t.Error("pending/unpaid: payment refused, want accepted")
	}
	refused := []State{
		state(StatusPending, PaymentPaid), // double confirmation
		state(StatusProcessing, PaymentPaid),
		state(StatusCompleted, PaymentPaid),
		state(StatusRejected, PaymentUnpaid),
	}
	for _, s := range refused {
		if CanConfirmPayment(s) {
			t.Errorf("%v/%v: payment accepted, want refused", s.Status, s.Payment)
		}
	}
}

// Walks the happy path of the workflow: pending(unpaid) -> gateway
// success -> pending(paid) -> processing -> completed, checking the
// derived actions at every step.
func TestScenario_PaymentThenModerationUnlocksReview(t *testing.T) {
	s := Initial()
	if a := ActionsFor(s); !a.Pay || !a.Edit || !a.Delete || a.Review {
		t.Fatalf("initial actions: %+v", a)
	}

	if !CanConfirmPayment(s) {
		t.Fatal("gateway success callback refused on fresh application")
	}
	s.Payment = PaymentPaid
	if a := ActionsFor(s); a.Pay || !a.Edit {
		t.Fatalf("after payment: %+v, want Pay off and Edit still on", a)
	}

	if !CanTransition(s, StatusProcessing) {
		t.Fatal("pending(paid) -> processing refused")
	}
	s.Status = StatusProcessing
	if a := ActionsFor(s); a.Pay || a.Edit || a.Delete || a.Review {
		t.Fatalf("processing actions: %+v, want all off", a)
	}

	if !CanTransition(s, StatusCompleted) {
		t.Fatal("processing -> completed refused")
	}
	s.Status = StatusCompleted
	if !ActionsFor(s).Review {
		t.Fatal("completed: Review not enabled")
	}
	// completed is absorbing, so the review ability never goes away
	for _, to := range []ApplicationStatus{StatusPending, StatusProcessing, StatusRejected} {
		if CanTransition(s, to) {
			t.Errorf("completed -> %v allowed, want refused", to)
		}
	}
}

// A rejection straight from pending(unpaid) kills every action.
func TestScenario_EarlyRejectionDisablesEverything(t *testing.T) {
	s := Initial()
	if !CanTransition(s, StatusRejected) {
		t.Fatal("pending(unpaid) -> rejected refused")
	}
	s.Status = StatusRejected
	if a := ActionsFor(s); a.Pay || a.Edit || a.Delete || a.Review {
		t.Fatalf("rejected actions: %+v, want all off", a)
	}
	if CanConfirmPayment(s) {
		t.Error("rejected application accepted a payment")
	}
}

func TestTransitionSources_MatchCanTransition(t *testing.T) {
	for _, to := range []ApplicationStatus{StatusProcessing, StatusCompleted, StatusRejected} {
		srcs := TransitionSources(to)
		if len(srcs) == 0 {
			t.Fatalf("no sources for %v", to)
		}
		for _, from := range srcs {
			// payment guard applies on top of the source set
			if to == StatusProcessing {
				continue
			}
			if !CanTransition(state(from, PaymentPaid), to) {
				t.Errorf("source %v for %v disagrees with CanTransition", from, to)
			}
		}
	}
	if TransitionSources(StatusPending) != nil {
		t.Error("pending should not be reachable by a moderator action")
	}
}

func TestStateValid(t *testing.T) {
	invalid := []State{
		state(StatusProcessing, PaymentUnpaid), // moderation before payment
		state(StatusCompleted, PaymentUnpaid),
		state("approved", PaymentPaid), // unknown status
		state(StatusPending, "refunded"),
	}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("%v/%v reported valid", s.Status, s.Payment)
		}
	}
	if !state(StatusRejected, PaymentUnpaid).Valid() {
		t.Error("rejected/unpaid reported invalid; early rejection is reachable")
	}
}

func TestParseApplicationStatus(t *testing.T) {
	if _, ok := ParseApplicationStatus("pending"); !ok {
		t.Error("pending not recognized")
	}
	if _, ok := ParseApplicationStatus("PENDING"); ok {
		t.Error("status parsing should be exact; wire values are lowercase")
	}
	if _, ok := ParseApplicationStatus("deleted"); ok {
		t.Error("unknown status accepted")
	}
}

func TestBadges(t *testing.T) {
	cases := map[ApplicationStatus]string{
		StatusPending:    "warning",
		StatusProcessing: "info",
		StatusCompleted:  "success",
		StatusRejected:   "danger",
	}
	for s, want := range cases {
		if got := s.Badge(); got != want {
			t.Errorf("badge for %v: got %q, want %q", s, got, want)
		}
	}
	if got := PaymentUnpaid.Badge(); got != "warning" {
		t.Errorf("unpaid badge: got %q, want warning", got)
	}
}
