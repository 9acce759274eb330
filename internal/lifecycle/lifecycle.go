// Package lifecycle encodes the application/payment workflow of the
// portal.  Every status change and every row-level action (pay, edit,
// delete, review) is decided by the pure functions in this package
// before any handler touches the database, and the repository layer
// re-checks the same legality sets inside conditional UPDATEs so a
// concurrent writer can never push a record through an illegal
// transition.
package lifecycle

// ApplicationStatus is the moderation state of an application.  It
// starts at StatusPending and only ever moves forward; StatusCompleted
// and StatusRejected are terminal.
type ApplicationStatus string

const (
	StatusPending    ApplicationStatus = "pending"    // awaiting payment and/or moderation
	StatusProcessing ApplicationStatus = "processing" // under moderator review
	StatusCompleted  ApplicationStatus = "completed"  // review finished successfully (terminal)
	StatusRejected   ApplicationStatus = "rejected"   // turned down by a moderator (terminal)
)

// PaymentStatus tracks whether the application fee has been settled.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid" // fee not yet settled
	PaymentPaid   PaymentStatus = "paid"   // gateway confirmed the fee
)

// ParseApplicationStatus maps a raw status string to a typed value.
// The boolean reports whether the input named a known status.
func ParseApplicationStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusRejected:
		return ApplicationStatus(s), true
	}
	return "", false
}

// ParsePaymentStatus maps a raw payment string to a typed value.  The
// boolean reports whether the input named a known payment status.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentUnpaid, PaymentPaid:
		return PaymentStatus(s), true
	}
	return "", false
}

// State is the composite application/payment state.  Moderation only
// begins once the fee is settled, so processing and completed are
// reachable only while paid; Valid reports whether a pair is
// reachable at all.
type State struct {
	Status  ApplicationStatus
	Payment PaymentStatus
}

// Initial returns the state every application is created in.
func Initial() State {
	return State{Status: StatusPending, Payment: PaymentUnpaid}
}

// Valid reports whether the composite state is reachable.  Processing
// and completed require the fee to have been paid; pending and
// rejected may carry either payment status.
func (s State) Valid() bool {
	if _, ok := ParseApplicationStatus(string(s.Status)); !ok {
		return false
	}
	if _, ok := ParsePaymentStatus(string(s.Payment)); !ok {
		return false
	}
	if (s.Status == StatusProcessing || s.Status == StatusCompleted) && s.Payment != PaymentPaid {
		return false
	}
	return true
}

// Terminal reports whether the application status admits no further
// transition.  Completed and rejected are absorbing.
func (s State) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusRejected
}

// CanTransition reports whether a moderator may move an application
// from the given state to the target status:
//
//	pending(paid)            -> processing
//	processing(paid)         -> completed
//	pending | processing     -> rejected (regardless of payment)
//
// Terminal states admit nothing, and a no-op transition to the current
// status is not a transition.
func CanTransition(from State, to ApplicationStatus) bool {
	if !from.Valid() || from.Terminal() || to == from.Status {
		return false
	}
	switch to {
	case StatusProcessing:
		return from.Status == StatusPending && from.Payment == PaymentPaid
	case StatusCompleted:
		return from.Status == StatusProcessing
	case StatusRejected:
		return from.Status == StatusPending || from.Status == StatusProcessing
	}
	return false
}

// TransitionSources returns the application statuses a moderator may
// legally move to the target status from.  The repository layer embeds
// this set in the WHERE clause of its status UPDATE so a stale client
// observes zero affected rows instead of overwriting a concurrent
// transition.  A nil slice means the target is never reachable by a
// moderator action.
func TransitionSources(to ApplicationStatus) []ApplicationStatus {
	switch to {
	case StatusProcessing:
		return []ApplicationStatus{StatusPending}
	case StatusCompleted:
		return []ApplicationStatus{StatusProcessing}
	case StatusRejected:
		return []ApplicationStatus{StatusPending, StatusProcessing}
	}
	return nil
}

// CanConfirmPayment reports whether the gateway success callback may
// flip the payment status to paid.  Only a still-pending, unpaid
// application accepts a payment; once paid (or once the application
// left pending) the callback must be refused.
func CanConfirmPayment(s State) bool {
	return s.Status == StatusPending && s.Payment == PaymentUnpaid
}

// Actions lists which row-level actions are legal in a given state.
// The flags are pure derivations: handlers reject a disallowed action
// before any database work, and responses embed the flags so clients
// re-derive them after every refetch.
type Actions struct {
	Pay    bool `json:"pay"`    // initiate a checkout session
	Edit   bool `json:"edit"`   // owner edits the applicant details
	Delete bool `json:"delete"` // owner withdraws the application
	Review bool `json:"review"` // owner writes a scholarship review
}

// ActionsFor derives the legal actions from the composite state:
// Pay iff pending and unpaid, Edit and Delete iff pending (any payment
// status), Review iff completed.
func ActionsFor(s State) Actions {
	return Actions{
		Pay:    s.Status == StatusPending && s.Payment == PaymentUnpaid,
		Edit:   s.Status == StatusPending,
		Delete: s.Status == StatusPending,
		Review: s.Status == StatusCompleted,
	}
}

// Badge returns the dashboard badge class for a status.  Shared by
// every screen that renders a status chip so colors stay consistent.
func (s ApplicationStatus) Badge() string {
	switch s {
	case StatusPending:
		return "warning"
	case StatusProcessing:
		return "info"
	case StatusCompleted:
		return "success"
	case StatusRejected:
		return "danger"
	}
	return "neutral"
}

// Badge returns the dashboard badge class for a payment status.
func (p PaymentStatus) Badge() string {
	if p == PaymentPaid {
		return "success"
	}
	return "warning"
}
