package model

import "time"

// Application records a student's request for a specific scholarship.
// It is the central mutable entity of the portal: its application and
// payment status pair drives which actions (pay, edit, delete, review)
// are legal at any moment.  Scholarship and university names are
// denormalized onto the row so dashboards render without joins and the
// record stays meaningful even if the catalog entry changes later.
// Completed and rejected applications are never physically deleted;
// they are retained for audit.
//
// Fields:
//  ID                   – primary key identifier.
//  UserID               – applicant's user ID.
//  UserEmail            – applicant's email (denormalized for lookups).
//  ScholarshipID        – scholarship being applied for.
//  ScholarshipName      – denormalized scholarship name.
//  UniversityName       – denormalized university name.
//  Degree               – degree the applicant selected.
//  ApplicantPhone       – contact phone supplied on the form.
//  ApplicantAddress     – contact address supplied on the form.
//  ApplicationFeesCents – fee owed, copied from the scholarship.
//  ServiceChargeCents   – service charge, copied from the scholarship.
//  ApplicationStatus    – pending, processing, completed or rejected.
//  PaymentStatus        – unpaid or paid.
//  Feedback             – moderator feedback (null until written).
//  TransactionID        – payment gateway reference (null until paid).
//  ApplicationDate      – when the application was submitted.
//  UpdatedAt            – last update timestamp.
type Application struct {
	ID                   uint64    // applications.id
	UserID               uint64    // applications.user_id
	UserEmail            string    // applications.user_email
	ScholarshipID        uint64    // applications.scholarship_id
	ScholarshipName      string    // applications.scholarship_name
	UniversityName       string    // applications.university_name
	Degree               string    // applications.degree
	ApplicantPhone       string    // applications.applicant_phone
	ApplicantAddress     string    // applications.applicant_address
	ApplicationFeesCents uint32    // applications.application_fees_cents
	ServiceChargeCents   uint32    // applications.service_charge_cents
	ApplicationStatus    string    // applications.application_status
	PaymentStatus        string    // applications.payment_status
	Feedback             *string   // applications.feedback (nullable)
	TransactionID        *string   // applications.transaction_id (nullable)
	ApplicationDate      time.Time // applications.application_date
	UpdatedAt            time.Time // applications.updated_at
}

// CheckoutSession is a short-lived row binding a random session token
// to one unpaid application.  The token is embedded in the gateway
// redirect URL and presented back by the success callback; only a
// session that has not been consumed can confirm a payment.
//
// Fields:
//  ID            – primary key identifier.
//  ApplicationID – application the session pays for.
//  SessionToken  – random token handed to the payment gateway.
//  AmountCents   – application fee plus service charge at creation.
//  ConsumedAt    – when the success callback redeemed the session.
//  CreatedAt     – creation timestamp.
type CheckoutSession struct {
	ID            uint64     // checkout_sessions.id
	ApplicationID uint64     // checkout_sessions.application_id
	SessionToken  string     // checkout_sessions.session_token
	AmountCents   uint32     // checkout_sessions.amount_cents
	ConsumedAt    *time.Time // checkout_sessions.consumed_at (nullable)
	CreatedAt     time.Time  // checkout_sessions.created_at
}
