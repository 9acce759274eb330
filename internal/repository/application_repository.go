package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/scholarbridge/scholarship-portal/internal/lifecycle"
	"github.com/scholarbridge/scholarship-portal/internal/model"
)

// ApplicationRepo provides persistence for scholarship applications.
// Every status or payment mutation is a guarded conditional UPDATE:
// the WHERE clause embeds the set of states the change is legal from
// (as derived by the lifecycle package), so a concurrent writer that
// already moved the record causes zero affected rows instead of an
// illegal overwrite.  Callers receive ErrStaleState in that case and
// are expected to refetch.
type ApplicationRepo struct{ db *sql.DB }

// NewApplicationRepo returns a repository bound to the given database.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning applications and checkout sessions.
func (r *ApplicationRepo) DB() *sql.DB { return r.db }

const applicationColumns = `id, user_id, user_email, scholarship_id, scholarship_name,
	university_name, degree, applicant_phone, applicant_address,
	application_fees_cents, service_charge_cents,
	application_status, payment_status, feedback, transaction_id,
	application_date, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }) (model.Application, error) {
	var (
		a        model.Application
		feedback sql.NullString
		txnID    sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.UserID, &a.UserEmail, &a.ScholarshipID, &a.ScholarshipName,
		&a.UniversityName, &a.Degree, &a.ApplicantPhone, &a.ApplicantAddress,
		&a.ApplicationFeesCents, &a.ServiceChargeCents,
		&a.ApplicationStatus, &a.PaymentStatus, &feedback, &txnID,
		&a.ApplicationDate, &a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}
	if feedback.Valid {
		f := feedback.String
		a.Feedback = &f
	}
	if txnID.Valid {
		t := txnID.String
		a.TransactionID = &t
	}
	return a, nil
}

// Create inserts a new application in the initial pending/unpaid state,
// copying fees and names from the scholarship row, then queries the
// full row back to populate timestamps and defaults.
func (r *ApplicationRepo) Create(ctx context.Context, a *model.Application) error {
	const q = `INSERT INTO applications
		(user_id, user_email, scholarship_id, scholarship_name, university_name,
		 degree, applicant_phone, applicant_address,
		 application_fees_cents, service_charge_cents,
		 application_status, payment_status)
		VALUES (?,?,?,?,?,?,?,?,?,?,'pending','unpaid')`
	res, err := r.db.ExecContext(ctx, q,
		a.UserID, a.UserEmail, a.ScholarshipID, a.ScholarshipName, a.UniversityName,
		a.Degree, a.ApplicantPhone, a.ApplicantAddress,
		a.ApplicationFeesCents, a.ServiceChargeCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = uint64(id)
	const sel = `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`
	full, err := scanApplication(r.db.QueryRowContext(ctx, sel, a.ID))
	if err != nil {
		return err
	}
	*a = full
	return nil
}

// GetByID returns a single application.  sql.ErrNoRows is returned
// when it does not exist.
func (r *ApplicationRepo) GetByID(ctx context.Context, id uint64) (model.Application, error) {
	const q = `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`
	return scanApplication(r.db.QueryRowContext(ctx, q, id))
}

// ListByEmail returns all applications submitted by the given email,
// newest first.  When none exist, an empty slice is returned.
func (r *ApplicationRepo) ListByEmail(ctx context.Context, email string) ([]model.Application, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + applicationColumns + ` FROM applications
		WHERE user_email = ? ORDER BY application_date DESC`
	return r.list(ctx, q, email)
}

// ListAll returns every application for the moderator review table,
// newest first.
func (r *ApplicationRepo) ListAll(ctx context.Context) ([]model.Application, error) {
	const q = `SELECT ` + applicationColumns + ` FROM applications ORDER BY application_date DESC`
	return r.list(ctx, q)
}

func (r *ApplicationRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Application, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// UpdateStatus moves an application to the target status under the
// lifecycle guard.  The UPDATE only matches rows whose current status
// is a legal source for the target; moving to processing additionally
// requires the fee to be paid.  Zero affected rows on an existing
// record means another writer got there first (or the client is stale)
// and is reported as ErrStaleState; a missing record is ErrNotFound.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uint64, to lifecycle.ApplicationStatus) error {
	sources := lifecycle.TransitionSources(to)
	if len(sources) == 0 {
		return ErrStaleState
	}
	placeholders := make([]string, len(sources))
	args := []interface{}{string(to)}
	for i, s := range sources {
		placeholders[i] = "?"
		args = append(args, string(s))
	}
	q := `UPDATE applications SET application_status = ?
		WHERE application_status IN (` + strings.Join(placeholders, ",") + `)`
	if to == lifecycle.StatusProcessing {
		q += ` AND payment_status = 'paid'`
	}
	q += ` AND id = ?`
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	// Distinguish a vanished record from a stale transition.
	var exists int
	if err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM applications WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return ErrStaleState
}

// SetFeedback writes moderator feedback.  Feedback is informational
// and does not gate any transition, so this is a plain last-write-wins
// update.  The number of modified rows is returned for the contract's
// success marker.
func (r *ApplicationRepo) SetFeedback(ctx context.Context, id uint64, feedback string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE applications SET feedback=? WHERE id=?", feedback, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateApplicantDetails rewrites the owner-editable fields (phone,
// address, degree).  The guard restricts the write to the owner's own
// still-pending application; any other situation is reported as
// ErrNotFound, ErrForbidden or ErrStaleState after a follow-up read.
func (r *ApplicationRepo) UpdateApplicantDetails(ctx context.Context, id uint64, email, phone, address, degree string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `UPDATE applications SET applicant_phone=?, applicant_address=?, degree=?
		WHERE id=? AND user_email=? AND application_status='pending'`
	res, err := r.db.ExecContext(ctx, q, phone, address, degree, id, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.classifyGuardMiss(ctx, id, email)
}

// DeleteOwnedPending removes the owner's application while it is still
// pending.  Completed and rejected applications are retained for audit
// and can never be deleted through this path.
func (r *ApplicationRepo) DeleteOwnedPending(ctx context.Context, id uint64, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `DELETE FROM applications
		WHERE id=? AND user_email=? AND application_status='pending'`
	res, err := r.db.ExecContext(ctx, q, id, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	return r.classifyGuardMiss(ctx, id, email)
}

// classifyGuardMiss explains why an owner-guarded write matched zero
// rows: the record is gone, belongs to someone else, or has left the
// pending state.
func (r *ApplicationRepo) classifyGuardMiss(ctx context.Context, id uint64, email string) error {
	var owner, status string
	err := r.db.QueryRowContext(ctx,
		"SELECT user_email, application_status FROM applications WHERE id=? LIMIT 1",
		id).Scan(&owner, &status)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if owner != email {
		return ErrForbidden
	}
	return ErrStaleState
}
