package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/scholarbridge/scholarship-portal/internal/model"
)

// PaymentRepo manages checkout sessions and payment confirmations.
// A checkout session binds a random single-use token to one unpaid
// application; the token travels to the external gateway inside the
// redirect URL and comes back on the success callback.  Confirmation
// runs inside a transaction so the session is consumed and the
// application flipped to paid atomically.
type PaymentRepo struct{ db *sql.DB }

// NewPaymentRepo returns a repository bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateSession inserts a checkout session row and populates the
// generated ID on the provided record.
func (r *PaymentRepo) CreateSession(ctx context.Context, cs *model.CheckoutSession) error {
	const q = `INSERT INTO checkout_sessions (application_id, session_token, amount_cents)
		VALUES (?,?,?)`
	res, err := r.db.ExecContext(ctx, q, cs.ApplicationID, cs.SessionToken, cs.AmountCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cs.ID = uint64(id)
	cs.CreatedAt = time.Now().UTC()
	return nil
}

// Confirm redeems the session with the given token: it marks the
// session consumed and flips the bound application from unpaid to paid
// under the pending guard, stamping the session token as the
// transaction reference.  It returns the refreshed application so the
// caller can publish an audit event.
//
// Errors: sql.ErrNoRows when the token matches no session,
// ErrStaleState when the session was already consumed or the
// application is no longer pending/unpaid (a duplicate or late
// callback), and any database error otherwise.
func (r *PaymentRepo) Confirm(ctx context.Context, sessionToken string) (model.Application, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Application{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var (
		sessionID  uint64
		appID      uint64
		consumedAt sql.NullTime
	)
	const sel = `SELECT id, application_id, consumed_at FROM checkout_sessions
		WHERE session_token = ? LIMIT 1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, sel, sessionToken).Scan(&sessionID, &appID, &consumedAt); err != nil {
		return model.Application{}, err
	}
	if consumedAt.Valid {
		return model.Application{}, ErrStaleState
	}

	// unpaid -> paid is only legal while the application is pending;
	// the guard makes a racing moderator rejection win cleanly.
	const upd = `UPDATE applications SET payment_status='paid', transaction_id=?
		WHERE id=? AND application_status='pending' AND payment_status='unpaid'`
	res, err := tx.ExecContext(ctx, upd, sessionToken, appID)
	if err != nil {
		return model.Application{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Application{}, err
	}
	if n == 0 {
		return model.Application{}, ErrStaleState
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE checkout_sessions SET consumed_at=NOW() WHERE id=?", sessionID); err != nil {
		return model.Application{}, err
	}

	const sel2 = `SELECT ` + applicationColumns + ` FROM applications WHERE id = ?`
	app, err := scanApplication(tx.QueryRowContext(ctx, sel2, appID))
	if err != nil {
		return model.Application{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Application{}, err
	}
	committed = true
	return app, nil
}

// LogFailure records a failed or cancelled checkout for the given
// application.  The application itself is left untouched: a gateway
// failure causes no state change.  The id is verified first so a bogus
// callback reports ErrNotFound instead of tripping the foreign key.
func (r *PaymentRepo) LogFailure(ctx context.Context, applicationID uint64, reason string) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM applications WHERE id=? LIMIT 1", applicationID).Scan(&exists)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	const q = `INSERT INTO payment_failures (application_id, reason) VALUES (?,?)`
	_, err = r.db.ExecContext(ctx, q, applicationID, reason)
	return err
}
