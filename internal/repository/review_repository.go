package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/scholarbridge/scholarship-portal/internal/model"
)

// ReviewRepo provides persistence for scholarship reviews.  Ownership
// rules (author-only edits, moderator delete override) are enforced by
// the handlers through the access gate; this layer only restricts
// author-guarded writes to the author's own rows.
type ReviewRepo struct{ db *sql.DB }

// NewReviewRepo returns a repository bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

const reviewColumns = `id, scholarship_id, scholarship_name, university_name,
	user_id, user_name, user_email, user_image,
	rating_point, review_comment, review_date, updated_at`

func scanReview(row interface{ Scan(...interface{}) error }) (model.Review, error) {
	var rv model.Review
	err := row.Scan(
		&rv.ID, &rv.ScholarshipID, &rv.ScholarshipName, &rv.UniversityName,
		&rv.UserID, &rv.UserName, &rv.UserEmail, &rv.UserImage,
		&rv.RatingPoint, &rv.ReviewComment, &rv.ReviewDate, &rv.UpdatedAt,
	)
	return rv, err
}

// Create inserts a review and reads the stored row back so the caller
// returns database-stamped values (review_date in particular), not its
// own guesses.  The scholarship and university names must already be
// copied from the owner's completed application by the caller.
func (r *ReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	const q = `INSERT INTO reviews
		(scholarship_id, scholarship_name, university_name,
		 user_id, user_name, user_email, user_image, rating_point, review_comment)
		VALUES (?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		rv.ScholarshipID, rv.ScholarshipName, rv.UniversityName,
		rv.UserID, rv.UserName, rv.UserEmail, rv.UserImage, rv.RatingPoint, rv.ReviewComment)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	const sel = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	full, err := scanReview(r.db.QueryRowContext(ctx, sel, uint64(id)))
	if err != nil {
		return err
	}
	*rv = full
	return nil
}

// GetByID returns a single review.  sql.ErrNoRows when absent.
func (r *ReviewRepo) GetByID(ctx context.Context, id uint64) (model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	return scanReview(r.db.QueryRowContext(ctx, q, id))
}

// ListByEmail returns the reviews authored by the given email, newest
// first.
func (r *ReviewRepo) ListByEmail(ctx context.Context, email string) ([]model.Review, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + reviewColumns + ` FROM reviews
		WHERE user_email = ? ORDER BY review_date DESC`
	return r.list(ctx, q, email)
}

// ListAll returns every review, newest first.  Serves both the
// moderator review table and the public scholarship detail page.
func (r *ReviewRepo) ListAll(ctx context.Context) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews ORDER BY review_date DESC`
	return r.list(ctx, q)
}

// ListByScholarship returns the reviews for one scholarship, newest
// first, for the catalog detail page.
func (r *ReviewRepo) ListByScholarship(ctx context.Context, scholarshipID uint64) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews
		WHERE scholarship_id = ? ORDER BY review_date DESC`
	return r.list(ctx, q, scholarshipID)
}

func (r *ReviewRepo) list(ctx context.Context, q string, args ...interface{}) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Review, 0)
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rv)
	}
	return items, rows.Err()
}

// UpdateByAuthor rewrites the rating and comment of the author's own
// review.  A zero-row match is classified as ErrNotFound (no such
// review) or ErrForbidden (someone else's review).
func (r *ReviewRepo) UpdateByAuthor(ctx context.Context, id uint64, email string, rating uint8, comment string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `UPDATE reviews SET rating_point=?, review_comment=?
		WHERE id=? AND user_email=?`
	res, err := r.db.ExecContext(ctx, q, rating, comment, id, email)
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
	var owner string
	if err := r.db.QueryRowContext(ctx,
		"SELECT user_email FROM reviews WHERE id=? LIMIT 1", id).Scan(&owner); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if owner != email {
		return ErrForbidden
	}
	// Same author, same values: the update matched but changed nothing.
	return nil
}

// Delete removes a review unconditionally.  The caller has already
// established that the requester is the author or holds the moderation
// override.  Returns the number of deleted rows.
func (r *ReviewRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CompletedApplication returns the caller's completed application for
// the scholarship, newest first when several exist.  This is the data
// half of the review gate: only such an owner may author a review, and
// the review copies its scholarship and university names from this row
// rather than the live catalog, so a later catalog rename never leaks
// into the review.  sql.ErrNoRows when the gate is not satisfied.
func (r *ReviewRepo) CompletedApplication(ctx context.Context, email string, scholarshipID uint64) (model.Application, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `SELECT ` + applicationColumns + ` FROM applications
		WHERE user_email=? AND scholarship_id=? AND application_status='completed'
		ORDER BY application_date DESC LIMIT 1`
	return scanApplication(r.db.QueryRowContext(ctx, q, email, scholarshipID))
}
