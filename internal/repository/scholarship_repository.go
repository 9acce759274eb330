package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/scholarbridge/scholarship-portal/internal/model"
)

// ScholarshipRepo provides CRUD operations for the scholarship catalog.
// Catalog rows are written only by admin handlers; every other consumer
// is read-only.  All timestamp fields are stored in UTC.
type ScholarshipRepo struct{ db *sql.DB }

// NewScholarshipRepo returns a repository bound to the given database.
func NewScholarshipRepo(db *sql.DB) *ScholarshipRepo { return &ScholarshipRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning multiple repositories.
func (r *ScholarshipRepo) DB() *sql.DB { return r.db }

const scholarshipColumns = `id, name, university_name, country, city, world_rank,
	subject_category, scholarship_category, degree,
	tuition_fees_cents, application_fees_cents, service_charge_cents,
	application_deadline, posted_by_email, posted_at, updated_at`

func scanScholarship(row interface{ Scan(...interface{}) error }) (model.Scholarship, error) {
	var s model.Scholarship
	err := row.Scan(
		&s.ID, &s.Name, &s.UniversityName, &s.Country, &s.City, &s.WorldRank,
		&s.SubjectCategory, &s.ScholarshipCategory, &s.Degree,
		&s.TuitionFeesCents, &s.ApplicationFeesCents, &s.ServiceChargeCents,
		&s.ApplicationDeadline, &s.PostedByEmail, &s.PostedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create inserts a catalog entry and populates the generated ID on the
// provided record.
func (r *ScholarshipRepo) Create(ctx context.Context, s *model.Scholarship) error {
	const q = `INSERT INTO scholarships
		(name, university_name, country, city, world_rank,
		 subject_category, scholarship_category, degree,
		 tuition_fees_cents, application_fees_cents, service_charge_cents,
		 application_deadline, posted_by_email)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.UniversityName, s.Country, s.City, s.WorldRank,
		s.SubjectCategory, s.ScholarshipCategory, s.Degree,
		s.TuitionFeesCents, s.ApplicationFeesCents, s.ServiceChargeCents,
		s.ApplicationDeadline, s.PostedByEmail)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// GetByID returns a single catalog entry.  When no entry exists,
// sql.ErrNoRows is returned.
func (r *ScholarshipRepo) GetByID(ctx context.Context, id uint64) (model.Scholarship, error) {
	const q = `SELECT ` + scholarshipColumns + ` FROM scholarships WHERE id = ?`
	return scanScholarship(r.db.QueryRowContext(ctx, q, id))
}

// ListFilter narrows and pages the public catalog listing.  Search
// matches scholarship, university and degree names.  Zero values mean
// "no filter"; Limit 0 falls back to a page of 12 like the dashboard
// grid.
type ListFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// List returns catalog entries matching the filter, newest first, along
// with the total number of matches for pagination.
func (r *ScholarshipRepo) List(ctx context.Context, f ListFilter) ([]model.Scholarship, int, error) {
	where := make([]string, 0, 2)
	args := make([]interface{}, 0, 4)
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(name LIKE ? OR university_name LIKE ? OR degree LIKE ?)")
		pat := "%" + s + "%"
		args = append(args, pat, pat, pat)
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		where = append(where, "scholarship_category = ?")
		args = append(args, c)
	}
	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM scholarships"+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 12
	}
	q := `SELECT ` + scholarshipColumns + ` FROM scholarships` + cond +
		` ORDER BY posted_at DESC LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]model.Scholarship, 0, limit)
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

// ListTop returns the landing-page selection: the entries with the
// lowest application fee, most recently posted first among ties.
func (r *ScholarshipRepo) ListTop(ctx context.Context, limit int) ([]model.Scholarship, error) {
	if limit <= 0 {
		limit = 6
	}
	q := `SELECT ` + scholarshipColumns + ` FROM scholarships
		ORDER BY application_fees_cents ASC, posted_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Scholarship, 0, limit)
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// ListAll returns the full catalog for the admin management table,
// newest first, without pagination.
func (r *ScholarshipRepo) ListAll(ctx context.Context) ([]model.Scholarship, error) {
	q := `SELECT ` + scholarshipColumns + ` FROM scholarships ORDER BY posted_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]model.Scholarship, 0)
	for rows.Next() {
		s, err := scanScholarship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

// Update rewrites the mutable fields of a catalog entry and returns
// the number of modified rows.
func (r *ScholarshipRepo) Update(ctx context.Context, s model.Scholarship) (int64, error) {
	const q = `UPDATE scholarships SET
		name=?, university_name=?, country=?, city=?, world_rank=?,
		subject_category=?, scholarship_category=?, degree=?,
		tuition_fees_cents=?, application_fees_cents=?, service_charge_cents=?,
		application_deadline=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.UniversityName, s.Country, s.City, s.WorldRank,
		s.SubjectCategory, s.ScholarshipCategory, s.Degree,
		s.TuitionFeesCents, s.ApplicationFeesCents, s.ServiceChargeCents,
		s.ApplicationDeadline, s.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes a catalog entry and returns the number of deleted rows.
func (r *ScholarshipRepo) Delete(ctx context.Context, id uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM scholarships WHERE id=?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
