package job

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

const jobColumns = `id, slug, title, company_name, company_email, company_logo_url, location_city, location_state, trades, job_type, pay_min, pay_max, pay_type, description, requirements, how_to_apply, status, is_featured, created_at`

// buildJobsQuery composes the listing query from the optional filters.
// Filters are ANDed together; the free-text and location filters OR their
// ILIKE patterns across fields. Only active jobs are ever listed.
func buildJobsQuery(f Filters) (string, []interface{}) {
	query := `SELECT count(*) OVER() AS full_count, ` + jobColumns + ` FROM jobs WHERE status = 'active'`
	var args []interface{}
	argIndex := 1

	if f.Query != "" {
		query += fmt.Sprintf(` AND (title ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%' OR company_name ILIKE '%%' || $%d || '%%')`, argIndex, argIndex, argIndex)
		args = append(args, f.Query)
		argIndex++
	}

	if f.Location != "" {
		query += fmt.Sprintf(` AND (location_city ILIKE '%%' || $%d || '%%' OR location_state ILIKE '%%' || $%d || '%%')`, argIndex, argIndex)
		args = append(args, f.Location)
		argIndex++
	}

	if f.Trade != "" {
		query += fmt.Sprintf(` AND $%d = ANY(trades)`, argIndex)
		args = append(args, f.Trade)
		argIndex++
	}

	if f.JobType != "" {
		query += fmt.Sprintf(` AND job_type = $%d`, argIndex)
		args = append(args, f.JobType)
		argIndex++
	}

	if f.PayMin > 0 {
		query += fmt.Sprintf(` AND pay_min >= $%d`, argIndex)
		args = append(args, f.PayMin)
		argIndex++
	}

	if f.PayMax > 0 {
		query += fmt.Sprintf(` AND pay_max <= $%d`, argIndex)
		args = append(args, f.PayMax)
		argIndex++
	}

	switch f.Sort {
	case SortHighestPay:
		query += ` ORDER BY pay_max DESC, pay_min DESC`
	case SortNewest, SortClosest:
		// closest needs coordinates on both sides, ranks by recency until
		// distance ranking lands
		query += ` ORDER BY created_at DESC`
	}

	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	return query, args
}

func (r *Repository) JobsByFilters(f Filters) ([]*Job, int, error) {
	jobs := []*Job{}
	query, args := buildJobsQuery(f)
	rows, err := r.db.Query(query, args...)
	if err == sql.ErrNoRows {
		return jobs, 0, nil
	}
	if err != nil {
		return jobs, 0, err
	}
	defer rows.Close()
	var fullRowsCount int
	for rows.Next() {
		job := &Job{}
		var logoURL, payType, requirements, howToApply sql.NullString
		var payMin, payMax sql.NullInt64
		err = rows.Scan(
			&fullRowsCount,
			&job.ID,
			&job.Slug,
			&job.Title,
			&job.CompanyName,
			&job.CompanyEmail,
			&logoURL,
			&job.LocationCity,
			&job.LocationState,
			&job.Trades,
			&job.JobType,
			&payMin,
			&payMax,
			&payType,
			&job.Description,
			&requirements,
			&howToApply,
			&job.Status,
			&job.IsFeatured,
			&job.CreatedAt,
		)
		if err != nil {
			return jobs, fullRowsCount, err
		}
		applyNullables(job, logoURL, payType, requirements, howToApply, payMin, payMax)
		jobs = append(jobs, job)
	}
	err = rows.Err()
	if err != nil {
		return jobs, fullRowsCount, err
	}
	return jobs, fullRowsCount, nil
}

func (r *Repository) JobBySlug(slug string) (*Job, error) {
	job := &Job{}
	row := r.db.QueryRow(
		`SELECT `+jobColumns+`
		FROM jobs
		WHERE slug = $1`, slug)
	var logoURL, payType, requirements, howToApply sql.NullString
	var payMin, payMax sql.NullInt64
	err := row.Scan(
		&job.ID,
		&job.Slug,
		&job.Title,
		&job.CompanyName,
		&job.CompanyEmail,
		&logoURL,
		&job.LocationCity,
		&job.LocationState,
		&job.Trades,
		&job.JobType,
		&payMin,
		&payMax,
		&payType,
		&job.Description,
		&requirements,
		&howToApply,
		&job.Status,
		&job.IsFeatured,
		&job.CreatedAt,
	)
	if err != nil {
		return job, err
	}
	applyNullables(job, logoURL, payType, requirements, howToApply, payMin, payMax)
	return job, nil
}

// SaveJob inserts the job and fills in the store-assigned fields.
func (r *Repository) SaveJob(job *Job) error {
	row := r.db.QueryRow(
		`INSERT INTO jobs (slug, title, company_name, company_email, company_logo_url, location_city, location_state, trades, job_type, pay_min, pay_max, pay_type, description, requirements, how_to_apply, manage_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		RETURNING id, status, is_featured, created_at`,
		job.Slug,
		job.Title,
		job.CompanyName,
		job.CompanyEmail,
		job.CompanyLogoURL,
		job.LocationCity,
		job.LocationState,
		job.Trades,
		job.JobType,
		job.PayMin,
		job.PayMax,
		job.PayType,
		job.Description,
		job.Requirements,
		job.HowToApply,
		job.ManageToken,
	)
	return row.Scan(&job.ID, &job.Status, &job.IsFeatured, &job.CreatedAt)
}

// UpdateJob applies the non-nil fields of req to the row matching both
// slug and manage token. A valid slug with a wrong token scans no row and
// surfaces as sql.ErrNoRows, same as a missing slug.
func (r *Repository) UpdateJob(slug, token string, req *JobRqUpdate) (*Job, error) {
	var sets []string
	var args []interface{}
	argIndex := 1
	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf(`%s = $%d`, column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Title != nil {
		set("title", *req.Title)
	}
	if req.CompanyName != nil {
		set("company_name", *req.CompanyName)
	}
	if req.CompanyEmail != nil {
		set("company_email", *req.CompanyEmail)
	}
	if req.CompanyLogoURL != nil {
		set("company_logo_url", *req.CompanyLogoURL)
	}
	if req.LocationCity != nil {
		set("location_city", *req.LocationCity)
	}
	if req.LocationState != nil {
		set("location_state", *req.LocationState)
	}
	if req.Trades != nil {
		set("trades", pq.StringArray(*req.Trades))
	}
	if req.JobType != nil {
		set("job_type", *req.JobType)
	}
	if req.PayMin != nil {
		set("pay_min", *req.PayMin)
	}
	if req.PayMax != nil {
		set("pay_max", *req.PayMax)
	}
	if req.PayType != nil {
		set("pay_type", *req.PayType)
	}
	if req.Description != nil {
		set("description", *req.Description)
	}
	if req.Requirements != nil {
		set("requirements", *req.Requirements)
	}
	if req.HowToApply != nil {
		set("how_to_apply", *req.HowToApply)
	}

	var row *sql.Row
	if len(sets) == 0 {
		// nothing to change, still perform the authorized lookup so the
		// caller gets the same not-found semantics
		row = r.db.QueryRow(`SELECT `+jobColumns+` FROM jobs WHERE slug = $1 AND manage_token = $2`, slug, token)
	} else {
		query := fmt.Sprintf(
			`UPDATE jobs SET %s WHERE slug = $%d AND manage_token = $%d RETURNING %s`,
			strings.Join(sets, `, `), argIndex, argIndex+1, jobColumns,
		)
		args = append(args, slug, token)
		row = r.db.QueryRow(query, args...)
	}

	job := &Job{}
	var logoURL, payType, requirements, howToApply sql.NullString
	var payMin, payMax sql.NullInt64
	err := row.Scan(
		&job.ID,
		&job.Slug,
		&job.Title,
		&job.CompanyName,
		&job.CompanyEmail,
		&logoURL,
		&job.LocationCity,
		&job.LocationState,
		&job.Trades,
		&job.JobType,
		&payMin,
		&payMax,
		&payType,
		&job.Description,
		&requirements,
		&howToApply,
		&job.Status,
		&job.IsFeatured,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyNullables(job, logoURL, payType, requirements, howToApply, payMin, payMax)
	return job, nil
}

// DeleteJob removes the job and its applications in one transaction so a
// failure leaves both in place. Returns sql.ErrNoRows when no row matches
// slug and token.
func (r *Repository) DeleteJob(slug, token string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(
		`DELETE FROM applications WHERE job_id IN (SELECT id FROM jobs WHERE slug = $1 AND manage_token = $2)`,
		slug, token,
	); err != nil {
		tx.Rollback()
		return err
	}
	res, err := tx.Exec(`DELETE FROM jobs WHERE slug = $1 AND manage_token = $2`, slug, token)
	if err != nil {
		tx.Rollback()
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		tx.Rollback()
		return err
	}
	if affected == 0 {
		tx.Rollback()
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *Repository) SaveApplication(app *Application) error {
	row := r.db.QueryRow(
		`INSERT INTO applications (id, job_id, applicant_name, applicant_email, message, resume_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at`,
		app.ID,
		app.JobID,
		app.ApplicantName,
		app.ApplicantEmail,
		app.Message,
		app.ResumeURL,
	)
	return row.Scan(&app.CreatedAt)
}

func applyNullables(job *Job, logoURL, payType, requirements, howToApply sql.NullString, payMin, payMax sql.NullInt64) {
	if logoURL.Valid {
		job.CompanyLogoURL = logoURL.String
	}
	if payType.Valid {
		job.PayType = payType.String
	}
	if requirements.Valid {
		job.Requirements = requirements.String
	}
	if howToApply.Valid {
		job.HowToApply = howToApply.String
	}
	if payMin.Valid {
		job.PayMin = int(payMin.Int64)
	}
	if payMax.Valid {
		job.PayMax = int(payMax.Int64)
	}
}
