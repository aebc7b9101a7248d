package installer

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

const installerColumns = `id, slug, name, email, location_city, location_state, trades, years_experience, bio, certifications, portfolio_urls, resume_url, is_available, created_at`

// buildInstallersQuery composes the directory listing query. The
// experience buckets are a fixed vocabulary, anything else adds no
// predicate; availability only filters on the literal string "true".
func buildInstallersQuery(f Filters) (string, []interface{}) {
	query := `SELECT count(*) OVER() AS full_count, ` + installerColumns + ` FROM installers WHERE TRUE`
	var args []interface{}
	argIndex := 1

	if f.Query != "" {
		query += fmt.Sprintf(` AND (name ILIKE '%%' || $%d || '%%' OR bio ILIKE '%%' || $%d || '%%')`, argIndex, argIndex)
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

	switch f.Experience {
	case "<1":
		query += fmt.Sprintf(` AND years_experience < $%d`, argIndex)
		args = append(args, 1)
		argIndex++
	case "1-2":
		query += fmt.Sprintf(` AND years_experience >= $%d AND years_experience <= $%d`, argIndex, argIndex+1)
		args = append(args, 1, 2)
		argIndex += 2
	case "3-5":
		query += fmt.Sprintf(` AND years_experience >= $%d AND years_experience <= $%d`, argIndex, argIndex+1)
		args = append(args, 3, 5)
		argIndex += 2
	case "6-10":
		query += fmt.Sprintf(` AND years_experience >= $%d AND years_experience <= $%d`, argIndex, argIndex+1)
		args = append(args, 6, 10)
		argIndex += 2
	case "10+":
		query += fmt.Sprintf(` AND years_experience >= $%d`, argIndex)
		args = append(args, 10)
		argIndex++
	}

	if f.Availability == "true" {
		query += ` AND is_available IS TRUE`
	}

	switch f.Sort {
	case SortExperienceDesc:
		query += ` ORDER BY years_experience DESC`
	case SortNameAsc:
		query += ` ORDER BY name ASC`
	case SortNewest:
		query += ` ORDER BY created_at DESC`
	}

	query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, argIndex, argIndex+1)
	args = append(args, f.Limit, (f.Page-1)*f.Limit)

	return query, args
}

func (r *Repository) InstallersByFilters(f Filters) ([]*Installer, int, error) {
	installers := []*Installer{}
	query, args := buildInstallersQuery(f)
	rows, err := r.db.Query(query, args...)
	if err == sql.ErrNoRows {
		return installers, 0, nil
	}
	if err != nil {
		return installers, 0, err
	}
	defer rows.Close()
	var fullRowsCount int
	for rows.Next() {
		installer := &Installer{}
		var certifications, resumeURL sql.NullString
		err = rows.Scan(
			&fullRowsCount,
			&installer.ID,
			&installer.Slug,
			&installer.Name,
			&installer.Email,
			&installer.LocationCity,
			&installer.LocationState,
			&installer.Trades,
			&installer.YearsExperience,
			&installer.Bio,
			&certifications,
			&installer.PortfolioURLs,
			&resumeURL,
			&installer.IsAvailable,
			&installer.CreatedAt,
		)
		if err != nil {
			return installers, fullRowsCount, err
		}
		applyNullables(installer, certifications, resumeURL)
		installers = append(installers, installer)
	}
	err = rows.Err()
	if err != nil {
		return installers, fullRowsCount, err
	}
	return installers, fullRowsCount, nil
}

func (r *Repository) InstallerBySlug(slug string) (*Installer, error) {
	installer := &Installer{}
	row := r.db.QueryRow(
		`SELECT `+installerColumns+`
		FROM installers
		WHERE slug = $1`, slug)
	var certifications, resumeURL sql.NullString
	err := row.Scan(
		&installer.ID,
		&installer.Slug,
		&installer.Name,
		&installer.Email,
		&installer.LocationCity,
		&installer.LocationState,
		&installer.Trades,
		&installer.YearsExperience,
		&installer.Bio,
		&certifications,
		&installer.PortfolioURLs,
		&resumeURL,
		&installer.IsAvailable,
		&installer.CreatedAt,
	)
	if err != nil {
		return installer, err
	}
	applyNullables(installer, certifications, resumeURL)
	return installer, nil
}

// SaveInstaller inserts the profile and fills in the store-assigned fields.
func (r *Repository) SaveInstaller(installer *Installer) error {
	row := r.db.QueryRow(
		`INSERT INTO installers (slug, name, email, location_city, location_state, trades, years_experience, bio, certifications, portfolio_urls, resume_url, is_available, manage_token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id, created_at`,
		installer.Slug,
		installer.Name,
		installer.Email,
		installer.LocationCity,
		installer.LocationState,
		installer.Trades,
		installer.YearsExperience,
		installer.Bio,
		installer.Certifications,
		installer.PortfolioURLs,
		installer.ResumeURL,
		installer.IsAvailable,
		installer.ManageToken,
	)
	return row.Scan(&installer.ID, &installer.CreatedAt)
}

// UpdateInstaller applies the non-nil fields of req to the row matching
// both slug and manage token, surfacing sql.ErrNoRows for a wrong token
// the same as for a missing slug.
func (r *Repository) UpdateInstaller(slug, token string, req *InstallerRqUpdate) (*Installer, error) {
	var sets []string
	var args []interface{}
	argIndex := 1
	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf(`%s = $%d`, column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Email != nil {
		set("email", *req.Email)
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
	if req.YearsExperience != nil {
		set("years_experience", *req.YearsExperience)
	}
	if req.Bio != nil {
		set("bio", *req.Bio)
	}
	if req.Certifications != nil {
		set("certifications", *req.Certifications)
	}
	if req.PortfolioURLs != nil {
		set("portfolio_urls", pq.StringArray(*req.PortfolioURLs))
	}
	if req.ResumeURL != nil {
		set("resume_url", *req.ResumeURL)
	}
	if req.IsAvailable != nil {
		set("is_available", *req.IsAvailable)
	}

	var row *sql.Row
	if len(sets) == 0 {
		row = r.db.QueryRow(`SELECT `+installerColumns+` FROM installers WHERE slug = $1 AND manage_token = $2`, slug, token)
	} else {
		query := fmt.Sprintf(
			`UPDATE installers SET %s WHERE slug = $%d AND manage_token = $%d RETURNING %s`,
			strings.Join(sets, `, `), argIndex, argIndex+1, installerColumns,
		)
		args = append(args, slug, token)
		row = r.db.QueryRow(query, args...)
	}

	installer := &Installer{}
	var certifications, resumeURL sql.NullString
	err := row.Scan(
		&installer.ID,
		&installer.Slug,
		&installer.Name,
		&installer.Email,
		&installer.LocationCity,
		&installer.LocationState,
		&installer.Trades,
		&installer.YearsExperience,
		&installer.Bio,
		&certifications,
		&installer.PortfolioURLs,
		&resumeURL,
		&installer.IsAvailable,
		&installer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	applyNullables(installer, certifications, resumeURL)
	return installer, nil
}

// DeleteInstaller returns sql.ErrNoRows when no row matches slug and token.
func (r *Repository) DeleteInstaller(slug, token string) error {
	res, err := r.db.Exec(`DELETE FROM installers WHERE slug = $1 AND manage_token = $2`, slug, token)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func applyNullables(installer *Installer, certifications, resumeURL sql.NullString) {
	if certifications.Valid {
		installer.Certifications = certifications.String
	}
	if resumeURL.Valid {
		installer.ResumeURL = resumeURL.String
	}
}
