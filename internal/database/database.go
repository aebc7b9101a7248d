package database

import (
	"database/sql"
	"fmt"
	"time"
)

// Table Structure:
//
// CREATE TABLE IF NOT EXISTS jobs (
// 	id SERIAL PRIMARY KEY,
// 	slug VARCHAR(255) NOT NULL UNIQUE,
// 	title VARCHAR(255) NOT NULL,
// 	company_name VARCHAR(255) NOT NULL,
// 	company_email VARCHAR(255) NOT NULL,
// 	company_logo_url TEXT DEFAULT NULL,
// 	location_city VARCHAR(255) NOT NULL,
// 	location_state VARCHAR(255) NOT NULL,
// 	trades TEXT[] NOT NULL,
// 	job_type VARCHAR(20) NOT NULL,
// 	pay_min INTEGER DEFAULT NULL,
// 	pay_max INTEGER DEFAULT NULL,
// 	pay_type VARCHAR(10) DEFAULT NULL,
// 	description TEXT NOT NULL,
// 	requirements TEXT DEFAULT NULL,
// 	how_to_apply TEXT DEFAULT NULL,
// 	status VARCHAR(20) NOT NULL DEFAULT 'active',
// 	is_featured BOOLEAN NOT NULL DEFAULT FALSE,
// 	manage_token CHAR(27) NOT NULL,
// 	created_at TIMESTAMP NOT NULL
// );
// CREATE INDEX jobs_status_created_at_idx ON jobs (status, created_at DESC);

// CREATE TABLE IF NOT EXISTS installers (
// 	id SERIAL PRIMARY KEY,
// 	slug VARCHAR(255) NOT NULL UNIQUE,
// 	name VARCHAR(255) NOT NULL,
// 	email VARCHAR(255) NOT NULL,
// 	location_city VARCHAR(255) NOT NULL,
// 	location_state VARCHAR(255) NOT NULL,
// 	trades TEXT[] NOT NULL,
// 	years_experience INTEGER NOT NULL,
// 	bio TEXT NOT NULL,
// 	certifications TEXT DEFAULT NULL,
// 	portfolio_urls TEXT[] DEFAULT NULL,
// 	resume_url TEXT DEFAULT NULL,
// 	is_available BOOLEAN NOT NULL DEFAULT TRUE,
// 	manage_token CHAR(27) NOT NULL,
// 	created_at TIMESTAMP NOT NULL
// );

// CREATE TABLE IF NOT EXISTS applications (
// 	id CHAR(27) NOT NULL UNIQUE,
// 	job_id INTEGER NOT NULL REFERENCES jobs (id),
// 	applicant_name VARCHAR(255) NOT NULL,
// 	applicant_email VARCHAR(255) NOT NULL,
// 	message VARCHAR(4000) NOT NULL,
// 	resume_url TEXT DEFAULT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(id)
// );
// CREATE INDEX applications_job_id_idx ON applications (job_id);

// CREATE TABLE IF NOT EXISTS asset (
// 	path VARCHAR(255) NOT NULL UNIQUE,
// 	bytes BYTEA NOT NULL,
// 	media_type VARCHAR(100) NOT NULL,
// 	created_at TIMESTAMP NOT NULL,
// 	PRIMARY KEY(path)
// );

// GetDbConn tries to establish a connection to postgres and return the connection handler
func GetDbConn(databaseUser, databasePassword, databaseHost, databasePort, databaseName, sslMode string) (*sql.DB, error) {
	databaseURL := fmt.Sprintf("postgres://%v:%v@%v:%v/%v?sslmode=%s",
		databaseUser,
		databasePassword,
		databaseHost,
		databasePort,
		databaseName,
		sslMode,
	)
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}
	err = db.Ping()
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(20)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// CloseDbConn closes db conn
func CloseDbConn(conn *sql.DB) {
	conn.Close()
}

type Asset struct {
	Path      string
	Bytes     []byte
	MediaType string
	CreatedAt time.Time
}

type AssetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db}
}

func (r *AssetRepository) SaveAsset(a Asset) error {
	_, err := r.db.Exec(`INSERT INTO asset (path, bytes, media_type, created_at) VALUES ($1, $2, $3, NOW())`, a.Path, a.Bytes, a.MediaType)
	return err
}

func (r *AssetRepository) AssetByPath(path string) (Asset, error) {
	var a Asset
	row := r.db.QueryRow(
		`SELECT path, bytes, media_type, created_at
		FROM asset
		WHERE path = $1`, path)
	err := row.Scan(&a.Path, &a.Bytes, &a.MediaType, &a.CreatedAt)
	if err != nil {
		return Asset{}, err
	}
	return a, nil
}
