package database

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/xavierca1/lead-intake/internal/entity"
)

var _ entity.LeadRepositoryInterface = (*LeadRepository)(nil)

const leadColumns = `id, first_name, last_name, phone_number, email, suburb, category,
	description, price, status, job_title, date_created, date_updated, job_id, version`

type LeadRepository struct {
	DB      *sql.DB
	Dialect Dialect
	Logger  *slog.Logger
}

func NewLeadRepository(db *sql.DB, dialect Dialect, logger *slog.Logger) *LeadRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeadRepository{DB: db, Dialect: dialect, Logger: logger}
}

var placeholderRe = regexp.MustCompile(`\$\d+`)

// rebind rewrites $n placeholders for drivers that only take "?". Every query
// in this file uses each placeholder once and in order.
func (r *LeadRepository) rebind(query string) string {
	if r.Dialect == DialectSQLite {
		return placeholderRe.ReplaceAllString(query, "?")
	}
	return query
}

func (r *LeadRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	query := r.rebind(`SELECT ` + leadColumns + ` FROM leads WHERE id = $1`)

	lead, err := scanLead(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, r.fail("find_by_id", err)
	}
	return lead, nil
}

func (r *LeadRepository) FindByStatus(ctx context.Context, status entity.LeadStatus) ([]*entity.Lead, error) {
	query := r.rebind(`SELECT ` + leadColumns + ` FROM leads WHERE status = $1 ORDER BY id`)

	rows, err := r.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, r.fail("find_by_status", err)
	}
	defer rows.Close()

	leads := make([]*entity.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, r.fail("find_by_status", err)
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail("find_by_status", err)
	}
	return leads, nil
}

// Save stamps DateUpdated itself and writes the whole lead, guarded by Version.
// On success lead.Version is the stored version.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	lead.Touch()

	query := r.rebind(`
		UPDATE leads SET
			first_name = $1, last_name = $2, phone_number = $3, email = $4,
			suburb = $5, category = $6, description = $7, price = $8,
			status = $9, job_title = $10, date_updated = $11, job_id = $12,
			version = version + 1
		WHERE id = $13 AND version = $14
	`)

	res, err := r.DB.ExecContext(ctx, query,
		nullString(lead.FirstName),
		nullString(lead.LastName),
		nullString(lead.PhoneNumber),
		nullString(lead.Email),
		nullString(lead.Suburb),
		nullString(lead.Category),
		nullString(lead.Description),
		lead.Price,
		string(lead.Status),
		nullString(lead.JobTitle),
		lead.DateUpdated,
		nullInt64(lead.JobID),
		lead.ID,
		lead.Version,
	)
	if err != nil {
		return r.fail("save", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return r.fail("save", err)
	}
	if affected == 0 {
		return r.missOrConflict(ctx, lead.ID)
	}

	lead.Version++
	return nil
}

func (r *LeadRepository) missOrConflict(ctx context.Context, id int64) error {
	var exists int
	err := r.DB.QueryRowContext(ctx, r.rebind(`SELECT 1 FROM leads WHERE id = $1`), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ErrLeadNotFound
	}
	if err != nil {
		return r.fail("save", err)
	}
	return entity.ErrLeadConflict
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := r.rebind(`
		INSERT INTO leads (first_name, last_name, phone_number, email, suburb, category,
			description, price, status, job_title, date_created, date_updated, job_id, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, 0)
		RETURNING id
	`)

	err := r.DB.QueryRowContext(ctx, query,
		nullString(lead.FirstName),
		nullString(lead.LastName),
		nullString(lead.PhoneNumber),
		nullString(lead.Email),
		nullString(lead.Suburb),
		nullString(lead.Category),
		nullString(lead.Description),
		lead.Price,
		string(lead.Status),
		nullString(lead.JobTitle),
		lead.DateCreated,
		lead.DateUpdated,
		nullInt64(lead.JobID),
	).Scan(&lead.ID)
	if err != nil {
		return r.fail("create", err)
	}

	lead.Version = 0
	return nil
}

func (r *LeadRepository) fail(op string, err error) error {
	attrs := []any{slog.String("operation", op), slog.String("error", err.Error())}
	if code := pgErrorCode(err); code != "" {
		attrs = append(attrs, slog.String("sqlstate", code))
	}
	r.Logger.Error("database_error", attrs...)
	return &entity.PersistenceError{Op: op, Err: err}
}

// pgErrorCode extracts the SQLSTATE from either Postgres driver.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead                          entity.Lead
		firstName, lastName           sql.NullString
		phone, email                  sql.NullString
		suburb, category, description sql.NullString
		title                         sql.NullString
		status                        string
		jobID                         sql.NullInt64
	)

	err := row.Scan(
		&lead.ID,
		&firstName,
		&lastName,
		&phone,
		&email,
		&suburb,
		&category,
		&description,
		&lead.Price,
		&status,
		&title,
		&lead.DateCreated,
		&lead.DateUpdated,
		&jobID,
		&lead.Version,
	)
	if err != nil {
		return nil, err
	}

	st, err := entity.ParseLeadStatus(status)
	if err != nil {
		return nil, err
	}

	lead.FirstName = firstName.String
	lead.LastName = lastName.String
	lead.PhoneNumber = phone.String
	lead.Email = email.String
	lead.Suburb = suburb.String
	lead.Category = category.String
	lead.Description = description.String
	lead.JobTitle = title.String
	lead.Status = st
	lead.DateCreated = lead.DateCreated.UTC()
	lead.DateUpdated = lead.DateUpdated.UTC()
	if jobID.Valid {
		id := jobID.Int64
		lead.JobID = &id
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
