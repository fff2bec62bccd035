package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darman-data/internal/domain"
)

type PostgresImportsRepo struct {
	db *sql.DB
}

func NewPostgresImportsRepo(db *sql.DB) *PostgresImportsRepo {
	return &PostgresImportsRepo{db: db}
}

var _ ImportsRepo = (*PostgresImportsRepo)(nil)

func (r *PostgresImportsRepo) Create(ctx context.Context, rec *domain.ImportFile) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO import_files (tenant_id, filename, imported_at)
		 VALUES ($1::uuid, $2, $3)
		 RETURNING import_id::text`,
		rec.TenantID, rec.Filename, rec.ImportedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create import record: %w", err)
	}
	return id, nil
}

func (r *PostgresImportsRepo) List(ctx context.Context, tenantID string, limit int) ([]*domain.ImportFile, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT import_id::text, tenant_id::text, filename, imported_at
		 FROM import_files
		 WHERE tenant_id = $1::uuid
		 ORDER BY imported_at DESC
		 LIMIT $2`,
		tenantID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list import records: %w", err)
	}
	defer rows.Close()

	recs := []*domain.ImportFile{}
	for rows.Next() {
		var f domain.ImportFile
		if err := rows.Scan(&f.ImportID, &f.TenantID, &f.Filename, &f.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		recs = append(recs, &f)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import records: %w", err)
	}
	return recs, nil
}

// NewPostgresRepos wires every repository over one database handle.
func NewPostgresRepos(db *sql.DB) *Repos {
	return &Repos{
		Wards:          NewPostgresWardsRepo(db),
		Rooms:          NewPostgresRoomsRepo(db),
		Doctors:        NewPostgresDoctorsRepo(db),
		Patients:       NewPostgresPatientsRepo(db),
		WardCases:      NewPostgresWardCasesRepo(db),
		OperationCases: NewPostgresOperationCasesRepo(db),
		DeathCases:     NewPostgresDeathCasesRepo(db),
		Imports:        NewPostgresImportsRepo(db),
	}
}
