package repository

import (
	"context"
	"database/sql"
	"fmt"

	"darman-data/internal/domain"
)

type PostgresRoomsRepo struct {
	db *sql.DB
}

func NewPostgresRoomsRepo(db *sql.DB) *PostgresRoomsRepo {
	return &PostgresRoomsRepo{db: db}
}

var _ RoomsRepo = (*PostgresRoomsRepo)(nil)

const roomColumns = `room_id::text, tenant_id::text, name, sheet`

func scanRoom(row interface{ Scan(...any) error }) (*domain.OperatingRoom, error) {
	var or domain.OperatingRoom
	if err := row.Scan(&or.RoomID, &or.TenantID, &or.Name, &or.Sheet); err != nil {
		return nil, err
	}
	return &or, nil
}

func (r *PostgresRoomsRepo) GetOrCreate(ctx context.Context, tenantID, name string) (*domain.OperatingRoom, error) {
	if tenantID == "" || name == "" {
		return nil, fmt.Errorf("tenant_id and name are required")
	}

	or, err := r.FindByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if or != nil {
		return or, nil
	}

	row := r.db.QueryRowContext(ctx,
		`INSERT INTO operating_rooms (tenant_id, name, sheet)
		 VALUES ($1::uuid, $2, '')
		 RETURNING `+roomColumns,
		tenantID, name,
	)
	or, err = scanRoom(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create operating room: %w", err)
	}
	return or, nil
}

func (r *PostgresRoomsRepo) FindByName(ctx context.Context, tenantID, name string) (*domain.OperatingRoom, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM operating_rooms WHERE tenant_id = $1::uuid AND name = $2 LIMIT 1`,
		tenantID, name,
	)
	or, err := scanRoom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find operating room by name: %w", err)
	}
	return or, nil
}

func (r *PostgresRoomsRepo) Get(ctx context.Context, tenantID, roomID string) (*domain.OperatingRoom, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM operating_rooms WHERE tenant_id = $1::uuid AND room_id = $2::uuid`,
		tenantID, roomID,
	)
	or, err := scanRoom(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operating room: %w", err)
	}
	return or, nil
}

func (r *PostgresRoomsRepo) List(ctx context.Context, tenantID, search string, limit int) ([]*domain.OperatingRoom, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM operating_rooms
		 WHERE tenant_id = $1::uuid AND ($2 = '' OR name ILIKE '%' || $2 || '%')
		 ORDER BY name
		 LIMIT $3`,
		tenantID, search, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list operating rooms: %w", err)
	}
	defer rows.Close()

	result := []*domain.OperatingRoom{}
	for rows.Next() {
		or, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operating room: %w", err)
		}
		result = append(result, or)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operating rooms: %w", err)
	}
	return result, nil
}

func (r *PostgresRoomsRepo) Count(ctx context.Context, tenantID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM operating_rooms WHERE tenant_id = $1::uuid`, tenantID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count operating rooms: %w", err)
	}
	return n, nil
}
