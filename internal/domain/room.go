package domain

import (
	"database/sql"
)

// OperatingRoom (اتاق عمل). Same lifecycle as Ward, sourced from
// operating-room sheets.
type OperatingRoom struct {
	RoomID   string         `db:"room_id" json:"room_id"`
	TenantID string         `db:"tenant_id" json:"tenant_id"`
	Name     string         `db:"name" json:"name"`
	Sheet    sql.NullString `db:"sheet" json:"sheet"`
}
