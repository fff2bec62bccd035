package domain

import (
	"database/sql"
)

// OperationCase is one operating-room procedure. OperationSize and
// Anesthesia hold table codes ("" = unrecognized source value); K is the
// procedure weight (کا).
type OperationCase struct {
	CaseID              string         `db:"case_id"`
	TenantID            string         `db:"tenant_id"`
	Number              string         `db:"number"`
	HospitalizationDate string         `db:"hospitalization_date"`
	DischargeDate       string         `db:"discharge_date"`
	OperationDate       string         `db:"operation_date"`
	RoomID              sql.NullString `db:"room_id"`
	DoctorID            sql.NullString `db:"doctor_id"` // surgeon
	PatientID           sql.NullString `db:"patient_id"`
	OperationSize       string         `db:"operation_size"`
	Anesthesia          string         `db:"anesthesia"`
	K                   int            `db:"k"`
}
