package domain

import (
	"database/sql"
)

// DeathCase is one death-certificate record. Age is kept as the free-text
// source value; demographic bucketing extracts its digit characters.
type DeathCase struct {
	CaseID          string         `db:"case_id"`
	TenantID        string         `db:"tenant_id"`
	Number          string         `db:"number"`
	DoctorID        sql.NullString `db:"doctor_id"`
	CauseOfDeath    string         `db:"cause_of_death"`
	LocationOfDeath string         `db:"location_of_death"`
	// WardID is the hospitalizing ward (بخش بستری).
	WardID        sql.NullString `db:"ward_id"`
	DeathDate     string         `db:"death_date"`
	AdmissionDate string         `db:"admission_date"`
	Age           string         `db:"age"`
	GenderCode    string         `db:"gender"`
	PatientID     sql.NullString `db:"patient_id"`
	DeliveryDate  string         `db:"delivery_date"`
}
