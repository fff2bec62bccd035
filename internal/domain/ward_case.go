package domain

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// MaxDefectSlots is the fixed number of independent defect pairs a ward case
// can carry.
const MaxDefectSlots = 10

// DefectPair is one (defect-sheet, defect-type) slot on a ward case. The
// sheet slot holds a single code; the type slot may hold several codes found
// in one cell. Unrecognized raw codes are dropped at build time, so an empty
// SheetCode means "no defect recorded in this slot".
type DefectPair struct {
	SheetCode string   `json:"sheet,omitempty"`
	TypeCodes []string `json:"types,omitempty"`
}

// HasSheet reports whether the slot records a defect sheet.
func (p DefectPair) HasSheet() bool { return p.SheetCode != "" }

// SheetLabel resolves the sheet code, "" when the slot is empty.
func (p DefectPair) SheetLabel() string {
	label, _ := DefectSheetLabel(p.SheetCode)
	return label
}

// TypeLabel joins the resolved type labels into one display string.
func (p DefectPair) TypeLabel() string {
	var labels []string
	for _, code := range p.TypeCodes {
		if label, ok := DefectTypeLabel(code); ok {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, "، ")
}

// HasType reports whether code appears among the slot's type codes.
func (p DefectPair) HasType(code string) bool {
	for _, c := range p.TypeCodes {
		if c == code {
			return true
		}
	}
	return false
}

// DefectList is the set of defect slots of one ward case, stored as JSONB.
type DefectList []DefectPair

func (d DefectList) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal defects: %w", err)
	}
	return string(b), nil
}

func (d *DefectList) Scan(src any) error {
	if src == nil {
		*d = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported defects column type %T", src)
	}
	if len(b) == 0 {
		*d = nil
		return nil
	}
	return json.Unmarshal(b, d)
}

// WardCase is one admission record in a ward. Dates are opaque Jalali
// strings ("" = absent); arithmetic over them goes through the calendar
// converter and tolerates conversion failure.
type WardCase struct {
	CaseID        string         `db:"case_id"`
	TenantID      string         `db:"tenant_id"`
	Number        string         `db:"number"`
	Insurance     string         `db:"insurance"`
	AdmissionDate string         `db:"admission_date"`
	DischargeDate string         `db:"discharge_date"`
	DeliveryDate  string         `db:"delivery_date"`
	WardID        sql.NullString `db:"ward_id"`
	DoctorID      sql.NullString `db:"doctor_id"`
	// ReferringDoctorID is the پزشک معرف, resolved independently of the
	// attending doctor.
	ReferringDoctorID sql.NullString `db:"referring_doctor_id"`
	PatientID         sql.NullString `db:"patient_id"`
	Defects           DefectList     `db:"defects"`
}

// HasDefect reports whether any slot records a defect sheet.
func (c *WardCase) HasDefect() bool {
	for _, p := range c.Defects {
		if p.HasSheet() {
			return true
		}
	}
	return false
}

// NotArrived reports whether the physical record never reached the archive
// (no delivery date).
func (c *WardCase) NotArrived() bool { return c.DeliveryDate == "" }
