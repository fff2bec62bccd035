package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"darman-data/internal/domain"
	"darman-data/internal/jalali"
	"darman-data/internal/repository"
)

// CaseBuilder is the second pass: it re-reads the classified sheets and
// turns record rows into stored cases, resolving entity references against
// what the reconciler persisted. A reference that finds no entity stays
// null; a row that cannot form a case at all is skipped and reported, and
// the sheet continues.
type CaseBuilder struct {
	repos  *repository.Repos
	logger *zap.Logger
}

func NewCaseBuilder(repos *repository.Repos, logger *zap.Logger) *CaseBuilder {
	return &CaseBuilder{repos: repos, logger: logger}
}

// BuildSheet builds every case a sheet yields and reports the outcome. A
// sheet narrower than its class minimum is skipped whole.
func (b *CaseBuilder) BuildSheet(ctx context.Context, tenantID string, s *Sheet, class SheetClass) SheetReport {
	report := SheetReport{Sheet: s.Name, Class: class.String()}
	schema := SchemaFor(class)
	if schema == nil {
		report.Skipped = true
		report.Reason = "unclassified sheet"
		return report
	}
	if s.Width() < schema.MinCaseCols {
		report.Skipped = true
		report.Reason = fmt.Sprintf("sheet has %d columns, need %d", s.Width(), schema.MinCaseCols)
		return report
	}

	rows := RecordRows(s, schema)
	for i, row := range rows {
		var err error
		switch class {
		case ClassWard:
			err = b.buildWardCase(ctx, tenantID, s, row)
		case ClassRoom:
			err = b.buildOperationCase(ctx, tenantID, row)
		case ClassDeath:
			err = b.buildDeathCase(ctx, tenantID, row)
		}
		if err != nil {
			b.logger.Warn("Skipping row",
				zap.String("sheet", s.Name),
				zap.Int("row", i),
				zap.Error(err))
			report.Skips = append(report.Skips, RowSkip{Row: i, Reason: err.Error()})
			continue
		}
		report.Created++
	}
	return report
}

func (b *CaseBuilder) buildWardCase(ctx context.Context, tenantID string, s *Sheet, row []string) error {
	number := Cell(row, wardColNumber)
	if number == "" {
		return fmt.Errorf("missing case number")
	}

	wardID, err := b.lookupWard(ctx, tenantID, Cell(row, wardColWardName))
	if err != nil {
		return err
	}
	doctorID, err := b.lookupDoctor(ctx, tenantID, Cell(row, wardColDoctor))
	if err != nil {
		return err
	}
	refDoctorID, err := b.lookupDoctor(ctx, tenantID, Cell(row, wardColRefDoctor))
	if err != nil {
		return err
	}
	patientID, err := b.lookupPatient(ctx, tenantID, Cell(row, wardColPatient), false)
	if err != nil {
		return err
	}

	c := &domain.WardCase{
		TenantID:          tenantID,
		Number:            number,
		Insurance:         Cell(row, wardColInsurance),
		AdmissionDate:     Cell(row, wardColAdmission),
		DischargeDate:     Cell(row, wardColDischarge),
		DeliveryDate:      Cell(row, wardColDelivery),
		WardID:            wardID,
		DoctorID:          doctorID,
		ReferringDoctorID: refDoctorID,
		PatientID:         patientID,
		Defects:           readDefects(s, row),
	}
	if _, err := b.repos.WardCases.Create(ctx, c); err != nil {
		return err
	}
	return nil
}

func (b *CaseBuilder) buildOperationCase(ctx context.Context, tenantID string, row []string) error {
	number := Cell(row, roomColNumber)
	if number == "" {
		return fmt.Errorf("missing case number")
	}
	k, err := strconv.Atoi(jalali.NormalizeDigits(Cell(row, roomColK)))
	if err != nil {
		return fmt.Errorf("invalid k value %q", Cell(row, roomColK))
	}

	roomID, err := b.lookupRoom(ctx, tenantID, Cell(row, roomColRoomName))
	if err != nil {
		return err
	}
	doctorID, err := b.lookupDoctor(ctx, tenantID, Cell(row, roomColDoctor))
	if err != nil {
		return err
	}
	patientID, err := b.lookupPatient(ctx, tenantID, Cell(row, roomColPatient), true)
	if err != nil {
		return err
	}

	c := &domain.OperationCase{
		TenantID:            tenantID,
		Number:              number,
		HospitalizationDate: Cell(row, roomColHospitalization),
		DischargeDate:       Cell(row, roomColDischarge),
		OperationDate:       Cell(row, roomColOperationDate),
		RoomID:              roomID,
		DoctorID:            doctorID,
		PatientID:           patientID,
		OperationSize:       knownCode(Cell(row, roomColOperationSize), domain.OperationSizeLabel),
		Anesthesia:          knownCode(Cell(row, roomColAnesthesia), domain.AnesthesiaLabel),
		K:                   k,
	}
	if _, err := b.repos.OperationCases.Create(ctx, c); err != nil {
		return err
	}
	return nil
}

func (b *CaseBuilder) buildDeathCase(ctx context.Context, tenantID string, row []string) error {
	number := Cell(row, deathColNumber)
	if number == "" {
		return fmt.Errorf("missing case number")
	}

	doctorID, err := b.lookupDoctor(ctx, tenantID, Cell(row, deathColDoctor))
	if err != nil {
		return err
	}
	wardID, err := b.lookupWard(ctx, tenantID, Cell(row, deathColWardName))
	if err != nil {
		return err
	}
	patientID, err := b.lookupPatient(ctx, tenantID, Cell(row, deathColPatient), false)
	if err != nil {
		return err
	}

	c := &domain.DeathCase{
		TenantID:        tenantID,
		Number:          number,
		DoctorID:        doctorID,
		CauseOfDeath:    Cell(row, deathColCause),
		LocationOfDeath: Cell(row, deathColLocation),
		WardID:          wardID,
		DeathDate:       Cell(row, deathColDeathDate),
		AdmissionDate:   Cell(row, deathColAdmission),
		Age:             Cell(row, deathColAge),
		GenderCode:      knownCode(Cell(row, deathColGender), domain.GenderLabel),
		PatientID:       patientID,
		DeliveryDate:    Cell(row, deathColDelivery),
	}
	if _, err := b.repos.DeathCases.Create(ctx, c); err != nil {
		return err
	}
	return nil
}

func (b *CaseBuilder) lookupWard(ctx context.Context, tenantID, name string) (sql.NullString, error) {
	if name == "" {
		return sql.NullString{}, nil
	}
	w, err := b.repos.Wards.FindByName(ctx, tenantID, name)
	if err != nil || w == nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: w.WardID, Valid: true}, nil
}

func (b *CaseBuilder) lookupRoom(ctx context.Context, tenantID, name string) (sql.NullString, error) {
	if name == "" {
		return sql.NullString{}, nil
	}
	r, err := b.repos.Rooms.FindByName(ctx, tenantID, name)
	if err != nil || r == nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: r.RoomID, Valid: true}, nil
}

func (b *CaseBuilder) lookupDoctor(ctx context.Context, tenantID, name string) (sql.NullString, error) {
	if name == "" {
		return sql.NullString{}, nil
	}
	d, err := b.repos.Doctors.FindByName(ctx, tenantID, name)
	if err != nil || d == nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: d.DoctorID, Valid: true}, nil
}

// lookupPatient matches exactly, or by substring for room cases where the
// stored identity is "<id> <name>" and the case row carries only the name.
func (b *CaseBuilder) lookupPatient(ctx context.Context, tenantID, name string, contains bool) (sql.NullString, error) {
	if name == "" {
		return sql.NullString{}, nil
	}
	var (
		p   *domain.Patient
		err error
	)
	if contains {
		p, err = b.repos.Patients.FindByNameContains(ctx, tenantID, name)
	} else {
		p, err = b.repos.Patients.FindByName(ctx, tenantID, name)
	}
	if err != nil || p == nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: p.PatientID, Valid: true}, nil
}

// readDefects collects as many complete (sheet, type) column pairs as the
// sheet carries, up to the slot limit. Unrecognized codes are dropped; a
// pair with neither survives as an empty slot only if a later pair has
// content, otherwise trailing empties are trimmed.
func readDefects(s *Sheet, row []string) domain.DefectList {
	var defects domain.DefectList
	for slot := 0; slot < domain.MaxDefectSlots; slot++ {
		sheetCol := wardColDefectBase + 2*slot
		typeCol := sheetCol + 1
		if typeCol >= s.Width() {
			break
		}
		pair := domain.DefectPair{
			SheetCode: knownCode(Cell(row, sheetCol), domain.DefectSheetLabel),
			TypeCodes: parseTypeCodes(Cell(row, typeCol)),
		}
		defects = append(defects, pair)
	}
	for len(defects) > 0 {
		last := defects[len(defects)-1]
		if last.SheetCode == "" && len(last.TypeCodes) == 0 {
			defects = defects[:len(defects)-1]
			continue
		}
		break
	}
	return defects
}

// parseTypeCodes splits a possibly multi-valued defect-type cell into its
// recognized codes. Cells hold digit runs separated by punctuation or
// whitespace.
func parseTypeCodes(cell string) []string {
	if cell == "" {
		return nil
	}
	fields := strings.FieldsFunc(jalali.NormalizeDigits(cell), func(r rune) bool {
		return r < '0' || r > '9'
	})
	var codes []string
	for _, f := range fields {
		f = strings.TrimLeft(f, "0")
		if f == "" {
			continue
		}
		if _, ok := domain.DefectTypeLabel(f); ok {
			codes = append(codes, f)
		}
	}
	return codes
}

// knownCode validates a raw cell against a code table, "" when unknown.
func knownCode(raw string, lookup func(string) (string, bool)) string {
	raw = jalali.NormalizeDigits(raw)
	raw = strings.TrimSuffix(raw, ".0") // numeric cells read back as floats
	if _, ok := lookup(raw); ok {
		return raw
	}
	return ""
}
