package stats

import (
	"context"
	"fmt"

	"darman-data/internal/domain"
	"darman-data/internal/repository"
)

// Aggregator serves the per-scope statistic bundles. Every method is a pure
// read over the repositories; windows are optional and nil means unwindowed.
type Aggregator struct {
	repos *repository.Repos
}

func NewAggregator(repos *repository.Repos) *Aggregator {
	return &Aggregator{repos: repos}
}

// Overview is the whole-tenant bundle. It is never windowed; the original
// dashboard shows lifetime numbers.
func (a *Aggregator) Overview(ctx context.Context, tenantID string) (*Overview, error) {
	var (
		o   Overview
		err error
	)
	if o.Wards, err = a.repos.Wards.Count(ctx, tenantID); err != nil {
		return nil, err
	}
	if o.Rooms, err = a.repos.Rooms.Count(ctx, tenantID); err != nil {
		return nil, err
	}
	if o.Doctors, err = a.repos.Doctors.Count(ctx, tenantID); err != nil {
		return nil, err
	}
	if o.Patients, err = a.repos.Patients.Count(ctx, tenantID); err != nil {
		return nil, err
	}

	wardCases, err := a.repos.WardCases.Filter(ctx, tenantID, repository.WardCaseFilter{})
	if err != nil {
		return nil, err
	}
	opCases, err := a.repos.OperationCases.Filter(ctx, tenantID, repository.OperationCaseFilter{})
	if err != nil {
		return nil, err
	}

	o.WardCases = len(wardCases)
	o.RoomCases = len(opCases)
	o.Cases = o.WardCases + o.RoomCases
	o.DefectCases = len(DefectCases(wardCases))
	o.DefectSheets = DefectSheetDistribution(wardCases)
	o.DefectTypes = DefectTypeDistribution(wardCases)

	large, medium, small := OperationsBySize(opCases)
	o.LargeOps, o.MediumOps, o.SmallOps = len(large), len(medium), len(small)

	if o.TopSurgeon, err = a.topSurgeon(ctx, tenantID, opCases); err != nil {
		return nil, err
	}
	if o.TopLargeSurgeon, err = a.topSurgeon(ctx, tenantID, large); err != nil {
		return nil, err
	}
	if o.TopMediumSurgeon, err = a.topSurgeon(ctx, tenantID, medium); err != nil {
		return nil, err
	}
	if o.TopSmallSurgeon, err = a.topSurgeon(ctx, tenantID, small); err != nil {
		return nil, err
	}
	return &o, nil
}

// Ward builds the one-ward bundle over an optional window.
func (a *Aggregator) Ward(ctx context.Context, tenantID, wardID string, w *Window) (*WardStats, error) {
	ward, err := a.repos.Wards.Get(ctx, tenantID, wardID)
	if err != nil {
		return nil, err
	}
	if ward == nil {
		return nil, fmt.Errorf("ward %s not found", wardID)
	}

	s := &WardStats{WardID: ward.WardID, Name: ward.Name}

	doctors, err := a.repos.Doctors.ListByWard(ctx, tenantID, wardID)
	if err != nil {
		return nil, err
	}
	s.Doctors = len(doctors)
	if s.Patients, err = a.repos.Patients.CountByWard(ctx, tenantID, wardID); err != nil {
		return nil, err
	}

	all, err := a.repos.WardCases.Filter(ctx, tenantID, repository.WardCaseFilter{WardID: wardID})
	if err != nil {
		return nil, err
	}
	deaths, err := a.repos.DeathCases.Filter(ctx, tenantID, repository.DeathCaseFilter{WardID: wardID})
	if err != nil {
		return nil, err
	}

	cases := FilterWardCases(all, w)
	s.Cases = len(cases)
	s.DeathCases = len(FilterDeathCases(deaths, w))
	s.NotArrived = len(FilterWardCases(NotArrivedCases(all), w))
	s.DefectCases = len(FilterWardCases(DefectCases(all), w))
	s.SocialSecurity = len(FilterWardCases(SocialSecurityCases(all), w))
	s.AverageArriveDays = ArriveDays(cases)
	s.AverageStayDays = StayDays(cases)
	s.DefectSheets = DefectSheetDistribution(cases)
	s.DefectTypes = DefectTypeDistribution(cases)

	for _, d := range doctors {
		byDoctor, err := a.repos.WardCases.Filter(ctx, tenantID,
			repository.WardCaseFilter{WardID: wardID, DoctorID: d.DoctorID})
		if err != nil {
			return nil, err
		}
		windowed := FilterWardCases(byDoctor, w)
		s.DoctorCases = append(s.DoctorCases, NameCount{Name: d.FullName, Count: len(windowed)})
		s.DoctorDefects = append(s.DoctorDefects, NameCount{
			Name:  d.FullName,
			Count: len(DefectCases(windowed)),
		})
	}
	return s, nil
}

// Room builds the one-operating-room bundle.
func (a *Aggregator) Room(ctx context.Context, tenantID, roomID string, w *Window) (*RoomStats, error) {
	room, err := a.repos.Rooms.Get(ctx, tenantID, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("room %s not found", roomID)
	}

	s := &RoomStats{RoomID: room.RoomID, Name: room.Name}

	doctors, err := a.repos.Doctors.ListByRoom(ctx, tenantID, roomID)
	if err != nil {
		return nil, err
	}
	s.Doctors = len(doctors)
	if s.Patients, err = a.repos.Patients.CountByRoom(ctx, tenantID, roomID); err != nil {
		return nil, err
	}

	all, err := a.repos.OperationCases.Filter(ctx, tenantID, repository.OperationCaseFilter{RoomID: roomID})
	if err != nil {
		return nil, err
	}
	cases := FilterOperationCases(all, w)
	s.Cases = len(cases)
	large, medium, small := OperationsBySize(cases)
	s.LargeOps, s.MediumOps, s.SmallOps = len(large), len(medium), len(small)

	for _, d := range doctors {
		byDoctor, err := a.repos.OperationCases.Filter(ctx, tenantID,
			repository.OperationCaseFilter{RoomID: roomID, DoctorID: d.DoctorID})
		if err != nil {
			return nil, err
		}
		s.DoctorCases = append(s.DoctorCases, NameCount{
			Name:  d.FullName,
			Count: len(FilterOperationCases(byDoctor, w)),
		})
	}
	return s, nil
}

// Doctor builds the one-doctor bundle across ward, room and death cases.
func (a *Aggregator) Doctor(ctx context.Context, tenantID, doctorID string, w *Window) (*DoctorStats, error) {
	doctor, err := a.repos.Doctors.Get(ctx, tenantID, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, fmt.Errorf("doctor %s not found", doctorID)
	}

	s := &DoctorStats{DoctorID: doctor.DoctorID, FullName: doctor.FullName}

	allWard, err := a.repos.WardCases.Filter(ctx, tenantID, repository.WardCaseFilter{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	allDeaths, err := a.repos.DeathCases.Filter(ctx, tenantID, repository.DeathCaseFilter{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	allOps, err := a.repos.OperationCases.Filter(ctx, tenantID, repository.OperationCaseFilter{DoctorID: doctorID})
	if err != nil {
		return nil, err
	}
	tenantWard, err := a.repos.WardCases.Filter(ctx, tenantID, repository.WardCaseFilter{})
	if err != nil {
		return nil, err
	}

	s.Patients = countDistinctPatients(allWard, allOps)

	cases := FilterWardCases(allWard, w)
	ops := FilterOperationCases(allOps, w)
	s.WardCases = len(cases)
	s.DeathCases = len(FilterDeathCases(allDeaths, w))
	s.NotArrived = len(FilterWardCases(NotArrivedCases(allWard), w))
	s.SocialSecurity = len(FilterWardCases(SocialSecurityCases(allWard), w))
	s.RoomCases = len(ops)

	large, medium, small := OperationsBySize(ops)
	s.LargeOps, s.MediumOps, s.SmallOps = len(large), len(medium), len(small)

	doctorDefects := FilterWardCases(DefectCases(allWard), w)
	tenantDefects := FilterWardCases(DefectCases(tenantWard), w)
	s.DefectCases = len(doctorDefects)
	if len(tenantDefects) > 0 {
		s.DefectPercent = len(doctorDefects) * 100 / len(tenantDefects)
	}

	s.AverageArriveDays = ArriveDays(cases)
	s.AverageStayDays = StayDays(cases)
	s.DefectSheets = DefectSheetDistribution(cases)
	s.DefectTypes = DefectTypeDistribution(cases)
	return s, nil
}

// Patient builds the one-patient bundle. Windows do not apply; the view is
// the patient's full history.
func (a *Aggregator) Patient(ctx context.Context, tenantID, patientID string) (*PatientStats, error) {
	patient, err := a.repos.Patients.Get(ctx, tenantID, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %s not found", patientID)
	}

	s := &PatientStats{PatientID: patient.PatientID, FullName: patient.FullName}

	wardCases, err := a.repos.WardCases.Filter(ctx, tenantID, repository.WardCaseFilter{PatientID: patientID})
	if err != nil {
		return nil, err
	}
	opCases, err := a.repos.OperationCases.Filter(ctx, tenantID, repository.OperationCaseFilter{PatientID: patientID})
	if err != nil {
		return nil, err
	}
	deathCases, err := a.repos.DeathCases.Filter(ctx, tenantID, repository.DeathCaseFilter{PatientID: patientID})
	if err != nil {
		return nil, err
	}

	s.WardCases = len(wardCases)
	s.RoomCases = len(opCases)
	s.DeathCases = len(deathCases)

	// distinct doctors in first-seen order across the three case classes
	seen := map[string]bool{}
	addDoctor := func(id string) error {
		if id == "" || seen[id] {
			return nil
		}
		seen[id] = true
		d, err := a.repos.Doctors.Get(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if d != nil {
			s.Doctors = append(s.Doctors, d.FullName)
		}
		return nil
	}
	for _, c := range wardCases {
		if err := addDoctor(c.DoctorID.String); err != nil {
			return nil, err
		}
	}
	for _, c := range opCases {
		if err := addDoctor(c.DoctorID.String); err != nil {
			return nil, err
		}
	}
	for _, c := range deathCases {
		if err := addDoctor(c.DoctorID.String); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DeathStats is the tenant-wide death-case demographic bundle, keyed on the
// death date when windowed.
func (a *Aggregator) DeathStats(ctx context.Context, tenantID string, w *Window) (*Demographics, error) {
	cases, err := a.repos.DeathCases.Filter(ctx, tenantID, repository.DeathCaseFilter{})
	if err != nil {
		return nil, err
	}
	if w != nil {
		var windowed []*domain.DeathCase
		for _, c := range cases {
			if w.Contains(c.DeathDate) {
				windowed = append(windowed, c)
			}
		}
		cases = windowed
	}
	d := DeathDemographics(cases)
	return &d, nil
}

func (a *Aggregator) topSurgeon(ctx context.Context, tenantID string, cases []*domain.OperationCase) (*NameCount, error) {
	var names []string
	cache := map[string]string{}
	for _, c := range cases {
		if !c.DoctorID.Valid {
			continue
		}
		name, ok := cache[c.DoctorID.String]
		if !ok {
			d, err := a.repos.Doctors.Get(ctx, tenantID, c.DoctorID.String)
			if err != nil {
				return nil, err
			}
			if d == nil {
				continue
			}
			name = d.FullName
			cache[c.DoctorID.String] = name
		}
		names = append(names, name)
	}
	return MostFrequent(names), nil
}

func countDistinctPatients(wardCases []*domain.WardCase, opCases []*domain.OperationCase) int {
	seen := map[string]bool{}
	for _, c := range wardCases {
		if c.PatientID.Valid {
			seen[c.PatientID.String] = true
		}
	}
	for _, c := range opCases {
		if c.PatientID.Valid {
			seen[c.PatientID.String] = true
		}
	}
	return len(seen)
}
