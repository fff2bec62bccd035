package ingest

import (
	"context"
	"fmt"
	"sort"

	"darman-data/internal/repository"
)

// Reconciler turns a merged extraction into stored entities. Every write is
// get-or-create, so replaying a workbook adds nothing; associations only
// ever grow.
type Reconciler struct {
	repos *repository.Repos
}

func NewReconciler(repos *repository.Repos) *Reconciler {
	return &Reconciler{repos: repos}
}

// Reconcile persists wards and rooms first, then doctors and patients with
// their associations resolved against the freshly stored groups. Names are
// processed in sorted order so replays touch the store in a stable sequence.
func (r *Reconciler) Reconcile(ctx context.Context, tenantID string, e *Extraction) error {
	for _, name := range sortedKeys(e.Wards) {
		if _, err := r.repos.Wards.GetOrCreate(ctx, tenantID, name); err != nil {
			return fmt.Errorf("failed to reconcile ward %q: %w", name, err)
		}
	}
	for _, name := range sortedKeys(e.Rooms) {
		if _, err := r.repos.Rooms.GetOrCreate(ctx, tenantID, name); err != nil {
			return fmt.Errorf("failed to reconcile room %q: %w", name, err)
		}
	}

	for _, name := range sortedKeys(e.Doctors) {
		doctor, err := r.repos.Doctors.GetOrCreate(ctx, tenantID, name)
		if err != nil {
			return fmt.Errorf("failed to reconcile doctor %q: %w", name, err)
		}
		for _, group := range sortedSet(e.Doctors[name]) {
			ward, err := r.repos.Wards.FindByName(ctx, tenantID, group)
			if err != nil {
				return err
			}
			if ward != nil {
				if err := r.repos.Doctors.AddWard(ctx, doctor.DoctorID, ward.WardID); err != nil {
					return err
				}
			}
			room, err := r.repos.Rooms.FindByName(ctx, tenantID, group)
			if err != nil {
				return err
			}
			if room != nil {
				if err := r.repos.Doctors.AddRoom(ctx, doctor.DoctorID, room.RoomID); err != nil {
					return err
				}
			}
		}
	}

	for _, name := range sortedKeys(e.Patients) {
		patient, err := r.repos.Patients.GetOrCreate(ctx, tenantID, name)
		if err != nil {
			return fmt.Errorf("failed to reconcile patient %q: %w", name, err)
		}
		for _, group := range sortedSet(e.Patients[name]) {
			ward, err := r.repos.Wards.FindByName(ctx, tenantID, group)
			if err != nil {
				return err
			}
			if ward != nil {
				if err := r.repos.Patients.AddWard(ctx, patient.PatientID, ward.WardID); err != nil {
					return err
				}
			}
			room, err := r.repos.Rooms.FindByName(ctx, tenantID, group)
			if err != nil {
				return err
			}
			if room != nil {
				if err := r.repos.Patients.AddRoom(ctx, patient.PatientID, room.RoomID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func sortedKeys(m map[string]StringSet) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSet(s StringSet) []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
