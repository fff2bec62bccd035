package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"darman-data/internal/repository"
	"darman-data/internal/stats"
	"darman-data/internal/store"
)

const statsCacheTTL = 10 * time.Minute

func statsCachePrefix(tenantID string) string {
	return "stats:" + tenantID + ":"
}

// StatsService fronts the aggregator with a read-through cache. Windowed
// and unwindowed requests cache under distinct keys; an import wipes the
// whole tenant prefix.
type StatsService struct {
	agg    *stats.Aggregator
	kv     store.KV
	logger *zap.Logger
}

func NewStatsService(repos *repository.Repos, kv store.KV, logger *zap.Logger) *StatsService {
	return &StatsService{agg: stats.NewAggregator(repos), kv: kv, logger: logger}
}

// Window parses the optional start/end query pair. A window needs both
// bounds; with either one absent the query runs unwindowed.
func (s *StatsService) Window(start, end string) (*stats.Window, error) {
	if start == "" || end == "" {
		return nil, nil
	}
	return stats.NewWindow(start, end)
}

func (s *StatsService) Overview(ctx context.Context, tenantID string) (*stats.Overview, error) {
	return cached(ctx, s, tenantID, "overview", func() (*stats.Overview, error) {
		return s.agg.Overview(ctx, tenantID)
	})
}

func (s *StatsService) Ward(ctx context.Context, tenantID, wardID string, w *stats.Window) (*stats.WardStats, error) {
	return cached(ctx, s, tenantID, scopeKey("ward", wardID, w), func() (*stats.WardStats, error) {
		return s.agg.Ward(ctx, tenantID, wardID, w)
	})
}

func (s *StatsService) Room(ctx context.Context, tenantID, roomID string, w *stats.Window) (*stats.RoomStats, error) {
	return cached(ctx, s, tenantID, scopeKey("room", roomID, w), func() (*stats.RoomStats, error) {
		return s.agg.Room(ctx, tenantID, roomID, w)
	})
}

func (s *StatsService) Doctor(ctx context.Context, tenantID, doctorID string, w *stats.Window) (*stats.DoctorStats, error) {
	return cached(ctx, s, tenantID, scopeKey("doctor", doctorID, w), func() (*stats.DoctorStats, error) {
		return s.agg.Doctor(ctx, tenantID, doctorID, w)
	})
}

func (s *StatsService) Patient(ctx context.Context, tenantID, patientID string) (*stats.PatientStats, error) {
	return cached(ctx, s, tenantID, "patient:"+patientID, func() (*stats.PatientStats, error) {
		return s.agg.Patient(ctx, tenantID, patientID)
	})
}

func (s *StatsService) Deaths(ctx context.Context, tenantID string, w *stats.Window) (*stats.Demographics, error) {
	return cached(ctx, s, tenantID, scopeKey("deaths", "", w), func() (*stats.Demographics, error) {
		return s.agg.DeathStats(ctx, tenantID, w)
	})
}

// Wards computes several ward bundles in one call.
func (s *StatsService) Wards(ctx context.Context, tenantID string, wardIDs []string, w *stats.Window) ([]*stats.WardStats, error) {
	out := make([]*stats.WardStats, 0, len(wardIDs))
	for _, id := range wardIDs {
		ws, err := s.Ward(ctx, tenantID, id, w)
		if err != nil {
			return nil, err
		}
		out = append(out, ws)
	}
	return out, nil
}

// Rooms computes several room bundles in one call.
func (s *StatsService) Rooms(ctx context.Context, tenantID string, roomIDs []string, w *stats.Window) ([]*stats.RoomStats, error) {
	out := make([]*stats.RoomStats, 0, len(roomIDs))
	for _, id := range roomIDs {
		rs, err := s.Room(ctx, tenantID, id, w)
		if err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, nil
}

// Doctors computes several doctor bundles in one call.
func (s *StatsService) Doctors(ctx context.Context, tenantID string, doctorIDs []string, w *stats.Window) ([]*stats.DoctorStats, error) {
	out := make([]*stats.DoctorStats, 0, len(doctorIDs))
	for _, id := range doctorIDs {
		ds, err := s.Doctor(ctx, tenantID, id, w)
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, nil
}

func scopeKey(kind, id string, w *stats.Window) string {
	if w == nil {
		return kind + ":" + id
	}
	return fmt.Sprintf("%s:%s:%d:%d", kind, id, w.Start.Unix(), w.End.Unix())
}

// cached wraps a computation with the per-tenant read-through cache. Cache
// failures degrade to recomputation, never to a request error.
func cached[T any](ctx context.Context, s *StatsService, tenantID, key string, compute func() (T, error)) (T, error) {
	var zero T
	fullKey := statsCachePrefix(tenantID) + key

	if raw, err := s.kv.Get(ctx, fullKey); err == nil {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v, nil
		}
	} else if err != store.ErrMiss {
		s.logger.Warn("Stats cache read failed", zap.String("key", fullKey), zap.Error(err))
	}

	v, err := compute()
	if err != nil {
		return zero, err
	}
	if raw, err := json.Marshal(v); err == nil {
		if err := s.kv.Set(ctx, fullKey, string(raw), statsCacheTTL); err != nil {
			s.logger.Warn("Stats cache write failed", zap.String("key", fullKey), zap.Error(err))
		}
	}
	return v, nil
}
