package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"darman-data/internal/service"
	"darman-data/internal/stats"
)

// StatsHandler 统计查询。时间窗口通过 ?start=&end= 传入（Jalali 日期，
// yyyy/mm/dd），两者要么都给要么都不给。
type StatsHandler struct {
	svc    *service.StatsService
	logger *zap.Logger
}

func NewStatsHandler(svc *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, logger: logger}
}

func (h *StatsHandler) window(w http.ResponseWriter, r *http.Request) (*stats.Window, bool) {
	q := r.URL.Query()
	win, err := h.svc.Window(q.Get("start"), q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(err.Error()))
		return nil, false
	}
	return win, true
}

func (h *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}
	out, err := h.svc.Overview(r.Context(), tenant)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

func (h *StatsHandler) Ward(w http.ResponseWriter, r *http.Request) {
	h.scoped(w, r, "/data/api/v1/stats/wards/", func(tenant, id string, win *stats.Window) (any, error) {
		return h.svc.Ward(r.Context(), tenant, id, win)
	})
}

func (h *StatsHandler) Room(w http.ResponseWriter, r *http.Request) {
	h.scoped(w, r, "/data/api/v1/stats/rooms/", func(tenant, id string, win *stats.Window) (any, error) {
		return h.svc.Room(r.Context(), tenant, id, win)
	})
}

func (h *StatsHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	h.scoped(w, r, "/data/api/v1/stats/doctors/", func(tenant, id string, win *stats.Window) (any, error) {
		return h.svc.Doctor(r.Context(), tenant, id, win)
	})
}

func (h *StatsHandler) Patient(w http.ResponseWriter, r *http.Request) {
	h.scoped(w, r, "/data/api/v1/stats/patients/", func(tenant, id string, _ *stats.Window) (any, error) {
		return h.svc.Patient(r.Context(), tenant, id)
	})
}

func (h *StatsHandler) Deaths(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}
	win, ok := h.window(w, r)
	if !ok {
		return
	}
	out, err := h.svc.Deaths(r.Context(), tenant, win)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

func (h *StatsHandler) Wards(w http.ResponseWriter, r *http.Request) {
	h.batched(w, r, func(tenant string, ids []string, win *stats.Window) (any, error) {
		return h.svc.Wards(r.Context(), tenant, ids, win)
	})
}

func (h *StatsHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	h.batched(w, r, func(tenant string, ids []string, win *stats.Window) (any, error) {
		return h.svc.Rooms(r.Context(), tenant, ids, win)
	})
}

func (h *StatsHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	h.batched(w, r, func(tenant string, ids []string, win *stats.Window) (any, error) {
		return h.svc.Doctors(r.Context(), tenant, ids, win)
	})
}

func (h *StatsHandler) scoped(w http.ResponseWriter, r *http.Request, prefix string, f func(tenant, id string, win *stats.Window) (any, error)) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}
	id := pathTail(r.URL.Path, prefix)
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	win, ok := h.window(w, r)
	if !ok {
		return
	}
	out, err := f(tenant, id, win)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSON(w, http.StatusNotFound, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

func (h *StatsHandler) batched(w http.ResponseWriter, r *http.Request, f func(tenant string, ids []string, win *stats.Window) (any, error)) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}
	raw := strings.TrimSpace(r.URL.Query().Get("ids"))
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing ids parameter"))
		return
	}
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	win, ok := h.window(w, r)
	if !ok {
		return
	}
	out, err := f(tenant, ids, win)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			writeJSON(w, http.StatusNotFound, Fail(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}
