package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"darman-data/internal/repository"
)

// EntityHandler 实体查询（病区 / 手术室 / 医生 / 病人）。
// 列表支持 ?q= 名称模糊过滤与 ?limit=。
type EntityHandler struct {
	repos  *repository.Repos
	logger *zap.Logger
}

func NewEntityHandler(repos *repository.Repos, logger *zap.Logger) *EntityHandler {
	return &EntityHandler{repos: repos, logger: logger}
}

func (h *EntityHandler) Wards(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(tenant, q string, limit int) (any, error) {
		return h.repos.Wards.List(r.Context(), tenant, q, limit)
	})
}

func (h *EntityHandler) Ward(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, "/data/api/v1/wards/", func(tenant, id string) (any, error) {
		out, err := h.repos.Wards.Get(r.Context(), tenant, id)
		if err != nil || out == nil {
			return nil, err
		}
		return out, nil
	})
}

func (h *EntityHandler) Rooms(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(tenant, q string, limit int) (any, error) {
		return h.repos.Rooms.List(r.Context(), tenant, q, limit)
	})
}

func (h *EntityHandler) Room(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, "/data/api/v1/rooms/", func(tenant, id string) (any, error) {
		out, err := h.repos.Rooms.Get(r.Context(), tenant, id)
		if err != nil || out == nil {
			return nil, err
		}
		return out, nil
	})
}

func (h *EntityHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(tenant, q string, limit int) (any, error) {
		return h.repos.Doctors.List(r.Context(), tenant, q, limit)
	})
}

func (h *EntityHandler) Doctor(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, "/data/api/v1/doctors/", func(tenant, id string) (any, error) {
		out, err := h.repos.Doctors.Get(r.Context(), tenant, id)
		if err != nil || out == nil {
			return nil, err
		}
		return out, nil
	})
}

func (h *EntityHandler) Patients(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, func(tenant, q string, limit int) (any, error) {
		return h.repos.Patients.List(r.Context(), tenant, q, limit)
	})
}

func (h *EntityHandler) Patient(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, "/data/api/v1/patients/", func(tenant, id string) (any, error) {
		out, err := h.repos.Patients.Get(r.Context(), tenant, id)
		if err != nil || out == nil {
			return nil, err
		}
		return out, nil
	})
}

func (h *EntityHandler) list(w http.ResponseWriter, r *http.Request, f func(tenant, q string, limit int) (any, error)) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}
	q := r.URL.Query()
	out, err := f(tenant, q.Get("q"), parseInt(q.Get("limit"), 100))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

func (h *EntityHandler) get(w http.ResponseWriter, r *http.Request, prefix string, f func(tenant, id string) (any, error)) {
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
	out, err := f(tenant, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	if out == nil {
		writeJSON(w, http.StatusNotFound, Fail("not found"))
		return
	}
	writeJSON(w, http.StatusOK, Ok(out))
}
