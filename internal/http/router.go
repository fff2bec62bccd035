package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux（避免引入第三方路由依赖）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

// HandleHandler 支持 http.Handler 接口（用于 pprof 等）
func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterImportRoutes 注册导入相关路由
func (r *Router) RegisterImportRoutes(h *ImportHandler) {
	r.Handle("/data/api/v1/imports", func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodPost:
			h.Upload(w, req)
		case http.MethodGet:
			h.History(w, req)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	r.Handle("/data/api/v1/imports/template", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Template(w, req)
	})
}

// RegisterStatsRoutes 注册统计相关路由
func (r *Router) RegisterStatsRoutes(h *StatsHandler) {
	r.Handle("/data/api/v1/stats/overview", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Overview(w, req)
	})

	r.Handle("/data/api/v1/stats/deaths", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Deaths(w, req)
	})

	// batched scopes (ids=a,b,c)
	r.Handle("/data/api/v1/stats/wards", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Wards(w, req)
	})
	r.Handle("/data/api/v1/stats/rooms", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Rooms(w, req)
	})
	r.Handle("/data/api/v1/stats/doctors", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Doctors(w, req)
	})

	// single scopes: stats/{scope}/{id}
	r.Handle("/data/api/v1/stats/wards/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Ward(w, req)
	})
	r.Handle("/data/api/v1/stats/rooms/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Room(w, req)
	})
	r.Handle("/data/api/v1/stats/doctors/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Doctor(w, req)
	})
	r.Handle("/data/api/v1/stats/patients/", func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.Patient(w, req)
	})
}

// RegisterEntityRoutes 注册实体查询路由
func (r *Router) RegisterEntityRoutes(h *EntityHandler) {
	list := func(f http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			f(w, req)
		}
	}

	r.Handle("/data/api/v1/wards", list(h.Wards))
	r.Handle("/data/api/v1/wards/", list(h.Ward))
	r.Handle("/data/api/v1/rooms", list(h.Rooms))
	r.Handle("/data/api/v1/rooms/", list(h.Room))
	r.Handle("/data/api/v1/doctors", list(h.Doctors))
	r.Handle("/data/api/v1/doctors/", list(h.Doctor))
	r.Handle("/data/api/v1/patients", list(h.Patients))
	r.Handle("/data/api/v1/patients/", list(h.Patient))
}
