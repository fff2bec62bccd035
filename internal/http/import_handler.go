package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"darman-data/internal/service"
)

// ImportHandler 处理工作簿上传与导入历史
type ImportHandler struct {
	svc       *service.ImportService
	maxUpload int64
	logger    *zap.Logger
}

func NewImportHandler(svc *service.ImportService, maxUpload int64, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{svc: svc, maxUpload: maxUpload, logger: logger}
}

// Upload 接收 multipart 表单中的 "file" 字段（xlsx），执行两遍导入。
// 部分失败不会中断：跳过的工作表/行记录在返回的报告里。
func (h *ImportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail(fmt.Sprintf("invalid upload: %v", err)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("missing file field"))
		return
	}
	defer file.Close()

	report, err := h.svc.Import(r.Context(), tenant, header.Filename, file)
	if err != nil {
		h.logger.Error("import failed",
			zap.String("tenant_id", tenant),
			zap.String("filename", header.Filename),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, Ok(report))
}

// History 返回租户的导入文件记录（最新在前）
func (h *ImportHandler) History(w http.ResponseWriter, r *http.Request) {
	tenant := tenantID(r)
	if tenant == "" {
		writeJSON(w, http.StatusBadRequest, Fail("missing X-Tenant-ID header"))
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), 50)
	records, err := h.svc.History(r.Context(), tenant, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(records))
}

// Template 生成空的导入模板工作簿（三类工作表各一张，仅表头）
func (h *ImportHandler) Template(w http.ResponseWriter, r *http.Request) {
	data, err := GenerateImportTemplate()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}

	filename := fmt.Sprintf("darman-import-template-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
