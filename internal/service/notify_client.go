package service

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"darman-data/internal/ingest"
)

// NotifyClient posts finished import reports to an external webhook, so a
// records office can watch uploads land without polling the API.
type NotifyClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewNotifyClient returns nil when no webhook URL is configured; callers
// treat a nil client as "notification disabled".
func NewNotifyClient(baseURL string, timeout time.Duration, logger *zap.Logger) *NotifyClient {
	if baseURL == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &NotifyClient{httpClient: client, logger: logger}
}

// ImportFinished delivers one report. Failures are the caller's to log and
// ignore; a dead webhook must not fail an import that already persisted.
func (c *NotifyClient) ImportFinished(tenantID string, report *ingest.ImportReport) error {
	payload := struct {
		TenantID string               `json:"tenant_id"`
		Report   *ingest.ImportReport `json:"report"`
	}{TenantID: tenantID, Report: report}

	resp, err := c.httpClient.R().
		SetBody(payload).
		Post("")
	if err != nil {
		return fmt.Errorf("failed to deliver import notification: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("import notification rejected: %s", resp.Status())
	}
	c.logger.Debug("Import notification delivered",
		zap.String("tenant_id", tenantID),
		zap.String("import_id", report.ImportID))
	return nil
}
