// Package sheetdb is the single point of contact with the hosted
// spreadsheet-backed REST API that holds every record. Calls are plain
// pass-throughs: no retries, no caching, and no read-after-write assumptions —
// every failure is surfaced to the caller as-is.
package sheetdb

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/dkpatel/salestrack/internal/apperrors"
	"github.com/dkpatel/salestrack/internal/config"
	"github.com/dkpatel/salestrack/internal/domain/models"
)

// Client exposes the four operations the sheet API supports. There is no
// indexed lookup by uid; callers that need one record fetch everything and
// scan.
type Client interface {
	ListAll(ctx context.Context) ([]models.RawItem, error)
	Create(ctx context.Context, item models.RawItem) error
	UpdateByUID(ctx context.Context, uid string, item models.RawItem) error
	DeleteByUID(ctx context.Context, uid string) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a sheet API client from the provided configuration values.
func NewClient(cfg config.SheetConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(cfg.APIURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &APIClient{httpClient: restyClient}
}

// ListAll fetches every record in the sheet.
func (c *APIClient) ListAll(ctx context.Context) ([]models.RawItem, error) {
	var items []models.RawItem

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&items).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	if resp.IsError() {
		return nil, &apperrors.StoreError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	return items, nil
}

// Create submits a new record. The uid is assigned by the caller before the
// call; the sheet offers no usable auto-id.
func (c *APIClient) Create(ctx context.Context, item models.RawItem) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(item).
		Post("")
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	if resp.IsError() {
		return &apperrors.StoreError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	return nil
}

// UpdateByUID patches the single record identified by uid.
func (c *APIClient) UpdateByUID(ctx context.Context, uid string, item models.RawItem) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("uid", uid).
		SetBody(item).
		Patch("/uid/{uid}")
	if err != nil {
		return fmt.Errorf("update record %s: %w", uid, err)
	}

	return c.checkByUIDResponse(resp, uid)
}

// DeleteByUID removes the single record identified by uid. Deletion is
// irreversible; the sheet keeps no tombstone.
func (c *APIClient) DeleteByUID(ctx context.Context, uid string) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("uid", uid).
		Delete("/uid/{uid}")
	if err != nil {
		return fmt.Errorf("delete record %s: %w", uid, err)
	}

	return c.checkByUIDResponse(resp, uid)
}

func (c *APIClient) checkByUIDResponse(resp *resty.Response, uid string) error {
	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return fmt.Errorf("record %s: %w", uid, apperrors.ErrNotFound)
	case resp.IsError():
		return &apperrors.StoreError{Status: resp.StatusCode(), Body: string(resp.Body())}
	}

	return nil
}
