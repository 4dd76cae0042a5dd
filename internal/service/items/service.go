// Package items implements the domain operations over sale records: add,
// list, search, update, delete, bulk delete and the daily summary. It owns
// defaulting and validation; persistence is delegated entirely to the sheet
// API client and nothing is cached between calls.
package items

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/apperrors"
	"github.com/dkpatel/salestrack/internal/dates"
	"github.com/dkpatel/salestrack/internal/domain/models"
	"github.com/dkpatel/salestrack/pkg/clients/sheetdb"
	"github.com/dkpatel/salestrack/pkg/uid"
)

// Service orchestrates record use cases on top of the sheet API client.
type Service struct {
	store  sheetdb.Client
	logger *zap.Logger
}

// NewService wires a new items service instance.
func NewService(store sheetdb.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Add validates the input, applies the legacy defaults (qty "1", NA
// sentinels, today's date), assigns a uid and writes the record.
func (s *Service) Add(ctx context.Context, req models.AddItemRequest) (models.Item, error) {
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return models.Item{}, fmt.Errorf("item_name is required: %w", apperrors.ErrValidation)
	}

	price, err := parseAmount(req.Price.String())
	if err != nil {
		return models.Item{}, fmt.Errorf("price: %w", err)
	}

	qty, err := parseQty(req.Qty.String())
	if err != nil {
		return models.Item{}, err
	}

	due, err := parseDue(req.DuePrice.String())
	if err != nil {
		return models.Item{}, err
	}

	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		customer = models.NA
	}

	raw := models.RawItem{
		UID:          uid.New(),
		Date:         models.FlexString(dates.ToStorage(req.Date)),
		ItemName:     name,
		Qty:          models.FlexString(qty),
		CustomerName: customer,
		Price:        models.FlexString(price),
		DuePrice:     models.FlexString(due),
	}

	if err := s.store.Create(ctx, raw); err != nil {
		return models.Item{}, fmt.Errorf("add record: %w", err)
	}

	s.logger.Info("record added", zap.String("uid", raw.UID), zap.String("item", raw.ItemName))
	return normalize(raw), nil
}

// List fetches every record, normalizes dates and returns them sorted latest
// first. The sort is stable: records sharing a date keep the sheet's order.
func (s *Service) List(ctx context.Context) ([]models.Item, error) {
	raws, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	items := make([]models.Item, 0, len(raws))
	for _, raw := range raws {
		items = append(items, normalize(raw))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return sortKey(items[i]).After(sortKey(items[j]))
	})

	return items, nil
}

// Search returns the records whose item name, customer name or uid contains
// the term, case-insensitively. An empty term returns the full list.
func (s *Service) Search(ctx context.Context, term string) ([]models.Item, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items, nil
	}

	matched := make([]models.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ItemName), term) ||
			strings.Contains(strings.ToLower(item.CustomerName), term) ||
			strings.Contains(strings.ToLower(item.UID), term) {
			matched = append(matched, item)
		}
	}

	return matched, nil
}

// Get returns the record with the given uid. The sheet has no indexed lookup,
// so this fetches everything and scans.
func (s *Service) Get(ctx context.Context, id string) (models.Item, error) {
	raw, err := s.findRaw(ctx, id)
	if err != nil {
		return models.Item{}, err
	}
	return normalize(raw), nil
}

// Update merges the patch over the stored record and writes it back. Unset
// fields keep their stored value, except customer_name and due_price which
// fall back to NA exactly like the add form. A missing record is a terminal
// failure; there is no conflict detection, last writer wins.
func (s *Service) Update(ctx context.Context, id string, req models.UpdateItemRequest) (models.Item, error) {
	current, err := s.findRaw(ctx, id)
	if err != nil {
		return models.Item{}, err
	}

	merged := current

	if strings.TrimSpace(req.Date) != "" {
		merged.Date = models.FlexString(dates.ToStorage(req.Date))
	}
	if name := strings.TrimSpace(req.ItemName); name != "" {
		merged.ItemName = name
	}
	if q := strings.TrimSpace(req.Qty.String()); q != "" {
		qty, err := parseQty(q)
		if err != nil {
			return models.Item{}, err
		}
		merged.Qty = models.FlexString(qty)
	}
	if p := strings.TrimSpace(req.Price.String()); p != "" {
		price, err := parseAmount(p)
		if err != nil {
			return models.Item{}, fmt.Errorf("price: %w", err)
		}
		merged.Price = models.FlexString(price)
	}

	customer := strings.TrimSpace(req.CustomerName)
	if customer == "" {
		customer = models.NA
	}
	merged.CustomerName = customer

	due, err := parseDue(req.DuePrice.String())
	if err != nil {
		return models.Item{}, err
	}
	merged.DuePrice = models.FlexString(due)

	if err := s.store.UpdateByUID(ctx, id, merged); err != nil {
		return models.Item{}, fmt.Errorf("update record: %w", err)
	}

	s.logger.Info("record updated", zap.String("uid", id))
	return normalize(merged), nil
}

// Delete removes the record with the given uid. A missing record surfaces as
// ErrNotFound, never silently succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteByUID(ctx, id); err != nil {
		return err
	}

	s.logger.Info("record deleted", zap.String("uid", id))
	return nil
}

// BulkDelete issues one delete per uid concurrently. Every delete is
// attempted even when some fail; there is no rollback. The returned error is
// non-nil iff at least one delete failed.
func (s *Service) BulkDelete(ctx context.Context, ids []string) (models.BulkDeleteResult, error) {
	type outcome struct {
		uid string
		err error
	}

	results := make(chan outcome, len(ids))
	for _, id := range ids {
		go func(id string) {
			results <- outcome{uid: id, err: s.store.DeleteByUID(ctx, id)}
		}(id)
	}

	failed := make(map[string]error, len(ids))
	for range ids {
		o := <-results
		if o.err != nil {
			failed[o.uid] = o.err
		}
	}

	var result models.BulkDeleteResult
	for _, id := range ids {
		if err, ok := failed[id]; ok {
			s.logger.Warn("bulk delete: record failed", zap.String("uid", id), zap.Error(err))
			result.Failed = append(result.Failed, id)
		} else {
			result.Deleted = append(result.Deleted, id)
		}
	}

	if len(result.Failed) > 0 {
		return result, fmt.Errorf("bulk delete: %d of %d records failed", len(result.Failed), len(ids))
	}

	return result, nil
}

func (s *Service) findRaw(ctx context.Context, id string) (models.RawItem, error) {
	raws, err := s.store.ListAll(ctx)
	if err != nil {
		return models.RawItem{}, fmt.Errorf("lookup record %s: %w", id, err)
	}

	for _, raw := range raws {
		if raw.UID == id {
			return raw, nil
		}
	}

	return models.RawItem{}, fmt.Errorf("record %s: %w", id, apperrors.ErrNotFound)
}

// normalize converts a wire record into the domain view: dates become
// canonical YYYY-MM-DD (legacy serial encodings included) and a display
// rendering is attached. Values that cannot be interpreted as dates pass
// through unchanged so the row still renders.
func normalize(raw models.RawItem) models.Item {
	rawDate := strings.TrimSpace(raw.Date.String())

	normalized := rawDate
	if t, ok := dates.Parse(rawDate); ok {
		normalized = t.Format(dates.StorageLayout)
	}

	return models.Item{
		UID:          raw.UID,
		Date:         normalized,
		DisplayDate:  dates.ToDisplay(rawDate),
		ItemName:     raw.ItemName,
		Qty:          raw.Qty.String(),
		CustomerName: raw.CustomerName,
		Price:        raw.Price.String(),
		DuePrice:     raw.DuePrice.String(),
	}
}

// sortKey parses the normalized date for ordering. Records without a usable
// date sort last, mirroring how the sheet's own views treat them.
func sortKey(item models.Item) time.Time {
	if t, ok := dates.Parse(item.Date); ok {
		return t
	}
	return time.Time{}
}

func parseAmount(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("value is required: %w", apperrors.ErrValidation)
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return "", fmt.Errorf("value %q is not a number: %w", trimmed, apperrors.ErrValidation)
	}
	if d.IsNegative() {
		return "", fmt.Errorf("value %q must not be negative: %w", trimmed, apperrors.ErrValidation)
	}

	return trimmed, nil
}

func parseQty(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "1", nil
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return "", fmt.Errorf("qty %q must be a positive integer: %w", trimmed, apperrors.ErrValidation)
	}

	return trimmed, nil
}

func parseDue(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == models.NA {
		return models.NA, nil
	}

	if _, err := parseAmount(trimmed); err != nil {
		return "", fmt.Errorf("due_price: %w", err)
	}

	return trimmed, nil
}
