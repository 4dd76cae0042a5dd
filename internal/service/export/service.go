// Package export renders filtered records as a downloadable CSV. The cell
// format (quoting, the ₹ prefix, the literal NA) matches the files users have
// been downloading from the sheet for years, so rows are assembled by hand
// rather than through encoding/csv, whose quoting rules differ.
package export

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dkpatel/salestrack/internal/apperrors"
	"github.com/dkpatel/salestrack/internal/domain/models"
)

const headerRow = `UID,Date,Item Name,Quantity,Customer Name,Price (₹),Due Price (₹)`

// Lister is the slice of the items service the exporter needs.
type Lister interface {
	List(ctx context.Context) ([]models.Item, error)
}

// File is a rendered export ready to be sent as an attachment.
type File struct {
	Name    string
	Content []byte
}

// Service builds CSV exports over the normalized record list.
type Service struct {
	items  Lister
	logger *zap.Logger
}

// NewService wires a new export service instance.
func NewService(items Lister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{items: items, logger: logger}
}

// Export fetches all records, keeps the ones whose normalized date is in the
// requested set and renders them under the fixed header row.
func (s *Service) Export(ctx context.Context, req models.ExportRequest) (File, error) {
	if len(req.Dates) == 0 {
		return File{}, fmt.Errorf("at least one date is required: %w", apperrors.ErrValidation)
	}

	items, err := s.items.List(ctx)
	if err != nil {
		return File{}, fmt.Errorf("export: %w", err)
	}

	wanted := make(map[string]struct{}, len(req.Dates))
	for _, d := range req.Dates {
		wanted[d] = struct{}{}
	}

	rows := []string{headerRow}
	for _, item := range items {
		if _, ok := wanted[item.Date]; !ok {
			continue
		}
		rows = append(rows, renderRow(item))
	}

	file := File{
		Name:    filename(req),
		Content: []byte(strings.Join(rows, "\n")),
	}

	s.logger.Info("export rendered",
		zap.String("filename", file.Name),
		zap.Int("rows", len(rows)-1),
		zap.Int("dates", len(req.Dates)))

	return file, nil
}

func renderRow(item models.Item) string {
	due := models.NA
	if item.HasDue() {
		due = "₹" + item.DuePrice
	}

	fields := []string{
		quote(item.UID),
		item.Date,
		quote(item.ItemName),
		item.QtyOrDefault(),
		quote(item.CustomerName),
		"₹" + item.Price,
		due,
	}

	return strings.Join(fields, ",")
}

func quote(s string) string {
	return `"` + s + `"`
}

func filename(req models.ExportRequest) string {
	switch req.ExportType {
	case models.ExportSingle:
		return fmt.Sprintf("items-%s.csv", req.Dates[0])
	case models.ExportMultiple:
		return "items-multiple-dates.csv"
	default:
		return fmt.Sprintf("items-%s-to-%s.csv", req.Dates[0], req.Dates[len(req.Dates)-1])
	}
}
