package items

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DailySummary aggregates one calendar day of sales.
type DailySummary struct {
	Date        string
	Records     int
	Revenue     decimal.Decimal
	Outstanding decimal.Decimal
}

// SummarizeDay totals record count, revenue and outstanding due amounts for
// the given storage-form date. Rows with unparseable amounts are skipped, not
// fatal; the sheet is hand-edited and the summary is informational.
func (s *Service) SummarizeDay(ctx context.Context, day string) (DailySummary, error) {
	items, err := s.List(ctx)
	if err != nil {
		return DailySummary{}, err
	}

	summary := DailySummary{
		Date:        day,
		Revenue:     decimal.Zero,
		Outstanding: decimal.Zero,
	}

	for _, item := range items {
		if item.Date != day {
			continue
		}
		summary.Records++

		price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
		if err != nil {
			s.logger.Debug("skip record with invalid price", zap.String("uid", item.UID), zap.String("price", item.Price))
			continue
		}
		summary.Revenue = summary.Revenue.Add(price)

		if item.HasDue() {
			if due, err := decimal.NewFromString(strings.TrimSpace(item.DuePrice)); err == nil {
				summary.Outstanding = summary.Outstanding.Add(due)
			}
		}
	}

	return summary, nil
}
