package calculation

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"loancalc/internal/domain/amortization"
)

const csvContentType = "text/csv"

var csvHeader = []string{"month", "payment", "principal", "interest", "balance", "cumulative"}

// ExportCSV renders the shared schedule as CSV. With an archive configured the
// file is rendered once and then served from object storage.
func (s *Service) ExportCSV(ctx context.Context, link string) ([]byte, error) {
	calc, schedule, err := s.Shared(ctx, link)
	if err != nil {
		return nil, err
	}

	key := archiveKey(calc.UniqueLink)
	if s.archive != nil {
		data, _, err := s.archive.Download(ctx, key)
		if err == nil {
			return data, nil
		}
		s.log.Debug("schedule not archived yet", "key", key, "error", err)
	}

	data, err := RenderCSV(schedule)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		if err := s.archive.Upload(ctx, key, data, csvContentType); err != nil {
			s.log.Warn("archive upload failed", "key", key, "error", err)
		}
	}

	return data, nil
}

func RenderCSV(schedule amortization.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, row := range schedule.Rows {
		record := []string{
			strconv.Itoa(row.Month),
			money(row.Payment),
			money(row.Principal),
			money(row.Interest),
			money(row.Balance),
			money(row.Cumulative),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", row.Month, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func archiveKey(link string) string {
	return "schedules/" + link + ".csv"
}

func money(v float64) string {
	return strconv.FormatFloat(amortization.Round2(v), 'f', 2, 64)
}
