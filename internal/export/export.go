// Package export renders record lists for download. CSV is always available;
// Google Sheets is an optional second target.
package export

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/repository/sheets"
)

// CSV serializes the rows under the declared header. Column order follows
// the header declaration. Fields are wrapped in double quotes with no
// further escaping, matching what the download button always produced.
func CSV(header []string, rows [][]string) string {
	var b strings.Builder
	writeLine(&b, header)
	for _, row := range rows {
		b.WriteByte('\n')
		writeLine(&b, row)
	}
	return b.String()
}

func writeLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(f)
		b.WriteByte('"')
	}
}

// Service fans an export out to its targets.
type Service struct {
	sheets sheets.Repository
	logger *zap.Logger
}

// NewService wires an export service. sheetsRepo may be nil when the target
// is not configured.
func NewService(sheetsRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sheets: sheetsRepo, logger: logger}
}

// SheetsEnabled reports whether the Google Sheets target is available.
func (s *Service) SheetsEnabled() bool { return s.sheets != nil }

// ToSheets appends the header and rows to the named sheet tab.
func (s *Service) ToSheets(ctx context.Context, tab string, header []string, rows [][]string) error {
	if s.sheets == nil {
		return fmt.Errorf("sheets export target is not configured")
	}

	payload := make([][]interface{}, 0, len(rows)+1)
	payload = append(payload, toRow(header))
	for _, r := range rows {
		payload = append(payload, toRow(r))
	}

	sheetRange := fmt.Sprintf("%s!A:Z", tab)
	if err := s.sheets.AppendRows(ctx, sheetRange, payload); err != nil {
		return fmt.Errorf("export to sheet %s: %w", tab, err)
	}
	s.logger.Info("export appended to sheet", zap.String("tab", tab), zap.Int("rows", len(rows)))
	return nil
}

func toRow(fields []string) []interface{} {
	out := make([]interface{}, len(fields))
	for i, f := range fields {
		out[i] = f
	}
	return out
}
