package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/godilite/bonus-report/internal/repository/models"
	"github.com/godilite/bonus-report/pkg/textnorm"
	"github.com/xuri/excelize/v2"
)

// DefaultWorkbookPattern matches the exported summary workbook inside the data directory.
const DefaultWorkbookPattern = "RESUMO PARA PAINEL - ANALISTAS*.xls*"

// DefaultDateColumns are read as dates; raw cells hold Excel serials there.
var DefaultDateColumns = []string{"DATA DE ADMISSÃO"}

const dateLayout = "2006-01-02"

// WorkbookSource reads month tables from an xlsx workbook with one sheet per month.
type WorkbookSource struct {
	path        string
	dataDir     string
	pattern     string
	dateColumns []string
}

type WorkbookOption func(*WorkbookSource)

// WithFallbackPattern sets the glob used inside the data directory when the
// configured workbook path does not exist.
func WithFallbackPattern(pattern string) WorkbookOption {
	return func(s *WorkbookSource) { s.pattern = pattern }
}

// WithDateColumns replaces the columns whose serial values are converted to
// ISO dates.
func WithDateColumns(columns ...string) WorkbookOption {
	return func(s *WorkbookSource) { s.dateColumns = columns }
}

func NewWorkbookSource(path, dataDir string, opts ...WorkbookOption) *WorkbookSource {
	s := &WorkbookSource{
		path:        path,
		dataDir:     dataDir,
		pattern:     DefaultWorkbookPattern,
		dateColumns: DefaultDateColumns,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path resolves the workbook that will be read.
func (s *WorkbookSource) Path() (string, error) {
	if s.path != "" {
		if _, err := os.Stat(s.path); err == nil {
			return s.path, nil
		}
	}
	if s.dataDir != "" {
		matches, err := filepath.Glob(filepath.Join(s.dataDir, s.pattern))
		if err == nil && len(matches) > 0 {
			sort.Strings(matches)
			return matches[0], nil
		}
	}
	return "", fmt.Errorf("%w: %s (or %s in %s)", ErrWorkbookNotFound, s.path, s.pattern, s.dataDir)
}

// LoadMonth reads the sheet named after month. The first sheet row is the header.
func (s *WorkbookSource) LoadMonth(ctx context.Context, month string) (models.MonthTable, error) {
	if err := ctx.Err(); err != nil {
		return models.MonthTable{}, err
	}

	path, err := s.Path()
	if err != nil {
		return models.MonthTable{}, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.MonthTable{}, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheet, err := matchSheet(f.GetSheetList(), month)
	if err != nil {
		return models.MonthTable{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.MonthTable{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return models.MonthTable{Month: month}, nil
	}
	s.convertDates(rows[0], rows[1:])
	return models.NewMonthTable(month, rows[0], rows[1:]), nil
}

// convertDates rewrites numeric cells of the date columns in place. Cells
// that are not serials, such as dates typed as text, are left as they are.
func (s *WorkbookSource) convertDates(header []string, lines [][]string) {
	for col, name := range header {
		if !slices.ContainsFunc(s.dateColumns, func(c string) bool { return textnorm.Equal(c, name) }) {
			continue
		}
		for _, line := range lines {
			if col >= len(line) {
				continue
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(line[col]), 64)
			if err != nil {
				continue
			}
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				line[col] = t.Format(dateLayout)
			}
		}
	}
}

// matchSheet prefers an exact sheet name and falls back to a normalized match,
// so "MARCO" finds "MARÇO".
func matchSheet(sheets []string, month string) (string, error) {
	for _, s := range sheets {
		if s == month {
			return s, nil
		}
	}
	for _, s := range sheets {
		if textnorm.Equal(s, month) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSheetNotFound, month)
}
