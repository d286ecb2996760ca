package repository

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/godilite/bonus-report/internal/repository/models"
)

const (
	DefaultRecordsTable = "analyst_records"
	monthColumn         = "period_month"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// SQLSource reads month tables from a SQL table where every row carries its
// month in period_month and every other column is a record field.
type SQLSource struct {
	db    *sql.DB
	table string
}

// NewSQLSource returns a source over table, or DefaultRecordsTable when empty.
func NewSQLSource(db *sql.DB, table string) (*SQLSource, error) {
	if db == nil {
		return nil, fmt.Errorf("sql source: nil db")
	}
	if table == "" {
		table = DefaultRecordsTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}
	return &SQLSource{db: db, table: table}, nil
}

// LoadMonth selects the rows of month. A month without rows is an empty
// table that still carries the column set.
func (s *SQLSource) LoadMonth(ctx context.Context, month string) (models.MonthTable, error) {
	query := fmt.Sprintf(`SELECT * FROM %s WHERE %s = ?`, s.table, monthColumn)

	rows, err := s.db.QueryContext(ctx, query, month)
	if err != nil {
		return models.MonthTable{}, fmt.Errorf("query LoadMonth: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return models.MonthTable{}, fmt.Errorf("columns LoadMonth: %w", err)
	}

	skip := -1
	header := make([]string, 0, len(cols))
	for i, c := range cols {
		if strings.EqualFold(c, monthColumn) {
			skip = i
			continue
		}
		header = append(header, c)
	}

	var lines [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return models.MonthTable{}, fmt.Errorf("scan LoadMonth row: %w", err)
		}

		line := make([]string, 0, len(header))
		for i, c := range cells {
			if i == skip {
				continue
			}
			line = append(line, c.String)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return models.MonthTable{}, fmt.Errorf("iterate LoadMonth: %w", err)
	}

	return models.NewMonthTable(month, header, lines), nil
}
