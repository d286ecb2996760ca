package service

import (
	"context"

	"github.com/godilite/bonus-report/internal/repository/models"
)

// RecordSource loads the raw table of one month.
type RecordSource interface {
	LoadMonth(ctx context.Context, month string) (models.MonthTable, error)
}
