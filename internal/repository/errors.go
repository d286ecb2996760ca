package repository

import "errors"

var (
	ErrWorkbookNotFound = errors.New("workbook not found")
	ErrSheetNotFound    = errors.New("sheet not found")
	ErrInvalidTable     = errors.New("invalid table name")
)
