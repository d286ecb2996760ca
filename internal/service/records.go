package service

import (
	"fmt"
	"strings"

	"github.com/godilite/bonus-report/internal/engine"
	"github.com/godilite/bonus-report/internal/repository/models"
	"github.com/godilite/bonus-report/pkg/textnorm"
)

const (
	ColumnName     = "NOME"
	ColumnRole     = "FUNÇÃO"
	ColumnGoal     = "VALOR MENSAL META"
	ColumnNote     = "OBSERVAÇÃO"
	ColumnSite     = "EMPRESA"
	ColumnHireDate = "DATA DE ADMISSÃO"
	ColumnTenure   = "TEMPO DE CASA"
)

// identityColumns lists the grouping columns in key order.
var identityColumns = []struct {
	column string
	field  engine.Field
}{
	{ColumnSite, engine.FieldSite},
	{ColumnName, engine.FieldName},
	{ColumnRole, engine.FieldRole},
	{ColumnHireDate, engine.FieldHireDate},
	{ColumnTenure, engine.FieldTenure},
}

// RequiredColumns lists the columns every month table must carry.
func RequiredColumns() []string {
	cols := []string{ColumnName, ColumnRole, ColumnGoal}
	for _, k := range engine.Tracked() {
		cols = append(cols, k.Column())
	}
	return cols
}

func checkColumns(t models.MonthTable) error {
	missing := t.Missing(RequiredColumns()...)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: month %s: %s", ErrMissingColumns, t.Month, strings.Join(missing, ", "))
}

func toRecord(month string, row models.Row) engine.AnalystRecord {
	rec := engine.AnalystRecord{
		Identity: engine.Identity{
			Name:     strings.TrimSpace(row.Get(ColumnName)),
			Role:     strings.TrimSpace(row.Get(ColumnRole)),
			Site:     strings.TrimSpace(row.Get(ColumnSite)),
			Tenure:   strings.TrimSpace(row.Get(ColumnTenure)),
			HireDate: strings.TrimSpace(row.Get(ColumnHireDate)),
		},
		Month: month,
		Goal:  engine.ParseAmount(row.Get(ColumnGoal)),
		Note:  row.Get(ColumnNote),
		Flags: make(map[engine.Kind]string, len(engine.Tracked())),
	}
	for _, k := range engine.Tracked() {
		rec.Flags[k] = row.Get(k.Column())
	}
	return rec
}

// identityKey picks the grouping fields whose columns appear in any of the tables.
func identityKey(tables []models.MonthTable) engine.IdentityKey {
	var key engine.IdentityKey
	for _, ic := range identityColumns {
		for _, t := range tables {
			if t.Has(ic.column) {
				key = append(key, ic.field)
				break
			}
		}
	}
	return key
}

func roleSet(roles []string) map[string]struct{} {
	set := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		if n := textnorm.Normalize(r); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}
