package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var workbookHeader = []any{
	"NOME", "FUNÇÃO", "EMPRESA", "VALOR MENSAL META", "OBSERVAÇÃO",
	"BATEU_PRODUCAO", "BATEU_TMG_GERAL", "BATEU_TMA_ANALISTA", "BATEU_TEMPO_FILA", "BATEU_CONFORMIDADE",
}

func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestWorkbookSource_LoadMonth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "RESUMO PARA PAINEL - ANALISTAS.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"JANEIRO": {
			workbookHeader,
			{"Jane Doe", "Analista", "ACME", 1000, "", "sim", "sim", "sim", "nao", "sim"},
			{"John Roe", "Supervisor", "ACME", 2500, "", "sim", "sim", "sim", "sim", "sim"},
		},
		"MARÇO": {
			workbookHeader,
			{"Jane Doe", "Analista", "ACME", 1200, "licença", "sim", "sim", "sim", "sim", "sim"},
		},
		"VAZIO": {},
	})
	ctx := context.Background()
	src := NewWorkbookSource(path, dir)

	t.Run("reads sheet rows", func(t *testing.T) {
		table, err := src.LoadMonth(ctx, "JANEIRO")
		require.NoError(t, err)

		assert.Equal(t, "JANEIRO", table.Month)
		assert.True(t, table.Has("FUNCAO"))
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "Jane Doe", table.Rows[0].Get("NOME"))
		assert.Equal(t, "1000", table.Rows[0].Get("VALOR MENSAL META"))
		assert.Equal(t, "nao", table.Rows[0].Get("BATEU_TEMPO_FILA"))
	})

	t.Run("sheet name matched without accents", func(t *testing.T) {
		table, err := src.LoadMonth(ctx, "MARCO")
		require.NoError(t, err)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "licença", table.Rows[0].Get("OBSERVAÇÃO"))
	})

	t.Run("empty sheet", func(t *testing.T) {
		table, err := src.LoadMonth(ctx, "VAZIO")
		require.NoError(t, err)
		assert.Empty(t, table.Columns)
		assert.Empty(t, table.Rows)
	})

	t.Run("missing sheet", func(t *testing.T) {
		_, err := src.LoadMonth(ctx, "ABRIL")
		assert.ErrorIs(t, err, ErrSheetNotFound)
		assert.Contains(t, err.Error(), "ABRIL")
	})

	t.Run("canceled context", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.LoadMonth(canceled, "JANEIRO")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWorkbookSource_Path(t *testing.T) {
	dir := t.TempDir()

	t.Run("nothing to read", func(t *testing.T) {
		src := NewWorkbookSource(filepath.Join(dir, "missing.xlsx"), dir)
		_, err := src.Path()
		assert.ErrorIs(t, err, ErrWorkbookNotFound)
	})

	t.Run("falls back to pattern in data dir", func(t *testing.T) {
		candidate := filepath.Join(dir, "RESUMO PARA PAINEL - ANALISTAS (1).xlsx")
		writeWorkbook(t, candidate, map[string][][]any{"JANEIRO": {workbookHeader}})

		src := NewWorkbookSource(filepath.Join(dir, "missing.xlsx"), dir)
		got, err := src.Path()
		require.NoError(t, err)
		assert.Equal(t, candidate, got)
	})

	t.Run("custom pattern", func(t *testing.T) {
		src := NewWorkbookSource("", dir, WithFallbackPattern("*.csv"))
		_, err := src.Path()
		assert.ErrorIs(t, err, ErrWorkbookNotFound)
	})
}

func TestWorkbookSource_DateColumns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datas.xlsx")
	writeWorkbook(t, path, map[string][][]any{
		"JANEIRO": {
			{"NOME", "DATA DE ADMISSÃO", "VALOR MENSAL META"},
			{"Jane Doe", 45292, 1000},
			{"John Roe", "01/02/2020", 800},
		},
	})
	ctx := context.Background()

	t.Run("serials become ISO dates", func(t *testing.T) {
		table, err := NewWorkbookSource(path, dir).LoadMonth(ctx, "JANEIRO")
		require.NoError(t, err)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, "2024-01-01", table.Rows[0].Get("DATA DE ADMISSAO"))
		assert.Equal(t, "01/02/2020", table.Rows[1].Get("DATA DE ADMISSAO"))
		assert.Equal(t, "1000", table.Rows[0].Get("VALOR MENSAL META"))
	})

	t.Run("no date columns keeps raw serials", func(t *testing.T) {
		table, err := NewWorkbookSource(path, dir, WithDateColumns()).LoadMonth(ctx, "JANEIRO")
		require.NoError(t, err)
		assert.Equal(t, "45292", table.Rows[0].Get("DATA DE ADMISSÃO"))
	})
}
