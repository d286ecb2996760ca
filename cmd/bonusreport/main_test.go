package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/godilite/bonus-report/internal/config"
	"github.com/godilite/bonus-report/internal/report"
	"github.com/godilite/bonus-report/internal/service"
	"github.com/godilite/bonus-report/internal/weights"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	weightsPath := filepath.Join(dir, "pesos.json")
	require.NoError(t, os.WriteFile(weightsPath,
		[]byte(`{"ANALISTA": {"metas": {"PRODUÇÃO": 0.7, "CONFORMIDADE": 0.3}}}`), 0o600))

	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("JANEIRO")
	require.NoError(t, err)
	rows := [][]any{
		{"NOME", "FUNÇÃO", "VALOR MENSAL META", "BATEU_PRODUCAO", "BATEU_TMG_GERAL",
			"BATEU_TMA_ANALISTA", "BATEU_TEMPO_FILA", "BATEU_CONFORMIDADE"},
		{"Jane Doe", "Analista", "1.000,00", "sim", "sim", "sim", "sim", "nao"},
	}
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow("JANEIRO", fmt.Sprintf("A%d", i+1), &row))
	}
	workbook := filepath.Join(dir, "painel.xlsx")
	require.NoError(t, f.SaveAs(workbook))

	t.Setenv("APP_ENV", "production")
	t.Setenv("SOURCE_KIND", "xlsx")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("WORKBOOK_PATH", workbook)
	t.Setenv("WEIGHTS_PATH", weightsPath)
	t.Setenv("ROLE", "ANALISTA")
	t.Setenv("PERIOD_MONTHS", "JANEIRO")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMonthsCommand(t *testing.T) {
	setupEnv(t)
	t.Setenv("PERIOD_MONTHS", "ABRIL,MAIO,JUNHO")

	out, err := run(t, "months")
	require.NoError(t, err)
	assert.Equal(t, "ABRIL\nMAIO\nJUNHO\nTRIMESTRE aggregates all of the above\n", out)
}

func TestReportCommand_JSON(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "report", "--period", "janeiro", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Period string `json:"period"`
		Rows   []struct {
			Name     string   `json:"name"`
			Received float64  `json:"received"`
			Lost     float64  `json:"lost"`
			Missed   []string `json:"missed"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "JANEIRO", got.Period)
	require.Len(t, got.Rows, 1)
	assert.InDelta(t, 700, got.Rows[0].Received, 1e-9)
	assert.InDelta(t, 300, got.Rows[0].Lost, 1e-9)
	assert.Equal(t, []string{"Compliance"}, got.Rows[0].Missed)
}

func TestReportCommand_Errors(t *testing.T) {
	setupEnv(t)

	t.Run("unknown format", func(t *testing.T) {
		_, err := run(t, "report", "--format", "xml")
		assert.ErrorIs(t, err, report.ErrUnknownFormat)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Setenv("ROLE", "GERENTE")
		_, err := run(t, "report")
		assert.ErrorIs(t, err, weights.ErrRoleNotFound)
		assert.Equal(t, ExitConfigError, exitCode(err))
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitConfigError, exitCode(fmt.Errorf("wrap: %w", config.ErrInvalidConfig)))
	assert.Equal(t, ExitConfigError, exitCode(fmt.Errorf("%w: JANEIRO", service.ErrMissingColumns)))
	assert.Equal(t, ExitError, exitCode(fmt.Errorf("%w: timeout", service.ErrSourceFailure)))
}
