package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMonthTable(t *testing.T) {
	header := []string{"Nome", "Função", "", "Valor Mensal Meta", "NOME"}
	lines := [][]string{
		{"Jane Doe", "Analista", "x", "1000"},
		{"", "", "", ""},
		{"John Roe"},
	}

	table := NewMonthTable("JANEIRO", header, lines)

	assert.Equal(t, "JANEIRO", table.Month)
	assert.Equal(t, []string{"NOME", "FUNCAO", "VALOR MENSAL META"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Jane Doe", table.Rows[0].Get("nome"))
	assert.Equal(t, "Analista", table.Rows[0].Get("FUNÇÃO"))
	assert.Equal(t, "1000", table.Rows[0].Get("VALOR MENSAL META"))
	assert.Equal(t, "", table.Rows[1].Get("FUNÇÃO"))
}

func TestMonthTable_Missing(t *testing.T) {
	table := NewMonthTable("MARÇO", []string{"NOME", "FUNCAO"}, nil)

	assert.True(t, table.Has("Função"))
	assert.False(t, table.Has("OBSERVAÇÃO"))
	assert.Equal(t, []string{"VALOR MENSAL META", "BATEU_PRODUCAO"},
		table.Missing("NOME", "VALOR MENSAL META", "FUNÇÃO", "BATEU_PRODUCAO"))
	assert.Empty(t, table.Missing("NOME"))
	assert.Empty(t, table.Rows)
}
