package weights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/godilite/bonus-report/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "ANALISTA": {
    "metas": {
      "PRODUÇÃO": 0.3,
      "TEMPO MÉDIO GERAL DE ANÁLISE": 0.2,
      "TEMPO MÉDIO DE ANÁLISE DO ANALISTA": 0.2,
      "TEMPO MÉDIO DA FILA": 0.15,
      "CONFORMIDADE": 0.15
    }
  },
  "Supervisor": {
    "PRODUÇÃO": 1
  }
}`

func TestParse(t *testing.T) {
	book, err := Parse([]byte(sampleJSON))
	require.NoError(t, err)
	assert.Equal(t, []string{"ANALISTA", "SUPERVISOR"}, book.Roles())

	t.Run("order preserved", func(t *testing.T) {
		table, err := book.ForRole("analista")
		require.NoError(t, err)

		entries := table.Entries()
		require.Len(t, entries, 5)
		kinds := make([]engine.Kind, len(entries))
		for i, e := range entries {
			kinds[i] = e.Kind()
		}
		assert.Equal(t, []engine.Kind{
			engine.Production,
			engine.GeneralResolutionTime,
			engine.PersonalResolutionTime,
			engine.QueueTime,
			engine.Compliance,
		}, kinds)
		assert.InDelta(t, 1.0, table.Sum(), 1e-9)
	})

	t.Run("flat role body", func(t *testing.T) {
		table, err := book.ForRole("SUPERVISOR")
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := book.ForRole("GERENTE")
		assert.ErrorIs(t, err, ErrRoleNotFound)
		assert.Contains(t, err.Error(), "GERENTE")
	})
}

func TestParse_YAML(t *testing.T) {
	doc := "ANALYST:\n  metas:\n    production: 0.4\n    queue_time: 0.3\n    compliance: 0.3\n"
	book, err := Parse([]byte(doc))
	require.NoError(t, err)

	table, err := book.ForRole("Analyst")
	require.NoError(t, err)
	assert.Equal(t, engine.QueueTime, table.Entries()[1].Kind())
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want error
	}{
		"malformed":        {doc: `{"ANALISTA": `, want: ErrLoadWeights},
		"empty":            {doc: ``, want: ErrLoadWeights},
		"not an object":    {doc: `[1, 2]`, want: ErrLoadWeights},
		"role not object":  {doc: `{"ANALISTA": 1}`, want: ErrLoadWeights},
		"metas not object": {doc: `{"ANALISTA": {"metas": [0.5]}}`, want: ErrLoadWeights},
		"text weight":      {doc: `{"ANALISTA": {"metas": {"PRODUÇÃO": "alto"}}}`, want: ErrInvalidWeight},
		"negative weight":  {doc: `{"ANALISTA": {"metas": {"PRODUÇÃO": -0.2}}}`, want: ErrInvalidWeight},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file names the path", func(t *testing.T) {
		path := filepath.Join(dir, "missing.json")
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrLoadWeights)
		assert.Contains(t, err.Error(), "missing.json")
	})

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "pesos_analistas.json")
		require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o600))

		book, err := Load(path)
		require.NoError(t, err)
		_, err = book.ForRole("ANALISTA")
		assert.NoError(t, err)
	})
}
