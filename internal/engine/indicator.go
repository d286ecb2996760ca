package engine

import "github.com/godilite/bonus-report/pkg/textnorm"

// Kind is a tracked performance indicator. Weight-table names that do not
// resolve to a tracked kind are PassThrough and always count as met.
type Kind int

const (
	PassThrough Kind = iota
	Production
	GeneralResolutionTime
	PersonalResolutionTime
	QueueTime
	Compliance
)

type kindInfo struct {
	name    string
	label   string
	column  string
	aliases []string
}

var kindTable = map[Kind]kindInfo{
	PassThrough: {name: "pass_through"},
	Production: {
		name:    "production",
		label:   "Production",
		column:  "BATEU_PRODUCAO",
		aliases: []string{"PRODUÇÃO", "PRODUCTION"},
	},
	GeneralResolutionTime: {
		name:    "general_resolution_time",
		label:   "General Queue Resolution Time",
		column:  "BATEU_TMG_GERAL",
		aliases: []string{"TEMPO MÉDIO GERAL DE ANÁLISE", "TMG GERAL", "GENERAL_TTR", "GENERAL QUEUE TIME TO RESOLUTION"},
	},
	PersonalResolutionTime: {
		name:    "personal_resolution_time",
		label:   "Personal Resolution Time",
		column:  "BATEU_TMA_ANALISTA",
		aliases: []string{"TEMPO MÉDIO DE ANÁLISE DO ANALISTA", "TMA ANALISTA", "PERSONAL_TTR", "PERSONAL TIME TO RESOLUTION"},
	},
	QueueTime: {
		name:    "queue_time",
		label:   "Queue Time",
		column:  "BATEU_TEMPO_FILA",
		aliases: []string{"TEMPO MÉDIO DA FILA", "QUEUE_TIME", "QUEUE TIME", "QUEUE WAIT TIME"},
	},
	Compliance: {
		name:    "compliance",
		label:   "Compliance",
		column:  "BATEU_CONFORMIDADE",
		aliases: []string{"CONFORMIDADE", "COMPLIANCE"},
	},
}

var tracked = []Kind{Production, GeneralResolutionTime, PersonalResolutionTime, QueueTime, Compliance}

// aliasIndex maps normalized aliases to their kind.
var aliasIndex = func() map[string]Kind {
	idx := make(map[string]Kind)
	for _, k := range tracked {
		info := kindTable[k]
		idx[textnorm.Normalize(info.name)] = k
		for _, a := range info.aliases {
			idx[textnorm.Normalize(a)] = k
		}
	}
	return idx
}()

// Tracked returns the indicator kinds that read a flag column, in display order.
func Tracked() []Kind {
	out := make([]Kind, len(tracked))
	copy(out, tracked)
	return out
}

// ResolveKind maps a weight-table indicator name to its kind.
func ResolveKind(name string) Kind {
	if k, ok := aliasIndex[textnorm.Normalize(name)]; ok {
		return k
	}
	return PassThrough
}

// Label is the human label reported when the indicator is missed.
func (k Kind) Label() string { return kindTable[k].label }

// Column is the header of the flag column the indicator reads. Empty for PassThrough.
func (k Kind) Column() string { return kindTable[k].column }

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return "unknown"
}
