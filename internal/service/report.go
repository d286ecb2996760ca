package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/godilite/bonus-report/internal/engine"
	"github.com/godilite/bonus-report/internal/repository/models"
	"github.com/godilite/bonus-report/pkg/textnorm"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLoadTimeout = 30 * time.Second
	weightSumTolerance = 1e-6
)

// QuarterPeriods are the period names that select every configured month.
var QuarterPeriods = []string{"TRIMESTRE", "QUARTER"}

var (
	DefaultMonths = []string{"JANEIRO", "FEVEREIRO", "MARÇO"}
	DefaultRoles  = []string{"ANALISTA", "ANALYST"}
)

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrSourceFailure  = errors.New("source failure")
	ErrNoMonths       = errors.New("no months configured")
)

// ReportService turns month tables into bonus reports. It owns the analyst
// role filter and the period handling; the bonus math lives in engine.
type ReportService struct {
	source      RecordSource
	weights     engine.WeightTable
	logger      *zap.Logger
	months      []string
	roles       map[string]struct{}
	loadTimeout time.Duration
}

type Option func(*ReportService)

// WithMonths sets the months that make up the quarter, in order.
func WithMonths(months ...string) Option {
	return func(s *ReportService) { s.months = slices.Clone(months) }
}

// WithRoles replaces the roles that are evaluated.
func WithRoles(roles ...string) Option {
	return func(s *ReportService) { s.roles = roleSet(roles) }
}

func WithLoadTimeout(d time.Duration) Option {
	return func(s *ReportService) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// NewReportService creates a ReportService over source using weights.
func NewReportService(source RecordSource, weights engine.WeightTable, logger *zap.Logger, opts ...Option) *ReportService {
	if source == nil {
		panic("source must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}

	s := &ReportService{
		source:      source,
		weights:     weights,
		logger:      logger.Named("report"),
		months:      slices.Clone(DefaultMonths),
		roles:       roleSet(DefaultRoles),
		loadTimeout: defaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	if sum := weights.Sum(); math.Abs(sum-1) > weightSumTolerance {
		s.logger.Warn("indicator weights do not sum to 1",
			zap.Float64("sum", sum),
			zap.Int("indicators", weights.Len()))
	}
	return s
}

// Months returns the configured quarter months.
func (s *ReportService) Months() []string { return slices.Clone(s.months) }

// PeriodMonths resolves a period name to the months it covers and reports
// whether it is the aggregated quarter.
func (s *ReportService) PeriodMonths(period string) ([]string, bool) {
	p := textnorm.Normalize(period)
	if p == "" || slices.Contains(QuarterPeriods, p) {
		return s.Months(), true
	}
	for _, m := range s.months {
		if textnorm.Normalize(m) == p {
			return []string{m}, false
		}
	}
	return []string{strings.TrimSpace(period)}, false
}

// EvaluateMonth loads one month and evaluates every analyst row in it.
func (s *ReportService) EvaluateMonth(ctx context.Context, month string) ([]engine.EvaluationResult, error) {
	tables, err := s.loadMonths(ctx, []string{month}, nil)
	if err != nil {
		return nil, err
	}
	return s.evaluate(tables[0]), nil
}

// BuildReport builds the report of q.Period: one month as is, or the quarter
// aggregated per analyst. Filters, sorting and KPIs are applied last.
func (s *ReportService) BuildReport(ctx context.Context, q Query) (Report, error) {
	months, quarter := s.PeriodMonths(q.Period)
	if len(months) == 0 {
		return Report{}, ErrNoMonths
	}

	tables, err := s.loadMonths(ctx, months, q.OnMonthLoaded)
	if err != nil {
		return Report{}, err
	}

	var results []engine.AggregatedResult
	if quarter {
		var all []engine.EvaluationResult
		for _, t := range tables {
			all = append(all, s.evaluate(t)...)
		}
		results = engine.Aggregate(all, identityKey(tables))
	} else {
		for _, r := range s.evaluate(tables[0]) {
			results = append(results, engine.FromEvaluation(r))
		}
	}

	report := Report{
		Period:  periodLabel(q.Period, months, quarter),
		Quarter: quarter,
		Months:  months,
		Options: filterOptions(results),
	}
	for _, r := range results {
		if q.Filter.matches(r) {
			report.Rows = append(report.Rows, Row{AggregatedResult: r, Status: StatusFor(r.Percentage)})
		}
	}
	slices.SortStableFunc(report.Rows, func(a, b Row) int {
		return cmp.Compare(b.Percentage, a.Percentage)
	})
	report.Summary = summarize(report.Rows)

	s.logger.Info("report built",
		zap.String("period", report.Period),
		zap.Strings("months", months),
		zap.Int("rows", len(report.Rows)),
		zap.Float64("received", report.Summary.Received),
		zap.Float64("lost", report.Summary.Lost))

	return report, nil
}

func (s *ReportService) loadMonths(ctx context.Context, months []string, onLoaded func(string)) ([]models.MonthTable, error) {
	ctx, cancel := context.WithTimeout(ctx, s.loadTimeout)
	defer cancel()

	tables := make([]models.MonthTable, len(months))
	g, gctx := errgroup.WithContext(ctx)
	for i, month := range months {
		g.Go(func() error {
			t, err := s.source.LoadMonth(gctx, month)
			if err != nil {
				return fmt.Errorf("%w: month %s: %w", ErrSourceFailure, month, err)
			}
			if err := checkColumns(t); err != nil {
				return err
			}
			tables[i] = t
			if onLoaded != nil {
				onLoaded(month)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load months", zap.Strings("months", months), zap.Error(err))
		return nil, err
	}
	return tables, nil
}

func (s *ReportService) evaluate(t models.MonthTable) []engine.EvaluationResult {
	records := make([]engine.AnalystRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		if _, ok := s.roles[textnorm.Normalize(row.Get(ColumnRole))]; !ok {
			continue
		}
		records = append(records, toRecord(t.Month, row))
	}

	results := engine.EvaluateAll(records, s.weights)
	s.logger.Debug("month evaluated",
		zap.String("month", t.Month),
		zap.Int("rows", len(t.Rows)),
		zap.Int("analysts", len(results)))
	return results
}

func (f Filter) matches(r engine.AggregatedResult) bool {
	if f.Name != "" && !textnorm.Contains(r.Name, f.Name) {
		return false
	}
	if f.Site != "" && r.Site != f.Site {
		return false
	}
	if f.Tenure != "" && r.Tenure != f.Tenure {
		return false
	}
	return true
}

func filterOptions(results []engine.AggregatedResult) FilterOptions {
	var opts FilterOptions
	for _, r := range results {
		if r.Site != "" && !slices.Contains(opts.Sites, r.Site) {
			opts.Sites = append(opts.Sites, r.Site)
		}
		if r.Tenure != "" && !slices.Contains(opts.Tenures, r.Tenure) {
			opts.Tenures = append(opts.Tenures, r.Tenure)
		}
	}
	slices.Sort(opts.Sites)
	slices.Sort(opts.Tenures)
	return opts
}

func summarize(rows []Row) Summary {
	var sum Summary
	for _, r := range rows {
		sum.TotalGoal += r.Goal
		sum.Received += r.Received
		sum.Lost += r.Lost
	}
	sum.Analysts = len(rows)
	sum.Fulfilment = engine.Percentage(sum.Received, sum.TotalGoal)
	return sum
}

func periodLabel(period string, months []string, quarter bool) string {
	if quarter {
		if p := strings.TrimSpace(period); p != "" {
			return strings.ToUpper(p)
		}
		return QuarterPeriods[0]
	}
	return months[0]
}
