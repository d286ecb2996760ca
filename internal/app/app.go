package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/godilite/bonus-report/internal/config"
	"github.com/godilite/bonus-report/internal/report"
	"github.com/godilite/bonus-report/internal/repository"
	"github.com/godilite/bonus-report/internal/service"
	"github.com/godilite/bonus-report/internal/weights"
	dbbuilder "github.com/godilite/bonus-report/pkg/database"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

type App struct {
	logger  *zap.Logger
	dbPool  *sql.DB
	service *service.ReportService
}

// RunOptions controls one report run.
type RunOptions struct {
	Format string
	Top    int
	// Progress, when set, receives a progress bar advanced per loaded month.
	Progress io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	book, err := weights.Load(cfg.WeightsPath)
	if err != nil {
		return nil, err
	}
	table, err := book.ForRole(cfg.Role)
	if err != nil {
		return nil, err
	}
	logger.Info("Weight book loaded",
		zap.String("path", cfg.WeightsPath),
		zap.String("role", cfg.Role),
		zap.Int("indicators", table.Len()),
		zap.Float64("sum", table.Sum()))

	a := &App{logger: logger}

	var source service.RecordSource
	switch cfg.SourceKind {
	case config.SourceSQL:
		a.dbPool, err = dbbuilder.New(
			dbbuilder.WithDriver(cfg.DBDriver),
			dbbuilder.WithDataSource(cfg.DBDSN),
		)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		logger.Info("Database pool initialized", zap.String("driver", cfg.DBDriver))

		source, err = repository.NewSQLSource(a.dbPool, cfg.DBTable)
		if err != nil {
			a.Close()
			return nil, err
		}
	default:
		wb := repository.NewWorkbookSource(cfg.WorkbookPath, cfg.DataDir)
		path, err := wb.Path()
		if err != nil {
			return nil, err
		}
		logger.Info("Workbook resolved", zap.String("path", path))
		source = wb
	}

	a.service = service.NewReportService(source, table, logger,
		service.WithMonths(cfg.Months...),
		service.WithRoles(cfg.Role),
		service.WithLoadTimeout(cfg.LoadTimeout),
	)
	return a, nil
}

// Months returns the configured quarter months.
func (a *App) Months() []string { return a.service.Months() }

// Report builds the report selected by q and writes it to w.
func (a *App) Report(ctx context.Context, w io.Writer, q service.Query, opts RunOptions) error {
	if opts.Progress != nil {
		months, _ := a.service.PeriodMonths(q.Period)
		bar := progressbar.NewOptions(len(months),
			progressbar.OptionSetWriter(opts.Progress),
			progressbar.OptionSetDescription("loading months"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		q.OnMonthLoaded = func(string) { _ = bar.Add(1) }
		defer bar.Finish()
	}

	rep, err := a.service.BuildReport(ctx, q)
	if err != nil {
		return err
	}
	return report.Write(w, opts.Format, rep, opts.Top)
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.dbPool != nil {
		if err := a.dbPool.Close(); err != nil {
			a.logger.Error("database shutdown error", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
