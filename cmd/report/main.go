// Command report builds one performance report from workbooks on disk and
// prints it as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/cellpulse/internal/adapters/ingest"
	app "github.com/okian/cellpulse/internal/app"
	"github.com/okian/cellpulse/internal/config"
	"github.com/okian/cellpulse/internal/domain/model"
	"github.com/okian/cellpulse/internal/domain/overlay"
	"github.com/okian/cellpulse/internal/domain/report"
	"github.com/okian/cellpulse/pkg/logger"
)

const dateLayout = "2006-01-02"

var errUsage = errors.New("invalid arguments")

type options struct {
	kind   report.Kind
	file   string
	cp1    string
	cp2    string
	date   string
	branch string
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, time.Now); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			os.Stderr.WriteString("report: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	var kind string
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&kind, "kind", string(report.KindSales), "Report kind: sales, staff or cellsum")
	fs.StringVar(&o.file, "file", "", "Workbook for sales and staff reports")
	fs.StringVar(&o.cp1, "cp1", "", "First branch workbook for cellsum")
	fs.StringVar(&o.cp2, "cp2", "", "Second branch workbook for cellsum")
	fs.StringVar(&o.date, "date", "", "Report date as YYYY-MM-DD (default: today)")
	fs.StringVar(&o.branch, "branch", "", "Branch name shown in the report")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	o.kind = report.Kind(kind)
	switch {
	case !o.kind.Valid():
		return o, fmt.Errorf("%w: unknown kind %q", errUsage, kind)
	case o.kind == report.KindCellsum && (o.cp1 == "" || o.cp2 == ""):
		return o, fmt.Errorf("%w: cellsum needs -cp1 and -cp2", errUsage)
	case o.kind != report.KindCellsum && o.file == "":
		return o, fmt.Errorf("%w: %s needs -file", errUsage, o.kind)
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, now func() time.Time) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	dc := model.NewDateContext(now())
	if o.date != "" {
		t, err := time.Parse(dateLayout, o.date)
		if err != nil {
			return fmt.Errorf("%w: -date must be YYYY-MM-DD", errUsage)
		}
		dc = model.NewDateContext(t)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(stderr)); err != nil {
		return err
	}
	_ = logger.SetLevelString(cfg.LogLevel)

	svc := app.New(
		app.WithLogger(logger.Named("report")),
		app.WithTargetTable(overlay.NewTargetTable(cfg.StrategicTargets, cfg.StrategicUnit)),
		app.WithSentinel(cfg.SentinelName),
		app.WithBranches(cfg.Branches...),
		app.WithClock(now),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	bundle, err := build(ctx, svc, o, dc)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

func build(ctx context.Context, svc *app.Service, o options, dc model.DateContext) (any, error) {
	switch o.kind {
	case report.KindStaff:
		staff, err := ingest.ReadStaffFile(o.file)
		if err != nil {
			return nil, err
		}
		return svc.Staff(ctx, report.StaffInput{Branch: o.branch, Staff: staff, Dates: dc})
	case report.KindCellsum:
		branches := make([]model.BranchRecords, 0, 2)
		for _, path := range []string{o.cp1, o.cp2} {
			records, err := ingest.ReadBrandFile(path)
			if err != nil {
				return nil, err
			}
			branches = append(branches, model.BranchRecords{Records: records})
		}
		return svc.Cellsum(ctx, report.CellsumInput{Branches: branches, Dates: dc})
	default:
		records, err := ingest.ReadBrandFile(o.file)
		if err != nil {
			return nil, err
		}
		return svc.Sales(ctx, report.SalesInput{Branch: o.branch, Records: records, Dates: dc})
	}
}
