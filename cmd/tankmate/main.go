// Command tankmate evaluates aquarium stocking selections against a species
// catalog and manages the catalog stores.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"tankmate/internal/catalog"
	"tankmate/internal/config"
	"tankmate/internal/core"
	"tankmate/internal/logging"
	"tankmate/pkg/domain"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var exitFunc = os.Exit

const usage = `usage: tankmate <command> [flags]

commands:
  evaluate   score a species selection (-select id=count, repeatable)
  search     list catalog species matching -q
  import     write a JSON catalog file into the configured store
`

func main() {
	code := cli(os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

func cli(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	ctx := context.Background()
	switch args[0] {
	case "evaluate":
		return runEvaluate(ctx, args[1:], stdout, stderr)
	case "search":
		return runSearch(ctx, args[1:], stdout, stderr)
	case "import":
		return runImport(ctx, args[1:], stdout, stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return exitUsage
	}
}

// selectionFlag collects repeated -select id=count values.
type selectionFlag []domain.SelectionEntry

func (s *selectionFlag) String() string {
	parts := make([]string, 0, len(*s))
	for _, e := range *s {
		parts = append(parts, e.SpeciesID+"="+e.Count)
	}
	return strings.Join(parts, ",")
}

func (s *selectionFlag) Set(value string) error {
	id, count, _ := strings.Cut(value, "=")
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("species id is required")
	}
	*s = append(*s, domain.SelectionEntry{SpeciesID: id, Count: strings.TrimSpace(count)})
	return nil
}

func runEvaluate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	var entries selectionFlag
	fs.Var(&entries, "select", "species selection as id=count (repeatable)")
	capSelection := fs.Bool("cap", false, "keep only the first recognized entries")
	temp := fs.Float64("temp", 0, "tank temperature in °C")
	ph := fs.Float64("ph", 0, "tank pH")
	volume := fs.Float64("volume", 0, "tank volume in litres")
	tankType := fs.String("type", "", "tank type (community, species-only)")
	dumpMetrics := fs.Bool("metrics", false, "write collected metrics to stderr")
	trace := fs.Bool("trace", false, "write JSON trace spans to stderr")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	for _, arg := range fs.Args() {
		if err := entries.Set(arg); err != nil {
			fmt.Fprintf(stderr, "invalid selection %q: %v\n", arg, err)
			return exitUsage
		}
	}

	var profile *domain.TankProfile
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "temp", "ph", "volume", "type":
			profile = &domain.TankProfile{}
		}
	})
	if profile != nil {
		profile.Temperature = *temp
		profile.PH = *ph
		profile.Volume = *volume
		profile.Type = domain.TankType(*tankType)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	cat, code := loadCatalog(ctx, cfg, stderr)
	if cat == nil {
		return code
	}

	logger := logging.New(cfg.LoggingOptions(stderr))
	metrics := newMetricsExporter(cfg.Metrics)
	opts := append(cfg.ServiceOptions(), core.WithLogger(logger), core.WithMetrics(metrics.recorder))
	if *capSelection {
		opts = append(opts, core.WithSelectionLimit(core.MaxSelectionEntries))
	}
	if *trace {
		opts = append(opts, core.WithTracer(core.NewJSONTracer(stderr)))
	}
	svc := core.NewService(opts...)

	report, err := svc.Evaluate(ctx, cat, core.Request{Entries: entries, Profile: profile})
	if *dumpMetrics {
		if derr := metrics.dump(stderr); derr != nil {
			fmt.Fprintf(stderr, "metrics: %v\n", derr)
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "evaluate: %v\n", err)
		if errors.Is(err, core.ErrNoRecognizedSpecies) {
			return exitUsage
		}
		return exitError
	}
	return writeJSON(stdout, stderr, report)
}

func runSearch(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	query := fs.String("q", "", "case-insensitive name fragment")
	page := fs.Int("page", 1, "1-based result page")
	perPage := fs.Int("per-page", catalog.DefaultPageSize, "results per page")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	cat, code := loadCatalog(ctx, cfg, stderr)
	if cat == nil {
		return code
	}
	return writeJSON(stdout, stderr, cat.Search(*query, *page, *perPage))
}

func runImport(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	in := fs.String("in", "", "JSON catalog file to import")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *in == "" {
		fmt.Fprintln(stderr, "import: -in is required")
		return exitUsage
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return exitError
	}
	records, err := readRecords(*in)
	if err != nil {
		fmt.Fprintf(stderr, "import: %v\n", err)
		return exitError
	}
	normalized := catalog.FromRecords(records)

	backend, err := catalog.Open(ctx, cfg.CatalogOptions())
	if err != nil {
		fmt.Fprintf(stderr, "catalog: %v\n", err)
		return exitError
	}
	defer backend.Close()
	if err := backend.Replace(ctx, normalized.Records()); err != nil {
		fmt.Fprintf(stderr, "import: %v\n", err)
		return exitError
	}
	fmt.Fprintf(stdout, "imported %d of %d records into %s catalog\n", normalized.Len(), len(records), cfg.Catalog.Driver)
	return exitOK
}

func readRecords(path string) (records []catalog.Record, err error) {
	f, err := os.Open(path) // #nosec G304: operator-supplied import file
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return catalog.Decode(f)
}

// loadCatalog returns a snapshot from the configured backend, or nil and the
// exit code to return after reporting the failure.
func loadCatalog(ctx context.Context, cfg config.Config, stderr io.Writer) (*catalog.Catalog, int) {
	backend, err := catalog.Open(ctx, cfg.CatalogOptions())
	if err != nil {
		fmt.Fprintf(stderr, "catalog: %v\n", err)
		return nil, exitError
	}
	defer backend.Close()
	cat, err := backend.Load(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "catalog: %v\n", err)
		return nil, exitError
	}
	return cat, exitOK
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return exitError
	}
	if _, err := fmt.Fprintln(stdout, string(data)); err != nil {
		return exitError
	}
	return exitOK
}

type metricsExporter struct {
	recorder core.MetricsRecorder
	dump     func(io.Writer) error
}

func newMetricsExporter(cfg config.MetricsConfig) metricsExporter {
	switch cfg.Exporter {
	case "expvar":
		rec := core.NewExpvarMetricsRecorder("")
		return metricsExporter{recorder: rec, dump: func(w io.Writer) error {
			data, err := json.Marshal(rec.Snapshot())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(data))
			return err
		}}
	case "prometheus":
		reg := prometheus.NewRegistry()
		rec := core.NewPrometheusMetricsRecorder(reg, cfg.Namespace)
		return metricsExporter{recorder: rec, dump: func(w io.Writer) error {
			families, err := reg.Gather()
			if err != nil {
				return err
			}
			for _, mf := range families {
				if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
					return err
				}
			}
			return nil
		}}
	default:
		return metricsExporter{dump: func(io.Writer) error { return nil }}
	}
}
