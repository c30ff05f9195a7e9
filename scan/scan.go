// Package scan converts directories of root terrain tile files into
// generated continent tile grids.
package scan

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-zonetiles/grid"
	"github.com/eak1mov/go-zonetiles/lua"
	"github.com/eak1mov/go-zonetiles/record"
	"github.com/eak1mov/go-zonetiles/tile"
	"github.com/schollz/progressbar/v3"
)

var ErrDirectoryNotFound = errors.New("directory not found")
var ErrReadFailed = errors.New("failed to read directory")
var ErrWriteFailed = errors.New("failed to write")
var ErrDatabaseExport = errors.New("failed to export to database")

// Continent is one input directory and the continent name its tiles belong to.
type Continent struct {
	Dir  string
	Name string
}

// DefaultContinents are processed when no continents are configured.
var DefaultContinents = []Continent{
	{Dir: "kalimdor_adts", Name: "Kalimdor"},
	{Dir: "azeroth_adts", Name: "Azeroth"},
}

// Exporter receives every grid whose artifact was written.
type Exporter interface {
	WriteGrid(g tile.Grid) error
}

type State int

const (
	StateDirectoryNotFound State = iota
	StateScanFailed
	StateExported
	StateExportFailed
)

func (s State) String() string {
	switch s {
	case StateDirectoryNotFound:
		return "directory not found"
	case StateScanFailed:
		return "scan failed"
	case StateExported:
		return "exported"
	case StateExportFailed:
		return "export failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Report summarizes one continent run.
type Report struct {
	Continent  string
	State      State
	Parsed     int
	Failed     int
	Overwrites int
	OutputPath string
}

type config struct {
	Logger    *slog.Logger
	Output    io.Writer
	Progress  bool
	Extractor *record.Extractor
	Exporter  Exporter
}

type Option func(*config)

// WithLogger sets the logger for per-file and per-continent diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// WithOutput sets the writer for human-readable progress lines.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.Output = w }
}

// WithProgress enables a progress bar on the progress output.
func WithProgress(enabled bool) Option {
	return func(c *config) { c.Progress = enabled }
}

func WithExtractor(extractor *record.Extractor) Option {
	return func(c *config) { c.Extractor = extractor }
}

func WithExporter(exporter Exporter) Option {
	return func(c *config) { c.Exporter = exporter }
}

func newConfig(opts []Option) config {
	c := config{
		Logger: slog.New(slog.DiscardHandler),
		Output: io.Discard,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.Extractor == nil {
		c.Extractor = record.NewExtractor(nil)
	}
	return c
}

// Build scans the continent directory and returns the grid of every
// successfully processed root tile file. Per-file failures are logged and
// counted in the report; they never fail the scan.
func Build(continent Continent, opts ...Option) (*grid.Grid, Report, error) {
	c := newConfig(opts)
	report := Report{Continent: continent.Name, State: StateDirectoryNotFound}

	info, err := os.Stat(continent.Dir)
	if err != nil || !info.IsDir() {
		return nil, report, fmt.Errorf("%w: %s", ErrDirectoryNotFound, continent.Dir)
	}

	fmt.Fprintf(c.Output, "Scanning: %s\n", continent.Dir)

	entries, err := os.ReadDir(continent.Dir)
	if err != nil {
		report.State = StateScanFailed
		return nil, report, fmt.Errorf("%w %s: %w", ErrReadFailed, continent.Dir, err)
	}

	var bar *progressbar.ProgressBar
	if c.Progress {
		bar = progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(c.Output),
			progressbar.OptionSetDescription(continent.Name),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	} else {
		bar = progressbar.DefaultSilent(int64(len(entries)))
	}

	g := grid.New(continent.Name)
	for _, entry := range entries {
		bar.Add(1)

		_, tileID, ok := tile.ParseRootName(entry.Name())
		if !ok {
			continue
		}

		filePath := filepath.Join(continent.Dir, entry.Name())
		if info, err := os.Stat(filePath); err != nil || !info.Mode().IsRegular() {
			continue
		}

		text, err := processFile(c.Extractor, filePath)
		if errors.Is(err, record.ErrNoData) {
			c.Logger.Debug("zonetiles: no data", "path", filePath)
			continue
		}
		if err != nil {
			c.Logger.Error("failed to parse tile", "path", filePath, "err", err)
			report.Failed++
			continue
		}

		g.Insert(tileID.Index(), text)
		report.Parsed++
	}
	bar.Finish()

	report.Overwrites = g.Overwrites()
	if report.Overwrites > 0 {
		c.Logger.Warn("tile index collisions", "continent", continent.Name, "overwrites", report.Overwrites)
	}

	fmt.Fprintf(c.Output, "  Parsed %d tiles\n", report.Parsed)
	return g, report, nil
}

func processFile(extractor *record.Extractor, filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	areaIDs, err := extractor.Extract(data)
	if err != nil {
		return "", err
	}
	return record.Encode(areaIDs)
}

// Run builds the continent grid and writes its artifact into outDir.
// No artifact is written when the input directory is missing or the write fails.
// An exporter failure is returned with ErrDatabaseExport; the artifact is
// already written at that point and the report says so.
func Run(continent Continent, outDir string, opts ...Option) (Report, error) {
	c := newConfig(opts)

	g, report, err := Build(continent, opts...)
	if err != nil {
		return report, err
	}

	report.State = StateExportFailed
	outPath := filepath.Join(outDir, lua.FileName(continent.Name))
	if err := lua.WriteFile(outPath, g, lua.WithLogger(c.Logger)); err != nil {
		return report, fmt.Errorf("%w %s: %w", ErrWriteFailed, outPath, err)
	}
	fmt.Fprintf(c.Output, "  Wrote: %s\n", outPath)
	report.State = StateExported
	report.OutputPath = outPath

	if c.Exporter != nil {
		if err := c.Exporter.WriteGrid(g); err != nil {
			return report, fmt.Errorf("%w: %s: %w", ErrDatabaseExport, continent.Name, err)
		}
	}

	return report, nil
}

// RunAll creates outDir if needed and runs every continent in order.
// A failed continent is logged and skipped; the returned error joins all
// continent failures. Reports are returned for every continent.
func RunAll(continents []Continent, outDir string, opts ...Option) ([]Report, error) {
	c := newConfig(opts)

	if _, err := os.Stat(outDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", outDir, err)
		}
		fmt.Fprintf(c.Output, "Created %s/ directory\n", outDir)
	}

	reports := make([]Report, 0, len(continents))
	var errs []error
	for _, continent := range continents {
		report, err := Run(continent, outDir, opts...)
		if err != nil {
			c.Logger.Error("skipping continent", "continent", continent.Name, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", continent.Name, err))
		}
		reports = append(reports, report)
	}

	return reports, errors.Join(errs...)
}
