package scan_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-zonetiles/adt"
	"github.com/eak1mov/go-zonetiles/internal"
	"github.com/eak1mov/go-zonetiles/lua"
	"github.com/eak1mov/go-zonetiles/record"
	"github.com/eak1mov/go-zonetiles/scan"
	"github.com/eak1mov/go-zonetiles/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0644))
	}
}

func padded(values ...uint32) []uint32 {
	result := make([]uint32, tile.ChunksPerTile)
	copy(result, values)
	return result
}

func decodeTiles(t *testing.T, table *lua.Table) map[tile.Index][]uint32 {
	t.Helper()
	result := make(map[tile.Index][]uint32)
	for index, text := range tile.IterTiles(table) {
		areaIDs, err := record.Decode(text)
		require.NoError(t, err)
		result[index] = areaIDs
	}
	return result
}

func TestRunFiltersAuxiliaryFiles(t *testing.T) {
	rootDir := t.TempDir()
	inputDir := filepath.Join(rootDir, "kalimdor_adts")
	outDir := filepath.Join(rootDir, "Data")
	require.NoError(t, os.Mkdir(outDir, 0755))

	writeFiles(t, inputDir, map[string][]byte{
		"Kalimdor_1_2.adt":      internal.BuildRootTile(5, 7, 9),
		"Kalimdor_1_2_obj0.adt": internal.BuildRootTile(1, 1, 1),
		"notanadt.txt":          []byte("hello"),
	})
	require.NoError(t, os.Mkdir(filepath.Join(inputDir, "Kalimdor_3_3.adt"), 0755))

	var output bytes.Buffer
	report, err := scan.Run(scan.Continent{Dir: inputDir, Name: "Kalimdor"}, outDir, scan.WithOutput(&output))
	require.NoError(t, err)
	require.Equal(t, scan.StateExported, report.State)
	require.Equal(t, 1, report.Parsed)
	require.Equal(t, 0, report.Failed)
	require.Equal(t, filepath.Join(outDir, "Kalimdor_tiles.lua"), report.OutputPath)
	require.Contains(t, output.String(), "Parsed 1 tiles")

	table, err := lua.ReadFile(report.OutputPath)
	require.NoError(t, err)
	require.Equal(t, "Kalimdor", table.Name)

	want := map[tile.Index][]uint32{129: padded(5, 7, 9)}
	if diff := cmp.Diff(want, decodeTiles(t, table)); diff != "" {
		t.Errorf("artifact tiles mismatch (-want+got):\n%v", diff)
	}
}

func TestRunReportsMalformedFiles(t *testing.T) {
	rootDir := t.TempDir()
	inputDir := filepath.Join(rootDir, "azeroth_adts")

	writeFiles(t, inputDir, map[string][]byte{
		"Azeroth_0_0.adt":   internal.BuildRootTile(1, 2),
		"Azeroth_5_1.adt":   []byte("this is not a terrain file"),
		"Azeroth_10_10.adt": internal.BuildRootTile(),
		"Azeroth_63_63.ADT": internal.BuildRootTile(padded(42)...),
	})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	report, err := scan.Run(scan.Continent{Dir: inputDir, Name: "Azeroth"}, rootDir, scan.WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 2, report.Parsed)
	require.Equal(t, 1, report.Failed)
	require.Contains(t, logs.String(), "Azeroth_5_1.adt")
	require.NotContains(t, logs.String(), "Azeroth_10_10.adt")

	table, err := lua.ReadFile(report.OutputPath)
	require.NoError(t, err)
	want := map[tile.Index][]uint32{
		0:    padded(1, 2),
		4095: padded(42),
	}
	if diff := cmp.Diff(want, decodeTiles(t, table)); diff != "" {
		t.Errorf("artifact tiles mismatch (-want+got):\n%v", diff)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	outDir := t.TempDir()
	report, err := scan.Run(scan.Continent{Dir: filepath.Join(outDir, "missing"), Name: "Kalimdor"}, outDir)
	require.ErrorIs(t, err, scan.ErrDirectoryNotFound)
	require.Equal(t, scan.StateDirectoryNotFound, report.State)

	_, err = os.Stat(filepath.Join(outDir, lua.FileName("Kalimdor")))
	require.True(t, os.IsNotExist(err))
}

func TestRunWriteFailure(t *testing.T) {
	rootDir := t.TempDir()
	inputDir := filepath.Join(rootDir, "in")
	writeFiles(t, inputDir, map[string][]byte{"Kalimdor_1_1.adt": internal.BuildRootTile(1)})

	report, err := scan.Run(scan.Continent{Dir: inputDir, Name: "Kalimdor"}, filepath.Join(rootDir, "missing"))
	require.ErrorIs(t, err, scan.ErrWriteFailed)
	require.Equal(t, scan.StateExportFailed, report.State)
	require.Equal(t, 1, report.Parsed)
}

func TestRunAll(t *testing.T) {
	rootDir := t.TempDir()
	kalimdorDir := filepath.Join(rootDir, "kalimdor_adts")
	outDir := filepath.Join(rootDir, "Data")
	writeFiles(t, kalimdorDir, map[string][]byte{"Kalimdor_1_2.adt": internal.BuildRootTile(5, 7, 9)})

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	reports, err := scan.RunAll([]scan.Continent{
		{Dir: filepath.Join(rootDir, "azeroth_adts"), Name: "Azeroth"},
		{Dir: kalimdorDir, Name: "Kalimdor"},
	}, outDir, scan.WithLogger(logger))
	require.ErrorIs(t, err, scan.ErrDirectoryNotFound)
	require.Len(t, reports, 2)
	require.Equal(t, scan.StateDirectoryNotFound, reports[0].State)
	require.Equal(t, scan.StateExported, reports[1].State)
	require.Contains(t, logs.String(), "Azeroth")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Kalimdor_tiles.lua", entries[0].Name())
}

func TestRunIdempotent(t *testing.T) {
	rootDir := t.TempDir()
	inputDir := filepath.Join(rootDir, "in")
	writeFiles(t, inputDir, map[string][]byte{
		"Kalimdor_1_2.adt":   internal.BuildRootTile(5, 7, 9),
		"Kalimdor_40_2.adt":  internal.BuildRootTile(3),
		"Kalimdor_0_33.adt":  internal.BuildRootTile(padded(8, 8, 8)...),
		"Kalimdor_17_17.adt": internal.BuildRootTile(1, 2, 3, 4),
	})
	continent := scan.Continent{Dir: inputDir, Name: "Kalimdor"}

	var artifacts [][]byte
	for range 2 {
		report, err := scan.Run(continent, rootDir)
		require.NoError(t, err)
		data, err := os.ReadFile(report.OutputPath)
		require.NoError(t, err)
		artifacts = append(artifacts, data)
	}
	require.Equal(t, artifacts[0], artifacts[1])
}

func TestBuildCountsOverwrites(t *testing.T) {
	inputDir := t.TempDir()
	writeFiles(t, inputDir, map[string][]byte{
		"Kalimdor_1_2.adt":  internal.BuildRootTile(1),
		"Kalimdor_01_2.adt": internal.BuildRootTile(2),
	})

	g, report, err := scan.Build(scan.Continent{Dir: inputDir, Name: "Kalimdor"})
	require.NoError(t, err)
	require.Equal(t, 2, report.Parsed)
	require.Equal(t, 1, report.Overwrites)
	require.Equal(t, 1, g.Len())

	// Entries are visited in name order, so the last processed file wins.
	text, found := g.Record(129)
	require.True(t, found)
	areaIDs, err := record.Decode(text)
	require.NoError(t, err)
	require.Equal(t, uint32(1), areaIDs[0])
}

func TestBuildCustomParser(t *testing.T) {
	inputDir := t.TempDir()
	writeFiles(t, inputDir, map[string][]byte{
		"Kalimdor_1_2.adt": []byte("anything"),
		"Kalimdor_2_2.adt": []byte("bad"),
	})

	parser := record.ParserFunc(func(data []byte) ([]adt.MapChunk, error) {
		if string(data) == "bad" {
			return nil, errors.New("malformed")
		}
		return []adt.MapChunk{{AreaID: 77}}, nil
	})

	g, report, err := scan.Build(scan.Continent{Dir: inputDir, Name: "Kalimdor"},
		scan.WithExtractor(record.NewExtractor(parser)))
	require.NoError(t, err)
	require.Equal(t, 1, report.Parsed)
	require.Equal(t, 1, report.Failed)
	_, found := g.Record(tile.ID{X: 1, Y: 2}.Index())
	require.True(t, found)
}

type recordingExporter struct {
	continents []string
}

func (e *recordingExporter) WriteGrid(g tile.Grid) error {
	e.continents = append(e.continents, g.Continent())
	return nil
}

func TestRunExporter(t *testing.T) {
	rootDir := t.TempDir()
	inputDir := filepath.Join(rootDir, "in")
	writeFiles(t, inputDir, map[string][]byte{"Azeroth_1_1.adt": internal.BuildRootTile(1)})

	exporter := &recordingExporter{}
	_, err := scan.Run(scan.Continent{Dir: inputDir, Name: "Azeroth"}, rootDir, scan.WithExporter(exporter))
	require.NoError(t, err)
	require.Equal(t, []string{"Azeroth"}, exporter.continents)
}

type failingExporter struct{}

func (failingExporter) WriteGrid(tile.Grid) error {
	return errors.New("database is locked")
}

func TestRunExporterFailureKeepsArtifact(t *testing.T) {
	rootDir := t.TempDir()
	inputDir := filepath.Join(rootDir, "in")
	writeFiles(t, inputDir, map[string][]byte{"Azeroth_1_1.adt": internal.BuildRootTile(1)})

	report, err := scan.Run(scan.Continent{Dir: inputDir, Name: "Azeroth"}, rootDir, scan.WithExporter(failingExporter{}))
	require.ErrorIs(t, err, scan.ErrDatabaseExport)
	require.NotErrorIs(t, err, scan.ErrWriteFailed)
	require.Equal(t, scan.StateExported, report.State)
	require.Equal(t, filepath.Join(rootDir, "Azeroth_tiles.lua"), report.OutputPath)

	_, err = os.Stat(report.OutputPath)
	require.NoError(t, err)
}

func TestBuildUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	inputDir := filepath.Join(t.TempDir(), "in")
	writeFiles(t, inputDir, map[string][]byte{"Kalimdor_1_1.adt": internal.BuildRootTile(1)})
	require.NoError(t, os.Chmod(inputDir, 0))
	t.Cleanup(func() { os.Chmod(inputDir, 0755) })

	_, report, err := scan.Build(scan.Continent{Dir: inputDir, Name: "Kalimdor"})
	require.ErrorIs(t, err, scan.ErrReadFailed)
	require.NotErrorIs(t, err, scan.ErrDirectoryNotFound)
	require.Equal(t, scan.StateScanFailed, report.State)
	require.Equal(t, "scan failed", report.State.String())
}

func TestBuildSkipsOverflowingIndex(t *testing.T) {
	inputDir := t.TempDir()
	writeFiles(t, inputDir, map[string][]byte{
		"Kalimdor_0_0.adt":        internal.BuildRootTile(11),
		"Kalimdor_0_67108864.adt": internal.BuildRootTile(99),
	})

	g, report, err := scan.Build(scan.Continent{Dir: inputDir, Name: "Kalimdor"})
	require.NoError(t, err)
	require.Equal(t, 1, report.Parsed)
	require.Equal(t, 0, report.Overwrites)

	text, found := g.Record(0)
	require.True(t, found)
	areaIDs, err := record.Decode(text)
	require.NoError(t, err)
	require.Equal(t, uint32(11), areaIDs[0])
}
