package loader

import (
	"compress/gzip"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const projectJSON = `{
	"name": "Example Mixture",
	"datafile_data": [
		{"name": "repeat-1", "times": [0, 60, 120], "intensities": [0, 10, null]},
		{"name": "repeat-2", "times": [0, 60, 120], "intensities": [0, 12, 5]}
	],
	"consolidated_peaks": [
		{"rt_list": [118, 122], "area_list": [900, null],
		 "ms_list": [], "hits": [{"name": "Toluene", "mf": 900}]},
		{"rt_list": [], "area_list": []}
	]
}`

func TestRead(t *testing.T) {
	p, err := Read(strings.NewReader(projectJSON))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.Name != "Example Mixture" {
		t.Errorf("unexpected name %q", p.Name)
	}
	if len(p.DatafileData) != 2 {
		t.Fatalf("expected 2 datafiles, got %d", len(p.DatafileData))
	}
	if !math.IsNaN(p.DatafileData[0].Intensities[2]) {
		t.Error("expected null intensity to decode as NaN")
	}
	// The peak without retention times is dropped with a warning.
	if len(p.ConsolidatedPeaks) != 1 {
		t.Fatalf("expected 1 surviving peak, got %d", len(p.ConsolidatedPeaks))
	}
	if hit := p.ConsolidatedPeaks[0].BestHit(); hit == nil || hit.Name != "Toluene" {
		t.Errorf("unexpected best hit: %+v", hit)
	}
}

func TestReadWarnings(t *testing.T) {
	var warnings []string
	opts := Options{WarningHandler: func(msg string) { warnings = append(warnings, msg) }}

	if _, err := ReadWithOptions(strings.NewReader(projectJSON), opts); err != nil {
		t.Fatalf("ReadWithOptions: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "no retention times") {
		t.Errorf("unexpected warning: %s", warnings[0])
	}
}

func TestReadLengthMismatchWarning(t *testing.T) {
	var warnings []string
	opts := Options{WarningHandler: func(msg string) { warnings = append(warnings, msg) }}

	src := `{"name": "x", "datafile_data": [{"name": "r1", "times": [0, 60], "intensities": [1]}]}`
	if _, err := ReadWithOptions(strings.NewReader(src), opts); err != nil {
		t.Fatalf("ReadWithOptions: %v", err)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "intensities") {
		t.Errorf("expected a length mismatch warning, got %v", warnings)
	}
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"invalid json", `{`, "parsing project"},
		{"no name", `{"datafile_data": [{"name": "r1"}]}`, "no name"},
		{"no datafiles", `{"name": "x"}`, "no datafiles"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(c.src))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Errorf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestLoadPlainJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(projectJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "Example Mixture" {
		t.Errorf("unexpected name %q", p.Name)
	}
}

func TestLoadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.gsmp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(projectJSON)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.DatafileData) != 2 {
		t.Errorf("expected 2 datafiles, got %d", len(p.DatafileData))
	}
}

func TestLoadNotGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gsmp")
	if err := os.WriteFile(path, []byte(projectJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a .gsmp file that is not gzip")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
