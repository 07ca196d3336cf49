// Package loader reads pre-built chromaplot projects from disk.
//
// A project file is a JSON document, gzip-compressed when it carries the
// .gsmp extension. The loader validates the structural essentials (a name
// and at least one datafile) and reports recoverable oddities through a
// warning callback rather than failing the whole load.
package loader

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/chromaplot/chromaplot/pkg/metrics"
	"github.com/chromaplot/chromaplot/pkg/model"
)

// Options configures project loading.
type Options struct {
	// WarningHandler is called with warning messages (e.g., a peak with no
	// retention times). If nil, warnings are printed to os.Stderr.
	WarningHandler func(string)
}

// Load reads a project from path. Files ending in .gsmp or .gz are
// expected to be gzip-compressed JSON; anything else is read as plain
// JSON.
func Load(path string) (*model.Project, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions reads a project from path with custom options.
func LoadWithOptions(path string, opts Options) (*model.Project, error) {
	defer metrics.Timer(metrics.ProjectLoad)()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening project file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gsmp", ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
		}
		defer gz.Close()
		r = gz
	}

	project, err := ReadWithOptions(r, opts)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return project, nil
}

// Read decodes a project from uncompressed JSON.
func Read(r io.Reader) (*model.Project, error) {
	return ReadWithOptions(r, Options{})
}

// ReadWithOptions decodes a project from uncompressed JSON with custom
// options.
func ReadWithOptions(r io.Reader, opts Options) (*model.Project, error) {
	warn := opts.WarningHandler
	if warn == nil {
		warn = func(msg string) {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
		}
	}

	var project model.Project
	dec := json.NewDecoder(r)
	if err := dec.Decode(&project); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	if project.Name == "" {
		return nil, fmt.Errorf("project has no name")
	}
	if len(project.DatafileData) == 0 {
		return nil, fmt.Errorf("project %q has no datafiles", project.Name)
	}

	// Consolidated peaks are optional (consolidation may not have run),
	// but peaks that did survive serialization must carry retention times.
	if project.ConsolidatedPeaks != nil {
		kept := project.ConsolidatedPeaks[:0]
		for i, peak := range project.ConsolidatedPeaks {
			if len(peak.RtList) == 0 {
				warn(fmt.Sprintf("skipping consolidated peak %d: no retention times", i))
				continue
			}
			kept = append(kept, peak)
		}
		project.ConsolidatedPeaks = kept
	}

	for _, df := range project.DatafileData {
		if len(df.Times) != len(df.Intensities) {
			warn(fmt.Sprintf("datafile %q: %d times but %d intensities", df.Name, len(df.Times), len(df.Intensities)))
		}
	}

	return &project, nil
}
