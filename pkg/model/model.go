// Package model defines the data types for a chromaplot project: repeated
// GC-MS measurements (datafiles), their consolidated peaks, and the mass
// spectra behind them.
//
// Projects are read-only from this library's perspective. They are produced
// elsewhere (by the consolidation pipeline) and loaded via pkg/loader; the
// plotting packages only reshape and draw them.
package model

import (
	"math"
)

// MassSpectrum holds a single scan as parallel mass/intensity lists.
type MassSpectrum struct {
	MassList      []float64 `json:"mass_list"`
	IntensityList FloatList `json:"intensity_list"`
}

// TotalIntensity returns the sum of all intensities in the spectrum.
// Used as a peak-height proxy when plotting in height mode.
func (ms MassSpectrum) TotalIntensity() float64 {
	var total float64
	for _, v := range ms.IntensityList {
		if math.IsNaN(v) {
			continue
		}
		total += v
	}
	return total
}

// Hit is an identified compound for a consolidated peak.
type Hit struct {
	Name        string  `json:"name"`
	MatchFactor float64 `json:"mf"`
}

// ConsolidatedPeak is a peak aligned across all repeats of a project.
// The per-repeat lists are index-aligned with Project.DatafileData; entries
// may be NaN where a repeat did not contribute to the peak.
type ConsolidatedPeak struct {
	RtList   []float64      `json:"rt_list"`   // seconds, one per repeat
	AreaList FloatList      `json:"area_list"` // one per repeat
	MsList   []MassSpectrum `json:"ms_list"`   // one per repeat
	Hits     []Hit          `json:"hits"`      // best match first
}

// Rt returns the peak's representative retention time in seconds: the mean
// of the per-repeat retention times, ignoring NaN entries.
func (p ConsolidatedPeak) Rt() float64 {
	var sum float64
	var n int
	for _, rt := range p.RtList {
		if math.IsNaN(rt) {
			continue
		}
		sum += rt
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// BestHit returns the top identification for the peak, or nil when the peak
// has no hits.
func (p ConsolidatedPeak) BestHit() *Hit {
	if len(p.Hits) == 0 {
		return nil
	}
	return &p.Hits[0]
}

// Datafile is a single repeat: its name and total ion chromatogram.
type Datafile struct {
	Name        string    `json:"name"`
	Times       []float64 `json:"times"` // seconds
	Intensities FloatList `json:"intensities"`
}

// Project is a named collection of repeated measurements together with the
// peaks consolidated across them. ConsolidatedPeaks is nil until the
// consolidation stage of the upstream pipeline has run.
type Project struct {
	Name              string             `json:"name"`
	DatafileData      []Datafile         `json:"datafile_data"`
	ConsolidatedPeaks []ConsolidatedPeak `json:"consolidated_peaks"`
}

// RtRange returns the project-wide retention time range in minutes, taken
// across every repeat's chromatogram. When no repeat carries a TIC the range
// falls back to the consolidated peaks' retention times.
func (p *Project) RtRange() (minRt, maxRt float64) {
	minRt = math.Inf(1)
	maxRt = math.Inf(-1)
	for _, df := range p.DatafileData {
		for _, t := range df.Times {
			if math.IsNaN(t) {
				continue
			}
			if t < minRt {
				minRt = t
			}
			if t > maxRt {
				maxRt = t
			}
		}
	}
	if minRt > maxRt {
		for _, peak := range p.ConsolidatedPeaks {
			for _, rt := range peak.RtList {
				if math.IsNaN(rt) {
					continue
				}
				if rt < minRt {
					minRt = rt
				}
				if rt > maxRt {
					maxRt = rt
				}
			}
		}
	}
	if minRt > maxRt {
		return 0, 0
	}
	return minRt / 60, maxRt / 60
}
