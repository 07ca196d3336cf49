package chromatogram

import (
	"math"
	"sort"
	"testing"

	"pgregory.net/rapid"

	"github.com/chromaplot/chromaplot/pkg/model"
)

func projectWithAreas(rtsSeconds, areas []float64) *model.Project {
	p := &model.Project{
		Name:              "test",
		DatafileData:      []model.Datafile{{Name: "r1"}},
		ConsolidatedPeaks: []model.ConsolidatedPeak{},
	}
	for i := range areas {
		p.ConsolidatedPeaks = append(p.ConsolidatedPeaks, model.ConsolidatedPeak{
			RtList:   []float64{rtsSeconds[i]},
			AreaList: model.FloatList{areas[i]},
		})
	}
	return p
}

func TestCombinedDataTopN(t *testing.T) {
	// Values 100, 50, 200 with top_n_peaks=2 keeps 200 and 100,
	// re-sorted by retention time.
	p := projectWithAreas([]float64{300, 120, 600}, []float64{100, 50, 200})

	peaks := CombinedData(p, Options{TopNPeaks: 2})
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	if peaks[0].AreaOrHeight != 100 || peaks[1].AreaOrHeight != 200 {
		t.Errorf("expected [100, 200] in rt order, got [%v, %v]",
			peaks[0].AreaOrHeight, peaks[1].AreaOrHeight)
	}
	if peaks[0].Rt != 5 || peaks[1].Rt != 10 {
		t.Errorf("expected rts [5, 10] minutes, got [%v, %v]", peaks[0].Rt, peaks[1].Rt)
	}
}

func TestCombinedDataThreshold(t *testing.T) {
	p := projectWithAreas([]float64{300, 120, 600}, []float64{100, 50, 200})

	peaks := CombinedData(p, Options{Threshold: 60})
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks above threshold, got %d", len(peaks))
	}
	for _, pk := range peaks {
		if pk.AreaOrHeight < 60 {
			t.Errorf("peak below threshold survived: %v", pk.AreaOrHeight)
		}
	}
}

func TestCombinedDataNoLimit(t *testing.T) {
	p := projectWithAreas([]float64{600, 120, 300}, []float64{1, 2, 3})

	peaks := CombinedData(p, Options{})
	if len(peaks) != 3 {
		t.Fatalf("expected all 3 peaks, got %d", len(peaks))
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Rt < peaks[i-1].Rt {
			t.Errorf("peaks not sorted by rt: %v then %v", peaks[i-1].Rt, peaks[i].Rt)
		}
	}
}

func TestCombinedDataEmptyPeaks(t *testing.T) {
	p := &model.Project{
		Name:              "test",
		DatafileData:      []model.Datafile{{Name: "r1"}},
		ConsolidatedPeaks: []model.ConsolidatedPeak{},
	}
	peaks := CombinedData(p, Options{})
	if len(peaks) != 0 {
		t.Errorf("expected no peaks, got %d", len(peaks))
	}
}

func TestCombinedDataPanicsWithoutConsolidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for project without consolidated peaks")
		}
	}()
	p := &model.Project{Name: "test", DatafileData: []model.Datafile{{Name: "r1"}}}
	CombinedData(p, Options{})
}

func TestCombinedDataProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		rts := make([]float64, n)
		areas := make([]float64, n)
		for i := range rts {
			rts[i] = rapid.Float64Range(1, 3600).Draw(t, "rt")
			areas[i] = rapid.Float64Range(0, 1e6).Draw(t, "area")
		}
		topN := rapid.IntRange(0, 10).Draw(t, "topN")
		threshold := rapid.Float64Range(0, 1e6).Draw(t, "threshold")

		p := projectWithAreas(rts, areas)
		peaks := CombinedData(p, Options{TopNPeaks: topN, Threshold: threshold})

		if topN > 0 && len(peaks) > topN {
			t.Fatalf("got %d peaks, want at most %d", len(peaks), topN)
		}
		if !sort.SliceIsSorted(peaks, func(a, b int) bool { return peaks[a].Rt < peaks[b].Rt }) {
			t.Fatalf("output not sorted by retention time")
		}
		survivors := 0
		for _, pk := range peaks {
			if pk.AreaOrHeight < threshold {
				t.Fatalf("peak %v below threshold %v", pk.AreaOrHeight, threshold)
			}
			if math.IsNaN(pk.Rt) {
				t.Fatalf("NaN rt in output")
			}
			survivors++
		}
		// With no top-N limit, every peak at or above threshold survives.
		if topN == 0 {
			want := 0
			for _, a := range areas {
				if a >= threshold {
					want++
				}
			}
			if survivors != want {
				t.Fatalf("got %d survivors, want %d", survivors, want)
			}
		}
	})
}
