package chromatogram

import (
	"math"
	"testing"

	"github.com/chromaplot/chromaplot/pkg/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPeakSummaryMean(t *testing.T) {
	peak := model.ConsolidatedPeak{
		RtList:   []float64{60, 120},
		AreaList: model.FloatList{10, 20, 30, 40},
	}
	got := PeakSummary(peak, false, false)

	if !almostEqual(got.AreaOrHeight, 25) {
		t.Errorf("expected mean 25, got %v", got.AreaOrHeight)
	}
	if !almostEqual(got.Rt, 1.5) {
		t.Errorf("expected rt 1.5 min, got %v", got.Rt)
	}
	// Population standard deviation of {10,20,30,40}.
	want := math.Sqrt(125)
	if !almostEqual(got.Errorbar.Low, want) || !almostEqual(got.Errorbar.High, want) {
		t.Errorf("expected symmetric errorbar %v, got %+v", want, got.Errorbar)
	}
}

func TestPeakSummaryMedianIQR(t *testing.T) {
	peak := model.ConsolidatedPeak{
		RtList:   []float64{60},
		AreaList: model.FloatList{10, 20, 30, 40},
	}
	got := PeakSummary(peak, true, false)

	if !almostEqual(got.AreaOrHeight, 25) {
		t.Errorf("expected median 25, got %v", got.AreaOrHeight)
	}
	// p25 = 17.5, p75 = 32.5 with linear interpolation.
	if !almostEqual(got.Errorbar.Low, 7.5) {
		t.Errorf("expected lower error 7.5, got %v", got.Errorbar.Low)
	}
	if !almostEqual(got.Errorbar.High, 7.5) {
		t.Errorf("expected upper error 7.5, got %v", got.Errorbar.High)
	}
}

func TestPeakSummaryMedianAsymmetric(t *testing.T) {
	peak := model.ConsolidatedPeak{
		RtList:   []float64{60},
		AreaList: model.FloatList{1, 2, 3, 100},
	}
	got := PeakSummary(peak, true, false)

	if !almostEqual(got.AreaOrHeight, 2.5) {
		t.Errorf("expected median 2.5, got %v", got.AreaOrHeight)
	}
	// p25 = 1.75, p75 = 27.25: a skewed sample gives an asymmetric bar.
	if !almostEqual(got.Errorbar.Low, 0.75) {
		t.Errorf("expected lower error 0.75, got %v", got.Errorbar.Low)
	}
	if !almostEqual(got.Errorbar.High, 24.75) {
		t.Errorf("expected upper error 24.75, got %v", got.Errorbar.High)
	}
}

func TestPeakSummaryIgnoresNaN(t *testing.T) {
	peak := model.ConsolidatedPeak{
		RtList:   []float64{60, math.NaN(), 180},
		AreaList: model.FloatList{10, math.NaN(), 30},
	}
	got := PeakSummary(peak, false, false)

	if !almostEqual(got.AreaOrHeight, 20) {
		t.Errorf("expected mean 20 ignoring NaN, got %v", got.AreaOrHeight)
	}
	if !almostEqual(got.Rt, 2) {
		t.Errorf("expected rt 2 min ignoring NaN, got %v", got.Rt)
	}
	if !almostEqual(got.Errorbar.High, 10) {
		t.Errorf("expected std 10, got %v", got.Errorbar.High)
	}
	if got.Replicates() != 2 {
		t.Errorf("expected 2 replicates, got %d", got.Replicates())
	}
}

func TestPeakSummaryHeightMode(t *testing.T) {
	peak := model.ConsolidatedPeak{
		RtList:   []float64{60, 60},
		AreaList: model.FloatList{1, 1}, // must be ignored in height mode
		MsList: []model.MassSpectrum{
			{MassList: []float64{50, 51}, IntensityList: model.FloatList{100, 200}},
			{MassList: []float64{50, 51}, IntensityList: model.FloatList{300, 100}},
		},
	}
	got := PeakSummary(peak, false, true)

	// Heights are 300 and 400; mean 350.
	if !almostEqual(got.AreaOrHeight, 350) {
		t.Errorf("expected mean height 350, got %v", got.AreaOrHeight)
	}
	if len(got.AreaOrHeightList) != 2 || !almostEqual(got.AreaOrHeightList[0], 300) {
		t.Errorf("unexpected per-repeat heights: %v", got.AreaOrHeightList)
	}
}

func TestReplicatesSingle(t *testing.T) {
	p := CCPeak{AreaOrHeightList: []float64{42, math.NaN()}}
	if p.Replicates() != 1 {
		t.Errorf("expected 1 replicate, got %d", p.Replicates())
	}
}
