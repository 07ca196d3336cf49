package peakviewer

import (
	"math"
	"strings"
	"testing"

	"github.com/chromaplot/chromaplot/pkg/model"
	"github.com/chromaplot/chromaplot/pkg/render"
)

func testProject() *model.Project {
	times := make([]float64, 20)
	tic := make(model.FloatList, 20)
	for i := range times {
		times[i] = float64(i) * 30 // 0..570 seconds
		tic[i] = float64(100 + i)
	}
	return &model.Project{
		Name: "Peak Project",
		DatafileData: []model.Datafile{
			{Name: "repeat-1", Times: times, Intensities: tic},
			{Name: "repeat-2", Times: times, Intensities: tic},
		},
	}
}

func TestDrawPeaks(t *testing.T) {
	p := testProject()
	fig := render.NewFigure(800, 600)
	axes := fig.Subplots(2, true)

	DrawPeaks(p, []float64{300, 310}, fig, axes)

	var sb strings.Builder
	if err := fig.WriteSVG(&sb); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "Peak Project") {
		t.Error("expected project name as figure title")
	}
	if !strings.Contains(out, "repeat-1") || !strings.Contains(out, "repeat-2") {
		t.Error("expected per-repeat subplot titles")
	}
	// Each repeat with a real rt gets a dashed marker line.
	if got := strings.Count(out, "stroke-dasharray"); got != 2 {
		t.Errorf("expected 2 retention time markers, got %d", got)
	}
}

func TestDrawPeaksMissingRepeat(t *testing.T) {
	p := testProject()
	fig := render.NewFigure(800, 600)
	axes := fig.Subplots(2, true)

	// The second repeat did not contribute to this peak.
	DrawPeaks(p, []float64{300, math.NaN()}, fig, axes)

	var sb strings.Builder
	if err := fig.WriteSVG(&sb); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	if got := strings.Count(sb.String(), "stroke-dasharray"); got != 1 {
		t.Errorf("expected 1 retention time marker, got %d", got)
	}
}

func TestDrawPeaksNoDatafiles(t *testing.T) {
	p := &model.Project{Name: "empty"}
	fig := render.NewFigure(800, 600)
	DrawPeaks(p, nil, fig, nil)
}

func TestDrawPeaksPanicsOnAxesMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when axes count != datafile count")
		}
	}()
	p := testProject()
	fig := render.NewFigure(800, 600)
	DrawPeaks(p, []float64{300, 310}, fig, fig.Subplots(1, true))
}

func TestTicWindow(t *testing.T) {
	df := model.Datafile{
		Times:       []float64{0, 250, 300, 350, 1000},
		Intensities: model.FloatList{1, 2, 3, 4, 5},
	}
	xs, ys := ticWindow(df, 300)
	// Window is 300 +/- 60 seconds.
	if len(xs) != 3 || len(ys) != 3 {
		t.Fatalf("expected 3 points in window, got %d", len(xs))
	}
	if xs[0] != 250.0/60 || xs[2] != 350.0/60 {
		t.Errorf("unexpected window bounds: %v", xs)
	}
}

func TestCentreRt(t *testing.T) {
	if got := centreRt([]float64{100, math.NaN(), 200}); got != 150 {
		t.Errorf("expected 150, got %v", got)
	}
	if got := centreRt([]float64{math.NaN()}); !math.IsNaN(got) {
		t.Errorf("expected NaN, got %v", got)
	}
}
