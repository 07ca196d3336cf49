package chromatogram

import (
	"math"
	"strings"
	"testing"

	"github.com/chromaplot/chromaplot/pkg/model"
	"github.com/chromaplot/chromaplot/pkg/render"
)

func drawProject() *model.Project {
	return &model.Project{
		Name: "Example Mixture",
		DatafileData: []model.Datafile{
			{Name: "repeat-1", Times: []float64{0, 60, 120, 180, 240}, Intensities: model.FloatList{0, 10, 50, 10, 0}},
			{Name: "repeat-2", Times: []float64{0, 60, 120, 180, 240}, Intensities: model.FloatList{0, 12, 48, 11, 0}},
		},
		ConsolidatedPeaks: []model.ConsolidatedPeak{
			{RtList: []float64{118, 122}, AreaList: model.FloatList{900, 1100},
				Hits: []model.Hit{{Name: "Toluene", MatchFactor: 900}}},
			{RtList: []float64{180, math.NaN()}, AreaList: model.FloatList{400, math.NaN()}},
		},
	}
}

func renderSVG(t *testing.T, fig *render.Figure) string {
	t.Helper()
	var sb strings.Builder
	if err := fig.WriteSVG(&sb); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	return sb.String()
}

func TestDrawCombinedSVG(t *testing.T) {
	p := drawProject()
	fig := render.NewFigure(800, 600)
	ax := fig.Subplot()

	DrawCombined(p, fig, ax, DrawOptions{})
	out := renderSVG(t, fig)

	if !strings.Contains(out, "Example Mixture") {
		t.Error("expected project name as figure title")
	}
	if !strings.Contains(out, "Retention Time (mins)") {
		t.Error("expected x axis label")
	}
	if !strings.Contains(out, "Mean Peak Area") {
		t.Error("expected default y axis label")
	}
	// First palette colour appears as a bar fill.
	if !strings.Contains(out, "#1f77b4") {
		t.Error("expected a bar in the first palette colour")
	}
	// The two-replicate peak gets a dark grey error bar; the single-replicate
	// peak does not add more.
	if !strings.Contains(out, "#a9a9a9") {
		t.Error("expected an error bar for the replicated peak")
	}
}

func TestDrawCombinedLabels(t *testing.T) {
	cases := []struct {
		useMedian, usePeakHeight bool
		want                     string
	}{
		{false, false, "Mean Peak Area"},
		{true, false, "Median Peak Area"},
		{false, true, "Mean Peak Height"},
		{true, true, "Median Peak Height"},
	}
	for _, c := range cases {
		if got := valueLabel(c.useMedian, c.usePeakHeight); got != c.want {
			t.Errorf("valueLabel(%v, %v) = %q, want %q", c.useMedian, c.usePeakHeight, got, c.want)
		}
	}
}

func TestDrawCombinedNoErrorBarForSingleReplicate(t *testing.T) {
	p := drawProject()
	// Keep only the single-replicate peak.
	p.ConsolidatedPeaks = p.ConsolidatedPeaks[1:]

	fig := render.NewFigure(800, 600)
	ax := fig.Subplot()
	DrawCombined(p, fig, ax, DrawOptions{})
	out := renderSVG(t, fig)

	if strings.Contains(out, "#a9a9a9") {
		t.Error("expected no error bar for a single-replicate peak")
	}
}

func TestDrawCombinedShowPoints(t *testing.T) {
	p := drawProject()
	fig := render.NewFigure(800, 600)
	ax := fig.Subplot()
	DrawCombined(p, fig, ax, DrawOptions{ShowPoints: true})
	// Scatter markers reuse the bar colour, so rendering just needs to
	// not blow up and keep the bars.
	out := renderSVG(t, fig)
	if !strings.Contains(out, "#1f77b4") {
		t.Error("expected first palette colour in output")
	}
}

func TestDrawCombinedPanicsWithoutConsolidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for project without consolidated peaks")
		}
	}()
	p := &model.Project{Name: "x", DatafileData: []model.Datafile{{Name: "r1"}}}
	fig := render.NewFigure(800, 600)
	DrawCombined(p, fig, fig.Subplot(), DrawOptions{})
}

func TestAnnotatePeaks(t *testing.T) {
	p := drawProject()
	fig := render.NewFigure(800, 600)
	ax := fig.Subplot()
	DrawCombined(p, fig, ax, DrawOptions{})
	AnnotatePeaks(p, fig, ax, AnnotateOptions{})
	out := renderSVG(t, fig)

	if !strings.Contains(out, "Toluene") {
		t.Error("expected best-hit compound name annotation")
	}
}

func TestDrawChromatograms(t *testing.T) {
	p := drawProject()
	fig := render.NewFigure(800, 600)
	axes := fig.Subplots(len(p.DatafileData), true)

	DrawChromatograms(p, fig, axes)
	out := renderSVG(t, fig)

	if !strings.Contains(out, "repeat-1") || !strings.Contains(out, "repeat-2") {
		t.Error("expected per-repeat datafile names as subplot titles")
	}
	if !strings.Contains(out, "Example Mixture") {
		t.Error("expected project name as figure title")
	}
}

func TestDrawChromatogramsNoDatafiles(t *testing.T) {
	p := &model.Project{Name: "empty"}
	fig := render.NewFigure(800, 600)
	DrawChromatograms(p, fig, nil)
}

func TestDrawChromatogramsPanicsOnAxesMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when axes count != datafile count")
		}
	}()
	p := drawProject()
	fig := render.NewFigure(800, 600)
	DrawChromatograms(p, fig, fig.Subplots(1, true))
}
