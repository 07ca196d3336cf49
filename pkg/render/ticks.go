package render

import (
	"fmt"
	"math"
	"strconv"
)

// tick is a major tick: data value plus rendered label.
type tick struct {
	v     float64
	label string
}

// niceStep returns a 1/2/5-series step covering roughly (max-min)/target.
func niceStep(min, max float64, target int) float64 {
	span := max - min
	if span <= 0 || math.IsNaN(span) || math.IsInf(span, 0) {
		return 1
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3:
		return 2 * mag
	case norm < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// niceTicks places major ticks at multiples of a nice step inside
// [min, max].
func niceTicks(min, max float64, target int) []float64 {
	step := niceStep(min, max, target)
	first := math.Ceil(min/step) * step
	var out []float64
	for v := first; v <= max+step*1e-9; v += step {
		// Snap values that should be exact multiples (avoids -0.0000001
		// style labels from accumulated float error).
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

// minorTicks subdivides each major interval into five, returning the four
// interior positions per interval that fall inside [min, max].
func minorTicks(majors []float64, min, max float64) []float64 {
	if len(majors) < 2 {
		return nil
	}
	step := majors[1] - majors[0]
	sub := step / 5
	var out []float64
	start := majors[0] - step
	end := majors[len(majors)-1] + step
	for v := start; v < end; v += step {
		for i := 1; i < 5; i++ {
			m := v + float64(i)*sub
			if m >= min && m <= max {
				out = append(out, m)
			}
		}
	}
	return out
}

// formatTick renders a plain tick label with just enough precision for the
// step size.
func formatTick(v, step float64) string {
	if step >= 1 {
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return fmt.Sprintf("%.1f", v)
	}
	decimals := int(math.Ceil(-math.Log10(step)))
	if decimals > 6 {
		decimals = 6
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// sciExponent returns the shared power-of-ten offset for scientific tick
// labels, chosen from the largest tick magnitude. Zero means no offset.
func sciExponent(ticks []float64) int {
	maxAbs := 0.0
	for _, t := range ticks {
		if a := math.Abs(t); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 {
		return 0
	}
	return int(math.Floor(math.Log10(maxAbs)))
}

// formatSciTick renders a tick scaled by 10^exp with one decimal place.
func formatSciTick(v float64, exp int) string {
	return fmt.Sprintf("%.1f", v/math.Pow(10, float64(exp)))
}

// sciOffsetLabel is the offset annotation drawn above a scientific axis,
// e.g. "1e9".
func sciOffsetLabel(exp int) string {
	return fmt.Sprintf("1e%d", exp)
}
