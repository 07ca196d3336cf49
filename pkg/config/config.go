// Package config handles loading chart configuration.
//
// Configuration is a YAML file describing chart appearance and default
// drawing options. Everything is optional; missing values fall back to
// render.DefaultStyle and the zero draw options.
package config

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chromaplot/chromaplot/pkg/chromatogram"
	"github.com/chromaplot/chromaplot/pkg/render"
)

// ChartConfig holds chart appearance settings.
type ChartConfig struct {
	Width      int      `yaml:"width,omitempty"`
	Height     int      `yaml:"height,omitempty"`
	Palette    []string `yaml:"palette,omitempty"`  // hex colours, "#rrggbb"
	BarWidth   float64  `yaml:"bar_width,omitempty"`
	MarkerSize float64  `yaml:"marker_size,omitempty"`
	LineWidth  float64  `yaml:"line_width,omitempty"`
	CapSize    float64  `yaml:"cap_size,omitempty"`
	Background string   `yaml:"background,omitempty"`
	Axis       string   `yaml:"axis,omitempty"`
	Text       string   `yaml:"text,omitempty"`
	Subtle     string   `yaml:"subtle,omitempty"`
	ErrorBar   string   `yaml:"error_bar,omitempty"`
}

// DrawConfig holds default combined-chromatogram drawing options.
type DrawConfig struct {
	TopNPeaks     int     `yaml:"top_n_peaks,omitempty"`
	MinimumArea   float64 `yaml:"minimum_area,omitempty"`
	UseMedian     bool    `yaml:"use_median,omitempty"`
	UsePeakHeight bool    `yaml:"use_peak_height,omitempty"`
	ShowPoints    bool    `yaml:"show_points,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Chart ChartConfig `yaml:"chart,omitempty"`
	Draw  DrawConfig  `yaml:"draw,omitempty"`
}

// DefaultConfig returns a Config mirroring render.DefaultStyle.
func DefaultConfig() Config {
	return Config{}
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadStyleFrom reads a config file and returns just the resolved chart
// style. A missing file yields render.DefaultStyle.
func LoadStyleFrom(path string) (render.Style, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return render.DefaultStyle(), err
	}
	return cfg.Style()
}

// Style applies the chart settings on top of render.DefaultStyle.
func (c Config) Style() (render.Style, error) {
	s := render.DefaultStyle()
	cc := c.Chart
	if len(cc.Palette) > 0 {
		s.Palette = s.Palette[:0]
		for _, hex := range cc.Palette {
			col, err := ParseHexColor(hex)
			if err != nil {
				return s, fmt.Errorf("palette: %w", err)
			}
			s.Palette = append(s.Palette, col)
		}
	}
	if cc.BarWidth > 0 {
		s.BarWidth = cc.BarWidth
	}
	if cc.MarkerSize > 0 {
		s.MarkerSize = cc.MarkerSize
	}
	if cc.LineWidth > 0 {
		s.LineWidth = cc.LineWidth
	}
	if cc.CapSize > 0 {
		s.CapSize = cc.CapSize
	}
	for _, f := range []struct {
		hex string
		dst *color.RGBA
	}{
		{cc.Background, &s.Background},
		{cc.Axis, &s.Axis},
		{cc.Text, &s.Text},
		{cc.Subtle, &s.Subtle},
		{cc.ErrorBar, &s.ErrorBar},
	} {
		if f.hex == "" {
			continue
		}
		col, err := ParseHexColor(f.hex)
		if err != nil {
			return s, err
		}
		*f.dst = col
	}
	return s, nil
}

// DrawOptions converts the draw section into chromatogram options.
func (c Config) DrawOptions() chromatogram.DrawOptions {
	return chromatogram.DrawOptions{
		TopNPeaks:     c.Draw.TopNPeaks,
		MinimumArea:   c.Draw.MinimumArea,
		UseMedian:     c.Draw.UseMedian,
		UsePeakHeight: c.Draw.UsePeakHeight,
		ShowPoints:    c.Draw.ShowPoints,
		BarWidth:      c.Chart.BarWidth,
	}
}

// Figure creates a figure sized and styled per the config.
func (c Config) Figure() (*render.Figure, error) {
	style, err := c.Style()
	if err != nil {
		return nil, err
	}
	w, h := c.Chart.Width, c.Chart.Height
	if w <= 0 {
		w = render.DefaultWidth
	}
	if h <= 0 {
		h = render.DefaultHeight
	}
	return render.NewFigureStyled(w, h, style), nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	var v [4]uint8
	v[3] = 0xff
	for i := 0; i < len(h)/2; i++ {
		b, err := strconv.ParseUint(h[i*2:i*2+2], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
		}
		v[i] = uint8(b)
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
}
