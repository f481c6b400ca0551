package qrstate

import (
	"maps"
	"slices"
	"time"
)

// Defaults of a fresh store.
const (
	DefaultValue      = "https://github.com/ngvcanh/qrcode-generation"
	DefaultSize       = 240
	DefaultIterations = 20
	DefaultMargin     = 4
)

// Bounds applied by the scalar setters.
const (
	MinSize       = 64
	MaxSize       = 2048
	MinIterations = 1
	MaxIterations = 1000
)

// DotStyle is the module shape of a rendered code.
type DotStyle string

const (
	DotSquare  DotStyle = "square"
	DotCircle  DotStyle = "circle"
	DotRounded DotStyle = "rounded"
	DotDots    DotStyle = "dots"
	DotStar    DotStyle = "star"
	DotDiamond DotStyle = "diamond"
)

// Valid reports whether s is a known dot style.
func (s DotStyle) Valid() bool {
	switch s {
	case DotSquare, DotCircle, DotRounded, DotDots, DotStar, DotDiamond:
		return true
	}
	return false
}

// ShapeStyle is used for finder corners and the logo background.
type ShapeStyle string

const (
	ShapeSquare  ShapeStyle = "square"
	ShapeCircle  ShapeStyle = "circle"
	ShapeRounded ShapeStyle = "rounded"
)

// Valid reports whether s is a known shape style.
func (s ShapeStyle) Valid() bool {
	switch s {
	case ShapeSquare, ShapeCircle, ShapeRounded:
		return true
	}
	return false
}

// StyleSettings controls how codes are rendered.
type StyleSettings struct {
	DotStyle        DotStyle   `json:"dotStyle" yaml:"dot_style"`
	CornerStyle     ShapeStyle `json:"cornerStyle" yaml:"corner_style"`
	BackgroundColor string     `json:"backgroundColor" yaml:"background_color"`
	ForegroundColor string     `json:"foregroundColor" yaml:"foreground_color"`
	LogoStyle       ShapeStyle `json:"logoStyle" yaml:"logo_style"`
	Margin          int        `json:"margin" yaml:"margin"`
}

// DefaultStyleSettings returns the style of a fresh store.
func DefaultStyleSettings() StyleSettings {
	return StyleSettings{
		DotStyle:        DotSquare,
		CornerStyle:     ShapeSquare,
		BackgroundColor: "#ffffff",
		ForegroundColor: "#000000",
		LogoStyle:       ShapeRounded,
		Margin:          DefaultMargin,
	}
}

// GenerationMetric is one measured generation.
type GenerationMetric struct {
	ID          string    `json:"id"`
	RenderTime  float64   `json:"renderTime"`  // milliseconds
	MemoryUsage float64   `json:"memoryUsage"` // bytes
	FileSize    float64   `json:"fileSize"`    // bytes
	Timestamp   time.Time `json:"timestamp"`
	Value       string    `json:"value"`
	Size        int       `json:"size"`
	Logo        string    `json:"logo,omitempty"`
	DataURL     string    `json:"dataURL,omitempty"`
}

// HasLogo reports whether the code was generated with a logo.
func (m GenerationMetric) HasLogo() bool { return m.Logo != "" }

// AggregatedMetrics summarizes a stack.
type AggregatedMetrics struct {
	TotalGenerations   int               `json:"totalGenerations"`
	AverageRenderTime  float64           `json:"averageRenderTime"`
	MinRenderTime      float64           `json:"minRenderTime"`
	MaxRenderTime      float64           `json:"maxRenderTime"`
	TotalMemoryUsage   float64           `json:"totalMemoryUsage"`
	AverageMemoryUsage float64           `json:"averageMemoryUsage"`
	LastGeneration     *GenerationMetric `json:"lastGeneration"`
}

// MetricStack is the ordered history of one library and its aggregate.
type MetricStack struct {
	Stack   []GenerationMetric `json:"stack"`
	Metrics AggregatedMetrics  `json:"metrics"`
}

// State is the whole application state.
type State struct {
	Value         string                 `json:"value" yaml:"value"`
	Size          int                    `json:"size" yaml:"size"`
	Iterations    int                    `json:"iterations" yaml:"iterations"`
	Logo          string                 `json:"logo" yaml:"logo"`
	Stacks        map[string]MetricStack `json:"stacks" yaml:"-"`
	CurrentID     string                 `json:"currentId" yaml:"-"`
	StyleSettings StyleSettings          `json:"styleSettings" yaml:"style_settings"`
}

// DefaultState returns the initial state of the store.
func DefaultState() State {
	return State{
		Value:         DefaultValue,
		Size:          DefaultSize,
		Iterations:    DefaultIterations,
		Stacks:        map[string]MetricStack{},
		StyleSettings: DefaultStyleSettings(),
	}
}

// Libraries returns the sorted ids of the libraries that have a stack.
func (s State) Libraries() []string {
	return slices.Sorted(maps.Keys(s.Stacks))
}

// Current returns the metric with id CurrentID in the stack of library.
func (s State) Current(library string) (GenerationMetric, bool) {
	if s.CurrentID == "" {
		return GenerationMetric{}, false
	}
	for _, m := range s.Stacks[library].Stack {
		if m.ID == s.CurrentID {
			return m, true
		}
	}
	return GenerationMetric{}, false
}
