package bench

import (
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// StateView is the public shape of the store. Image payloads are left out;
// they are served by the image endpoints.
type StateView struct {
	Value         string                  `json:"value"`
	Size          int                     `json:"size"`
	Iterations    int                     `json:"iterations"`
	HasLogo       bool                    `json:"hasLogo"`
	StyleSettings qrstate.StyleSettings   `json:"styleSettings"`
	CurrentID     string                  `json:"currentId"`
	Running       bool                    `json:"running"`
	Libraries     []string                `json:"libraries"`
	Stacks        map[string]StackSummary `json:"stacks"`
}

// StackSummary is the aggregate of one library.
type StackSummary struct {
	Generations int                       `json:"generations"`
	Metrics     qrstate.AggregatedMetrics `json:"metrics"`
}

// MetricView is a metric without its image payload.
type MetricView struct {
	qrstate.GenerationMetric
	WithLogo bool `json:"hasLogo"`
}

// StackView is the full history of one library.
type StackView struct {
	Library string                    `json:"library"`
	Stack   []MetricView              `json:"stack"`
	Metrics qrstate.AggregatedMetrics `json:"metrics"`
}

func newStateView(s qrstate.State, running bool, libraries []string) StateView {
	v := StateView{
		Value:         s.Value,
		Size:          s.Size,
		Iterations:    s.Iterations,
		HasLogo:       s.Logo != "",
		StyleSettings: s.StyleSettings,
		CurrentID:     s.CurrentID,
		Running:       running,
		Libraries:     libraries,
		Stacks:        make(map[string]StackSummary, len(s.Stacks)),
	}
	for lib, st := range s.Stacks {
		v.Stacks[lib] = StackSummary{
			Generations: len(st.Stack),
			Metrics:     stripAggregate(st.Metrics),
		}
	}
	return v
}

func newStackView(library string, st qrstate.MetricStack) StackView {
	v := StackView{
		Library: library,
		Stack:   make([]MetricView, len(st.Stack)),
		Metrics: stripAggregate(st.Metrics),
	}
	for i, m := range st.Stack {
		v.Stack[i] = newMetricView(m)
	}
	return v
}

func newMetricView(m qrstate.GenerationMetric) MetricView {
	v := MetricView{GenerationMetric: m, WithLogo: m.HasLogo()}
	v.DataURL = ""
	v.Logo = ""
	return v
}

func stripAggregate(a qrstate.AggregatedMetrics) qrstate.AggregatedMetrics {
	if a.LastGeneration != nil {
		last := *a.LastGeneration
		last.DataURL = ""
		last.Logo = ""
		a.LastGeneration = &last
	}
	return a
}
