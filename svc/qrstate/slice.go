package qrstate

import (
	"github.com/dmitrymomot/qrbench/pkg/sanitizer"
	"github.com/dmitrymomot/qrbench/pkg/store"
)

// Name is the action type namespace of the store.
const Name = "QRCodeStore"

// Reducer keys.
const (
	ActionSetValue         = "setValue"
	ActionSetSize          = "setSize"
	ActionSetIterations    = "setIterations"
	ActionSetLogo          = "setLogo"
	ActionSetStyleSettings = "setStyleSettings"
	ActionSetCurrentID     = "setCurrentId"
	ActionAddMetric        = "addMetric"
	ActionReset            = "reset"
)

// NewSlice returns the slice backing the application store.
func NewSlice() *store.Slice[State] {
	return store.NewSlice(Name, DefaultState(), map[string]store.Reducer[State]{
		ActionSetValue: store.Handle(func(s State, v string) State {
			s.Value = v
			return s
		}),
		ActionSetSize: store.Handle(func(s State, v int) State {
			s.Size = sanitizer.Clamp(v, MinSize, MaxSize)
			return s
		}),
		ActionSetIterations: store.Handle(func(s State, v int) State {
			s.Iterations = sanitizer.Clamp(v, MinIterations, MaxIterations)
			return s
		}),
		ActionSetLogo: store.Handle(func(s State, v string) State {
			s.Logo = v
			return s
		}),
		ActionSetStyleSettings: store.Handle(func(s State, v StyleSettings) State {
			s.StyleSettings = normalizeStyle(v)
			return s
		}),
		ActionSetCurrentID: store.Handle(func(s State, v string) State {
			s.CurrentID = v
			return s
		}),
		ActionAddMetric: store.HandleMeta(addMetric),
		ActionReset: func(s State, _ store.Action) State {
			s.Stacks = map[string]MetricStack{}
			s.CurrentID = ""
			return s
		},
	})
}

func addMetric(s State, m GenerationMetric, library string) State {
	if s.Stacks == nil {
		s.Stacks = map[string]MetricStack{}
	}
	current := s.Stacks[library]
	current.Stack = append(current.Stack, Sanitize(m))
	current.Metrics = Calculate(current.Stack)
	s.Stacks[library] = current
	return s
}

// normalizeStyle fills unknown or empty fields from the defaults.
func normalizeStyle(v StyleSettings) StyleSettings {
	def := DefaultStyleSettings()
	if !v.DotStyle.Valid() {
		v.DotStyle = def.DotStyle
	}
	if !v.CornerStyle.Valid() {
		v.CornerStyle = def.CornerStyle
	}
	if !v.LogoStyle.Valid() {
		v.LogoStyle = def.LogoStyle
	}
	if v.BackgroundColor == "" {
		v.BackgroundColor = def.BackgroundColor
	}
	if v.ForegroundColor == "" {
		v.ForegroundColor = def.ForegroundColor
	}
	v.Margin = sanitizer.ZeroIfNegative(v.Margin)
	return v
}

// Normalize clamps the non-zero scalar fields of a partial state so that an
// override obeys the same bounds as the setters.
func Normalize(s State) State {
	if s.Size != 0 {
		s.Size = sanitizer.Clamp(s.Size, MinSize, MaxSize)
	}
	if s.Iterations != 0 {
		s.Iterations = sanitizer.Clamp(s.Iterations, MinIterations, MaxIterations)
	}
	if s.StyleSettings != (StyleSettings{}) {
		s.StyleSettings = normalizeStyle(s.StyleSettings)
	}
	return s
}
