package bench

import (
	"image/color"
	"net/http"

	"github.com/dmitrymomot/qrbench/handler"
	"github.com/dmitrymomot/qrbench/pkg/qrcode"
	"github.com/dmitrymomot/qrbench/pkg/store"
	"github.com/dmitrymomot/qrbench/svc/qrstate"
)

// StatePatch updates the settings. Absent fields are left unchanged.
type StatePatch struct {
	Value         *string     `json:"value"`
	Size          *int        `json:"size"`
	Iterations    *int        `json:"iterations"`
	StyleSettings *StylePatch `json:"styleSettings"`
}

// StylePatch updates individual style fields.
type StylePatch struct {
	DotStyle        *qrstate.DotStyle   `json:"dotStyle"`
	CornerStyle     *qrstate.ShapeStyle `json:"cornerStyle"`
	LogoStyle       *qrstate.ShapeStyle `json:"logoStyle"`
	ForegroundColor *string             `json:"foregroundColor"`
	BackgroundColor *string             `json:"backgroundColor"`
	Margin          *int                `json:"margin"`
}

func (p StylePatch) apply(s qrstate.StyleSettings) (qrstate.StyleSettings, error) {
	invalid := handler.ErrUnprocessableEntity
	if p.DotStyle != nil {
		if !p.DotStyle.Valid() {
			return s, invalid.WithMessage("unknown dot style")
		}
		s.DotStyle = *p.DotStyle
	}
	if p.CornerStyle != nil {
		if !p.CornerStyle.Valid() {
			return s, invalid.WithMessage("unknown corner style")
		}
		s.CornerStyle = *p.CornerStyle
	}
	if p.LogoStyle != nil {
		if !p.LogoStyle.Valid() {
			return s, invalid.WithMessage("unknown logo style")
		}
		s.LogoStyle = *p.LogoStyle
	}
	if p.ForegroundColor != nil {
		if _, err := qrcode.ParseHexColor(*p.ForegroundColor, color.NRGBA{}); err != nil {
			return s, invalid.WithMessage("invalid foreground color")
		}
		s.ForegroundColor = *p.ForegroundColor
	}
	if p.BackgroundColor != nil {
		if _, err := qrcode.ParseHexColor(*p.BackgroundColor, color.NRGBA{}); err != nil {
			return s, invalid.WithMessage("invalid background color")
		}
		s.BackgroundColor = *p.BackgroundColor
	}
	if p.Margin != nil {
		if *p.Margin < 0 {
			return s, invalid.WithMessage("margin must not be negative")
		}
		s.Margin = *p.Margin
	}
	return s, nil
}

func (m *Module) view() StateView {
	return m.snapshotView(m.store.State())
}

func (m *Module) getState(r *http.Request, _ empty) handler.Response {
	view := store.MustUse[qrstate.State](r.Context())
	return handler.JSON(newStateView(view.State, m.runner.Running(), m.runner.Libraries()))
}

func (m *Module) patchState(_ *http.Request, req StatePatch) handler.Response {
	var style *qrstate.StyleSettings
	if req.StyleSettings != nil {
		s, err := req.StyleSettings.apply(m.store.State().StyleSettings)
		if err != nil {
			return handler.JSONError(err)
		}
		style = &s
	}
	if req.Value != nil && *req.Value == "" {
		return handler.JSONError(handler.ErrUnprocessableEntity.WithMessage("value must not be empty"))
	}

	if req.Value != nil {
		m.store.SetValue(*req.Value)
	}
	if req.Size != nil {
		m.store.SetSize(*req.Size)
	}
	if req.Iterations != nil {
		m.store.SetIterations(*req.Iterations)
	}
	if style != nil {
		m.store.SetStyleSettings(*style)
	}
	return handler.JSON(m.view())
}

func (m *Module) resetStacks(_ *http.Request, _ empty) handler.Response {
	if m.runner.Running() {
		return handler.JSONError(handler.ErrConflict.WithMessage("generation in progress"))
	}
	m.store.Reset()
	return handler.Empty(http.StatusNoContent)
}
