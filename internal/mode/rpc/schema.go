// ABOUTME: Request/response schema types for the comparison RPC methods
// ABOUTME: Observable comparison state in the shape frontends redraw from

package rpc

import (
	"github.com/mauromedda/prefscale-go/internal/engine"
)

// CreateParams starts a new comparison between two labeled alternatives.
type CreateParams struct {
	ObjectA string `json:"object_a"`
	ObjectB string `json:"object_b"`
	Scale   string `json:"scale,omitempty"`
}

// ActionParams dispatches one abstract user action to a comparison.
type ActionParams struct {
	ID     string  `json:"id"`
	Action string  `json:"action"`
	Grade  float64 `json:"grade,omitempty"`
	Scale  string  `json:"scale,omitempty"`
}

// HandleParams addresses an existing comparison.
type HandleParams struct {
	ID string `json:"id"`
}

// PanelView is one selectable grade panel.
type PanelView struct {
	Grade   float64 `json:"grade"`
	Grouped bool    `json:"grouped,omitempty"`
}

// StateResult is the observable comparison state after an action.
type StateResult struct {
	ID           string      `json:"id"`
	Level        string      `json:"level"`
	Branch       string      `json:"branch,omitempty"`
	Panels       []PanelView `json:"panels"`
	PendingGrade float64     `json:"pending_grade,omitempty"`
	Reliability  float64     `json:"reliability"`
	Scale        string      `json:"scale"`
	ObjectA      string      `json:"object_a"`
	ObjectB      string      `json:"object_b"`
	Selected     string      `json:"selected"`
	FineCount    int         `json:"fine_count,omitempty"`
	Done         bool        `json:"done"`
}

// ResultPayload is the terminal tuple of a finished comparison.
type ResultPayload struct {
	ID          string  `json:"id"`
	Ratio       float64 `json:"ratio"`
	Reliability float64 `json:"reliability"`
	Scale       string  `json:"scale"`
}

// ScaleListResult is the response payload for the list_scales method.
type ScaleListResult struct {
	Scales []ScaleInfo `json:"scales"`
}

// ScaleInfo describes one selectable scale transformation.
type ScaleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// stateResult renders an engine snapshot for the wire.
func stateResult(id string, c *engine.Comparison) StateResult {
	snap := c.Snapshot()
	panels := make([]PanelView, len(snap.Panels))
	for i, p := range snap.Panels {
		panels[i] = PanelView{Grade: p.Grade, Grouped: p.Kind == engine.PanelGrouped}
	}
	branch := ""
	if snap.Branch != engine.BranchNone {
		branch = snap.Branch.String()
	}
	selected := ""
	if snap.Selected != engine.ObjectNone {
		selected = snap.Selected.String()
	}
	return StateResult{
		ID:           id,
		Level:        snap.Level.String(),
		Branch:       branch,
		Panels:       panels,
		PendingGrade: snap.PendingGrade,
		Reliability:  snap.Reliability,
		Scale:        snap.Scale.String(),
		ObjectA:      snap.ObjectA,
		ObjectB:      snap.ObjectB,
		Selected:     selected,
		FineCount:    snap.FineCount,
		Done:         c.Done(),
	}
}
