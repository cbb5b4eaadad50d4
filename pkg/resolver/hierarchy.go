package resolver

import (
	"context"
	"fmt"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// Layer is one level of the hierarchy as seen by Explain. Priority grows
// with specificity; the layer list is ordered least specific first.
type Layer struct {
	Level       model.ScopeLevel
	Priority    int
	Description string

	// HasRecord reports whether a valid record exists at this layer.
	HasRecord   bool
	Permissions permission.Set
	Denied      permission.Set

	IsGranted bool
	IsDenied  bool
}

// Result is the final decision of an Explain call.
type Result struct {
	Allowed          bool
	ExplicitlyDenied bool

	// Source is the most specific level that decided the outcome, or
	// SourceNone when nothing granted or denied the kind.
	Source model.ScopeLevel
}

// Hierarchy is the full audit trail of one resolution: every applicable
// layer with its contribution, plus the final decision. It exists for
// troubleshooting and internal tooling only; access decisions always go
// through HasPermission.
type Hierarchy struct {
	Request Request
	Kind    permission.Kind
	Layers  []Layer
	Final   Result
}

// Explain resolves the kind the same way HasPermission does and reports
// every contributing layer alongside the decision.
func (r *Resolver) Explain(ctx context.Context, req Request, kind permission.Kind) (*Hierarchy, error) {
	recs, keys, err := r.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	byLevel := make(map[model.ScopeLevel]*model.PermissionRecord, len(recs))
	for i := range recs {
		byLevel[recs[i].Level] = &recs[i]
	}

	layers := make([]Layer, 0, len(keys))
	for i, key := range keys {
		layer := Layer{
			Level:       key.Level,
			Priority:    i,
			Description: key.Describe(),
		}
		if rec, ok := byLevel[key.Level]; ok {
			layer.HasRecord = true
			layer.Permissions = rec.Permissions()
			layer.Denied = rec.Denied()
			layer.IsGranted = layer.Permissions.Has(kind)
			layer.IsDenied = layer.Denied.Has(kind)
		}
		layers = append(layers, layer)
	}

	allowed, explicitlyDenied, source := decide(recs, kind)
	return &Hierarchy{
		Request: req,
		Kind:    kind,
		Layers:  layers,
		Final: Result{
			Allowed:          allowed,
			ExplicitlyDenied: explicitlyDenied,
			Source:           source,
		},
	}, nil
}

// Describe renders the hierarchy as a human-readable report.
func (h *Hierarchy) Describe() string {
	out := fmt.Sprintf("resolution of %q for user %q in tenant %q\n", h.Kind, h.Request.UserID, h.Request.TenantID)
	for _, l := range h.Layers {
		mark := " "
		switch {
		case l.IsDenied:
			mark = "-"
		case l.IsGranted:
			mark = "+"
		}
		out += fmt.Sprintf("  [%s] %-22s grants=%s denies=%s\n", mark, l.Level, l.Permissions, l.Denied)
	}

	verdict := "denied"
	if h.Final.Allowed {
		verdict = "granted"
	}
	sourceName := "none"
	if h.Final.Source != SourceNone {
		sourceName = h.Final.Source.String()
	}
	out += fmt.Sprintf("  => %s (source: %s)\n", verdict, sourceName)
	return out
}
