package policy

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doodlesbykumbi/permiso/pkg/model"
	"github.com/doodlesbykumbi/permiso/pkg/permission"
	"github.com/doodlesbykumbi/permiso/pkg/store"
)

// Result summarizes one policy application.
type Result struct {
	// Applied counts the scope records written (grants and denials each
	// count once per scope).
	Applied int
	// Scopes names the scopes touched, in document order.
	Scopes []string
}

// Loader applies defaults policy documents through the records store.
// Application is additive, matching the store's upsert semantics: loading
// the same document twice is a no-op, and loading a widened document only
// ever adds grants or denials.
type Loader struct {
	records store.RecordsStore
}

// NewLoader creates a policy loader backed by the given records store.
func NewLoader(records store.RecordsStore) *Loader {
	return &Loader{records: records}
}

// LoadFromReader parses and applies a policy document.
func (l *Loader) LoadFromReader(ctx context.Context, r io.Reader) (*Result, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx, doc)
}

// LoadFromString parses and applies a policy document held in a string.
func (l *Loader) LoadFromString(ctx context.Context, text string) (*Result, error) {
	return l.LoadFromReader(ctx, strings.NewReader(text))
}

// LoadFile parses and applies the policy document at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open policy file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(ctx, file)
}

// Load applies an already-parsed document.
func (l *Loader) Load(ctx context.Context, doc *Document) (*Result, error) {
	result := &Result{}

	if doc.Global != nil {
		if err := l.apply(ctx, result, model.GlobalDefaultScope(), *doc.Global, doc.GrantedBy); err != nil {
			return nil, err
		}
	}

	for _, tenant := range doc.Tenants {
		if err := l.apply(ctx, result, model.TenantDefaultScope(tenant.Tenant), tenant.Defaults, doc.GrantedBy); err != nil {
			return nil, err
		}

		for _, ct := range tenant.ContentTypes {
			key := model.ContentTypeDefaultScope(tenant.Tenant, ct.ContentType)
			if err := l.apply(ctx, result, key, ct.Defaults, doc.GrantedBy); err != nil {
				return nil, err
			}
		}

		for _, res := range tenant.Resources {
			key := model.ResourceDefaultScope(tenant.Tenant, res.Resource)
			if err := l.apply(ctx, result, key, res.Defaults, doc.GrantedBy); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

func (l *Loader) apply(ctx context.Context, result *Result, key model.ScopeKey, defaults Defaults, grantedBy string) error {
	if defaults.empty() {
		return nil
	}

	if !defaults.Grant.Set.IsEmpty() {
		if err := l.write(ctx, key, defaults.Grant.Set, grantedBy, false); err != nil {
			return err
		}
	}
	if !defaults.Deny.Set.IsEmpty() {
		if err := l.write(ctx, key, defaults.Deny.Set, grantedBy, true); err != nil {
			return err
		}
	}

	result.Applied++
	result.Scopes = append(result.Scopes, key.Describe())
	return nil
}

func (l *Loader) write(ctx context.Context, key model.ScopeKey, perms permission.Set, grantedBy string, denial bool) error {
	var err error
	if denial {
		_, err = l.records.Deny(ctx, key, perms, grantedBy)
	} else {
		_, err = l.records.Upsert(ctx, key, perms, nil, grantedBy)
	}
	if err != nil {
		return fmt.Errorf("failed to apply policy at %s: %w", key.Describe(), err)
	}
	return nil
}
