package policy

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/permiso/pkg/permission"
)

// Document is a declarative defaults policy. It describes the baseline
// grants and denials at the default scope levels; user-specific records are
// never written from policy, only through the sharing workflow.
type Document struct {
	// GrantedBy is recorded as the granting principal on every record the
	// document produces. Defaults to "policy".
	GrantedBy string `yaml:"granted_by,omitempty"`

	Global  *Defaults        `yaml:"global,omitempty"`
	Tenants []TenantDefaults `yaml:"tenants,omitempty"`
}

// Defaults pairs a grant list with an explicit-denial list for one scope.
type Defaults struct {
	Grant PermissionList `yaml:"grant,omitempty"`
	Deny  PermissionList `yaml:"deny,omitempty"`
}

func (d Defaults) empty() bool {
	return d.Grant.Set.IsEmpty() && d.Deny.Set.IsEmpty()
}

// TenantDefaults scopes defaults to one tenant, with optional per
// content-type and per-resource refinements.
type TenantDefaults struct {
	Tenant       string                `yaml:"tenant"`
	Defaults     `yaml:",inline"`
	ContentTypes []ContentTypeDefaults `yaml:"content_types,omitempty"`
	Resources    []ResourceDefaults    `yaml:"resources,omitempty"`
}

// ContentTypeDefaults refines a tenant's defaults for one content type.
type ContentTypeDefaults struct {
	ContentType string `yaml:"content_type"`
	Defaults    `yaml:",inline"`
}

// ResourceDefaults refines a tenant's defaults for one resource.
type ResourceDefaults struct {
	Resource string `yaml:"resource"`
	Defaults `yaml:",inline"`
}

// PermissionList is a permission set in YAML form. It accepts both a
// sequence of kind names and a single scalar kind.
type PermissionList struct {
	Set permission.Set
}

func (p *PermissionList) UnmarshalYAML(value *yaml.Node) error {
	var names []string
	if value.Kind == yaml.ScalarNode {
		names = []string{value.Value}
	} else if err := value.Decode(&names); err != nil {
		return err
	}

	set, err := permission.ParseSet(names)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	p.Set = set
	return nil
}

func (p PermissionList) MarshalYAML() (interface{}, error) {
	names := make([]string, 0, p.Set.Len())
	for _, kind := range p.Set.Kinds() {
		names = append(names, kind.String())
	}
	return names, nil
}

// Parse reads and validates a defaults policy document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if doc.GrantedBy == "" {
		doc.GrantedBy = "policy"
	}
	return &doc, nil
}

// Validate rejects documents with missing identifiers or duplicate scopes.
func (d *Document) Validate() error {
	tenants := map[string]bool{}
	for _, tenant := range d.Tenants {
		if tenant.Tenant == "" {
			return fmt.Errorf("policy tenant entry is missing a tenant id")
		}
		if tenants[tenant.Tenant] {
			return fmt.Errorf("duplicate policy entry for tenant %q", tenant.Tenant)
		}
		tenants[tenant.Tenant] = true

		contentTypes := map[string]bool{}
		for _, ct := range tenant.ContentTypes {
			if ct.ContentType == "" {
				return fmt.Errorf("tenant %q: content type entry is missing a content type", tenant.Tenant)
			}
			if contentTypes[ct.ContentType] {
				return fmt.Errorf("tenant %q: duplicate policy entry for content type %q", tenant.Tenant, ct.ContentType)
			}
			contentTypes[ct.ContentType] = true
		}

		resources := map[string]bool{}
		for _, res := range tenant.Resources {
			if res.Resource == "" {
				return fmt.Errorf("tenant %q: resource entry is missing a resource id", tenant.Tenant)
			}
			if resources[res.Resource] {
				return fmt.Errorf("tenant %q: duplicate policy entry for resource %q", tenant.Tenant, res.Resource)
			}
			resources[res.Resource] = true
		}
	}
	return nil
}
