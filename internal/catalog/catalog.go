// Package catalog provides the part catalog for the Mars print kit: the
// manifest schema, loader, validator, and the embedded document contents
// every other component emits, verifies, and watches.
package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marshab/marskit/parts"
)

// Catalog is the root struct matching parts/manifest.yaml.
type Catalog struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion"` // "marskit/v1"
	Kind       string   `yaml:"kind" json:"kind"`             // "PartCatalog"
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
	Spec       Spec     `yaml:"spec" json:"spec"`

	docs map[string][]byte // filename → content, populated by Load
}

// Metadata identifies the catalog.
type Metadata struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Spec lists the kit parts in emit order.
type Spec struct {
	Parts []Part `yaml:"parts" json:"parts"`
}

// Part describes one document in the kit.
type Part struct {
	Slug       string      `yaml:"slug" json:"slug"`
	Filename   string      `yaml:"filename" json:"filename"`
	Title      string      `yaml:"title" json:"title"`
	Kind       string      `yaml:"kind" json:"kind"` // "scad" | "text"
	Summary    string      `yaml:"summary" json:"summary"`
	Parameters []Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Parameter is one named dimension exposed at the top of a .scad file.
type Parameter struct {
	Name  string  `yaml:"name" json:"name"`
	Value float64 `yaml:"value" json:"value"`
	Unit  string  `yaml:"unit,omitempty" json:"unit,omitempty"`
}

// NamedDocument pairs a bare output filename with its full content.
type NamedDocument struct {
	Filename string
	Content  []byte
}

// Load reads the embedded manifest, validates it against the catalog
// schema, and attaches the embedded document contents.
func Load() (*Catalog, error) {
	raw, err := parts.FS.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded manifest: %w", err)
	}

	result, err := ValidateYAML(raw)
	if err != nil {
		return nil, fmt.Errorf("validating manifest: %w", err)
	}
	if !result.Valid {
		msgs := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Description))
		}
		return nil, fmt.Errorf("manifest failed schema validation: %s", strings.Join(msgs, "; "))
	}

	cat, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := cat.attachDocuments(); err != nil {
		return nil, err
	}
	return cat, nil
}

// Parse parses raw manifest YAML into a Catalog without attaching documents.
func Parse(data []byte) (*Catalog, error) {
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parsing manifest YAML: %w", err)
	}
	return &cat, nil
}

// attachDocuments reads each part's document from the embedded FS and runs
// the semantic checks the schema cannot express: slugs and filenames are
// unique, filenames are bare names, contents are never empty.
func (c *Catalog) attachDocuments() error {
	c.docs = make(map[string][]byte, len(c.Spec.Parts))
	seen := make(map[string]bool, len(c.Spec.Parts))
	for _, p := range c.Spec.Parts {
		if seen[p.Slug] {
			return fmt.Errorf("duplicate part slug %q in manifest", p.Slug)
		}
		seen[p.Slug] = true
		if err := checkFilename(p.Filename); err != nil {
			return fmt.Errorf("part %s: %w", p.Slug, err)
		}
		if _, dup := c.docs[p.Filename]; dup {
			return fmt.Errorf("duplicate filename %q in manifest", p.Filename)
		}
		content, err := parts.FS.ReadFile("files/" + p.Filename)
		if err != nil {
			return fmt.Errorf("part %s: reading embedded document: %w", p.Slug, err)
		}
		if len(content) == 0 {
			return fmt.Errorf("part %s: embedded document files/%s is empty", p.Slug, p.Filename)
		}
		c.docs[p.Filename] = content
	}
	return nil
}

// checkFilename rejects anything that is not a bare file name. Documents
// always land directly in the output directory.
func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." {
		return fmt.Errorf("invalid filename %q", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid filename %q: must not contain path separators", name)
	}
	return nil
}

// Parts returns the kit parts in manifest order.
func (c *Catalog) Parts() []Part {
	return c.Spec.Parts
}

// BySlug returns the part with the given slug.
func (c *Catalog) BySlug(slug string) (*Part, bool) {
	for i := range c.Spec.Parts {
		if c.Spec.Parts[i].Slug == slug {
			return &c.Spec.Parts[i], true
		}
	}
	return nil, false
}

// Document returns the embedded document for the given filename.
func (c *Catalog) Document(filename string) (NamedDocument, bool) {
	content, ok := c.docs[filename]
	if !ok {
		return NamedDocument{}, false
	}
	return NamedDocument{Filename: filename, Content: content}, true
}

// Documents returns every kit document in manifest order. Emit, verify,
// and watch all follow this order.
func (c *Catalog) Documents() []NamedDocument {
	docs := make([]NamedDocument, 0, len(c.Spec.Parts))
	for _, p := range c.Spec.Parts {
		docs = append(docs, NamedDocument{Filename: p.Filename, Content: c.docs[p.Filename]})
	}
	return docs
}
