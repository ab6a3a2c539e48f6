package themelint

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/yacobolo/themelint/internal/jsonmap"
)

// Manifest is a parsed package.json. Keys keep their original order so a
// rewrite only touches the entries themelint manages.
type Manifest struct {
	doc *jsonmap.Map
}

// LoadManifest reads and parses package.json at path.
func LoadManifest(fsys FileSystem, path string) (*Manifest, error) {
	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newError(KindManifestMissing, ManifestFile+" not found in project root", nil)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}
	return ParseManifest(data)
}

// ParseManifest parses package.json contents.
func ParseManifest(data []byte) (*Manifest, error) {
	doc, err := jsonmap.DecodeObject(data)
	if err != nil {
		return nil, newError(KindManifestInvalid, ManifestFile+" is not valid JSON", err)
	}
	return &Manifest{doc: doc}, nil
}

// EnsureDependencies pins every package in devDependencies and returns the
// entries that were added or rewritten.
func (m *Manifest) EnsureDependencies(pkgs []Package) []Change {
	deps := m.section("devDependencies")
	var changes []Change
	for _, p := range pkgs {
		if c, ok := ensure(deps, p.Name, p.Version); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

// EnsureScripts sets every script command and returns the entries that
// were added or rewritten.
func (m *Manifest) EnsureScripts(scripts []Script) []Change {
	section := m.section("scripts")
	var changes []Change
	for _, s := range scripts {
		if c, ok := ensure(section, s.Name, s.Command); ok {
			changes = append(changes, c)
		}
	}
	return changes
}

// HasDependency reports whether name is listed in dependencies or devDependencies.
func (m *Manifest) HasDependency(name string) bool {
	for _, key := range []string{"dependencies", "devDependencies"} {
		if section, ok := m.doc.Object(key); ok && section.Has(name) {
			return true
		}
	}
	return false
}

// Bytes renders the manifest in its on-disk format.
func (m *Manifest) Bytes() ([]byte, error) {
	return jsonmap.MarshalIndent(m.doc)
}

// Write stores the manifest at path.
func (m *Manifest) Write(fsys FileSystem, path string) error {
	data, err := m.Bytes()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ManifestFile, err)
	}
	if err := fsys.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ManifestFile, err)
	}
	return nil
}

// section returns the object stored under key, replacing a missing or
// non-object value with an empty object.
func (m *Manifest) section(key string) *jsonmap.Map {
	if obj, ok := m.doc.Object(key); ok {
		return obj
	}
	obj := jsonmap.New()
	m.doc.Set(key, obj)
	return obj
}

func ensure(section *jsonmap.Map, name, value string) (Change, bool) {
	old, present := section.String(name)
	if present && old == value {
		return Change{}, false
	}
	section.Set(name, value)
	return Change{Name: name, Old: old, New: value}, true
}
