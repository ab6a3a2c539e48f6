package themelint

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/yacobolo/themelint/internal/jsonmap"
)

// MigrateRules extracts the rules of an existing Stylelint configuration.
// It never fails: an unreadable or malformed file yields an empty rule set
// and a warning, so a broken legacy file cannot block setup.
//
// Files without a .json extension may also be YAML, as Stylelint accepts
// both for .stylelintrc.
func MigrateRules(fsys FileSystem, path string, rep *Reporter, log *slog.Logger) *jsonmap.Map {
	log = orNop(log)
	name := filepath.Base(path)

	data, err := fsys.ReadFile(path)
	if err != nil {
		log.Debug("reading stylelint config failed", "path", path, "error", err)
		rep.Warn("Could not read %s, using default rules", name)
		return jsonmap.New()
	}

	doc, err := decodeConfig(data, filepath.Ext(path) != ".json")
	if err != nil {
		log.Debug("parsing stylelint config failed", "path", path, "error", err)
		rep.Warn("%s is not valid JSON, using default rules", name)
		return jsonmap.New()
	}

	rep.Success("Found existing Stylelint config (%s) - migrating rules", name)

	raw, ok := doc.Get("rules")
	if !ok {
		return jsonmap.New()
	}
	rules, ok := raw.(*jsonmap.Map)
	if !ok {
		rep.Warn("%s has a non-object \"rules\" entry, using default rules", name)
		return jsonmap.New()
	}
	return rules
}

var errConfigNotObject = errors.New("configuration is not an object")

func decodeConfig(data []byte, allowYAML bool) (*jsonmap.Map, error) {
	doc, err := jsonmap.DecodeObject(jsonc.ToJSON(data))
	if err == nil {
		return doc, nil
	}
	if !allowYAML {
		return nil, err
	}

	v, yerr := jsonmap.DecodeYAML(data)
	if yerr != nil {
		return nil, err
	}
	obj, ok := v.(*jsonmap.Map)
	if !ok {
		return nil, errConfigNotObject
	}
	return obj, nil
}

// migrationSources lists the files rules are migrated from: every legacy
// config that exists, in precedence order, else the canonical config.
// legacy reports whether the sources are legacy files.
func migrationSources(fsys FileSystem, root string) (paths []string, legacy bool) {
	candidates := append([]string{LegacyConfigFile}, LegacyConfigAlternates...)
	for _, name := range candidates {
		p := filepath.Join(root, name)
		if exists(fsys, p) {
			paths = append(paths, p)
		}
	}
	if len(paths) > 0 {
		return paths, true
	}
	canonical := filepath.Join(root, ConfigFile)
	if exists(fsys, canonical) {
		return []string{canonical}, false
	}
	return nil, false
}

// mergeRules adds the rules of src that dst does not define yet.
func mergeRules(dst, src *jsonmap.Map) {
	for _, name := range src.Keys() {
		if dst.Has(name) {
			continue
		}
		v, _ := src.Get(name)
		dst.Set(name, v)
	}
}
