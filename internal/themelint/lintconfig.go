package themelint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"

	"github.com/yacobolo/themelint/internal/jsonmap"
)

// StringList is a list of strings that also accepts a single string,
// as Stylelint does for extends, plugins and override files.
type StringList []string

// UnmarshalJSON accepts "a" as well as ["a", "b"]. null leaves the list unset.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*l = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = StringList(many)
	return nil
}

// Override applies a custom syntax to a set of files.
type Override struct {
	Files        StringList `json:"files,omitempty"`
	CustomSyntax string     `json:"customSyntax,omitempty"`
}

// LintConfig is the subset of a Stylelint configuration themelint manages.
// Field order is the serialization order.
type LintConfig struct {
	Extends   StringList   `json:"extends"`
	Plugins   StringList   `json:"plugins"`
	Rules     *jsonmap.Map `json:"rules"`
	Overrides []Override   `json:"overrides,omitempty"`

	// CustomSyntax is the legacy top-level form; it is never generated.
	CustomSyntax string `json:"customSyntax,omitempty"`
}

// GenerateLintConfig builds the canonical configuration for a theme kind.
// User rules are overlaid on the baseline rules: a user rule replaces the
// baseline value in place, other user rules are appended.
func GenerateLintConfig(userRules *jsonmap.Map, kind ThemeKind) *LintConfig {
	cfg := &LintConfig{
		Extends: StringList{RecommendedConfig},
		Plugins: StringList{BrowserPlugin},
		Rules:   jsonmap.New(),
	}
	cfg.Rules.Set(BrowserRule, browserRuleValue())

	if kind == ThemeScss {
		cfg.Plugins = append(StringList{ScssPlugin}, cfg.Plugins...)
		cfg.Rules.Set(AtRuleRule, atRuleValue())
		cfg.Overrides = []Override{{
			Files:        StringList{OverrideGlob},
			CustomSyntax: ScssSyntax,
		}}
	}

	for _, name := range userRules.Keys() {
		v, _ := userRules.Get(name)
		cfg.Rules.Set(name, jsonmap.Clone(v))
	}
	return cfg
}

// Marshal renders the configuration in its on-disk format.
func (c *LintConfig) Marshal() ([]byte, error) {
	return jsonmap.MarshalIndent(c)
}

// ParseLintConfig parses a Stylelint JSON configuration. Comments and
// trailing commas are tolerated.
func ParseLintConfig(data []byte) (*LintConfig, error) {
	var cfg LintConfig
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasPlugin reports whether name is listed in plugins.
func (c *LintConfig) HasPlugin(name string) bool {
	for _, p := range c.Plugins {
		if p == name {
			return true
		}
	}
	return false
}

// DeclaresScssSyntax reports whether SCSS files get the postcss-scss syntax,
// either through the legacy top-level customSyntax or through an override
// whose files include an SCSS glob or are unrestricted.
func (c *LintConfig) DeclaresScssSyntax() bool {
	if c.CustomSyntax == ScssSyntax {
		return true
	}
	for _, o := range c.Overrides {
		if o.CustomSyntax != ScssSyntax {
			continue
		}
		if o.Files == nil {
			return true
		}
		for _, f := range o.Files {
			if IsScssGlob(f) {
				return true
			}
		}
	}
	return false
}

// hasCanonicalOverride reports whether the exact generated override is present.
func (c *LintConfig) hasCanonicalOverride() bool {
	for _, o := range c.Overrides {
		if o.CustomSyntax != ScssSyntax {
			continue
		}
		for _, f := range o.Files {
			if f == OverrideGlob {
				return true
			}
		}
	}
	return false
}

// browserIgnore returns the ignore list of the browser-support rule.
func (c *LintConfig) browserIgnore() []string {
	if c.Rules == nil {
		return nil
	}
	v, _ := c.Rules.Get(BrowserRule)
	opts := ruleOptions(v)
	if opts == nil {
		return nil
	}
	raw, _ := opts.Get("ignore")
	return stringItems(raw)
}

// ScssSamplePaths are typical SCSS source paths; a pattern matching any of
// them covers SCSS files. The lint wrapper applies the same rule.
var ScssSamplePaths = []string{"theme.scss", ScssDir + "/theme.scss", ScssDir + "/components/_buttons.scss"}

// IsScssGlob reports whether a files pattern covers SCSS sources. Malformed
// patterns cover nothing.
func IsScssGlob(pattern string) bool {
	if strings.HasSuffix(pattern, ".scss") {
		return true
	}
	for _, sample := range ScssSamplePaths {
		if ok, err := doublestar.Match(pattern, sample); err == nil && ok {
			return true
		}
	}
	return false
}

// UpgradeBrowserRule makes sure a user-defined browser-support rule ignores
// at least the baseline features. Missing entries are appended; everything
// else in the user rule is kept. It reports whether rules changed.
func UpgradeBrowserRule(rules *jsonmap.Map) bool {
	v, ok := rules.Get(BrowserRule)
	if !ok {
		return false
	}
	opts := ruleOptions(v)
	if opts == nil {
		return false
	}

	raw, _ := opts.Get("ignore")
	current, _ := raw.([]any)
	have := make(map[string]bool, len(current))
	for _, s := range stringItems(raw) {
		have[s] = true
	}

	updated := append([]any(nil), current...)
	for _, feature := range IgnoredFeatures {
		if !have[feature] {
			updated = append(updated, feature)
		}
	}
	if len(updated) == len(current) {
		return false
	}
	opts.Set("ignore", updated)
	return true
}

// NeedsRewrite decides whether an existing .stylelintrc.json must be replaced
// by generated. It returns a short reason for logging.
func NeedsRewrite(existing []byte, generated *LintConfig, kind ThemeKind) (bool, string) {
	current, err := ParseLintConfig(existing)
	if err != nil {
		return true, fmt.Sprintf("existing config is not valid JSON: %v", err)
	}

	have := make(map[string]bool)
	for _, s := range current.browserIgnore() {
		have[s] = true
	}
	for _, s := range generated.browserIgnore() {
		if !have[s] {
			return true, fmt.Sprintf("browser rule does not ignore %q", s)
		}
	}

	if kind == ThemeScss && !current.hasCanonicalOverride() {
		return true, "SCSS override missing or malformed"
	}
	if current.CustomSyntax != "" && current.Overrides == nil {
		return true, "legacy top-level customSyntax"
	}

	want, err := generated.Marshal()
	if err != nil {
		return true, err.Error()
	}
	a, errA := jsonmap.Decode(want)
	b, errB := jsonmap.Decode(jsonc.ToJSON(existing))
	if errA != nil || errB != nil || !jsonmap.Equal(a, b) {
		return true, "configuration differs"
	}
	return false, ""
}

func browserRuleValue() []any {
	opts := jsonmap.New()
	opts.Set("browsers", anyStrings(TargetBrowsers))
	opts.Set("ignore", anyStrings(IgnoredFeatures))
	opts.Set("ignorePartialSupport", true)
	return []any{true, opts}
}

func atRuleValue() []any {
	opts := jsonmap.New()
	opts.Set("ignoreAtRules", anyStrings(ScssAtRules))
	return []any{true, opts}
}

// ruleOptions returns the secondary options of a [primary, options] rule value.
func ruleOptions(v any) *jsonmap.Map {
	arr, ok := v.([]any)
	if !ok || len(arr) < 2 {
		return nil
	}
	opts, _ := arr[1].(*jsonmap.Map)
	return opts
}

func anyStrings(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func stringItems(v any) []string {
	arr, _ := v.([]any)
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
