package themelint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateIgnore(t *testing.T) {
	assert.Equal(t, "node_modules/**\n*.min.css\ndist/**\nbuild/**\nscripts/**\n", GenerateIgnore(ThemePlain).String())
	assert.Equal(t, GenerateIgnore(ThemePlain), GenerateIgnore(ThemeNone))
	assert.Equal(t, "node_modules/**\n*.min.css\ndist/**\nbuild/**\nscripts/**\ntheme.css\n", GenerateIgnore(ThemeScss).String())
}

func TestLoadIgnoreMatchesGeneratedPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, IgnoreFile, GenerateIgnore(ThemeScss).String())

	gi, err := LoadIgnore(root)
	require.NoError(t, err)
	require.NotNil(t, gi)

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/pkg/index.css", true},
		{"vendor/bootstrap.min.css", true},
		{"dist/theme.css", true},
		{"scripts/lint-wrapper.mjs", true},
		{"theme.css", true},
		{"src/scss/_base.scss", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gi.MatchesPath(tt.path), tt.path)
	}
}

func TestLoadIgnoreMissingFile(t *testing.T) {
	gi, err := LoadIgnore(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, gi)
}
