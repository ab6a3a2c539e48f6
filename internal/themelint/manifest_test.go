package themelint

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifestErrors(t *testing.T) {
	root := t.TempDir()

	_, err := LoadManifest(OSFS, filepath.Join(root, ManifestFile))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindManifestMissing))
	assert.Equal(t, "package.json not found in project root", err.Error())

	writeFile(t, root, ManifestFile, `{"name": "theme"`)
	_, err = LoadManifest(OSFS, filepath.Join(root, ManifestFile))
	require.Error(t, err)
	assert.True(t, IsKind(err, KindManifestInvalid))
	assert.Contains(t, err.Error(), "package.json is not valid JSON: ")
	assert.Equal(t, ExitFailure, ExitCode(err))
}

type readFailFS struct {
	FileSystem
	err error
}

func (f readFailFS) ReadFile(string) ([]byte, error) { return nil, f.err }

func TestLoadManifestOtherReadError(t *testing.T) {
	_, err := LoadManifest(readFailFS{FileSystem: OSFS, err: fs.ErrPermission}, ManifestFile)
	require.Error(t, err)

	var typed *Error
	assert.False(t, errors.As(err, &typed))
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Equal(t, ExitFailure, ExitCode(err))
}

func TestEnsureDependencies(t *testing.T) {
	m, err := ParseManifest([]byte(`{"name": "theme", "devDependencies": {"stylelint": "^14.0.0", "sass": "^1.69.0"}}`))
	require.NoError(t, err)

	changes := m.EnsureDependencies(BaseDependencies)

	assert.Equal(t, []Change{
		{Name: "stylelint", Old: "^14.0.0", New: "^15.11.0"},
		{Name: RecommendedConfig, New: "^13.0.0"},
		{Name: BrowserPlugin, New: "^7.0.0"},
	}, changes)
	assert.Empty(t, m.EnsureDependencies(BaseDependencies))

	out, err := m.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{
	"name": "theme",
	"devDependencies": {
		"stylelint": "^15.11.0",
		"sass": "^1.69.0",
		"stylelint-config-recommended": "^13.0.0",
		"stylelint-no-unsupported-browser-features": "^7.0.0"
	}
}
`, string(out))
}

func TestEnsureDependenciesReplacesNonObjectSection(t *testing.T) {
	m, err := ParseManifest([]byte(`{"devDependencies": "oops"}`))
	require.NoError(t, err)

	changes := m.EnsureDependencies(ScssDependencies)

	require.Len(t, changes, 2)
	assert.True(t, m.HasDependency(ScssPlugin))
	assert.True(t, m.HasDependency(ScssSyntax))
}

func TestEnsureScripts(t *testing.T) {
	m, err := ParseManifest([]byte(`{"scripts": {"build": "sass src/scss:dist", "lint": "stylelint \"**/*.css\""}}`))
	require.NoError(t, err)

	changes := m.EnsureScripts(Scripts)

	assert.Equal(t, []Change{
		{Name: "lint", Old: `stylelint "**/*.css"`, New: "node scripts/lint-wrapper.mjs"},
		{Name: "lint:fix", New: "node scripts/lint-wrapper.mjs --fix"},
	}, changes)
	assert.Empty(t, m.EnsureScripts(Scripts))
}

func TestHasDependency(t *testing.T) {
	m, err := ParseManifest([]byte(`{"dependencies": {"postcss-scss": "^4.0.0"}, "devDependencies": {"stylelint-scss": "^5.0.0"}}`))
	require.NoError(t, err)

	assert.True(t, m.HasDependency(ScssSyntax))
	assert.True(t, m.HasDependency(ScssPlugin))
	assert.False(t, m.HasDependency("stylelint"))
}

func TestManifestWriteKeepsUnknownFields(t *testing.T) {
	root := t.TempDir()
	path := writeFile(t, root, ManifestFile, `{"name":"theme","version":"1.0.0","browserslist":["defaults"],"private":true,"count":3}`)

	m, err := LoadManifest(OSFS, path)
	require.NoError(t, err)
	require.NoError(t, m.Write(OSFS, path))

	assert.Equal(t, "{\n\t\"name\": \"theme\",\n\t\"version\": \"1.0.0\",\n\t\"browserslist\": [\n\t\t\"defaults\"\n\t],\n\t\"private\": true,\n\t\"count\": 3\n}\n", readFile(t, root, ManifestFile))
}
