package themelint

import "path/filepath"

// DetectTheme classifies the project at root by its shape on disk:
// a src/scss directory wins over a theme.css file; neither yields ThemeNone.
func DetectTheme(fsys FileSystem, root string) ThemeKind {
	if isDir(fsys, filepath.Join(root, filepath.FromSlash(ScssDir))) {
		return ThemeScss
	}
	if isFile(fsys, filepath.Join(root, ThemeFile)) {
		return ThemePlain
	}
	return ThemeNone
}

// HasThemeFile reports whether the plain theme.css exists. SCSS projects
// keep their compiled theme.css next to the sources.
func HasThemeFile(fsys FileSystem, root string) bool {
	return isFile(fsys, filepath.Join(root, ThemeFile))
}
