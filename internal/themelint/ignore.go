package themelint

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreList is the ordered content of .stylelintignore.
type IgnoreList []string

// GenerateIgnore returns the ignore patterns for a theme kind. SCSS themes
// also ignore the compiled theme.css, which is regenerated from the sources.
func GenerateIgnore(kind ThemeKind) IgnoreList {
	list := IgnoreList{
		"node_modules/**",
		"*.min.css",
		"dist/**",
		"build/**",
		WrapperDir + "/**",
	}
	if kind == ThemeScss {
		list = append(list, ThemeFile)
	}
	return list
}

// String renders one pattern per line with a trailing newline.
func (l IgnoreList) String() string {
	return strings.Join(l, "\n") + "\n"
}

// LoadIgnore compiles the project's .stylelintignore. It returns nil when the
// file does not exist.
func LoadIgnore(root string) (*ignore.GitIgnore, error) {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, IgnoreFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return gi, err
}
