package gotemplate

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

type root struct {
	name string
	fsys fs.FS
}

// rootLoader resolves every template name, including names used by extends
// and include tags, relative to the root of its fs.FS.
type rootLoader struct {
	fsys fs.FS
}

func (l *rootLoader) Abs(_, name string) string {
	return cleanName(name)
}

func (l *rootLoader) Get(p string) (io.Reader, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func cleanName(name string) string {
	return path.Clean(strings.TrimPrefix(filepath.ToSlash(name), "/"))
}
