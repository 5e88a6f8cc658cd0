package render

import (
	"errors"
	"fmt"
)

// ErrUnsafePath is returned for destinations that would escape the output
// root.
var ErrUnsafePath = errors.New("render: destination escapes output directory")

// PageError reports a structural problem with a source page. Err is one of the
// extract sentinels.
type PageError struct {
	Path string
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("render: while parsing %q: %v", e.Path, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
