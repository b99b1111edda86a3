package hocon

import "errors"

var (
	ErrLoad  = errors.New("load error")
	ErrDepth = errors.New("include depth exceeded")
)
