package parse

import "errors"

var (
	ErrParse      = errors.New("parse error")
	ErrIncomplete = errors.New("document could not be parsed completely")
	ErrInclude    = errors.New("include error")
)
