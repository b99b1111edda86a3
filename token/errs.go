package token

import (
	"errors"
	"fmt"
)

var (
	ErrUnterminated      = errors.New("unterminated string")
	ErrMultilineString   = errors.New("unterminated multiline string")
	ErrBadEscape         = errors.New("invalid escape")
	ErrBadUnicode        = errors.New("invalid unicode escape")
	ErrBadUTF8           = errors.New("invalid utf8")
	ErrUnquotedEmpty     = errors.New("empty unquoted string")
	ErrUnterminatedSubst = errors.New("unterminated substitution")
)

type ScanErr struct {
	Err error
	Pos Pos
}

func NewScanErr(e error, p *Pos) *ScanErr {
	return &ScanErr{Err: e, Pos: *p}
}

func (e *ScanErr) Unwrap() error {
	return e.Err
}

func (e *ScanErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewScanErr(fmt.Errorf("expected %s", what), p)
}

func UnexpectedErr(what string, p *Pos) error {
	return NewScanErr(fmt.Errorf("unexpected %s", what), p)
}
