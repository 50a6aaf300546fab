package sop

import (
	"errors"
	"fmt"
)

// ParseError reports one fault (a line number and its detail) found while
// reading a text cover. ParseCover collects every such fault into a
// ParseErrors, in the teacher's error-accumulation style
// (parser.Parser.Errors()).
type ParseError struct {
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sop: line %d: %s", e.Line, e.Detail)
}

// Unwrap reports ParseError as an invalid-argument failure.
func (e *ParseError) Unwrap() error { return ErrInvalidArgument }

// ParseErrors is the accumulated set of faults from a single ParseCover
// call, joined with errors.Join so every line-level fault is visible.
type ParseErrors []*ParseError

func (p ParseErrors) Error() string {
	errs := make([]error, len(p))
	for i, e := range p {
		errs[i] = e
	}
	return errors.Join(errs...).Error()
}

func (p ParseErrors) Unwrap() error { return ErrInvalidArgument }
