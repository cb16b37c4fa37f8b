// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package qmdd

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Error returns the error status of the diagram, or the empty string if there
// is none.
func (d *Diagram) Error() string {
	if d.error == nil {
		return ""
	}
	return d.error.Error()
}

// Errored returns true if a non-fatal error was recorded during a previous
// operation.
func (d *Diagram) Errored() bool {
	return d.error != nil
}

func (d *Diagram) seterror(format string, a ...interface{}) error {
	if d.error != nil {
		format = format + "; " + d.Error()
	}
	d.error = fmt.Errorf(format, a...)
	log.Warn().Err(d.error).Msg("qmdd: recorded error")
	return d.error
}

// Fatalf logs a structural-invariant violation and panics. It is for
// conditions that indicate a bug in the rewrite/unique-table machinery rather
// than an ordinary runtime error, mirroring the teacher's _DEBUG-gated
// log.Panicf for unexpected internal states. The HTTP surface recovers such a
// panic through gin's recovery middleware; the CLI has no recover, so there
// it ends the process.
func Fatalf(format string, a ...interface{}) {
	err := fmt.Errorf(format, a...)
	log.Error().Err(err).Msg("qmdd: fatal invariant violation")
	panic(err)
}
