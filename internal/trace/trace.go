/*
 * classbox - a partial interpreter for compiled class files
 * Copyright (c) 2026 by the classbox authors.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package trace wraps the interpreter's diagnostic logging: global verbosity
// booleans gate the package-level Trace/Inst functions, while Error and
// Warning always log. Output goes through logrus, so messages carry levels;
// SetJSON switches to a JSON formatter (with timestamps and structured
// fields) that a golden-file harness can parse instead of scraping stderr
// text.
package trace

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	return l
}

// Enabled is the class-loading/linking verbosity toggle. Instruction-level
// tracing is controlled separately by Instructions below, since the two run
// at very different volumes.
var Enabled bool

// Instructions is the per-instruction execution trace toggle.
var Instructions bool

// SetJSON switches the formatter to JSON, for tooling that wants to parse
// trace output mechanically (e.g. a golden-file harness comparing traces).
func SetJSON(enabled bool) {
	if enabled {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: false, DisableTimestamp: true})
	}
}

// SetVerbose raises the logger to Debug level so Trace() calls are emitted.
func SetVerbose(verbose bool) {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

// Trace logs a class-loading/linking diagnostic when Enabled is set.
func Trace(msg string) {
	if Enabled {
		log.Debug(msg)
	}
}

// Inst logs a single decoded-instruction execution trace line when
// Instructions is set.
func Inst(msg string) {
	if Instructions {
		log.Debug(msg)
	}
}

// Error logs an error-level diagnostic unconditionally.
func Error(msg string) {
	log.Error(msg)
}

// Warning logs a warning-level diagnostic unconditionally.
func Warning(msg string) {
	log.Warn(msg)
}
