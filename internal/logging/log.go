//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package logging wires up the single shared logger used by every other
// package. Call GetLog() once per package (cached after the first call);
// the backend formatter and level are configured once, process-wide.
package logging

import (
	"os"
	"sync"

	. "github.com/op/go-logging"
)

var (
	once sync.Once
	log  *Logger
)

// GetLog returns the shared *Logger, initializing the backend on first use.
func GetLog() *Logger {
	once.Do(func() {
		log = MustGetLogger("plumgo")
		backend := NewLogBackend(os.Stdout, "", 0)
		format := MustStringFormatter(
			`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}:  %{message}`,
		)
		backendFormatter := NewBackendFormatter(backend, format)
		leveled := AddModuleLevel(backendFormatter)
		leveled.SetLevel(INFO, "")
		SetBackend(leveled)
	})
	return log
}

// SetLogLevel adjusts the process-wide log level (e.g. from a UCI debug
// command or a config file value).
func SetLogLevel(level Level) {
	SetLevel(level, "")
}
