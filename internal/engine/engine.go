//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package engine is the façade between the UCI wire protocol and the
// search core: it owns the one Search instance for the process, applies
// go-parameter precedence, and post-processes a search result with the
// mate-in-one shortcut and the queen-promotion preference before handing
// a move back to the UCI layer.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwkunz/plumgo/internal/config"
	myLogging "github.com/jwkunz/plumgo/internal/logging"
	"github.com/jwkunz/plumgo/internal/search"
	"github.com/jwkunz/plumgo/internal/timemanager"
)

var out = message.NewPrinter(language.German)

// Engine owns the process's Search instance and the UCI-option state that
// governs it (book usage, MultiPV width, time strategy).
type Engine struct {
	log *logging.Logger

	srch    *search.Search
	multiPV int
}

// New creates an Engine with defaults taken from config.Settings.
func New() *Engine {
	return &Engine{
		log:     myLogging.GetLog(),
		srch:    search.New(),
		multiPV: 1,
	}
}

// SetUciHandler installs the callback the underlying Search reports
// progress and results through.
func (e *Engine) SetUciHandler(h search.UciDriver) {
	e.srch.SetUciHandler(h)
}

// NewGame clears all persisted state (transposition table, heuristics) so
// the next search starts cold.
func (e *Engine) NewGame() {
	e.srch.NewGame()
}

// IsReady makes sure lazily-initialized state (book, TT) exists and reports
// readiness through the UCI handler.
func (e *Engine) IsReady() {
	e.srch.IsReady()
}

// StopSearch requests the running search stop and waits for it to.
func (e *Engine) StopSearch() {
	e.srch.StopSearch()
}

// IsSearching reports whether ChooseMove is currently running a search.
func (e *Engine) IsSearching() bool {
	return e.srch.IsSearching()
}

// SetOption applies one named UCI option, case-insensitively, per
// spec.md §4.10's enumerated option list.
func (e *Engine) SetOption(name, value string) error {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ownbook":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		config.Settings.Search.UseBook = b
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			return fmt.Errorf("invalid Hash value %q: must be an integer >= 1", value)
		}
		config.Settings.Search.TTSizeMB = mb
		e.srch.ResizeCache(mb)
	case "timestrategy":
		strat, err := normalizeTimeStrategy(value)
		if err != nil {
			return err
		}
		config.Settings.Search.TimeStrategy = strat
	case "multipv":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 32 {
			return fmt.Errorf("invalid MultiPV value %q: must be 1..32", value)
		}
		e.multiPV = n
	case "threads":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid Threads value %q: must be an integer >= 1", value)
		}
		config.Settings.Search.Threads = n
	case "threadingmodel":
		switch value {
		case "SingleThreaded", "LazySmp":
			config.Settings.Search.ThreadingModel = value
		default:
			return fmt.Errorf("invalid ThreadingModel value %q: must be SingleThreaded or LazySmp", value)
		}
	case "uci_showrefutations":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		config.Settings.Search.ShowRefutations = b
	default:
		return fmt.Errorf("unknown option %q", name)
	}
	return nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value %q", value)
	}
}

func normalizeTimeStrategy(value string) (string, error) {
	switch strings.ToLower(value) {
	case "adaptive", "v13":
		return string(timemanager.Adaptive), nil
	case "fraction20", "legacy", "simple":
		return string(timemanager.Fraction20), nil
	default:
		return "", fmt.Errorf("invalid TimeStrategy value %q", value)
	}
}
