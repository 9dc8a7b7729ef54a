//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package config

// searchConfiguration gates every search heuristic behind a feature flag so
// it can be toggled (e.g. for regression bisection) without recompiling.
type searchConfiguration struct {
	UseBook  bool
	BookFile string

	UseQuiescence bool
	UseSEE        bool

	UsePVS          bool
	UseKiller       bool
	UseHistory      bool
	UseCounterMoves bool

	UseTT     bool
	TTSizeMB  int
	UseTTMove bool

	UseAspiration bool

	UseNullMove  bool
	NmpMinDepth  int
	UseExtension bool

	UseLMP bool
	UseLMR bool

	UseMultiPV bool

	Threads        int
	ThreadingModel string

	TimeStrategy string

	// ShowRefutations stores the UCI_ShowRefutations option. The search
	// does not read it and emits no "info refutation" lines.
	ShowRefutations bool

	// DefaultDepth is the depth floor used when a "go" command supplies
	// no movetime/nodes/mate and no side clock is available either
	// (spec.md §4.10 precedence rule 4's "engine's configured default
	// depth" fallback).
	DefaultDepth int
}

func init() {
	Settings.Search.UseBook = true
	Settings.Search.BookFile = "assets/book.txt"

	Settings.Search.UseQuiescence = true
	Settings.Search.UseSEE = true

	Settings.Search.UsePVS = true
	Settings.Search.UseKiller = true
	Settings.Search.UseHistory = true
	Settings.Search.UseCounterMoves = true

	Settings.Search.UseTT = true
	Settings.Search.TTSizeMB = 64
	Settings.Search.UseTTMove = true

	Settings.Search.UseAspiration = true

	Settings.Search.UseNullMove = true
	Settings.Search.NmpMinDepth = 4
	Settings.Search.UseExtension = true

	Settings.Search.UseLMP = true
	Settings.Search.UseLMR = true

	Settings.Search.UseMultiPV = true

	Settings.Search.Threads = 1
	Settings.Search.ThreadingModel = "SingleThreaded"

	Settings.Search.TimeStrategy = "Adaptive"

	Settings.Search.DefaultDepth = 6

	Settings.Search.ShowRefutations = false
}
