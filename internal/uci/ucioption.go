//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package uci

// uciOptionLines is sent once per "uci" command, after the id lines and
// before "uciok". Each entry enumerates one of the options dispatched
// through engine.Engine.SetOption (spec.md §4.10); the descriptive
// default/min/max values here are cosmetic and do not themselves gate
// anything, so they are kept as a flat literal rather than mirrored
// against config.Settings.
var uciOptionLines = []string{
	"option name OwnBook type check default true",
	"option name Hash type spin default 64 min 1 max 65536",
	"option name TimeStrategy type combo default Adaptive var Adaptive var Fraction20",
	"option name MultiPV type spin default 1 min 1 max 32",
	"option name Threads type spin default 1 min 1 max 512",
	"option name ThreadingModel type combo default SingleThreaded var SingleThreaded var LazySmp",
	"option name UCI_ShowRefutations type check default false",
}
