//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Command plumgo wires the UCI wire protocol to the search/evaluation
// core. It accepts a handful of command-line flags for standalone
// diagnostics (perft, log level, config file path) and otherwise reads
// UCI commands from stdin until "quit".
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/op/go-logging"
	"github.com/pkg/profile"

	"github.com/jwkunz/plumgo/internal/config"
	myLogging "github.com/jwkunz/plumgo/internal/logging"
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/position"
	"github.com/jwkunz/plumgo/internal/uci"
)

var logLevelsByName = map[string]logging.Level{
	"critical": logging.CRITICAL,
	"error":    logging.ERROR,
	"warning":  logging.WARNING,
	"notice":   logging.NOTICE,
	"info":     logging.INFO,
	"debug":    logging.DEBUG,
}

func main() {
	versionInfo := flag.Bool("version", false, "print version info and exit")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "info", "log level\n(critical|error|warning|notice|info|debug)")
	perft := flag.Int("perft", 0, "run perft to the given depth on -fen and exit\n(use -fen to pick a position other than the start position)")
	fen := flag.String("fen", position.StartFen, "FEN used by -perft")
	cpuProfile := flag.Bool("profile", false, "write a pprof CPU profile (cpu.pprof) for the process lifetime")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	config.ConfFile = *configFile
	config.Setup()

	myLogging.GetLog()
	if lvl, found := logLevelsByName[*logLvl]; found {
		myLogging.SetLogLevel(lvl)
	}

	if *perft > 0 {
		runPerft(*fen, *perft)
		return
	}

	u := uci.New()
	u.Loop()
}

func runPerft(fen string, maxDepth int) {
	pos, err := position.NewPositionFen(fen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid fen:", err)
		os.Exit(1)
	}
	for depth := 1; depth <= maxDepth; depth++ {
		nodes := movegen.Perft(pos, depth)
		fmt.Printf("perft %d: %d nodes\n", depth, nodes)
	}
}

func printVersionInfo() {
	fmt.Println("plumgo - a UCI chess engine")
	fmt.Println("Environment:")
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  GOARCH: %s, compiler: %s\n", runtime.GOARCH, runtime.Compiler)
	fmt.Printf("  CPUs: %d\n", runtime.NumCPU())
}
