//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package config holds globally available configuration variables, either
// set by defaults, read from a TOML config file, or overridden by UCI
// setoption commands.
package config

import (
	"log"

	"github.com/BurntSushi/toml"
)

var (
	// ConfFile holds the path to the config file (relative to the working
	// directory) consulted by Setup.
	ConfFile = "./config.toml"

	// Settings is the global configuration, populated by Setup from file
	// defaults or overridden at runtime via UCI options.
	Settings conf

	initialized = false
)

type conf struct {
	Search searchConfiguration
	Eval   evalConfiguration
}

// Setup reads the configuration file (if present) and applies it on top of
// the coded defaults set in this package's init functions. Safe to call
// more than once; only the first call has effect.
func Setup() {
	if initialized {
		return
	}
	if _, err := toml.DecodeFile(ConfFile, &Settings); err != nil {
		log.Println("plumgo: config file not found, using defaults:", err)
	}
	initialized = true
}
