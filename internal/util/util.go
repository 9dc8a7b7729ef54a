//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package util provides small numeric and diagnostic helpers shared across
// packages, including locale-aware formatting for human-readable logs.
package util

import (
	"runtime"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.German)

// Min returns the smaller of the given integers.
func Min(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger of the given integers.
func Max(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs is a non-branching absolute value for int.
func Abs(n int) int {
	y := n >> 63
	return (n ^ y) - y
}

// TimeTrack is a convenient way to measure function timings.
// Usage: defer util.TimeTrack(time.Now(), "some text")
func TimeTrack(start time.Time, name string) {
	elapsed := time.Since(start)
	_, _ = out.Printf("%s took %d ns\n", name, elapsed.Nanoseconds())
}

// Nps calculates nodes per second from a node count and a duration,
// tolerating a zero duration by adding one nanosecond.
func Nps(nodes uint64, duration time.Duration) uint64 {
	return uint64(int64(nodes) * time.Second.Nanoseconds() / (duration.Nanoseconds() + 1))
}

// MemStat returns a locale-formatted summary of heap usage and GC activity.
func MemStat() string {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return out.Sprintf("Alloc: %d TotalAlloc: %d HeapAlloc: %d HeapObjects: %d NumGC: %d",
		mem.Alloc, mem.TotalAlloc, mem.HeapAlloc, mem.HeapObjects, mem.NumGC)
}

// FormatInt renders n with locale thousands separators, used for TT/search
// diagnostics.
func FormatInt(n uint64) string {
	return out.Sprintf("%d", n)
}
