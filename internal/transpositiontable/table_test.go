//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package transpositiontable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwkunz/plumgo/internal/zobrist"
	. "github.com/jwkunz/plumgo/internal/types"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	tt := New(1)
	key := zobrist.Key(0x1234567890abcdef)
	tt.Store(key, MoveNone, 6, Value(123), Exact, Value(100), 4)

	value, ok := tt.ProbeValue(key, 4)
	assert.True(t, ok)
	assert.Equal(t, Value(123), value)
}

func TestProbeMissOnUnknownKey(t *testing.T) {
	tt := New(1)
	_, ok := tt.ProbeValue(zobrist.Key(0xdeadbeef), 0)
	assert.False(t, ok)
}

func TestMateScoreNormalizedAcrossDifferentPly(t *testing.T) {
	tt := New(1)
	key := zobrist.Key(42)
	mateScore := ValueCheckMate - 7

	// Stored at ply 5, the mate distance is rewritten relative to the
	// storing node so that the cached distance is path-ply independent.
	tt.Store(key, MoveNone, 10, mateScore, Exact, Value(0), 5)

	// Probed from a different ply, the reconstructed score must reflect
	// the same absolute mate distance from the new ply, not the stored one.
	value, ok := tt.ProbeValue(key, 2)
	assert.True(t, ok)
	assert.Equal(t, mateScore+5-2, value)
}

func TestClearEmptiesTable(t *testing.T) {
	tt := New(1)
	key := zobrist.Key(7)
	tt.Store(key, MoveNone, 4, Value(10), Exact, Value(0), 0)
	tt.Clear()
	_, ok := tt.ProbeValue(key, 0)
	assert.False(t, ok)
}

func TestNewGenerationAgesOldEntries(t *testing.T) {
	tt := New(1)
	key := zobrist.Key(99)
	tt.Store(key, MoveNone, 4, Value(10), Exact, Value(0), 0)
	tt.NewGeneration()
	tt.NewGeneration()
	// still probeable; aging affects replacement priority, not presence.
	_, ok := tt.ProbeValue(key, 0)
	assert.True(t, ok)
}
