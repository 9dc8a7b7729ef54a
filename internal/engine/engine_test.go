//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwkunz/plumgo/internal/config"
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

func newTestEngine() *Engine {
	config.Setup()
	e := New()
	_ = e.SetOption("OwnBook", "false")
	return e
}

func TestMateInOneShortcut(t *testing.T) {
	e := newTestEngine()
	pos, err := position.NewPositionFen("6k1/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	assert.NoError(t, err)

	best, _, _ := e.ChooseMove(*pos, GoParams{Mate: 1})
	assert.Equal(t, "f7g7", best.StringUci())
}

func TestQueenPromotionPreferred(t *testing.T) {
	e := newTestEngine()
	pos, err := position.NewPositionFen("8/P7/8/8/8/8/8/k6K w - - 0 1")
	assert.NoError(t, err)

	best, _, _ := e.ChooseMove(*pos, GoParams{Depth: 4})
	assert.Equal(t, "a7a8q", best.StringUci())
}

func TestNoLegalMoveReturnsNoMove(t *testing.T) {
	e := newTestEngine()
	// Stalemate: black king has no legal move and is not in check.
	pos, err := position.NewPositionFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.NoError(t, err)

	best, _, info := e.ChooseMove(*pos, GoParams{Depth: 1})
	assert.Equal(t, MoveNone, best)
	assert.NotEmpty(t, info)
}

func TestResolveLimitsMoveTimePrecedence(t *testing.T) {
	limits := resolveLimits(GoParams{MoveTime: 20 * time.Millisecond, Nodes: 10, Mate: 2})
	assert.Equal(t, 20*time.Millisecond, limits.MoveTime)
	assert.Zero(t, limits.Nodes)
	assert.Zero(t, limits.Mate)
}

func TestResolveLimitsNodesPrecedenceOverMate(t *testing.T) {
	limits := resolveLimits(GoParams{Nodes: 200, Mate: 3})
	assert.Equal(t, uint64(200), limits.Nodes)
	assert.Zero(t, limits.Mate)
}

func TestResolveLimitsMateRaisesDepthFloor(t *testing.T) {
	limits := resolveLimits(GoParams{Mate: 3})
	assert.Equal(t, 3, limits.Mate)
}

func TestResolveLimitsNoLimitsFallsBackToDefaultDepth(t *testing.T) {
	limits := resolveLimits(GoParams{})
	assert.Equal(t, config.Settings.Search.DefaultDepth, limits.Depth)
	assert.False(t, limits.TimeControl)
}

func TestSetOptionHashResizesTT(t *testing.T) {
	e := newTestEngine()
	assert.NoError(t, e.SetOption("Hash", "16"))
	assert.Error(t, e.SetOption("Hash", "0"))
}

func TestSetOptionMultiPVRange(t *testing.T) {
	e := newTestEngine()
	assert.NoError(t, e.SetOption("MultiPV", "4"))
	assert.Error(t, e.SetOption("MultiPV", "33"))
}

func TestSetOptionUnknownNameRejected(t *testing.T) {
	e := newTestEngine()
	assert.Error(t, e.SetOption("NotAnOption", "1"))
}
