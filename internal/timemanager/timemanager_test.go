//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package timemanager

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwkunz/plumgo/internal/position"
)

func TestFraction20SplitsRemainingByTwenty(t *testing.T) {
	p := position.NewPosition()
	budget := ResolveBudget(p, Clock{Remaining: 20 * time.Second}, Fraction20)
	assert.Equal(t, time.Second, budget)
}

func TestFraction20NeverReturnsZero(t *testing.T) {
	p := position.NewPosition()
	budget := ResolveBudget(p, Clock{Remaining: 1}, Fraction20)
	assert.GreaterOrEqual(t, budget, time.Millisecond)
}

func TestAdaptiveStaysWithinQuarterOfRemaining(t *testing.T) {
	p := position.NewPosition()
	remaining := 60 * time.Second
	budget := ResolveBudget(p, Clock{Remaining: remaining, Increment: 2 * time.Second, MovesToGo: 30}, Adaptive)
	assert.Greater(t, budget, time.Duration(0))
	assert.LessOrEqual(t, budget, remaining/4)
}

func TestAdaptiveEmergencyBelowMinBudget(t *testing.T) {
	p := position.NewPosition()
	budget := ResolveBudget(p, Clock{Remaining: 500 * time.Millisecond}, Adaptive)
	assert.GreaterOrEqual(t, budget, 5*time.Millisecond)
}

func TestZeroClockYieldsZeroBudget(t *testing.T) {
	p := position.NewPosition()
	budget := ResolveBudget(p, Clock{Remaining: 0}, Adaptive)
	assert.Equal(t, time.Duration(0), budget)
}
