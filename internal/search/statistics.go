//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"github.com/jwkunz/plumgo/internal/moveslice"
	. "github.com/jwkunz/plumgo/internal/types"
)

// Statistics are diagnostic counters, not essential to a correct search,
// surfaced via String() for logging and "info string" output.
type Statistics struct {
	BestMoveChanges      uint64
	AspirationResearches uint64

	BetaCuts    uint64
	BetaCuts1st uint64

	RfpPrunings uint64
	LmpCuts     uint64

	NullMoveCuts uint64
	Mdp          uint64

	CheckExtensions uint64

	LmrReductions uint64
	LmrResearches uint64

	QSeePrunings   uint64
	QDeltaPrunings uint64
	QStandPatCuts  uint64

	Evaluations uint64

	TTHit      uint64
	TTMiss     uint64
	TTCuts     uint64
	TTMoveUsed uint64

	Checkmates uint64
	Stalemates uint64

	RootPvsResearches uint64
	PvsResearches     uint64

	CurrentIterationDepth   int
	CurrentSearchDepth      int
	CurrentExtraSearchDepth int
	CurrentVariation        moveslice.MoveSlice
	CurrentRootMoveIndex    int
	CurrentRootMove         Move
	CurrentBestRootMove     Move
	CurrentBestRootValue    Value
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}
