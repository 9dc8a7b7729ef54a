//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package search

import (
	"time"

	"github.com/jwkunz/plumgo/internal/config"
	"github.com/jwkunz/plumgo/internal/evaluator"
	"github.com/jwkunz/plumgo/internal/history"
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
	"github.com/jwkunz/plumgo/internal/util"
)

// runHelpers implements Lazy-SMP: when ThreadingModel is LazySmp and more
// than one thread is configured, it spawns Threads-1 helper searches that
// share the primary's transposition table. Helpers run their own
// iterative-deepening pass over their own scratch state (move generators,
// PV lines, history, statistics) so the only cross-goroutine interaction is
// concurrent Probe/Store traffic against the shared Table; their own best
// moves are discarded; the primary search's result stays authoritative.
// When the limits carry an explicit depth, helpers diversify by searching
// to two plies more than the primary (they still iterate from depth 1),
// which spreads the bucket-replacement pattern across workers instead of every
// goroutine racing to fill the same buckets in lockstep.
//
// The returned stop flag is shared by every helper goroutine; the caller
// must Store(true) it once the primary search has finished so helpers do
// not outlive it.
func (s *Search) runHelpers(p *position.Position, limits *Limits) *util.AtomicBool {
	stop := util.NewAtomicBool(false)
	if config.Settings.Search.ThreadingModel != "LazySmp" || s.tt == nil {
		return stop
	}
	helperCount := config.Settings.Search.Threads - 1
	for i := 0; i < helperCount; i++ {
		pcopy := *p
		h := newHelperSearch(s)
		go h.runHelper(&pcopy, limits, stop)
	}
	return stop
}

// newHelperSearch builds a Search sharing the primary's transposition table
// and evaluator (stateless) but with independent search-scratch state, so
// it can run an iterative-deepening pass concurrently with the primary
// without racing on any mutable field.
func newHelperSearch(primary *Search) *Search {
	return &Search{
		log:  primary.log,
		tt:   primary.tt,
		eval: evaluator.New(),
		hist: history.New(),
	}
}

// runHelper drives one Lazy-SMP helper's iterative-deepening pass. It never
// reports progress (no UciDriver installed) and its returned result is
// discarded: its only externally visible effect is the transposition-table
// entries it stores along the way.
func (h *Search) runHelper(p *position.Position, limits *Limits, stop *util.AtomicBool) {
	helperLimits := *limits
	if helperLimits.Depth > 0 && helperLimits.Depth+2 <= MaxDepth {
		helperLimits.Depth += 2
	}
	h.limits = &helperLimits
	h.startTime = time.Now()
	h.stopFlag = false
	h.nodesVisited = 0

	h.mg = make([]*movegen.Movegen, MaxDepth+1)
	h.pv = make([]*moveslice.MoveSlice, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		h.mg[i] = movegen.NewMoveGen()
		h.pv[i] = moveslice.NewMoveSlice(MaxDepth + 1)
	}
	h.qmg = make([]*movegen.Movegen, maxQPly+1)
	for i := 0; i <= maxQPly; i++ {
		h.qmg[i] = movegen.NewMoveGen()
	}

	watchdog := make(chan struct{})
	go func() {
		for {
			select {
			case <-watchdog:
				return
			default:
				if stop.Load() {
					h.stopFlag = true
					return
				}
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()

	h.iterativeDeepening(p)
	close(watchdog)
}
