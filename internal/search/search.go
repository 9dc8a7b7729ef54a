//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package search implements iterative-deepening alpha-beta search:
// aspiration windows, principal variation search, null-move pruning with
// verification, late move pruning/reduction, single-ply extensions, and a
// quiescence search with static-exchange pruning. A Search instance owns
// its own transposition table and heuristic tables and is driven through
// StartSearch/StopSearch, gated by weighted semaphores so callers can poll
// IsSearching without a dedicated done-channel. When the ThreadingModel
// option is LazySmp, run() also spawns a Lazy-SMP helper pool (helpers.go)
// that searches the shared transposition table alongside the primary
// worker; the primary's own result remains authoritative.
package search

import (
	"context"
	"math/rand"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwkunz/plumgo/internal/config"
	"github.com/jwkunz/plumgo/internal/evaluator"
	"github.com/jwkunz/plumgo/internal/history"
	myLogging "github.com/jwkunz/plumgo/internal/logging"
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/openingbook"
	"github.com/jwkunz/plumgo/internal/position"
	"github.com/jwkunz/plumgo/internal/timemanager"
	"github.com/jwkunz/plumgo/internal/transpositiontable"
	. "github.com/jwkunz/plumgo/internal/types"
	"github.com/jwkunz/plumgo/internal/util"
)

var out = message.NewPrinter(language.German)

// UciDriver lets Search report progress and results without importing the
// UCI wire package, keeping that dependency one-directional.
type UciDriver interface {
	SendReadyOk()
	SendInfoString(info string)
	SendIterationEndInfo(depth, seldepth int, value Value, nodes uint64, nps uint64, elapsed time.Duration, pv moveslice.MoveSlice)
	SendResult(bestMove, ponderMove Move)
}

// Search owns one engine's transposition table, heuristic tables and
// opening book, and runs one search at a time on them.
type Search struct {
	log *logging.Logger

	uciHandler    UciDriver
	initSemaphore *semaphore.Weighted
	isRunning     *semaphore.Weighted

	book *openingbook.Book
	tt   *transpositiontable.Table
	eval *evaluator.Evaluator
	hist *history.History

	lastResult *Result

	stopFlag  bool
	startTime time.Time

	limits    *Limits
	timeLimit time.Duration
	extraTime time.Duration

	nodesVisited uint64
	see          seeBuffer

	mg  []*movegen.Movegen
	qmg []*movegen.Movegen
	pv  []*moveslice.MoveSlice

	rootMoves *moveslice.MoveSlice
	hadBook   bool

	lastUciUpdate time.Time
	statistics    Statistics
}

// New creates a Search with no opening book or transposition table yet;
// both are lazily created by initialize() on first use.
func New() *Search {
	return &Search{
		log:           myLogging.GetLog(),
		initSemaphore: semaphore.NewWeighted(1),
		isRunning:     semaphore.NewWeighted(1),
		eval:          evaluator.New(),
		hist:          history.New(),
	}
}

// NewGame stops any running search and clears all persisted state so the
// next search starts with a cold cache.
func (s *Search) NewGame() {
	s.StopSearch()
	if s.tt != nil {
		s.tt.Clear()
	}
	s.hist = history.New()
}

// SetUciHandler installs the callback used to report progress and the
// final result; without one, Search logs instead.
func (s *Search) SetUciHandler(h UciDriver) {
	s.uciHandler = h
}

// StartSearch begins searching p under limits in a new goroutine and
// returns once the search has finished its setup phase (so the caller can
// immediately call IsSearching/StopSearch afterward).
func (s *Search) StartSearch(p position.Position, limits Limits) {
	_ = s.initSemaphore.Acquire(context.Background(), 1)
	go s.run(&p, &limits)
	_ = s.initSemaphore.Acquire(context.Background(), 1)
	s.initSemaphore.Release(1)
}

// StopSearch requests the running search to stop and blocks until it has.
func (s *Search) StopSearch() {
	s.stopFlag = true
	s.WaitWhileSearching()
}

// IsSearching reports whether a search is currently running.
func (s *Search) IsSearching() bool {
	if !s.isRunning.TryAcquire(1) {
		return true
	}
	s.isRunning.Release(1)
	return false
}

// WaitWhileSearching blocks until any running search has finished.
func (s *Search) WaitWhileSearching() {
	_ = s.isRunning.Acquire(context.Background(), 1)
	s.isRunning.Release(1)
}

// IsReady makes sure book/TT are initialized and reports readiness.
func (s *Search) IsReady() {
	s.initialize()
	if s.uciHandler != nil {
		s.uciHandler.SendReadyOk()
	}
}

// ClearHash empties the transposition table; ignored with a warning while
// a search is running.
func (s *Search) ClearHash() {
	if s.IsSearching() {
		s.log.Warning("cannot clear hash while searching")
		return
	}
	if s.tt != nil {
		s.tt.Clear()
	}
}

// ResizeCache reallocates the transposition table at sizeMB; ignored with
// a warning while a search is running.
func (s *Search) ResizeCache(sizeMB int) {
	if s.IsSearching() {
		s.log.Warning("cannot resize hash while searching")
		return
	}
	if s.tt == nil {
		s.tt = transpositiontable.New(sizeMB)
		return
	}
	s.tt.Resize(sizeMB)
}

// LastResult returns a copy of the most recently completed search result.
func (s *Search) LastResult() Result {
	if s.lastResult == nil {
		return Result{}
	}
	return *s.lastResult
}

// Statistics returns the diagnostic counters from the last/current search.
func (s *Search) Statistics() *Statistics { return &s.statistics }

func (s *Search) initialize() {
	if config.Settings.Search.UseBook && s.book == nil {
		s.book = openingbook.New()
		if err := s.book.Load(config.Settings.Search.BookFile); err != nil {
			s.book = nil
		}
	}
	if config.Settings.Search.UseTT && s.tt == nil {
		size := config.Settings.Search.TTSizeMB
		if size <= 0 {
			size = 64
		}
		s.tt = transpositiontable.New(size)
	}
}

func (s *Search) run(p *position.Position, limits *Limits) {
	if !s.isRunning.TryAcquire(1) {
		s.log.Error("search already running")
		return
	}
	defer s.isRunning.Release(1)

	s.startTime = time.Now()
	s.stopFlag = false
	s.nodesVisited = 0
	s.statistics = Statistics{}
	s.hist.ResetKillers()
	s.lastUciUpdate = s.startTime
	s.limits = limits
	s.initialize()

	s.setupTimeControl(p, limits)

	var bookMove Move
	if s.book != nil && config.Settings.Search.UseBook && limits.TimeControl && p.Ply() < 20 {
		candidates := filterBookCandidates(s.book.Moves(p.ZobristKey()), &limits.Moves)
		if len(candidates) > 0 {
			rand.Seed(time.Now().UnixNano())
			bookMove = Move(candidates[rand.Intn(len(candidates))])
		}
	}

	if s.tt != nil {
		s.tt.NewGeneration()
	}

	s.mg = make([]*movegen.Movegen, MaxDepth+1)
	s.pv = make([]*moveslice.MoveSlice, MaxDepth+1)
	for i := 0; i <= MaxDepth; i++ {
		s.mg[i] = movegen.NewMoveGen()
		s.pv[i] = moveslice.NewMoveSlice(MaxDepth + 1)
	}
	s.qmg = make([]*movegen.Movegen, maxQPly+1)
	for i := 0; i <= maxQPly; i++ {
		s.qmg[i] = movegen.NewMoveGen()
	}

	s.initSemaphore.Release(1)

	var result *Result
	if bookMove != MoveNone {
		result = &Result{BestMove: bookMove, BookMove: true}
		s.hadBook = true
	} else {
		helperStop := s.runHelpers(p, limits)
		result = s.iterativeDeepening(p)
		helperStop.Store(true)
	}

	if (limits.Ponder || limits.Infinite) && !s.stopFlag {
		for !s.stopFlag && (limits.Ponder || limits.Infinite) {
			time.Sleep(5 * time.Millisecond)
		}
	}

	result.SearchTime = time.Since(s.startTime)
	if s.pv[0] != nil {
		result.Pv = *s.pv[0]
	}
	s.log.Info(result.String())

	s.lastResult = result
	s.stopFlag = true
	s.sendResult(result)
}

// filterBookCandidates restricts book continuations to those also present
// in allowed (the UCI "go searchmoves" restriction), per spec.md §4.10's
// "filtered by searchmoves if present". An empty/absent allowed list means
// no restriction.
func filterBookCandidates(candidates []uint32, allowed *moveslice.MoveSlice) []uint32 {
	if allowed == nil || allowed.Len() == 0 {
		return candidates
	}
	filtered := make([]uint32, 0, len(candidates))
	for _, c := range candidates {
		m := Move(c).MoveOf()
		for i := 0; i < allowed.Len(); i++ {
			if allowed.At(i).MoveOf() == m {
				filtered = append(filtered, c)
				break
			}
		}
	}
	return filtered
}

func (s *Search) setupTimeControl(p *position.Position, limits *Limits) {
	s.timeLimit = 0
	s.extraTime = 0
	if !limits.TimeControl {
		return
	}
	if limits.MoveTime > 0 {
		s.timeLimit = limits.MoveTime
		return
	}

	clock := timemanager.Clock{MovesToGo: limits.MovesToGo}
	if p.NextPlayer() == Light {
		clock.Remaining, clock.Increment = limits.WhiteTime, limits.WhiteInc
	} else {
		clock.Remaining, clock.Increment = limits.BlackTime, limits.BlackInc
	}
	if clock.Remaining <= 0 {
		return
	}

	strategy := timemanager.Adaptive
	if config.Settings.Search.TimeStrategy == string(timemanager.Fraction20) {
		strategy = timemanager.Fraction20
	}
	s.timeLimit = timemanager.ResolveBudget(p, clock, strategy)
	if limits.TimeManaged() {
		go s.startTimer()
	}
}

func (s *Search) startTimer() {
	start := time.Now()
	for time.Since(start) < s.timeLimit+s.extraTime && !s.stopFlag {
		time.Sleep(5 * time.Millisecond)
	}
	s.stopFlag = true
}

func (s *Search) stopConditions() bool {
	if s.stopFlag {
		return true
	}
	if s.limits.Nodes > 0 && s.nodesVisited >= s.limits.Nodes {
		s.stopFlag = true
	}
	return s.stopFlag
}

func (s *Search) sendResult(result *Result) {
	if s.uciHandler != nil {
		s.uciHandler.SendResult(result.BestMove, result.PonderMove)
	}
}

func (s *Search) sendIterationEndInfo() {
	nps := util.Nps(s.nodesVisited, time.Since(s.startTime))
	if s.uciHandler != nil {
		s.uciHandler.SendIterationEndInfo(
			s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
			s.statistics.CurrentBestRootValue, s.nodesVisited, nps, time.Since(s.startTime), *s.pv[0])
		return
	}
	s.log.Info(out.Sprintf("depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		s.statistics.CurrentSearchDepth, s.statistics.CurrentExtraSearchDepth,
		s.statistics.CurrentBestRootValue.String(), s.nodesVisited, nps,
		time.Since(s.startTime).Milliseconds(), s.pv[0].StringUci()))
}
