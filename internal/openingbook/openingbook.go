//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package openingbook loads a simple opening book: one game per line, as
// space-separated UCI moves from the start position. Every position
// reached while replaying a line records the move actually played, so a
// lookup by Zobrist key returns every book continuation seen from that
// position across all loaded games.
package openingbook

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/jwkunz/plumgo/internal/logging"
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/position"
	"github.com/jwkunz/plumgo/internal/zobrist"
)

var out = message.NewPrinter(language.German)
var log = myLogging.GetLog()

// Book maps a position's Zobrist key to every move played from it in the
// loaded game collection.
type Book struct {
	mu          sync.RWMutex
	entries     map[zobrist.Key][]uint32 // stores Move, stripped of sort bits
	initialized bool
}

// New returns an empty, uninitialized Book.
func New() *Book {
	return &Book{entries: make(map[zobrist.Key][]uint32)}
}

// Load parses bookPath (one game per line, UCI moves, whitespace
// separated) and fills the book. Safe to call only once; repeat calls are
// no-ops.
func (b *Book) Load(bookPath string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}

	f, err := os.Open(bookPath)
	if err != nil {
		log.Warningf("opening book not loaded: %s", err)
		return err
	}
	defer f.Close()

	mg := movegen.NewMoveGen()
	lines := 0
	positions := 0

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines++
		pos := position.NewPosition()
		for _, token := range strings.Fields(line) {
			m := mg.MoveFromUci(pos, token)
			if !m.IsValid() {
				break
			}
			key := pos.ZobristKey()
			b.entries[key] = appendUnique(b.entries[key], uint32(m.MoveOf()))
			positions++
			pos.DoMove(m)
		}
	}
	b.initialized = true
	log.Info(out.Sprintf("opening book loaded: %d games, %d positions indexed from %s", lines, positions, bookPath))
	return scanner.Err()
}

func appendUnique(moves []uint32, m uint32) []uint32 {
	for _, existing := range moves {
		if existing == m {
			return moves
		}
	}
	return append(moves, m)
}

// Moves returns every known continuation from the position with the given
// Zobrist key, or nil if the book has no entry for it.
func (b *Book) Moves(key zobrist.Key) []uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entries[key]
}

// Len returns the number of distinct positions indexed.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}
