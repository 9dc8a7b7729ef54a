//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package moveslice provides helper functionality for slices of type Move.
package moveslice

import (
	"fmt"
	"strings"
	"sync"

	. "github.com/jwkunz/plumgo/internal/types"
)

// MoveSlice is a go slice of Move with the usual deque-ish helpers move
// generation and search reuse at every ply.
type MoveSlice []Move

// NewMoveSlice creates a new move slice with the given capacity and 0
// elements. Identical to MoveSlice(make([]Move, 0, cap)).
func NewMoveSlice(cap int) *MoveSlice {
	moves := make([]Move, 0, cap)
	return (*MoveSlice)(&moves)
}

// Len returns the number of moves currently stored in the slice.
func (ms *MoveSlice) Len() int { return len(*ms) }

// Cap returns the capacity of the slice.
func (ms *MoveSlice) Cap() int { return cap(*ms) }

// PushBack appends an element at the end of the slice.
func (ms *MoveSlice) PushBack(m Move) { *ms = append(*ms, m) }

// PopBack removes and returns the move from the back of the slice. Panics
// if the slice is empty.
func (ms *MoveSlice) PopBack() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: PopBack() called on empty slice")
	}
	backMove := (*ms)[len(*ms)-1]
	*ms = (*ms)[:len(*ms)-1]
	return backMove
}

// PushFront prepends an element at the beginning of the slice, shifting
// every existing element by one index.
func (ms *MoveSlice) PushFront(m Move) {
	*ms = append(*ms, MoveNone)
	copy((*ms)[1:], *ms)
	(*ms)[0] = m
}

// PopFront removes and returns the move from the front of the slice.
// Panics if the slice is empty.
func (ms *MoveSlice) PopFront() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: PopFront() called on empty slice")
	}
	frontMove := (*ms)[0]
	*ms = (*ms)[1:]
	return frontMove
}

// Front returns the move at the front of the slice. Panics if empty.
func (ms *MoveSlice) Front() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: Front() called when empty")
	}
	return (*ms)[0]
}

// Back returns the move at the back of the slice. Panics if empty.
func (ms *MoveSlice) Back() Move {
	if len(*ms) <= 0 {
		panic("MoveSlice: Back() called when empty")
	}
	return (*ms)[len(*ms)-1]
}

// At returns the move at index i without removing it. Panics out of bounds.
func (ms *MoveSlice) At(i int) Move {
	if len(*ms) == 0 || i < 0 || i >= len(*ms) {
		panic("MoveSlice: Index out of bounds")
	}
	return (*ms)[i]
}

// Set overwrites the move at index i. Panics out of bounds.
func (ms *MoveSlice) Set(i int, move Move) {
	if len(*ms) == 0 || i < 0 || i >= len(*ms) {
		panic("MoveSlice: Index out of bounds")
	}
	(*ms)[i] = move
}

// Filter keeps only the elements for which f returns true, reusing the
// underlying array.
func (ms *MoveSlice) Filter(f func(index int) bool) {
	b := (*ms)[:0]
	for i, x := range *ms {
		if f(i) {
			b = append(b, x)
		}
	}
	*ms = b
}

// FilterCopy copies the non-filtered elements of ms into dest.
func (ms *MoveSlice) FilterCopy(dest *MoveSlice, f func(index int) bool) {
	for i, x := range *ms {
		if f(i) {
			*dest = append(*dest, x)
		}
	}
}

// Clone deep-copies the slice into a new MoveSlice.
func (ms *MoveSlice) Clone() *MoveSlice {
	dest := make([]Move, ms.Len(), ms.Cap())
	copy(dest, *ms)
	return (*MoveSlice)(&dest)
}

// Equals reports whether ms and other hold the same moves in the same
// order, including any attached sort values.
func (ms *MoveSlice) Equals(other *MoveSlice) bool {
	if ms.Len() != other.Len() {
		return false
	}
	for i, m := range *ms {
		if m != (*other)[i] {
			return false
		}
	}
	return true
}

// ForEach calls f with the index of each element in stored order.
func (ms *MoveSlice) ForEach(f func(index int)) {
	for index := range *ms {
		f(index)
	}
}

// ForEachParallel calls f once per element from its own goroutine and
// waits for all of them to finish. f is responsible for its own
// synchronization against other goroutines' side effects.
func (ms *MoveSlice) ForEachParallel(f func(index int)) {
	sliceLength := len(*ms)
	var wg sync.WaitGroup
	wg.Add(sliceLength)
	for index := range *ms {
		go func(i int) {
			defer wg.Done()
			f(i)
		}(index)
	}
	wg.Wait()
}

// Clear empties the slice but retains its current capacity, so it can be
// reused at high frequency (one move list per ply) without provoking GC.
func (ms *MoveSlice) Clear() { *ms = (*ms)[:0] }

// Sort orders moves from highest attached sort Value to lowest, using a
// stable insertion sort since move lists are small and nearly sorted
// already (killers and the TT move are usually placed up front before
// Sort runs).
func (ms *MoveSlice) Sort() {
	l := len(*ms)
	for i := 1; i < l; i++ {
		tmp := (*ms)[i]
		j := i
		for j > 0 && tmp.ValueOf() > (*ms)[j-1].ValueOf() {
			(*ms)[j] = (*ms)[j-1]
			j--
		}
		(*ms)[j] = tmp
	}
}

func (ms *MoveSlice) String() string {
	var os strings.Builder
	size := len(*ms)
	os.WriteString(fmt.Sprintf("MoveList: [%d] { ", size))
	for i := 0; i < size; i++ {
		if i > 0 {
			os.WriteString(", ")
		}
		os.WriteString(ms.At(i).String())
	}
	os.WriteString(" }")
	return os.String()
}

// StringUci returns a space-separated list of all moves in UCI format.
func (ms *MoveSlice) StringUci() string {
	var os strings.Builder
	size := len(*ms)
	for i := 0; i < size; i++ {
		if i > 0 {
			os.WriteString(" ")
		}
		os.WriteString((*ms)[i].StringUci())
	}
	return os.String()
}
