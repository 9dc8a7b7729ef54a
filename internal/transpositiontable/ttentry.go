//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package transpositiontable

import (
	"github.com/jwkunz/plumgo/internal/zobrist"
	. "github.com/jwkunz/plumgo/internal/types"
)

// entry is one transposition-table slot, bit-packed to stay at 16 bytes.
type entry struct {
	key   zobrist.Key
	move  uint32 // Move with its transient sort bits stripped (MoveOf())
	eval  int16
	value int16
	vmeta uint16 // depth 7-bit | vtype 2-bit | age 7-bit
}

const (
	ageMask    = uint16(0b0000_0000_0111_1111)
	vtypeMask  = uint16(0b0000_0001_1000_0000)
	vtypeShift = uint16(7)
	depthMask  = uint16(0b1111_1110_0000_0000)
	depthShift = uint16(9)
)

func (e *entry) isEmpty() bool { return e.key == 0 }

func (e *entry) decreaseAge() {
	if e.Age() > 0 {
		e.vmeta--
	}
}

func (e *entry) increaseAge() {
	if e.Age() < 127 {
		e.vmeta++
	}
}

func (e *entry) Key() zobrist.Key { return e.key }
func (e *entry) Move() Move       { return Move(e.move) }
func (e *entry) Value() Value     { return Value(e.value) }
func (e *entry) Eval() Value      { return Value(e.eval) }
func (e *entry) Depth() int8      { return int8((e.vmeta & depthMask) >> depthShift) }
func (e *entry) Age() int8        { return int8(e.vmeta & ageMask) }
func (e *entry) Vtype() ValueType { return ValueType((e.vmeta & vtypeMask) >> vtypeShift) }

// set stores a freshly-written entry at age 0, matching the age term
// Store's eviction-priority comparison assumes for an incoming entry.
func (e *entry) set(key zobrist.Key, move Move, depth int8, value Value, vtype ValueType, eval Value) {
	e.key = key
	e.move = uint32(move.MoveOf())
	e.eval = int16(eval)
	e.value = int16(value)
	e.vmeta = uint16(depth)<<depthShift | uint16(vtype)<<vtypeShift
}

// priority ranks an occupied entry for replacement purposes: deeper, more
// exact, and more recently seen entries score higher and survive longer.
func (e *entry) priority() int {
	boundBonus := 0
	if e.Vtype() == Exact {
		boundBonus = 4
	}
	return int(e.Depth())*16 + boundBonus - int(e.Age())*3
}
