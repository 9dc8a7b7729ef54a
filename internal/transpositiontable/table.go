//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package transpositiontable implements a 4-way set-associative
// transposition table for search. Each hashed index owns a bucket of four
// entries; a store that misses all four keys evicts the lowest-priority
// occupant rather than always overwriting slot zero. Probe and Store take a
// shared lock so a Lazy-SMP helper pool can read and write the same table
// as the primary search worker; Resize and Clear take the same lock so
// they cannot tear a bucket mid-probe.
package transpositiontable

import (
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	myLogging "github.com/jwkunz/plumgo/internal/logging"
	"github.com/jwkunz/plumgo/internal/util"
	"github.com/jwkunz/plumgo/internal/zobrist"

	. "github.com/jwkunz/plumgo/internal/types"
)

var out = message.NewPrinter(language.German)

// bucketSize is the set-associativity factor: entries sharing a hash index
// compete within their bucket of this many slots instead of one.
const bucketSize = 4

// MaxSizeInMB bounds how much memory a single table may claim.
const MaxSizeInMB = 65_536

// Table is the shared transposition table. mu guards every field below it
// so the table can be probed and stored into concurrently by a Lazy-SMP
// helper pool (spec.md §5 allows per-shard mutual exclusion in place of a
// lock-free design); a single table-wide lock is coarser than per-bucket
// locking but keeps entry and bucket() free of synchronization concerns.
type Table struct {
	log *logging.Logger

	mu                 sync.Mutex
	data               []entry
	sizeInByte         uint64
	bucketMask         uint64
	maxNumberOfBuckets uint64
	numberOfEntries    uint64
	generation         int8
	Stats              Stats
}

// Stats tracks usage counters for diagnostics (surfaced via String()).
type Stats struct {
	Puts       uint64
	Collisions uint64
	Overwrites uint64
	Updates    uint64
	Probes     uint64
	Hits       uint64
	Misses     uint64
}

// New creates a Table sized to at most sizeInMByte megabytes.
func New(sizeInMByte int) *Table {
	tt := &Table{log: myLogging.GetLog()}
	tt.Resize(sizeInMByte)
	return tt
}

// Resize reallocates the table, clearing all entries.
func (tt *Table) Resize(sizeInMByte int) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if sizeInMByte > MaxSizeInMB {
		tt.log.Error(out.Sprintf("requested TT size %d MB reduced to max %d MB", sizeInMByte, MaxSizeInMB))
		sizeInMByte = MaxSizeInMB
	}

	entrySize := uint64(unsafe.Sizeof(entry{}))
	tt.sizeInByte = uint64(sizeInMByte) * MB
	bucketBytes := entrySize * bucketSize
	if tt.sizeInByte < bucketBytes {
		tt.maxNumberOfBuckets = 0
	} else {
		tt.maxNumberOfBuckets = 1 << uint64(math.Floor(math.Log2(float64(tt.sizeInByte/bucketBytes))))
	}
	tt.bucketMask = 0
	if tt.maxNumberOfBuckets > 0 {
		tt.bucketMask = tt.maxNumberOfBuckets - 1
	}
	tt.sizeInByte = tt.maxNumberOfBuckets * bucketBytes
	tt.data = make([]entry, tt.maxNumberOfBuckets*bucketSize)
	tt.numberOfEntries = 0
	tt.Stats = Stats{}

	tt.log.Info(out.Sprintf("TT size %d MByte, %d buckets x %d entries (%d Byte each), requested %d MByte",
		tt.sizeInByte/MB, tt.maxNumberOfBuckets, bucketSize, entrySize, sizeInMByte))
	tt.log.Debug(util.MemStat())
}

// bucket returns the bucketSize-wide slice of entries sharing key's index.
func (tt *Table) bucket(key zobrist.Key) []entry {
	idx := uint64(key) & tt.bucketMask
	start := idx * bucketSize
	return tt.data[start : start+bucketSize]
}

// Probe returns a copy of the entry matching key within its bucket, or nil.
// It returns a copy rather than a pointer into the table so a concurrent
// Store from another Lazy-SMP worker cannot mutate the entry out from
// under a caller still reading it.
func (tt *Table) Probe(key zobrist.Key) *entry {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if tt.maxNumberOfBuckets == 0 {
		return nil
	}
	tt.Stats.Probes++
	b := tt.bucket(key)
	for i := range b {
		if b[i].key == key {
			b[i].decreaseAge()
			tt.Stats.Hits++
			found := b[i]
			return &found
		}
	}
	tt.Stats.Misses++
	return nil
}

// Store records a search result for key, normalizing mate scores to be
// distance-from-root independent (ply is the current search ply).
func (tt *Table) Store(key zobrist.Key, move Move, depth int8, value Value, vtype ValueType, eval Value, ply int) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	if tt.maxNumberOfBuckets == 0 {
		return
	}
	tt.Stats.Puts++

	stored := normalizeMateToStore(value, ply)
	b := tt.bucket(key)

	// A same-key slot, if present anywhere in the bucket, takes priority
	// over both an empty slot and eviction: replace it only when the
	// incoming search went at least as deep as what's already there,
	// per spec.md §4.7 ("if a same-key entry exists, replace when the
	// incoming depth is >= existing; else fill an empty slot; else evict").
	for i := range b {
		if b[i].key != key {
			continue
		}
		if int(depth) < int(b[i].Depth()) {
			return
		}
		tt.Stats.Updates++
		if move == MoveNone {
			move = b[i].Move()
		}
		if eval == ValueNA {
			eval = b[i].Eval()
		}
		b[i].set(key, move, depth, stored, vtype, eval)
		return
	}

	for i := range b {
		if b[i].isEmpty() {
			tt.numberOfEntries++
			b[i].set(key, move, depth, stored, vtype, eval)
			return
		}
	}

	tt.Stats.Collisions++
	worst := 0
	for i := 1; i < len(b); i++ {
		if b[i].priority() < b[worst].priority() {
			worst = i
		}
	}
	incomingBoundBonus := 0
	if vtype == Exact {
		incomingBoundBonus = 4
	}
	incomingPriority := int(depth)*16 + incomingBoundBonus
	if incomingPriority >= b[worst].priority() {
		tt.Stats.Overwrites++
		b[worst].set(key, move, depth, stored, vtype, eval)
	}
}

// ProbeValue returns the value stored for key at ply, re-expanding a
// normalized mate score back to the caller's distance from root. ok is
// false if key is absent.
func (tt *Table) ProbeValue(key zobrist.Key, ply int) (value Value, ok bool) {
	e := tt.Probe(key)
	if e == nil {
		return ValueNA, false
	}
	return expandMateFromStore(e.Value(), ply), true
}

// normalizeMateToStore rewrites a mate score measured from the search root
// to one measured from the current node (ply deep), so the same mate
// found via different paths compares and hashes identically.
func normalizeMateToStore(v Value, ply int) Value {
	if !v.IsCheckMateValue() {
		return v
	}
	if v > 0 {
		return v + Value(ply)
	}
	return v - Value(ply)
}

// expandMateFromStore is normalizeMateToStore's inverse, applied on read.
func expandMateFromStore(v Value, ply int) Value {
	if !v.IsCheckMateValue() {
		return v
	}
	if v > 0 {
		return v - Value(ply)
	}
	return v + Value(ply)
}

// Clear empties the table and resets statistics.
func (tt *Table) Clear() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.data = make([]entry, tt.maxNumberOfBuckets*bucketSize)
	tt.numberOfEntries = 0
	tt.Stats = Stats{}
}

// Hashfull reports table occupancy in permille, per the UCI "hashfull" info
// field.
func (tt *Table) Hashfull() int {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.hashfullLocked()
}

func (tt *Table) hashfullLocked() int {
	if tt.maxNumberOfBuckets == 0 {
		return 0
	}
	return int((1000 * tt.numberOfEntries) / (tt.maxNumberOfBuckets * bucketSize))
}

func (tt *Table) String() string {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return out.Sprintf("TT: %d MB, %d buckets x %d, entries %d (%d%%), puts %d updates %d "+
		"collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		tt.sizeInByte/MB, tt.maxNumberOfBuckets, bucketSize, tt.numberOfEntries, tt.hashfullLocked()/10,
		tt.Stats.Puts, tt.Stats.Updates, tt.Stats.Collisions, tt.Stats.Overwrites, tt.Stats.Probes,
		tt.Stats.Hits, (tt.Stats.Hits*100)/(1+tt.Stats.Probes),
		tt.Stats.Misses, (tt.Stats.Misses*100)/(1+tt.Stats.Probes))
}

// Len returns the number of occupied entries.
func (tt *Table) Len() uint64 {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.numberOfEntries
}

// NewGeneration bumps the table's generation counter and ages every
// occupied entry in parallel, called once per iterative-deepening
// iteration (spec.md §4.8 step 1) so stale entries from prior searches
// lose replacement priority gradually instead of being wiped outright.
func (tt *Table) NewGeneration() {
	tt.mu.Lock()
	tt.generation++
	tt.mu.Unlock()
	tt.AgeEntries()
}

// AgeEntries increases the age of every occupied entry, spread across
// goroutines since the table can be large.
func (tt *Table) AgeEntries() {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	start := time.Now()
	if tt.numberOfEntries > 0 {
		const workers = 32
		var wg sync.WaitGroup
		total := uint64(len(tt.data))
		slice := total / workers
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(i uint64) {
				defer wg.Done()
				from := i * slice
				to := from + slice
				if i == workers-1 {
					to = total
				}
				for n := from; n < to; n++ {
					if !tt.data[n].isEmpty() {
						tt.data[n].increaseAge()
					}
				}
			}(uint64(i))
		}
		wg.Wait()
	}
	tt.log.Debug(out.Sprintf("aged %d entries of %d in %d ms", tt.numberOfEntries, len(tt.data), time.Since(start).Milliseconds()))
}
