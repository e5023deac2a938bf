//go:build !windows

// dynarec_arena.go - bump-allocated, append-only executable code arena (C7)
//
// Real native code emission needs an assembler this core does not carry;
// compiled blocks are represented as Go closures (see dynarec_compiler.go).
// The arena below still performs the genuine mmap bookkeeping the code
// cache's lifecycle invariants require — a contiguous RWX region, a
// monotonic `used` cursor, never relocated, never reclaimed within a
// session.

package main

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CodeArena is a single contiguous buffer mapped read+write+execute at
// startup (§3). Every live block "pointer" (here, a slot index into
// reservations) lies in [0, used).
type CodeArena struct {
	mem  []byte
	used int
}

// NewCodeArena maps `size` bytes RWX via mmap, matching §5's requirement
// that executable memory be mapped with execute permission before the
// first block runs, with no runtime re-permission needed since pages are
// never reused.
func NewCodeArena(size int) (*CodeArena, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("dynarec: mmap code arena: %w", err)
	}
	return &CodeArena{mem: mem}, nil
}

// Reserve advances the monotonic cursor by n bytes and returns the base
// offset of the reservation, recording the block's footprint in the
// mapped region (its actual dispatch is the returned Go closure in
// dynarec_compiler.go). Panics if the arena is exhausted — an
// implementation error, not an architectural condition (§7): a fixed arena
// size is a deployment parameter, not something guest code can trigger
// through defined behavior.
func (a *CodeArena) Reserve(n int) int {
	if a.used+n > len(a.mem) {
		panic(&ImplementationError{Message: fmt.Sprintf("code arena exhausted: used=%d want=%d cap=%d", a.used, n, len(a.mem))})
	}
	base := a.used
	for i := 0; i < n; i++ {
		a.mem[base+i] = 0x90 // filler byte; real content is never executed as machine code
	}
	a.used += n
	return base
}

// Used reports the monotonic cursor.
func (a *CodeArena) Used() int { return a.used }

// Close releases the mapping. Session lifetime only — no reclaim of
// individual blocks (§9 "code arena lifetime").
func (a *CodeArena) Close() error {
	if a.mem == nil {
		return nil
	}
	err := unix.Munmap(a.mem)
	a.mem = nil
	return err
}
