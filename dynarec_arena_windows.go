//go:build windows

// dynarec_arena_windows.go - fallback code arena for platforms without
// golang.org/x/sys/unix's mmap; the closures dispatched from it never
// execute as raw machine code (see dynarec_compiler.go), so a plain
// heap-backed buffer preserves the same bookkeeping invariants without a
// real executable mapping.

package main

import "fmt"

type CodeArena struct {
	mem  []byte
	used int
}

func NewCodeArena(size int) (*CodeArena, error) {
	return &CodeArena{mem: make([]byte, size)}, nil
}

func (a *CodeArena) Reserve(n int) int {
	if a.used+n > len(a.mem) {
		panic(&ImplementationError{Message: fmt.Sprintf("code arena exhausted: used=%d want=%d cap=%d", a.used, n, len(a.mem))})
	}
	base := a.used
	a.used += n
	return base
}

func (a *CodeArena) Used() int { return a.used }

func (a *CodeArena) Close() error { a.mem = nil; return nil }
