package main

import "testing"

func newTestBlockCache(t *testing.T) (*BlockCache, *CPU, *N64Bus) {
	t.Helper()
	arena, err := NewCodeArena(4096)
	if err != nil {
		t.Fatalf("NewCodeArena: %v", err)
	}
	t.Cleanup(func() { arena.Close() })
	compiler := NewCompiler(arena)
	cache := NewBlockCache(compiler)
	bus := NewN64Bus(2 * PAGE_SIZE)
	cpu := NewCPU(bus, cache)
	bus.SetInvalidateHook(cpu.Invalidate)
	return cache, cpu, bus
}

func TestBlockCacheStartsAsTrampoline(t *testing.T) {
	cache, _, _ := newTestBlockCache(t)
	if !cache.IsTrampoline(0x100) {
		t.Fatal("an untouched physical address should report as a trampoline")
	}
}

func TestBlockCacheDispatchCompilesOnFirstTouch(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)
	bus.WriteWord(0x0, word(opSW, 0, 0, 0, 0, 0)) // a single-instruction block (store terminates it)

	cache.Dispatch(cpu, 0x0)
	if cache.IsTrampoline(0x0) {
		t.Fatal("after Dispatch, the slot should hold a compiled entry, not the trampoline")
	}
}

func TestBlockCacheInvalidateDropsWholePage(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)
	bus.WriteWord(0x0, word(opSW, 0, 0, 0, 0, 0))
	bus.WriteWord(0x4, word(opSW, 0, 0, 0, 0, 0))
	cache.Dispatch(cpu, 0x0)
	cache.Dispatch(cpu, 0x4)

	cache.Invalidate(0x0)
	if !cache.IsTrampoline(0x0) {
		t.Fatal("Invalidate should drop the whole page, reverting slot 0x0 to a trampoline")
	}
	if !cache.IsTrampoline(0x4) {
		t.Fatal("Invalidate should drop the whole page, reverting slot 0x4 too")
	}
}

func TestBlockCacheInvalidateIsPageGranular(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)
	bus.WriteWord(0x0, word(opSW, 0, 0, 0, 0, 0))
	bus.WriteWord(PAGE_SIZE, word(opSW, 0, 0, 0, 0, 0))
	cache.Dispatch(cpu, 0x0)
	cache.Dispatch(cpu, PAGE_SIZE)

	cache.Invalidate(0x0)
	if cache.IsTrampoline(PAGE_SIZE) {
		t.Fatal("invalidating one page must not revert an unrelated page's compiled slot")
	}
}

// TestBlockCacheCrossPageDelaySlotInvalidation verifies §9c: a block whose
// delay slot falls on the next physical page is owned by both pages, so a
// write landing on just the delay slot's page still drops the compiled
// block from its root page.
func TestBlockCacheCrossPageDelaySlotInvalidation(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)
	root := uint32(PAGE_SIZE - 4)
	bus.WriteWord(root, word(opBEQ, 1, 2, 0, 0, 0))           // branch, root's own page
	bus.WriteWord(root+4, word(opSPECIAL, 0, 0, 0, 0, fnSLL)) // delay slot, next page

	cache.Dispatch(cpu, root)
	if cache.IsTrampoline(root) {
		t.Fatal("dispatch should have compiled the block rooted at the page's last word")
	}

	cache.Invalidate(root + 4) // a write to just the delay slot's instruction
	if !cache.IsTrampoline(root) {
		t.Fatal("invalidating the delay slot's page must drop the block from its root page")
	}
}

// With dual registration disabled, the same write leaves the stale block
// live on its root page — the corner case documented for single-page
// ownership.
func TestBlockCacheSinglePageOwnershipRetainsStaleBlock(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)
	cache.DualRegisterCrossPageBlocks = false
	root := uint32(PAGE_SIZE - 4)
	bus.WriteWord(root, word(opBEQ, 1, 2, 0, 0, 0))
	bus.WriteWord(root+4, word(opSPECIAL, 0, 0, 0, 0, fnSLL))

	cache.Dispatch(cpu, root)
	cache.Invalidate(root + 4)
	if cache.IsTrampoline(root) {
		t.Fatal("with single-page ownership the root page keeps the (stale) block")
	}
}

// A guest store over compiled code must force recompilation: the second
// dispatch observes the rewritten instruction, not the stale block.
func TestBlockCacheSelfModifyingStoreRecompiles(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)

	bus.WriteWord(0x100, word(opADDIU, 0, 1, 0, 0, 1)) // r1 = 1
	bus.WriteWord(0x104, word(opSW, 2, 1, 0, 0, 0))    // store ends the block
	cpu.SetGPR(2, 0xFFFFFFFF80001200)                  // store target on another page

	cpu.pc = 0x100
	cpu.nextPC = 0x100
	cache.Dispatch(cpu, 0x100)
	if got := cpu.GetGPR(1); got != 1 {
		t.Fatalf("r1 after first dispatch = %d, want 1", got)
	}

	// Guest rewrites the first instruction through the CPU store path, which
	// invalidates the owning page.
	cpu.SetGPR(3, 0xFFFFFFFF80000100)
	cpu.SetGPR(4, uint64(word(opADDIU, 0, 1, 0, 0, 2))) // r1 = 2
	cpu.execMem(hSW, word(opSW, 3, 4, 0, 0, 0))

	cpu.pc = 0x100
	cpu.nextPC = 0x100
	cache.Dispatch(cpu, 0x100)
	if got := cpu.GetGPR(1); got != 2 {
		t.Fatalf("r1 after recompile = %d, want 2 (the rewritten instruction)", got)
	}
}

func TestBlockCacheDispatchRunsCompiledSemantics(t *testing.T) {
	cache, cpu, bus := newTestBlockCache(t)
	cpu.pc = 0x0
	cpu.nextPC = 0x4
	bus.WriteWord(0x4, word(opADDIU, 0, 7, 0, 0, 9)) // r7 = 9
	bus.WriteWord(0x8, word(opSW, 0, 7, 0, 0, 0))    // store terminates the block

	cache.Dispatch(cpu, 0x4)
	if got := cpu.GetGPR(7); got != 9 {
		t.Fatalf("r7 after dispatch = %d, want 9", got)
	}
}
