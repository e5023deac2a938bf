package main

import "testing"

func newTestCompiler(t *testing.T) (*Compiler, *CodeArena) {
	t.Helper()
	arena, err := NewCodeArena(4096)
	if err != nil {
		t.Fatalf("NewCodeArena: %v", err)
	}
	t.Cleanup(func() { arena.Close() })
	return NewCompiler(arena), arena
}

func TestCompilerStopsAfterSingleDelaySlot(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)

	bus.WriteWord(0x0, word(opSPECIAL, 0, 0, 0, 0, fnSLL)) // NOP
	bus.WriteWord(0x4, word(opBEQ, 1, 2, 0, 0, 0))          // branch
	bus.WriteWord(0x8, word(opSPECIAL, 0, 0, 0, 0, fnSLL))  // delay slot NOP
	bus.WriteWord(0xC, word(opSPECIAL, 0, 0, 0, 0, fnSLL))  // must not be included

	block := compiler.Compile(cpu, 0x0)
	if len(block.instrs) != 3 {
		t.Fatalf("compiled %d instrs, want 3 (nop, branch, delay slot)", len(block.instrs))
	}
	if block.DelaySlotPhysical != 0x8 {
		t.Fatalf("DelaySlotPhysical = %#x, want 0x8", block.DelaySlotPhysical)
	}
}

func TestCompilerStopsAtStore(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)

	bus.WriteWord(0x0, word(opSW, 1, 2, 0, 0, 0))
	bus.WriteWord(0x4, word(opSPECIAL, 0, 0, 0, 0, fnSLL))

	block := compiler.Compile(cpu, 0x0)
	if len(block.instrs) != 1 {
		t.Fatalf("compiled %d instrs, want 1 (a store terminates the block)", len(block.instrs))
	}
}

func TestCompilerStopsAtPageBoundary(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(2 * PAGE_SIZE)
	cpu := NewCPU(bus, nil)

	base := uint32(PAGE_SIZE - 8)
	bus.WriteWord(base, word(opSPECIAL, 0, 0, 0, 0, fnSLL))
	bus.WriteWord(base+4, word(opSPECIAL, 0, 0, 0, 0, fnSLL))
	bus.WriteWord(base+8, word(opSPECIAL, 0, 0, 0, 0, fnSLL)) // next page

	block := compiler.Compile(cpu, base)
	if len(block.instrs) != 2 {
		t.Fatalf("compiled %d instrs, want 2 (the block must not cross the page boundary)", len(block.instrs))
	}
}

func TestCompilerBranchInDelaySlotIsFatal(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)

	bus.WriteWord(0x0, word(opBEQ, 1, 2, 0, 0, 0))
	bus.WriteWord(0x4, word(opBNE, 1, 2, 0, 0, 0)) // a branch sitting in the delay slot

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("compiling a branch into another branch's delay slot must panic")
		}
	}()
	compiler.Compile(cpu, 0x0)
}

func TestCompiledBlockDispatchRunsEveryInstruction(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)
	cpu.pc = 0x0
	cpu.nextPC = 0x4

	addi1 := word(opADDIU, 0, 1, 0, 0, 1) // r1 = r0 + 1
	bus.WriteWord(0x4, addi1)
	bus.WriteWord(0x8, word(opSW, 0, 1, 0, 0, 0)) // store r1 to address 0, terminates the block

	block := compiler.Compile(cpu, 0x4)
	total := block.run(cpu)
	if total != CYCLES_PER_INSTR*2 {
		t.Fatalf("dispatch total cycles = %d, want %d", total, CYCLES_PER_INSTR*2)
	}
	if got := cpu.GetGPR(1); got != 1 {
		t.Fatalf("r1 after dispatch = %d, want 1", got)
	}
}

// A not-taken likely branch nullifies its delay slot: the compiled block
// must not replay the recorded slot instruction (§4.6's early exit for
// BRANCH_LIKELY).
func TestCompiledBlockDispatchNullifiesLikelyDelaySlot(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)
	cpu.pc = 0x4
	cpu.nextPC = 0x4

	cpu.SetGPR(1, 1) // r0 != r1 -> BEQL not taken
	bus.WriteWord(0x4, word(opBEQL, 0, 1, 0, 0, 2))
	bus.WriteWord(0x8, word(opADDIU, 0, 2, 0, 0, 7)) // delay slot

	block := compiler.Compile(cpu, 0x4)
	block.run(cpu)
	if got := cpu.GetGPR(2); got != 0 {
		t.Fatalf("r2 = %d, want 0 (the nullified delay slot must not run)", got)
	}
	if cpu.nextPC != 0xC {
		t.Fatalf("nextPC = %#x, want 0xC (pc skips the nullified slot)", cpu.nextPC)
	}
}

func TestCompiledBlockDispatchRunsTakenLikelyDelaySlot(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)
	cpu.pc = 0x4
	cpu.nextPC = 0x4

	bus.WriteWord(0x4, word(opBEQL, 0, 1, 0, 0, 2))  // r0 == r1 (both zero) -> taken
	bus.WriteWord(0x8, word(opADDIU, 0, 2, 0, 0, 7)) // delay slot must run

	block := compiler.Compile(cpu, 0x4)
	block.run(cpu)
	if got := cpu.GetGPR(2); got != 7 {
		t.Fatalf("r2 = %d, want 7 (a taken likely branch still runs its delay slot)", got)
	}
	if cpu.nextPC != 0x10 {
		t.Fatalf("nextPC = %#x, want the branch target 0x10", cpu.nextPC)
	}
}

// TestCompiledBlockDispatchExitsEarlyOnException uses an unaligned load to
// raise the CPU's exception flag, which the dispatch loop checks
// (§4.6 point 5).
func TestCompiledBlockDispatchExitsEarlyOnException(t *testing.T) {
	compiler, _ := newTestCompiler(t)
	bus := NewN64Bus(4096)
	cpu := NewCPU(bus, nil)
	cpu.pc = 0x0
	cpu.nextPC = 0x4

	cpu.SetGPR(5, 1) // unaligned base -> address error on a word load
	lw := word(opLW, 5, 6, 0, 0, 0)
	addiu := word(opADDIU, 0, 9, 0, 0, 1) // must not execute if dispatch exits early
	bus.WriteWord(0x4, lw)
	bus.WriteWord(0x8, addiu)

	block := compiler.Compile(cpu, 0x4)
	if len(block.instrs) != 2 {
		t.Fatalf("compiled %d instrs, want 2", len(block.instrs))
	}
	block.run(cpu)
	if cpu.cp0.CauseExcCode() != excADEL {
		t.Fatalf("CauseExcCode after dispatch = %d, want excADEL", cpu.cp0.CauseExcCode())
	}
	if got := cpu.GetGPR(9); got != 0 {
		t.Fatalf("r9 = %d, want 0 (dispatch must exit before running the second instruction)", got)
	}
}
