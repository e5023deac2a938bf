// dynarec_compiler.go - dynarec block compiler (C7)

package main

// compiledInstr is one precoded instruction captured during compilation:
// decoding is pure (§4.1), so doing it once at compile time and replaying
// the decode result at dispatch time is semantically identical to
// redecoding every time.
type compiledInstr struct {
	word uint32
	d    Decoded
}

// CompiledBlock is what a cache slot's run pointer ultimately points at:
// the block's own physical root, the physical address of its delay slot
// (if any, for dual-page registration per §9c), and the dispatch closure
// itself.
type CompiledBlock struct {
	RootPhysical      uint32
	DelaySlotPhysical uint32
	instrs            []compiledInstr
	run               blockRun
}

// Compiler walks the decoder exactly as the interpreter does and builds a
// CompiledBlock, writing a bookkeeping footprint into the code arena for
// every emitted instruction (§4.6).
type Compiler struct {
	arena *CodeArena
}

func NewCompiler(arena *CodeArena) *Compiler {
	return &Compiler{arena: arena}
}

// bytesPerInstr is the arena footprint charged per compiled instruction —
// an arbitrary but fixed accounting unit, since no native code is actually
// emitted (see dynarec_arena.go).
const bytesPerInstr = 16

// Compile builds one block rooted at rootPhysical, applying the
// single-delay-slot termination discipline from §4.6.
func (co *Compiler) Compile(cpu *CPU, rootPhysical uint32) *CompiledBlock {
	var instrs []compiledInstr
	phys := rootPhysical
	needDelaySlot := false
	delaySlotPhysical := uint32(0)

	for {
		word := cpu.bus.ReadWord(phys)
		d := Decode(word, 0)

		if needDelaySlot && (d.Category == catBRANCH || d.Category == catBRANCHLIKELY) {
			cpu.fatalf(word, "branch in another branch's delay slot at physical %#08x", phys)
		}

		instrs = append(instrs, compiledInstr{word: word, d: d})

		if needDelaySlot {
			delaySlotPhysical = phys
			break
		}

		switch d.Category {
		case catBRANCH, catBRANCHLIKELY:
			needDelaySlot = true
		case catERET, catTLBWRITE, catSTORE:
			goto done
		}

		next := phys + 4
		if pageKey(next) != pageKey(phys) && !needDelaySlot {
			break
		}
		phys = next
	}

done:
	co.arena.Reserve(len(instrs) * bytesPerInstr)

	block := &CompiledBlock{
		RootPhysical:      rootPhysical,
		DelaySlotPhysical: delaySlotPhysical,
		instrs:            instrs,
	}
	block.run = block.dispatch
	return block
}

// dispatch replays the precoded instruction stream (§9 "coupled
// interpreter and JIT semantics" — the same execPrecoded path the
// interpreter's Step uses), honoring the early-exit-on-exception rule from
// §4.6 point 5.
func (b *CompiledBlock) dispatch(cpu *CPU) int {
	total := 0
	for _, ci := range b.instrs {
		cycles, exceptionRaised := cpu.execPrecoded(ci.word, ci.d)
		total += cycles
		if exceptionRaised {
			return total
		}
		if ci.d.Category == catBRANCHLIKELY && !cpu.pendingBranch {
			// Not-taken likely branch: the delay slot is nullified, so the
			// recorded slot instruction must not be replayed (§4.6's early
			// exit for BRANCH_LIKELY). The interpreter already advanced
			// next_pc past it.
			return total
		}
	}
	return total
}
