// r4300i_cpu.go - CPU struct, Bus collaborator interface, and the
// interpreter's single-step entry point (C4 top level)

package main

import "fmt"

// Bus is the external collaborator the core routes every memory access
// through (§6). Reads return zero-extended values of the access width.
// The core's store ops call CPU.Invalidate themselves after every committed
// write (r4300i_ops_mem.go), so implementations do not invalidate. The
// physical bus, MMIO devices and RDP are explicitly out of scope for this
// core — Bus is the seam.
type Bus interface {
	ReadByte(physical uint32) uint8
	ReadHalf(physical uint32) uint16
	ReadWord(physical uint32) uint32
	ReadDword(physical uint32) uint64

	WriteByte(physical uint32, v uint8)
	WriteHalf(physical uint32, v uint16)
	WriteWord(physical uint32, v uint32)
	WriteDword(physical uint32, v uint64)
}

// RSP is the scheduling-only coupling to the vector coprocessor (§6); its
// own instruction set is out of scope.
type RSP interface {
	Run(budget int)
	Halted() bool
	Broke() bool
}

// CPU binds the register file, TLB and bus collaborator into one stepping
// unit, the "context capability" both the interpreter and the dynarec's
// emitted code call through (§9 "coupled interpreter and JIT semantics").
type CPU struct {
	*Registers
	tlb *TLB
	bus Bus

	exception bool // set by raiseException-driving ops; read by the dynarec epilogue

	asid uint8

	cache *BlockCache

	lastImplErr error
}

// NewCPU constructs a CPU bound to the given bus collaborator and an empty
// TLB. Collaborators are constructor-injected; there is no global CPU
// singleton.
func NewCPU(bus Bus, cache *BlockCache) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		tlb:       &TLB{},
		bus:       bus,
		cache:     cache,
	}
}

// translate resolves vaddr for the given access width/intent, raising the
// address-error or TLB exceptions defined in §4.2 point 4 and §4.3.
// Returns ok=false when an exception was raised (next_pc/CP0 already set);
// the caller must not proceed with the access.
func (c *CPU) translate(vaddr uint64, width uint, intent accessIntent) (physical uint32, ok bool) {
	var alignMask uint64
	switch width {
	case 2:
		alignMask = 1
	case 4:
		alignMask = 3
	case 8:
		alignMask = 7
	}
	if vaddr&alignMask != 0 {
		code := excADEL
		if intent == intentStore {
			code = excADES
		}
		c.cp0.Set(cp0BadVAddr, vaddr)
		c.raiseException(uint32(code), 0, c.branch)
		c.exception = true
		return 0, false
	}

	// Sign-extension validity check for 32-bit addressing mode: bits 63:31
	// of a legal virtual address must all equal bit 31.
	top := vaddr >> 31
	if top != 0 && top != 0x1FFFFFFFF {
		code := excADEL
		if intent == intentStore {
			code = excADES
		}
		c.cp0.Set(cp0BadVAddr, vaddr)
		c.raiseException(uint32(code), 0, c.branch)
		c.exception = true
		return 0, false
	}

	phys, terr := c.tlb.Resolve(vaddr, intent, c.asid)
	if terr != nil {
		c.cp0.populateMissState(vaddr, c.asid)
		code := tlbExceptionCode(terr.Kind, intent)
		c.raiseTLBException(code, c.branch, terr.Kind)
		c.exception = true
		return 0, false
	}
	return uint32(phys), true
}

// fatalf aborts the process with a diagnostic per §7's implementation-error
// policy: never attempt recovery, name the offending PC and instruction.
func (c *CPU) fatalf(word uint32, format string, args ...interface{}) {
	panic(&ImplementationError{PC: c.pc, Word: word, Message: fmt.Sprintf(format, args...)})
}

// raiseException delivers the exception through the shared engine and sets
// the exception flag compiled blocks check to exit early (§4.6 point 5).
func (c *CPU) raiseException(code uint32, copErr uint32, branchPending bool) {
	c.Registers.raiseException(code, copErr, branchPending)
	c.exception = true
}

// Step executes one unit of CPU work per §4.7 point 3 and returns the
// number of cycles to credit the scheduler. It does not perform the
// Count/Compare or interrupt-delivery bookkeeping of §4.7 points 1-2 —
// that is the scheduler's responsibility (scheduler.go), which calls Step
// only once those checks have passed.
func (c *CPU) Step() int {
	c.advancePC()

	phys, ok := c.translate(c.pc, 4, intentFetch)
	if !ok {
		return CYCLES_PER_INSTR
	}
	word := c.bus.ReadWord(phys)

	d := Decode(word, c.pc)
	if d.HandlerID == hRESERVED {
		c.raiseException(excRI, d.RawCopErr, c.branch)
		return CYCLES_PER_INSTR
	}

	c.execute(d, word)
	return CYCLES_PER_INSTR
}

// advancePC performs the per-instruction preamble common to both the
// interpreter's fetch-decode-execute loop and the dynarec's precoded
// replay (§4.2 point 1): prev_pc/pc/next_pc threading, delay-slot target
// commit, and the exception flag reset.
func (c *CPU) advancePC() {
	c.prevPC = c.pc
	c.pc = c.nextPC
	if c.pendingBranch {
		c.nextPC = c.pendingTarget
		c.pendingBranch = false
		c.branch = true
	} else {
		c.nextPC = c.pc + 4
		c.branch = false
	}
	c.exception = false
}

// execPrecoded runs one already-fetched-and-decoded instruction through the
// preamble and the shared semantics dispatch, for use by compiled blocks
// that know their instruction stream in advance (§4.6). Returns the cycle
// cost and whether the exception flag was raised, so the caller can honor
// the early-exit rule from §4.6 point 5.
func (c *CPU) execPrecoded(word uint32, d Decoded) (cycles int, exceptionRaised bool) {
	c.advancePC()
	if d.HandlerID == hRESERVED {
		c.raiseException(excRI, d.RawCopErr, c.branch)
		return CYCLES_PER_INSTR, true
	}
	c.execute(d, word)
	return CYCLES_PER_INSTR, c.exception
}

// HandleException is directly callable by collaborators that detect faults
// asynchronously (§6 core-exposed surface).
func (c *CPU) HandleException(pc uint64, code uint32, copErr uint32) {
	c.pc = pc
	c.raiseException(code, copErr, c.branch)
}

// Invalidate drops the owning cache page for a physical write (§6, §4.5).
func (c *CPU) Invalidate(physical uint32) {
	if c.cache != nil {
		c.cache.Invalidate(physical)
	}
}
