// r4300i_registers.go - general register file, CP0 control registers, FPU bank

package main

import "fmt"

// Registers holds the CPU's architectural state: the 32 general-purpose
// registers, HI/LO, the three program counters, CP0, the FPU bank, and the
// LL/SC reservation bit. Everything is sized for the R4300i's 64-bit
// datapath; sub-64-bit results are sign-extended at the accessor layer.
type Registers struct {
	gpr [32]uint64

	hi, lo uint64

	pc, nextPC, prevPC uint64

	branch bool // true while executing a delay slot (set by the preceding branch)

	pendingBranch bool   // a delay slot is in flight; commit pendingTarget as next_pc once it executes
	pendingTarget uint64

	fpr [32]uint64 // raw 64-bit storage; width interpretation is per-access

	fcr0  uint32
	fcr31 uint32

	llbit bool

	cp0 CP0
}

// NewRegisters returns a zeroed register file with FCR0 set to the R4300i's
// documented FPU revision identifier and CP0 PRId set to the VR4300 value.
func NewRegisters() *Registers {
	r := &Registers{}
	r.fcr0 = 0x00000A00
	r.cp0.regs[cp0PRId] = 0x00000B22 // NEC VR4300 PRId/Imp value
	return r
}

// GetGPR returns register i (0-31); register 0 always reads as zero.
func (r *Registers) GetGPR(i uint) uint64 {
	if i == 0 {
		return 0
	}
	return r.gpr[i&31]
}

// SetGPR writes register i; writes to register 0 are silently discarded.
func (r *Registers) SetGPR(i uint, v uint64) {
	if i == 0 {
		return
	}
	r.gpr[i&31] = v
}

// SetGPR32 writes the sign-extension of the low 32 bits of v, the form
// every 32-bit-result instruction must use (§3: "All writes of sub-64-bit
// values must sign-extend the top half from bit 31").
func (r *Registers) SetGPR32(i uint, v uint32) {
	r.SetGPR(i, uint64(int64(int32(v))))
}

func (r *Registers) GetFPR64(i uint) uint64 { return r.fpr[i&31] }
func (r *Registers) SetFPR64(i uint, v uint64) { r.fpr[i&31] = v }

func (r *Registers) GetFPR32(i uint) uint32 { return uint32(r.fpr[i&31]) }
func (r *Registers) SetFPR32(i uint, v uint32) {
	// R4300 full-width convention: a 32-bit write only replaces the low half.
	r.fpr[i&31] = (r.fpr[i&31] &^ 0xFFFFFFFF) | uint64(v)
}

// FcrCompareSet writes the single compare bit in FCR31 that FP compare ops
// are permitted to touch (§4.2: "FPU compares write only fcr31.compare").
func (r *Registers) FcrCompareSet(v bool) {
	const compareBit = 1 << 23
	if v {
		r.fcr31 |= compareBit
	} else {
		r.fcr31 &^= compareBit
	}
}

func (r *Registers) FcrCompare() bool {
	return r.fcr31&(1<<23) != 0
}

// CP0 models the 32-entry system control coprocessor register file with
// typed bitfield views over the ones the core actually manipulates.
type CP0 struct {
	regs [32]uint64
}

func (c *CP0) Get(i uint) uint64 { return c.regs[i&31] }
func (c *CP0) Set(i uint, v uint64) { c.regs[i&31] = v }

func (c *CP0) Status() uint32 { return uint32(c.regs[cp0Status]) }
func (c *CP0) SetStatus(v uint32) { c.regs[cp0Status] = uint64(v) }

func (c *CP0) StatusIE() bool  { return c.Status()&statusIE != 0 }
func (c *CP0) StatusEXL() bool { return c.Status()&statusEXL != 0 }
func (c *CP0) StatusERL() bool { return c.Status()&statusERL != 0 }
func (c *CP0) StatusBEV() bool { return c.Status()&statusBEV != 0 }

func (c *CP0) SetStatusEXL(v bool) {
	s := c.Status()
	if v {
		s |= statusEXL
	} else {
		s &^= statusEXL
	}
	c.SetStatus(s)
}

func (c *CP0) SetStatusERL(v bool) {
	s := c.Status()
	if v {
		s |= statusERL
	} else {
		s &^= statusERL
	}
	c.SetStatus(s)
}

// InterruptMask returns Status.IM, the 8-bit interrupt mask field (bits 15:8).
func (c *CP0) InterruptMask() uint32 { return (c.Status() >> 8) & 0xFF }

func (c *CP0) Cause() uint32    { return uint32(c.regs[cp0Cause]) }
func (c *CP0) SetCause(v uint32) { c.regs[cp0Cause] = uint64(v) }

func (c *CP0) CauseExcCode() uint32 { return (c.Cause() & causeExcCodeMask) >> causeExcCodeShift }

func (c *CP0) SetCauseExcCode(code uint32) {
	v := c.Cause()
	v = (v &^ causeExcCodeMask) | ((code << causeExcCodeShift) & causeExcCodeMask)
	c.SetCause(v)
}

func (c *CP0) SetCauseBranchDelay(v bool) {
	cause := c.Cause()
	if v {
		cause |= causeBD
	} else {
		cause &^= causeBD
	}
	c.SetCause(cause)
}

func (c *CP0) CauseBranchDelay() bool { return c.Cause()&causeBD != 0 }

func (c *CP0) SetCauseCopErr(idx uint32) {
	cause := c.Cause()
	cause = (cause &^ (3 << causeCEShift)) | ((idx & 3) << causeCEShift)
	c.SetCause(cause)
}

// IP returns the 8-bit pending interrupt field (Cause bits 15:8), which
// overlays the two software interrupt bits and the six hardware lines.
func (c *CP0) IP() uint32 { return (c.Cause() >> 8) & 0xFF }

func (c *CP0) SetIPBit(bit uint32, v bool) {
	cause := c.Cause()
	mask := uint32(1) << (8 + bit)
	if v {
		cause |= mask
	} else {
		cause &^= mask
	}
	c.SetCause(cause)
}

// PendingInterrupts reports whether any enabled interrupt line is asserted
// and delivery is currently permitted by Status (§4.7 step 2).
func (c *CP0) PendingInterrupts() bool {
	if !c.StatusIE() || c.StatusEXL() || c.StatusERL() {
		return false
	}
	return c.IP()&c.InterruptMask() != 0
}

// Count is tracked as a 33-bit counter (§4.7: "advance cp0.count... mask to
// 33 bits"), wider than the 32-bit value MTC0/MFC0 would expose, so that
// count>>1 can be compared directly against the 32-bit Compare register.
func (c *CP0) Count() uint64     { return c.regs[cp0Count] & 0x1FFFFFFFF }
func (c *CP0) SetCount(v uint64) { c.regs[cp0Count] = v & 0x1FFFFFFFF }
func (c *CP0) Compare() uint32   { return uint32(c.regs[cp0Compare]) }

func (c *CP0) EntryHi() uint64    { return c.regs[cp0EntryHi] }
func (c *CP0) SetEntryHi(v uint64) { c.regs[cp0EntryHi] = v }

func (c *CP0) String() string {
	return fmt.Sprintf("status=%#010x cause=%#010x epc=%#010x count=%d compare=%d",
		c.Status(), c.Cause(), c.regs[cp0EPC], c.Count(), c.Compare())
}
