// r4300i_exceptions.go - exception engine (C5): CP0 state encoding, vector
// selection, ERET restore

package main

import "fmt"

// ImplementationError is the fatal, non-architectural error class (§7):
// a situation the ISA defines but this core disagrees with. It is never
// recovered from except at main, which prints the offending PC and
// instruction word and exits non-zero.
type ImplementationError struct {
	PC      uint64
	Word    uint32
	Message string
}

func (e *ImplementationError) Error() string {
	return fmt.Sprintf("implementation error at pc=%#018x word=%#010x: %s", e.PC, e.Word, e.Message)
}

// raiseException implements §4.4 for every exception that enters through
// the general vector. branchPending is the interpreter's `branch` flag at
// the moment of the fault. TLB translation faults go through
// raiseTLBException instead: only a genuine refill miss takes the
// dedicated refill vector, and that distinction is not recoverable from
// the exception code alone (TLBL/TLBS cover refill and invalid alike).
func (r *Registers) raiseException(code uint32, copErr uint32, branchPending bool) {
	r.deliverException(code, copErr, branchPending, false)
}

// raiseTLBException routes a translation fault: the miss kind selects the
// vector, the caller's intent already selected the code.
func (r *Registers) raiseTLBException(code uint32, branchPending bool, kind tlbMissKind) {
	r.deliverException(code, 0, branchPending, kind == tlbMissRefill)
}

func (r *Registers) deliverException(code uint32, copErr uint32, branchPending bool, refillVector bool) {
	if !r.cp0.StatusEXL() {
		if branchPending {
			r.cp0.Set(cp0EPC, r.pc-4)
			r.cp0.SetCauseBranchDelay(true)
		} else {
			r.cp0.Set(cp0EPC, r.pc)
			r.cp0.SetCauseBranchDelay(false)
		}
	}

	r.cp0.SetStatusEXL(true)
	r.cp0.SetCauseExcCode(code)
	if copErr > 0 {
		r.cp0.SetCauseCopErr(copErr)
	}

	offset := uint64(vectorGeneralOffset)
	if refillVector {
		offset = vectorTLBRefillOffset
	}

	base := uint64(vectorNormalBase)
	if r.cp0.StatusBEV() {
		base = vectorBootstrapBase
	}

	r.nextPC = base + offset
	r.branch = false
}

// eret implements ERET (§4.4): restore from ErrorEPC or EPC depending on
// Status.erl, clear the matching status bit, and clear llbit.
func (r *Registers) eret() {
	if r.cp0.StatusERL() {
		r.pc = r.cp0.Get(cp0ErrorEPC)
		r.cp0.SetStatusERL(false)
	} else {
		r.pc = r.cp0.Get(cp0EPC)
		r.cp0.SetStatusEXL(false)
	}
	r.nextPC = r.pc + 4
	r.llbit = false
}

// tlbExceptionCode maps a TlbError plus access intent onto the exception
// code (§4.3). It returns only the code; populateMissState writes
// BadVAddr/EntryHi.
func tlbExceptionCode(kind tlbMissKind, intent accessIntent) uint32 {
	if kind == tlbMissModified {
		return excMOD
	}
	if intent == intentStore {
		return excTLBS
	}
	return excTLBL
}

// populateMissState writes BadVAddr and EntryHi(VPN2+ASID) on any TLB miss,
// per the caller obligation in §4.3 point 1.
func (c *CP0) populateMissState(vaddr uint64, asid uint8) {
	c.Set(cp0BadVAddr, vaddr)
	vpn2 := (vaddr >> 13) << 13
	c.SetEntryHi(vpn2 | uint64(asid))
}
