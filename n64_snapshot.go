// n64_snapshot.go - architectural state snapshot/compare. The
// dynarec-vs-interpreter state-equivalence property (§8 "for every program
// that terminates in ≤N instructions without MMIO, final architectural
// state is byte-identical between modes") needs a cheap way to capture and
// diff a CPU's full register file, not a persistent save-file format.

package main

import "fmt"

// CPUSnapshot captures every piece of architectural state a guest program
// can observe. GPR/FPR/CP0 are a closed set on the R4300i, so fixed arrays
// suffice; there is no per-CPU-type register description.
type CPUSnapshot struct {
	GPR [32]uint64
	HI, LO uint64
	PC, NextPC uint64
	FPR  [32]uint64
	FCR0, FCR31 uint32
	LLBit bool
	CP0  [32]uint64
}

// TakeCPUSnapshot captures cpu's current architectural state. It does not
// capture TLB or bus/RDRAM contents: the equivalence property is about
// register-visible state after programs with no MMIO side effects, and the
// bus is a separate collaborator outside the CPU's own state.
func TakeCPUSnapshot(cpu *CPU) *CPUSnapshot {
	s := &CPUSnapshot{
		HI: cpu.hi, LO: cpu.lo,
		PC: cpu.pc, NextPC: cpu.nextPC,
		FCR0: cpu.fcr0, FCR31: cpu.fcr31,
		LLBit: cpu.llbit,
	}
	copy(s.GPR[:], cpu.gpr[:])
	copy(s.FPR[:], cpu.fpr[:])
	copy(s.CP0[:], cpu.cp0.regs[:])
	return s
}

// Diff reports every field that differs between two snapshots — the whole
// of what a state-equivalence test needs to report on mismatch.
func (s *CPUSnapshot) Diff(other *CPUSnapshot) []string {
	var diffs []string
	for i := range s.GPR {
		if s.GPR[i] != other.GPR[i] {
			diffs = append(diffs, fmt.Sprintf("gpr[%d]: %#x != %#x", i, s.GPR[i], other.GPR[i]))
		}
	}
	if s.HI != other.HI {
		diffs = append(diffs, fmt.Sprintf("hi: %#x != %#x", s.HI, other.HI))
	}
	if s.LO != other.LO {
		diffs = append(diffs, fmt.Sprintf("lo: %#x != %#x", s.LO, other.LO))
	}
	if s.PC != other.PC {
		diffs = append(diffs, fmt.Sprintf("pc: %#x != %#x", s.PC, other.PC))
	}
	if s.NextPC != other.NextPC {
		diffs = append(diffs, fmt.Sprintf("next_pc: %#x != %#x", s.NextPC, other.NextPC))
	}
	for i := range s.FPR {
		if s.FPR[i] != other.FPR[i] {
			diffs = append(diffs, fmt.Sprintf("fpr[%d]: %#x != %#x", i, s.FPR[i], other.FPR[i]))
		}
	}
	if s.FCR31 != other.FCR31 {
		diffs = append(diffs, fmt.Sprintf("fcr31: %#x != %#x", s.FCR31, other.FCR31))
	}
	if s.FCR0 != other.FCR0 {
		diffs = append(diffs, fmt.Sprintf("fcr0: %#x != %#x", s.FCR0, other.FCR0))
	}
	if s.LLBit != other.LLBit {
		diffs = append(diffs, fmt.Sprintf("llbit: %v != %v", s.LLBit, other.LLBit))
	}
	for i := range s.CP0 {
		if s.CP0[i] != other.CP0[i] {
			diffs = append(diffs, fmt.Sprintf("cp0[%d]: %#x != %#x", i, s.CP0[i], other.CP0[i]))
		}
	}
	return diffs
}

// Equal reports whether the two snapshots match on every field.
func (s *CPUSnapshot) Equal(other *CPUSnapshot) bool {
	return len(s.Diff(other)) == 0
}
