// r4300i_ops_branch.go - branch, jump and FPU-conditional-branch semantics

package main

// execBranch implements §4.2's branch semantics. Regular branches always
// schedule their delay slot to run; only the *Likely variants conditionally
// nullify it. Taken branches never touch next_pc directly — they arm
// pendingBranch/pendingTarget so the delay slot step (which Step's preamble
// already routed to pc+4) commits the real target afterward.
func (c *CPU) execBranch(handlerID int, word uint32) {
	rs, rt := fRS(word), fRT(word)
	immTarget := c.pc + 4 + uint64(fImmSigned(word)<<2)

	switch handlerID {
	case hJ:
		c.jumpTo(jTarget(c.pc, word))
	case hJAL:
		c.SetGPR(31, c.pc+8)
		c.jumpTo(jTarget(c.pc, word))
	case hJR:
		c.jumpTo(c.GetGPR(rs))
	case hJALR:
		rd := fRD(word)
		target := c.GetGPR(rs)
		c.SetGPR(rd, c.pc+8)
		c.jumpTo(target)

	case hBEQ:
		c.branchIf(c.GetGPR(rs) == c.GetGPR(rt), immTarget)
	case hBNE:
		c.branchIf(c.GetGPR(rs) != c.GetGPR(rt), immTarget)
	case hBLEZ:
		c.branchIf(int64(c.GetGPR(rs)) <= 0, immTarget)
	case hBGTZ:
		c.branchIf(int64(c.GetGPR(rs)) > 0, immTarget)
	case hBLTZ:
		c.branchIf(int64(c.GetGPR(rs)) < 0, immTarget)
	case hBGEZ:
		c.branchIf(int64(c.GetGPR(rs)) >= 0, immTarget)
	case hBLTZAL:
		c.SetGPR(31, c.pc+8)
		c.branchIf(int64(c.GetGPR(rs)) < 0, immTarget)
	case hBGEZAL:
		c.SetGPR(31, c.pc+8)
		c.branchIf(int64(c.GetGPR(rs)) >= 0, immTarget)

	case hBEQL:
		c.branchLikelyIf(c.GetGPR(rs) == c.GetGPR(rt), immTarget)
	case hBNEL:
		c.branchLikelyIf(c.GetGPR(rs) != c.GetGPR(rt), immTarget)
	case hBLEZL:
		c.branchLikelyIf(int64(c.GetGPR(rs)) <= 0, immTarget)
	case hBGTZL:
		c.branchLikelyIf(int64(c.GetGPR(rs)) > 0, immTarget)
	case hBLTZL:
		c.branchLikelyIf(int64(c.GetGPR(rs)) < 0, immTarget)
	case hBGEZL:
		c.branchLikelyIf(int64(c.GetGPR(rs)) >= 0, immTarget)
	case hBLTZALL:
		c.SetGPR(31, c.pc+8)
		c.branchLikelyIf(int64(c.GetGPR(rs)) < 0, immTarget)
	case hBGEZALL:
		c.SetGPR(31, c.pc+8)
		c.branchLikelyIf(int64(c.GetGPR(rs)) >= 0, immTarget)

	case hBC1F:
		c.branchIf(!c.FcrCompare(), immTarget)
	case hBC1T:
		c.branchIf(c.FcrCompare(), immTarget)
	case hBC1FL:
		c.branchLikelyIf(!c.FcrCompare(), immTarget)
	case hBC1TL:
		c.branchLikelyIf(c.FcrCompare(), immTarget)
	}
}

// jTarget computes the J/JAL absolute target: the 26-bit field shifted left
// 2, combined with the upper 4 bits of the delay slot's own PC (§4.2).
func jTarget(branchPC uint64, word uint32) uint64 {
	delaySlotPC := branchPC + 4
	return (delaySlotPC & 0xFFFFFFFFF0000000) | (uint64(fTarget(word)) << 2)
}

// jumpTo arms an always-taken jump: the delay slot executes next, and its
// own next_pc is overridden to target once committed. The branch flag
// identifies the instruction currently executing as a delay slot
// (pendingBranch has already been consumed by advancePC at this point), so
// it is what detects the undefined branch-in-delay-slot case.
func (c *CPU) jumpTo(target uint64) {
	if c.branch {
		c.fatalf(0, "branch in another branch's delay slot")
	}
	c.pendingBranch = true
	c.pendingTarget = target
}

// branchIf implements a regular conditional branch: the delay slot always
// executes; only where control ends up afterward depends on taken.
func (c *CPU) branchIf(taken bool, target uint64) {
	if !taken {
		return // delay slot still executes, falling straight through
	}
	c.jumpTo(target)
}

// branchLikelyIf implements the *L nullification rule: a not-taken likely
// branch skips the delay slot outright rather than letting it execute.
func (c *CPU) branchLikelyIf(taken bool, target uint64) {
	if taken {
		c.jumpTo(target)
		return
	}
	if c.branch {
		c.fatalf(0, "branch in another branch's delay slot")
	}
	c.nextPC = c.pc + 8
}
