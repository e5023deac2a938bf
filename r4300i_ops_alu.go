// r4300i_ops_alu.go - integer ALU, shift, multiply/divide, trap semantics,
// and the top-level instruction dispatcher

package main

// execute dispatches a decoded instruction to its semantics function. Every
// op here is written so the dynarec compiler can call the identical
// function by HandlerID (§9 "coupled interpreter and JIT semantics") —
// execute is called both by the interpreter's Step and by execPrecoded
// (r4300i_cpu.go), which CompiledBlock.dispatch uses for compiled blocks.
func (c *CPU) execute(d Decoded, word uint32) {
	opExec(c, d.HandlerID, word)
}

// opExec is the dense dispatch table body shared verbatim by the
// interpreter's execute and the dynarec's emitted block closures.
func opExec(c *CPU, handlerID int, word uint32) {
	switch handlerID {
	case hNOP, hSYNC:
		// no-op

	case hSLL:
		c.SetGPR32(fRD(word), uint32(c.GetGPR(fRT(word)))<<fSA(word))
	case hSRL:
		c.SetGPR32(fRD(word), uint32(c.GetGPR(fRT(word)))>>fSA(word))
	case hSRA:
		c.SetGPR32(fRD(word), uint32(int32(uint32(c.GetGPR(fRT(word))))>>fSA(word)))
	case hSLLV:
		sh := uint(c.GetGPR(fRS(word))) & 0x1F
		c.SetGPR32(fRD(word), uint32(c.GetGPR(fRT(word)))<<sh)
	case hSRLV:
		sh := uint(c.GetGPR(fRS(word))) & 0x1F
		c.SetGPR32(fRD(word), uint32(c.GetGPR(fRT(word)))>>sh)
	case hSRAV:
		sh := uint(c.GetGPR(fRS(word))) & 0x1F
		c.SetGPR32(fRD(word), uint32(int32(uint32(c.GetGPR(fRT(word))))>>sh))
	case hDSLLV:
		sh := uint(c.GetGPR(fRS(word))) & 0x3F
		c.SetGPR(fRD(word), c.GetGPR(fRT(word))<<sh)
	case hDSRLV:
		sh := uint(c.GetGPR(fRS(word))) & 0x3F
		c.SetGPR(fRD(word), c.GetGPR(fRT(word))>>sh)
	case hDSRAV:
		sh := uint(c.GetGPR(fRS(word))) & 0x3F
		c.SetGPR(fRD(word), uint64(int64(c.GetGPR(fRT(word)))>>sh))
	case hDSLL:
		c.SetGPR(fRD(word), c.GetGPR(fRT(word))<<fSA(word))
	case hDSRL:
		c.SetGPR(fRD(word), c.GetGPR(fRT(word))>>fSA(word))
	case hDSRA:
		c.SetGPR(fRD(word), uint64(int64(c.GetGPR(fRT(word)))>>fSA(word)))
	case hDSLL32:
		c.SetGPR(fRD(word), c.GetGPR(fRT(word))<<(fSA(word)+32))
	case hDSRL32:
		c.SetGPR(fRD(word), c.GetGPR(fRT(word))>>(fSA(word)+32))
	case hDSRA32:
		c.SetGPR(fRD(word), uint64(int64(c.GetGPR(fRT(word)))>>(fSA(word)+32)))

	case hMFHI:
		c.SetGPR(fRD(word), c.hi)
	case hMTHI:
		c.hi = c.GetGPR(fRS(word))
	case hMFLO:
		c.SetGPR(fRD(word), c.lo)
	case hMTLO:
		c.lo = c.GetGPR(fRS(word))

	case hMULT:
		a := int64(int32(uint32(c.GetGPR(fRS(word)))))
		b := int64(int32(uint32(c.GetGPR(fRT(word)))))
		p := a * b
		c.lo = uint64(int64(int32(uint32(p))))
		c.hi = uint64(int64(int32(uint32(p >> 32))))
	case hMULTU:
		a := uint64(uint32(c.GetGPR(fRS(word))))
		b := uint64(uint32(c.GetGPR(fRT(word))))
		p := a * b
		c.lo = uint64(int64(int32(uint32(p))))
		c.hi = uint64(int64(int32(uint32(p >> 32))))
	case hDMULT:
		hi, lo := mul128Signed(int64(c.GetGPR(fRS(word))), int64(c.GetGPR(fRT(word))))
		c.hi, c.lo = hi, lo
	case hDMULTU:
		hi, lo := mul128Unsigned(c.GetGPR(fRS(word)), c.GetGPR(fRT(word)))
		c.hi, c.lo = hi, lo

	case hDIV:
		a := int32(uint32(c.GetGPR(fRS(word))))
		b := int32(uint32(c.GetGPR(fRT(word))))
		if b == 0 {
			c.hi = uint64(int64(a))
			if a >= 0 {
				c.lo = ^uint64(0) // -1
			} else {
				c.lo = 1
			}
		} else if a == -2147483648 && b == -1 {
			c.lo = uint64(int64(a))
			c.hi = 0
		} else {
			c.lo = uint64(int64(a / b))
			c.hi = uint64(int64(a % b))
		}
	case hDIVU:
		a := uint32(c.GetGPR(fRS(word)))
		b := uint32(c.GetGPR(fRT(word)))
		if b == 0 {
			c.hi = uint64(int64(int32(a)))
			c.lo = ^uint64(0)
		} else {
			c.lo = uint64(int64(int32(a / b)))
			c.hi = uint64(int64(int32(a % b)))
		}
	case hDDIV:
		a := int64(c.GetGPR(fRS(word)))
		b := int64(c.GetGPR(fRT(word)))
		if b == 0 {
			c.hi = uint64(a)
			if a >= 0 {
				c.lo = ^uint64(0)
			} else {
				c.lo = 1
			}
		} else if a == -9223372036854775808 && b == -1 {
			c.lo = uint64(a)
			c.hi = 0
		} else {
			c.lo = uint64(a / b)
			c.hi = uint64(a % b)
		}
	case hDDIVU:
		a := c.GetGPR(fRS(word))
		b := c.GetGPR(fRT(word))
		if b == 0 {
			c.hi = a
			c.lo = ^uint64(0)
		} else {
			c.lo = a / b
			c.hi = a % b
		}

	case hADD:
		a := uint32(c.GetGPR(fRS(word)))
		b := uint32(c.GetGPR(fRT(word)))
		r := a + b
		if overflowAdd32(a, b, r) {
			c.raiseException(excOV, 0, c.branch)
			return
		}
		c.SetGPR32(fRD(word), r)
	case hADDU:
		c.SetGPR32(fRD(word), uint32(c.GetGPR(fRS(word)))+uint32(c.GetGPR(fRT(word))))
	case hSUB:
		a := uint32(c.GetGPR(fRS(word)))
		b := uint32(c.GetGPR(fRT(word)))
		r := a - b
		if overflowSub32(a, b, r) {
			c.raiseException(excOV, 0, c.branch)
			return
		}
		c.SetGPR32(fRD(word), r)
	case hSUBU:
		c.SetGPR32(fRD(word), uint32(c.GetGPR(fRS(word)))-uint32(c.GetGPR(fRT(word))))
	case hDADD:
		a := c.GetGPR(fRS(word))
		b := c.GetGPR(fRT(word))
		r := a + b
		if overflowAdd64(a, b, r) {
			c.raiseException(excOV, 0, c.branch)
			return
		}
		c.SetGPR(fRD(word), r)
	case hDADDU:
		c.SetGPR(fRD(word), c.GetGPR(fRS(word))+c.GetGPR(fRT(word)))
	case hDSUB:
		a := c.GetGPR(fRS(word))
		b := c.GetGPR(fRT(word))
		r := a - b
		if overflowSub64(a, b, r) {
			c.raiseException(excOV, 0, c.branch)
			return
		}
		c.SetGPR(fRD(word), r)
	case hDSUBU:
		c.SetGPR(fRD(word), c.GetGPR(fRS(word))-c.GetGPR(fRT(word)))

	case hAND:
		c.SetGPR(fRD(word), c.GetGPR(fRS(word))&c.GetGPR(fRT(word)))
	case hOR:
		c.SetGPR(fRD(word), c.GetGPR(fRS(word))|c.GetGPR(fRT(word)))
	case hXOR:
		c.SetGPR(fRD(word), c.GetGPR(fRS(word))^c.GetGPR(fRT(word)))
	case hNOR:
		c.SetGPR(fRD(word), ^(c.GetGPR(fRS(word)) | c.GetGPR(fRT(word))))
	case hSLT:
		if int64(c.GetGPR(fRS(word))) < int64(c.GetGPR(fRT(word))) {
			c.SetGPR(fRD(word), 1)
		} else {
			c.SetGPR(fRD(word), 0)
		}
	case hSLTU:
		if c.GetGPR(fRS(word)) < c.GetGPR(fRT(word)) {
			c.SetGPR(fRD(word), 1)
		} else {
			c.SetGPR(fRD(word), 0)
		}

	case hADDI:
		a := uint32(c.GetGPR(fRS(word)))
		imm := uint32(int32(fImmSigned(word)))
		r := a + imm
		if overflowAdd32(a, imm, r) {
			c.raiseException(excOV, 0, c.branch)
			return
		}
		c.SetGPR32(fRT(word), r)
	case hADDIU:
		c.SetGPR32(fRT(word), uint32(c.GetGPR(fRS(word)))+uint32(int32(fImmSigned(word))))
	case hSLTI:
		if int64(c.GetGPR(fRS(word))) < fImmSigned(word) {
			c.SetGPR(fRT(word), 1)
		} else {
			c.SetGPR(fRT(word), 0)
		}
	case hSLTIU:
		if c.GetGPR(fRS(word)) < uint64(fImmSigned(word)) {
			c.SetGPR(fRT(word), 1)
		} else {
			c.SetGPR(fRT(word), 0)
		}
	case hANDI:
		c.SetGPR(fRT(word), c.GetGPR(fRS(word))&uint64(fImm16(word)))
	case hORI:
		c.SetGPR(fRT(word), c.GetGPR(fRS(word))|uint64(fImm16(word)))
	case hXORI:
		c.SetGPR(fRT(word), c.GetGPR(fRS(word))^uint64(fImm16(word)))
	case hLUI:
		c.SetGPR32(fRT(word), uint32(fImm16(word))<<16)
	case hDADDI:
		a := c.GetGPR(fRS(word))
		imm := uint64(fImmSigned(word))
		r := a + imm
		if overflowAdd64(a, imm, r) {
			c.raiseException(excOV, 0, c.branch)
			return
		}
		c.SetGPR(fRT(word), r)
	case hDADDIU:
		c.SetGPR(fRT(word), c.GetGPR(fRS(word))+uint64(fImmSigned(word)))

	case hSYSCALL:
		c.raiseException(excSYS, 0, c.branch)
	case hBREAK:
		c.raiseException(excBP, 0, c.branch)

	case hTGE:
		c.trapIf(int64(c.GetGPR(fRS(word))) >= int64(c.GetGPR(fRT(word))))
	case hTGEU:
		c.trapIf(c.GetGPR(fRS(word)) >= c.GetGPR(fRT(word)))
	case hTLT:
		c.trapIf(int64(c.GetGPR(fRS(word))) < int64(c.GetGPR(fRT(word))))
	case hTLTU:
		c.trapIf(c.GetGPR(fRS(word)) < c.GetGPR(fRT(word)))
	case hTEQ:
		c.trapIf(c.GetGPR(fRS(word)) == c.GetGPR(fRT(word)))
	case hTNE:
		c.trapIf(c.GetGPR(fRS(word)) != c.GetGPR(fRT(word)))
	case hTGEI:
		c.trapIf(int64(c.GetGPR(fRS(word))) >= fImmSigned(word))
	case hTGEIU:
		c.trapIf(c.GetGPR(fRS(word)) >= uint64(fImmSigned(word)))
	case hTLTI:
		c.trapIf(int64(c.GetGPR(fRS(word))) < fImmSigned(word))
	case hTLTIU:
		c.trapIf(c.GetGPR(fRS(word)) < uint64(fImmSigned(word)))
	case hTEQI:
		c.trapIf(c.GetGPR(fRS(word)) == uint64(fImmSigned(word)))
	case hTNEI:
		c.trapIf(c.GetGPR(fRS(word)) != uint64(fImmSigned(word)))

	case hCACHE:
		// cache-maintenance op; no architectural effect modeled (Non-goal:
		// bit-accurate cache timing).

	case hJ, hJAL, hJR, hJALR, hBEQ, hBNE, hBLEZ, hBGTZ, hBLTZ, hBGEZ,
		hBLTZAL, hBGEZAL, hBEQL, hBNEL, hBLEZL, hBGTZL, hBLTZL, hBGEZL,
		hBLTZALL, hBGEZALL, hBC1F, hBC1T, hBC1FL, hBC1TL:
		c.execBranch(handlerID, word)

	case hLB, hLH, hLW, hLBU, hLHU, hLWU, hLD, hLWL, hLWR, hLDL, hLDR,
		hLL, hLLD, hSB, hSH, hSW, hSD, hSWL, hSWR, hSDL, hSDR, hSC, hSCD:
		c.execMem(handlerID, word)

	case hLWC1, hSWC1, hLDC1, hSDC1:
		c.execFPUMem(handlerID, word)

	case hMFC0, hMTC0, hTLBR, hTLBWI, hTLBWR, hTLBP, hERET:
		c.execCop0(handlerID, word)

	case hMFC1, hDMFC1, hCFC1, hMTC1, hDMTC1, hCTC1,
		hFPUADD, hFPUSUB, hFPUMUL, hFPUDIV, hFPUSQRT, hFPUABS, hFPUMOV, hFPUNEG,
		hFPUROUNDL, hFPUTRUNCL, hFPUCEILL, hFPUFLOORL,
		hFPUROUNDW, hFPUTRUNCW, hFPUCEILW, hFPUFLOORW,
		hFPUCVTS, hFPUCVTD, hFPUCVTW, hFPUCVTL, hFPUCOMPARE:
		c.execFPU(handlerID, word)

	case hRESERVED:
		c.raiseException(excRI, 0, c.branch)

	default:
		c.fatalf(word, "unhandled handler id %d", handlerID)
	}
}

func (c *CPU) trapIf(cond bool) {
	if cond {
		c.raiseException(excTR, 0, c.branch)
	}
}

// overflowAdd32/overflowSub32 implement the MSB-based formulas from §4.2
// exactly: (~(a^b) & (a^r)) >> (width-1) for add, ((a^b) & (a^r)) >> (width-1)
// for sub.
func overflowAdd32(a, b, r uint32) bool {
	return (^(a^b)&(a^r))>>31 != 0
}
func overflowSub32(a, b, r uint32) bool {
	return ((a ^ b) & (a ^ r)) >> 31 != 0
}
func overflowAdd64(a, b, r uint64) bool {
	return (^(a^b)&(a^r))>>63 != 0
}
func overflowSub64(a, b, r uint64) bool {
	return ((a ^ b) & (a ^ r)) >> 63 != 0
}

// mul128Signed/mul128Unsigned produce the full 128-bit product for
// DMULT/DMULTU, split across hi:lo.
func mul128Unsigned(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xFFFFFFFF
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	t := aLo * bLo
	w0 := t & mask32
	k := t >> 32

	t = aHi*bLo + k
	w1 := t & mask32
	w2 := t >> 32

	t = aLo*bHi + w1
	k = t >> 32

	lo = (t << 32) | w0
	hi = aHi*bHi + w2 + k
	return hi, lo
}

func mul128Signed(a, b int64) (hi, lo uint64) {
	neg := false
	ua, ub := uint64(a), uint64(b)
	if a < 0 {
		ua = uint64(-a)
		neg = !neg
	}
	if b < 0 {
		ub = uint64(-b)
		neg = !neg
	}
	hi, lo = mul128Unsigned(ua, ub)
	if neg {
		lo = ^lo + 1
		hi = ^hi
		if lo == 0 {
			hi++
		}
	}
	return hi, lo
}
