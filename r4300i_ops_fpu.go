// r4300i_ops_fpu.go - CP1 (FPU) arithmetic, conversion and compare semantics

package main

import "math"

// execFPU implements the COP1 arithmetic/convert/compare family. fmt (the
// word's rs field) selects the operand width for everything except the
// *convert-from* ops, which read it directly off the word too.
func (c *CPU) execFPU(handlerID int, word uint32) {
	fmt := fRS(word)
	fs, ft, fd := fFmtFS(word), fFmtFT(word), fFmtFD(word)

	isDouble := fmt == cop1rsD

	switch handlerID {
	case hFPUADD, hFPUSUB, hFPUMUL, hFPUDIV:
		if isDouble {
			a, b := c.fpD(fs), c.fpD(ft)
			var r float64
			switch handlerID {
			case hFPUADD:
				r = a + b
			case hFPUSUB:
				r = a - b
			case hFPUMUL:
				r = a * b
			case hFPUDIV:
				r = a / b
			}
			c.setFpD(fd, r)
		} else {
			a, b := c.fpS(fs), c.fpS(ft)
			var r float32
			switch handlerID {
			case hFPUADD:
				r = a + b
			case hFPUSUB:
				r = a - b
			case hFPUMUL:
				r = a * b
			case hFPUDIV:
				r = a / b
			}
			c.setFpS(fd, r)
		}

	case hFPUSQRT:
		if isDouble {
			c.setFpD(fd, math.Sqrt(c.fpD(fs)))
		} else {
			c.setFpS(fd, float32(math.Sqrt(float64(c.fpS(fs)))))
		}
	case hFPUABS:
		if isDouble {
			c.setFpD(fd, math.Abs(c.fpD(fs)))
		} else {
			c.setFpS(fd, float32(math.Abs(float64(c.fpS(fs)))))
		}
	case hFPUMOV:
		if isDouble {
			c.SetFPR64(fd, c.GetFPR64(fs))
		} else {
			c.SetFPR32(fd, c.GetFPR32(fs))
		}
	case hFPUNEG:
		if isDouble {
			c.setFpD(fd, -c.fpD(fs))
		} else {
			c.setFpS(fd, -c.fpS(fs))
		}

	case hFPUROUNDL, hFPUTRUNCL, hFPUCEILL, hFPUFLOORL:
		c.setFpL(fd, int64(c.roundTo(handlerID, c.srcFloat(isDouble, fs))))
	case hFPUROUNDW, hFPUTRUNCW, hFPUCEILW, hFPUFLOORW:
		c.setFpW(fd, int32(c.roundTo(handlerID, c.srcFloat(isDouble, fs))))

	case hFPUCVTS:
		switch fmt {
		case cop1rsD:
			c.setFpS(fd, float32(c.fpD(fs)))
		case cop1rsW:
			c.setFpS(fd, float32(c.fpW(fs)))
		case cop1rsL:
			c.setFpS(fd, float32(c.fpL(fs)))
		}
	case hFPUCVTD:
		switch fmt {
		case cop1rsS:
			c.setFpD(fd, float64(c.fpS(fs)))
		case cop1rsW:
			c.setFpD(fd, float64(c.fpW(fs)))
		case cop1rsL:
			c.setFpD(fd, float64(c.fpL(fs)))
		}
	case hFPUCVTW:
		// truncation toward zero regardless of fcr31 rounding mode (§4.2).
		switch fmt {
		case cop1rsS:
			c.setFpW(fd, int32(c.fpS(fs)))
		case cop1rsD:
			c.setFpW(fd, int32(c.fpD(fs)))
		}
	case hFPUCVTL:
		switch fmt {
		case cop1rsS:
			c.setFpL(fd, int64(c.fpS(fs)))
		case cop1rsD:
			c.setFpL(fd, int64(c.fpD(fs)))
		}

	case hMFC1:
		rt := fRT(word)
		c.SetGPR(rt, uint64(int64(int32(c.GetFPR32(fs)))))
	case hDMFC1:
		rt := fRT(word)
		c.SetGPR(rt, c.GetFPR64(fs))
	case hMTC1:
		rt := fRT(word)
		c.SetFPR32(fs, uint32(c.GetGPR(rt)))
	case hDMTC1:
		rt := fRT(word)
		c.SetFPR64(fs, c.GetGPR(rt))
	case hCFC1:
		// TODO: CFC1/CTC1 on FCR31 may need to raise exceptions under
		// specific enable/cause combinations; left unimplemented per the
		// open question this core carries forward unresolved.
		rt := fRT(word)
		if fs == 31 {
			c.SetGPR(rt, uint64(int64(int32(c.fcr31))))
		} else {
			c.SetGPR(rt, uint64(int64(int32(c.fcr0))))
		}
	case hCTC1:
		rt := fRT(word)
		if fs == 31 {
			c.fcr31 = uint32(c.GetGPR(rt))
		}

	case hFPUCOMPARE:
		cond := word & 0xF
		var lt, eq, unordered bool
		if isDouble {
			a, b := c.fpD(fs), c.fpD(ft)
			unordered = math.IsNaN(a) || math.IsNaN(b)
			if !unordered {
				lt, eq = a < b, a == b
			}
		} else {
			a, b := c.fpS(fs), c.fpS(ft)
			unordered = float32IsNaN(a) || float32IsNaN(b)
			if !unordered {
				lt, eq = a < b, a == b
			}
		}
		result := evalFpCondition(cond, unordered, lt, eq)
		c.FcrCompareSet(result)
	}
}

func float32IsNaN(f float32) bool { return f != f }

// evalFpCondition implements the standard MIPS C.cond.fmt truth table: bit 3
// is the "unordered" escape, bits 2/1 select less-than/equal.
func evalFpCondition(cond uint32, unordered, lt, eq bool) bool {
	if cond&0x8 != 0 && unordered {
		return true
	}
	if unordered {
		return false
	}
	wantLT := cond&0x4 != 0
	wantEQ := cond&0x2 != 0
	return (wantLT && lt) || (wantEQ && eq)
}

func (c *CPU) roundTo(handlerID int, f float64) float64 {
	switch handlerID {
	case hFPUROUNDL, hFPUROUNDW:
		return math.RoundToEven(f)
	case hFPUTRUNCL, hFPUTRUNCW:
		return math.Trunc(f)
	case hFPUCEILL, hFPUCEILW:
		return math.Ceil(f)
	case hFPUFLOORL, hFPUFLOORW:
		return math.Floor(f)
	}
	return f
}

func (c *CPU) srcFloat(isDouble bool, fs uint) float64 {
	if isDouble {
		return c.fpD(fs)
	}
	return float64(c.fpS(fs))
}

func (c *CPU) fpS(i uint) float32      { return math.Float32frombits(c.GetFPR32(i)) }
func (c *CPU) setFpS(i uint, v float32) { c.SetFPR32(i, math.Float32bits(v)) }
func (c *CPU) fpD(i uint) float64      { return math.Float64frombits(c.GetFPR64(i)) }
func (c *CPU) setFpD(i uint, v float64) { c.SetFPR64(i, math.Float64bits(v)) }
func (c *CPU) fpW(i uint) int32        { return int32(c.GetFPR32(i)) }
func (c *CPU) setFpW(i uint, v int32)  { c.SetFPR32(i, uint32(v)) }
func (c *CPU) fpL(i uint) int64        { return int64(c.GetFPR64(i)) }
func (c *CPU) setFpL(i uint, v int64)  { c.SetFPR64(i, uint64(v)) }
