// r4300i_ops_mem.go - load/store semantics including the unaligned
// LWL/LWR/LDL/LDR/SWL/SWR/SDL/SDR pseudo-ops and LL/SC. The shift/mask
// pairs are ported directly from mips_lwl/mips_lwr/mips_swl/mips_swr/
// mips_ldl/mips_ldr/mips_sdl/mips_sdr in the original_source/ reference
// (src/cpu/mips_instructions.c): the "L" ops shift by 8*((addr^0)&(w-1)),
// the "R" ops by the complementary 8*((addr^(w-1))&(w-1)) - the same as
// 8*((w-1)-(addr&(w-1))) for these 2/3-bit offsets. A correctly paired
// unaligned access is L at address A with R at A+(w-1), not both at A;
// see r4300i_ops_mem_test.go.

package main

func mask32(shift uint) uint32 { return (uint32(1) << shift) - 1 }
func mask64(shift uint) uint64 { return (uint64(1) << shift) - 1 }

// rmask32/rmask64 are the complementary right-shifted masks the "R"-suffixed
// unaligned ops need (mips_lwr/mips_swl's `mask` in mips_instructions.c),
// the mirror image of mask32/mask64's left-shifted low mask.
func rmask32(shift uint) uint32 { return ^uint32(0) >> shift }
func rmask64(shift uint) uint64 { return ^uint64(0) >> shift }

// execMem implements every integer load/store (§4.2). translate() has
// already raised any address-error/TLB exception and returns ok=false in
// that case, in which case the op must do nothing further.
func (c *CPU) execMem(handlerID int, word uint32) {
	rs, rt := fRS(word), fRT(word)
	addr := c.GetGPR(rs) + uint64(fImmSigned(word))

	switch handlerID {
	case hLB:
		phys, ok := c.translate(addr, 1, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, uint64(int64(int8(c.bus.ReadByte(phys)))))
	case hLBU:
		phys, ok := c.translate(addr, 1, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, uint64(c.bus.ReadByte(phys)))
	case hLH:
		phys, ok := c.translate(addr, 2, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, uint64(int64(int16(c.bus.ReadHalf(phys)))))
	case hLHU:
		phys, ok := c.translate(addr, 2, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, uint64(c.bus.ReadHalf(phys)))
	case hLW:
		phys, ok := c.translate(addr, 4, intentLoad)
		if !ok {
			return
		}
		c.SetGPR32(rt, c.bus.ReadWord(phys))
	case hLWU:
		phys, ok := c.translate(addr, 4, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, uint64(c.bus.ReadWord(phys)))
	case hLD:
		phys, ok := c.translate(addr, 8, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, c.bus.ReadDword(phys))

	case hSB:
		phys, ok := c.translate(addr, 1, intentStore)
		if !ok {
			return
		}
		c.bus.WriteByte(phys, uint8(c.GetGPR(rt)))
		c.Invalidate(phys)
		c.llbit = false
	case hSH:
		phys, ok := c.translate(addr, 2, intentStore)
		if !ok {
			return
		}
		c.bus.WriteHalf(phys, uint16(c.GetGPR(rt)))
		c.Invalidate(phys)
		c.llbit = false
	case hSW:
		phys, ok := c.translate(addr, 4, intentStore)
		if !ok {
			return
		}
		c.bus.WriteWord(phys, uint32(c.GetGPR(rt)))
		c.Invalidate(phys)
		c.llbit = false
	case hSD:
		phys, ok := c.translate(addr, 8, intentStore)
		if !ok {
			return
		}
		c.bus.WriteDword(phys, c.GetGPR(rt))
		c.Invalidate(phys)
		c.llbit = false

	case hLWL:
		c.doLWL(rt, addr)
	case hLWR:
		c.doLWR(rt, addr)
	case hSWL:
		c.doSWL(rt, addr)
	case hSWR:
		c.doSWR(rt, addr)
	case hLDL:
		c.doLDL(rt, addr)
	case hLDR:
		c.doLDR(rt, addr)
	case hSDL:
		c.doSDL(rt, addr)
	case hSDR:
		c.doSDR(rt, addr)

	case hLL:
		phys, ok := c.translate(addr, 4, intentLoad)
		if !ok {
			return
		}
		c.SetGPR32(rt, c.bus.ReadWord(phys))
		c.llbit = true
		c.cp0.Set(cp0LLAddr, uint64(phys>>4))
	case hLLD:
		phys, ok := c.translate(addr, 8, intentLoad)
		if !ok {
			return
		}
		c.SetGPR(rt, c.bus.ReadDword(phys))
		c.llbit = true
		c.cp0.Set(cp0LLAddr, uint64(phys>>4))
	case hSC:
		phys, ok := c.translate(addr, 4, intentStore)
		if !ok {
			return
		}
		if c.llbit {
			c.bus.WriteWord(phys, uint32(c.GetGPR(rt)))
			c.Invalidate(phys)
			c.SetGPR(rt, 1)
		} else {
			c.SetGPR(rt, 0)
		}
		c.llbit = false
	case hSCD:
		phys, ok := c.translate(addr, 8, intentStore)
		if !ok {
			return
		}
		if c.llbit {
			c.bus.WriteDword(phys, c.GetGPR(rt))
			c.Invalidate(phys)
			c.SetGPR(rt, 1)
		} else {
			c.SetGPR(rt, 0)
		}
		c.llbit = false
	}
}

func (c *CPU) doLWL(rt uint, addr uint64) {
	aligned := addr &^ 3
	phys, ok := c.translate(aligned, 4, intentLoad)
	if !ok {
		return
	}
	off := uint(addr & 3)
	shift := off * 8
	w := c.bus.ReadWord(phys)
	m := mask32(shift)
	merged := (w << shift) | (uint32(c.GetGPR(rt)) & m)
	c.SetGPR32(rt, merged)
}

func (c *CPU) doLWR(rt uint, addr uint64) {
	aligned := addr &^ 3
	phys, ok := c.translate(aligned, 4, intentLoad)
	if !ok {
		return
	}
	off := uint(addr & 3)
	shift := (3 - off) * 8
	w := c.bus.ReadWord(phys)
	dmask := rmask32(shift)
	merged := (uint32(c.GetGPR(rt)) &^ dmask) | (w >> shift)
	c.SetGPR32(rt, merged)
}

func (c *CPU) doSWL(rt uint, addr uint64) {
	aligned := addr &^ 3
	phys, ok := c.translate(aligned, 4, intentStore)
	if !ok {
		return
	}
	off := uint(addr & 3)
	shift := off * 8
	dmask := rmask32(shift)
	old := c.bus.ReadWord(phys)
	reg := uint32(c.GetGPR(rt))
	newWord := (old &^ dmask) | (reg >> shift)
	c.bus.WriteWord(phys, newWord)
	c.Invalidate(phys)
	c.llbit = false
}

func (c *CPU) doSWR(rt uint, addr uint64) {
	aligned := addr &^ 3
	phys, ok := c.translate(aligned, 4, intentStore)
	if !ok {
		return
	}
	off := uint(addr & 3)
	shift := (3 - off) * 8
	m := mask32(shift)
	old := c.bus.ReadWord(phys)
	reg := uint32(c.GetGPR(rt))
	newWord := (old & m) | (reg << shift)
	c.bus.WriteWord(phys, newWord)
	c.Invalidate(phys)
	c.llbit = false
}

func (c *CPU) doLDL(rt uint, addr uint64) {
	aligned := addr &^ 7
	phys, ok := c.translate(aligned, 8, intentLoad)
	if !ok {
		return
	}
	off := uint(addr & 7)
	shift := off * 8
	d := c.bus.ReadDword(phys)
	m := mask64(shift)
	merged := (d << shift) | (c.GetGPR(rt) & m)
	c.SetGPR(rt, merged)
}

func (c *CPU) doLDR(rt uint, addr uint64) {
	aligned := addr &^ 7
	phys, ok := c.translate(aligned, 8, intentLoad)
	if !ok {
		return
	}
	off := uint(addr & 7)
	shift := (7 - off) * 8
	d := c.bus.ReadDword(phys)
	dmask := rmask64(shift)
	merged := (c.GetGPR(rt) &^ dmask) | (d >> shift)
	c.SetGPR(rt, merged)
}

func (c *CPU) doSDL(rt uint, addr uint64) {
	aligned := addr &^ 7
	phys, ok := c.translate(aligned, 8, intentStore)
	if !ok {
		return
	}
	off := uint(addr & 7)
	shift := off * 8
	dmask := rmask64(shift)
	old := c.bus.ReadDword(phys)
	reg := c.GetGPR(rt)
	newDword := (old &^ dmask) | (reg >> shift)
	c.bus.WriteDword(phys, newDword)
	c.Invalidate(phys)
	c.llbit = false
}

func (c *CPU) doSDR(rt uint, addr uint64) {
	aligned := addr &^ 7
	phys, ok := c.translate(aligned, 8, intentStore)
	if !ok {
		return
	}
	off := uint(addr & 7)
	shift := (7 - off) * 8
	m := mask64(shift)
	old := c.bus.ReadDword(phys)
	reg := c.GetGPR(rt)
	newDword := (old & m) | (reg << shift)
	c.bus.WriteDword(phys, newDword)
	c.Invalidate(phys)
	c.llbit = false
}

// execFPUMem handles the four coprocessor-1 memory ops.
func (c *CPU) execFPUMem(handlerID int, word uint32) {
	rs, ft := fRS(word), fRT(word)
	addr := c.GetGPR(rs) + uint64(fImmSigned(word))

	switch handlerID {
	case hLWC1:
		phys, ok := c.translate(addr, 4, intentLoad)
		if !ok {
			return
		}
		c.SetFPR32(ft, c.bus.ReadWord(phys))
	case hSWC1:
		phys, ok := c.translate(addr, 4, intentStore)
		if !ok {
			return
		}
		c.bus.WriteWord(phys, c.GetFPR32(ft))
		c.Invalidate(phys)
		c.llbit = false
	case hLDC1:
		phys, ok := c.translate(addr, 8, intentLoad)
		if !ok {
			return
		}
		c.SetFPR64(ft, c.bus.ReadDword(phys))
	case hSDC1:
		phys, ok := c.translate(addr, 8, intentStore)
		if !ok {
			return
		}
		c.bus.WriteDword(phys, c.GetFPR64(ft))
		c.Invalidate(phys)
		c.llbit = false
	}
}
