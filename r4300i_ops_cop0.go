// r4300i_ops_cop0.go - COP0 register moves, TLB maintenance ops, and ERET

package main

// execCop0 implements MFC0/MTC0, the four TLB maintenance instructions, and
// ERET (§4.4).
func (c *CPU) execCop0(handlerID int, word uint32) {
	rt, rd := fRT(word), fRD(word)

	switch handlerID {
	case hMFC0:
		c.SetGPR(rt, uint64(int64(int32(c.cp0.Get(rd)))))
	case hMTC0:
		c.cp0.Set(rd, c.GetGPR(rt))
		if rd == cp0EntryHi {
			c.asid = uint8(c.cp0.EntryHi())
		}

	case hTLBR:
		idx := uint(c.cp0.Get(cp0Index)) & 31
		e := c.tlb.Read(idx)
		c.cp0.Set(cp0PageMask, e.PageMask)
		c.cp0.SetEntryHi(e.VPN2 | uint64(e.ASID))
		c.cp0.Set(cp0EntryLo0, entryLoPack(e.PFN0, e.V0, e.D0, e.G, e.C0))
		c.cp0.Set(cp0EntryLo1, entryLoPack(e.PFN1, e.V1, e.D1, e.G, e.C1))

	case hTLBWI, hTLBWR:
		idx := uint(c.cp0.Get(cp0Index)) & 31
		if handlerID == hTLBWR {
			idx = uint(c.cp0.Get(cp0Random)) & 31
		}
		c.tlb.WriteIndexed(idx, c.entryFromCP0())

	case hTLBP:
		entryHi := c.cp0.EntryHi()
		vpn2 := (entryHi >> 13) << 13
		idx := c.tlb.ProbeForTLBP(vpn2, c.asid)
		if idx < 0 {
			c.cp0.Set(cp0Index, 1<<31)
		} else {
			c.cp0.Set(cp0Index, uint64(idx))
		}

	case hERET:
		c.eret()
	}
}

// entryFromCP0 builds a TLBEntry from the current EntryHi/EntryLo0/
// EntryLo1/PageMask CP0 register images, as TLBWI/TLBWR require.
func (c *CPU) entryFromCP0() TLBEntry {
	entryHi := c.cp0.EntryHi()
	pageMask := c.cp0.Get(cp0PageMask)
	lo0 := c.cp0.Get(cp0EntryLo0)
	lo1 := c.cp0.Get(cp0EntryLo1)

	pfn0, v0, d0, g0, c0 := entryLoUnpack(lo0)
	pfn1, v1, d1, g1, c1 := entryLoUnpack(lo1)

	return TLBEntry{
		VPN2:     (entryHi >> 13) << 13,
		ASID:     uint8(entryHi),
		G:        g0 && g1,
		PageMask: pageMask,
		PFN0:     pfn0, V0: v0, D0: d0, C0: c0,
		PFN1: pfn1, V1: v1, D1: d1, C1: c1,
	}
}

func entryLoPack(pfn uint64, v, d, g bool, c uint8) uint64 {
	var r uint64
	r |= pfn << 6
	r |= uint64(c&7) << 3
	if d {
		r |= 1 << 2
	}
	if v {
		r |= 1 << 1
	}
	if g {
		r |= 1
	}
	return r
}

func entryLoUnpack(v uint64) (pfn uint64, valid, dirty, global bool, cache uint8) {
	pfn = v >> 6
	cache = uint8((v >> 3) & 7)
	dirty = v&(1<<2) != 0
	valid = v&(1<<1) != 0
	global = v&1 != 0
	return
}
