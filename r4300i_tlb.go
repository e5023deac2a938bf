// r4300i_tlb.go - 32-entry TLB and virtual-to-physical address translator

package main

// TLBEntry is one of the 32 joint TLB entries: a shared VPN2/ASID/G/PageMask
// key covering two 4 KiB-aligned (or larger) physical pages, selected by the
// low bit of the virtual page number. VPN2 is held in EntryHi form (the
// virtual address with the page-pair offset bits cleared).
type TLBEntry struct {
	VPN2     uint64
	ASID     uint8
	G        bool
	PageMask uint64

	PFN0, PFN1     uint64
	V0, V1         bool
	D0, D1         bool
	C0, C1         uint8
}

// TLB is the 32-entry joint translation lookaside buffer (C2). Entries
// never written since reset are excluded from matching: a zeroed entry
// would otherwise claim the low 8 KiB of kuseg for ASID 0 and turn refill
// misses into invalid misses, which use the wrong vector.
type TLB struct {
	entries [32]TLBEntry
	written [32]bool
}

// tlbMissKind distinguishes the three fault shapes the translator can
// report back to the caller for exception-code selection (§4.3).
type tlbMissKind uint8

const (
	tlbMissRefill tlbMissKind = iota
	tlbMissInvalid
	tlbMissModified
)

// TlbError carries enough detail for the caller to populate BadVAddr,
// EntryHi, and pick the TLBL/TLBS/MOD exception code.
type TlbError struct {
	Kind tlbMissKind
}

func (e *TlbError) Error() string {
	switch e.Kind {
	case tlbMissRefill:
		return "tlb refill"
	case tlbMissInvalid:
		return "tlb invalid"
	default:
		return "tlb modified"
	}
}

// Probe searches all 32 entries for one whose VPN2 (masked by its own
// PageMask) and ASID (or global bit) match the given virtual address.
// Returns the entry index, or -1 on a clean miss. VPN2 is held in EntryHi
// form: the virtual address with the page-pair offset bits cleared.
func (t *TLB) Probe(vaddr uint64, asid uint8) int {
	for i := range t.entries {
		if !t.written[i] {
			continue
		}
		e := &t.entries[i]
		compareMask := ^(e.PageMask | 0x1FFF)
		if vaddr&compareMask != e.VPN2&compareMask {
			continue
		}
		if !e.G && e.ASID != asid {
			continue
		}
		return i
	}
	return -1
}

// Resolve translates a virtual address per §4.3: kseg0/kseg1 are fixed
// mappings that skip the TLB; everything else (kuseg/kseg2/kseg3/xkphys in
// 32-bit addressing mode, simplified here to the classic 32-bit map) probes
// the TLB.
func (t *TLB) Resolve(vaddr uint64, intent accessIntent, asid uint8) (uint64, *TlbError) {
	v32 := uint32(vaddr)

	switch {
	case v32 >= 0x80000000 && v32 < 0xA0000000:
		// kseg0: cached, fixed offset -0x80000000, no TLB.
		return uint64(v32 - 0x80000000), nil
	case v32 >= 0xA0000000 && v32 < 0xC0000000:
		// kseg1: uncached, fixed offset -0xA0000000, no TLB.
		return uint64(v32 - 0xA0000000), nil
	}

	idx := t.Probe(vaddr, asid)
	if idx < 0 {
		return 0, &TlbError{Kind: tlbMissRefill}
	}
	e := &t.entries[idx]

	// The per-half offset covers the bits below the PFN-selection bit,
	// which in turn is the lowest bit PageMask leaves undistinguished
	// between the two halves of the pair.
	offsetMask := (e.PageMask >> 1) | 0xFFF
	selectOdd := vaddr&(offsetMask+1) != 0

	var valid, dirty bool
	var pfn uint64
	if selectOdd {
		valid, dirty, pfn = e.V1, e.D1, e.PFN1
	} else {
		valid, dirty, pfn = e.V0, e.D0, e.PFN0
	}

	if !valid {
		return 0, &TlbError{Kind: tlbMissInvalid}
	}
	if intent == intentStore && !dirty {
		return 0, &TlbError{Kind: tlbMissModified}
	}

	physical := (pfn << 12 &^ offsetMask) | (vaddr & offsetMask)
	return physical, nil
}

// WriteIndexed installs an entry at a fixed index (TLBWI) or the Random
// index (TLBWR); both funnel through here.
func (t *TLB) WriteIndexed(idx uint, e TLBEntry) {
	t.entries[idx&31] = e
	t.written[idx&31] = true
}

// Read returns the entry at idx (TLBR).
func (t *TLB) Read(idx uint) TLBEntry {
	return t.entries[idx&31]
}

// ProbeForTLBP implements TLBP: returns the matching index or -1. Unlike
// Probe, it compares VPN2 for exact equality without applying PageMask; the
// ASID check is the same (global entries match any ASID).
func (t *TLB) ProbeForTLBP(entryHiVPN2 uint64, asid uint8) int {
	for i := range t.entries {
		if !t.written[i] {
			continue
		}
		e := &t.entries[i]
		if e.VPN2 != entryHiVPN2 {
			continue
		}
		if !e.G && e.ASID != asid {
			continue
		}
		return i
	}
	return -1
}
