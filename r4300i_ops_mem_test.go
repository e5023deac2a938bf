package main

import (
	"encoding/binary"
	"testing"
)

func newTestCPUWithBus() (*CPU, *N64Bus) {
	bus := NewN64Bus(64 * 1024)
	return NewCPU(bus, nil), bus
}

func TestMemLoadStoreWordRoundTrip(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.SetGPR(1, 0xFFFFFFFF80000000) // kseg0 base, vaddr->phys 0
	c.SetGPR(2, 0xCAFEBABE)

	sw := word(opSW, 1, 2, 0, 0, 0)
	c.execMem(hSW, sw)

	lw := word(opLW, 1, 3, 0, 0, 0)
	c.execMem(hLW, lw)
	if got := uint32(c.GetGPR(3)); got != 0xCAFEBABE {
		t.Fatalf("LW after SW = %#x, want 0xcafebabe", got)
	}
}

func TestMemLBSignExtends(t *testing.T) {
	c, bus := newTestCPUWithBus()
	bus.WriteByte(0, 0xFF)
	c.SetGPR(1, 0xFFFFFFFF80000000)
	lb := word(opLB, 1, 2, 0, 0, 0)
	c.execMem(hLB, lb)
	if got := int64(c.GetGPR(2)); got != -1 {
		t.Fatalf("LB of 0xff = %d, want -1", got)
	}
}

func TestMemLBUZeroExtends(t *testing.T) {
	c, bus := newTestCPUWithBus()
	bus.WriteByte(0, 0xFF)
	c.SetGPR(1, 0xFFFFFFFF80000000)
	lbu := word(opLBU, 1, 2, 0, 0, 0)
	c.execMem(hLBU, lbu)
	if got := c.GetGPR(2); got != 0xFF {
		t.Fatalf("LBU of 0xff = %#x, want 0xff", got)
	}
}

// TestMemLWLLWRRoundTrip verifies the §4.2 property that LWL at an unaligned
// address A paired with LWR at A+3 (the real-world compiler idiom for an
// unaligned word load, which may span two adjacent aligned words)
// reconstructs the 4 bytes starting at A, regardless of byte offset.
func TestMemLWLLWRRoundTrip(t *testing.T) {
	raw := []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}
	for off := uint64(0); off < 4; off++ {
		c, bus := newTestCPUWithBus()
		bus.WriteWord(0, binary.BigEndian.Uint32(raw[0:4]))
		bus.WriteWord(4, binary.BigEndian.Uint32(raw[4:8]))
		base := uint64(0xFFFFFFFF80000000)
		c.SetGPR(2, 0) // initial register contents, overwritten incrementally

		c.doLWL(2, base+off)
		c.doLWR(2, base+off+3)

		want := binary.BigEndian.Uint32(raw[off : off+4])
		if got := uint32(c.GetGPR(2)); got != want {
			t.Fatalf("off=%d: LWL+LWR merged = %#x, want %#x", off, got, want)
		}
	}
}

func TestMemSWLSWRRoundTrip(t *testing.T) {
	for off := uint64(0); off < 4; off++ {
		c, bus := newTestCPUWithBus()
		base := uint64(0xFFFFFFFF80000000)
		c.SetGPR(2, 0xAABBCCDD)

		c.doSWL(2, base+off)
		c.doSWR(2, base+off+3)

		got := make([]byte, 8)
		binary.BigEndian.PutUint32(got[0:4], bus.ReadWord(0))
		binary.BigEndian.PutUint32(got[4:8], bus.ReadWord(4))
		if gotWord := binary.BigEndian.Uint32(got[off : off+4]); gotWord != 0xAABBCCDD {
			t.Fatalf("off=%d: SWL+SWR merged = %#x, want 0xaabbccdd", off, gotWord)
		}
	}
}

func TestMemLDLLDRRoundTrip(t *testing.T) {
	raw := make([]byte, 16)
	for i := range raw {
		raw[i] = byte(i)
	}
	for off := uint64(0); off < 8; off++ {
		c, bus := newTestCPUWithBus()
		bus.WriteDword(0, binary.BigEndian.Uint64(raw[0:8]))
		bus.WriteDword(8, binary.BigEndian.Uint64(raw[8:16]))
		base := uint64(0xFFFFFFFF80000000)
		c.SetGPR(2, 0)

		c.doLDL(2, base+off)
		c.doLDR(2, base+off+7)

		want := binary.BigEndian.Uint64(raw[off : off+8])
		if got := c.GetGPR(2); got != want {
			t.Fatalf("off=%d: LDL+LDR merged = %#x, want %#x", off, got, want)
		}
	}
}

func TestMemSDLSDRRoundTrip(t *testing.T) {
	for off := uint64(0); off < 8; off++ {
		c, bus := newTestCPUWithBus()
		base := uint64(0xFFFFFFFF80000000)
		c.SetGPR(2, 0x0123456789ABCDEF)

		c.doSDL(2, base+off)
		c.doSDR(2, base+off+7)

		got := make([]byte, 16)
		binary.BigEndian.PutUint64(got[0:8], bus.ReadDword(0))
		binary.BigEndian.PutUint64(got[8:16], bus.ReadDword(8))
		if gotDword := binary.BigEndian.Uint64(got[off : off+8]); gotDword != 0x0123456789ABCDEF {
			t.Fatalf("off=%d: SDL+SDR merged = %#x, want 0x0123456789abcdef", off, gotDword)
		}
	}
}

func TestMemLLSCSuccess(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.SetGPR(1, 0xFFFFFFFF80000000)
	c.SetGPR(2, 0x42)

	ll := word(opLL, 1, 3, 0, 0, 0)
	c.execMem(hLL, ll)
	if !c.llbit {
		t.Fatal("LL must set llbit")
	}

	sc := word(opSC, 1, 2, 0, 0, 0)
	c.execMem(hSC, sc)
	if got := c.GetGPR(2); got != 1 {
		t.Fatalf("SC result = %d, want 1 (success)", got)
	}
	if c.llbit {
		t.Fatal("SC must clear llbit")
	}
}

func TestMemLLSCFailsWithoutReservation(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.SetGPR(1, 0xFFFFFFFF80000000)
	c.SetGPR(2, 0x42)

	sc := word(opSC, 1, 2, 0, 0, 0)
	c.execMem(hSC, sc)
	if got := c.GetGPR(2); got != 0 {
		t.Fatalf("SC without a prior LL = %d, want 0 (failure)", got)
	}
}

func TestMemStoreClearsLLBit(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.SetGPR(1, 0xFFFFFFFF80000000)
	c.llbit = true

	c.SetGPR(2, 1)
	sb := word(opSB, 1, 2, 0, 0, 0)
	c.execMem(hSB, sb)
	if c.llbit {
		t.Fatal("an unrelated store must clear llbit")
	}
}

// A mapped-segment load with no matching TLB entry must populate BadVAddr
// and EntryHi, raise TLBL, leave rt untouched, and send next_pc to the
// refill vector.
func TestMemTLBMissOnLoad(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.SetGPR(2, 0x00001000) // kuseg, nothing mapped

	lw := word(opLW, 2, 1, 0, 0, 0)
	c.execMem(hLW, lw)

	if got := c.cp0.Get(cp0BadVAddr); got != 0x1000 {
		t.Fatalf("BadVAddr = %#x, want 0x1000", got)
	}
	if got := c.cp0.EntryHi() >> 13; got != 0 {
		t.Fatalf("EntryHi VPN2 = %#x, want 0", got)
	}
	if got := c.cp0.CauseExcCode(); got != excTLBL {
		t.Fatalf("CauseExcCode = %d, want excTLBL", got)
	}
	if c.nextPC != vectorNormalBase+vectorTLBRefillOffset {
		t.Fatalf("next_pc = %#x, want the TLB refill vector", c.nextPC)
	}
	if got := c.GetGPR(1); got != 0 {
		t.Fatalf("r1 = %#x, want 0 (unchanged on a faulting load)", got)
	}
}

// A load that hits a matching-but-invalid entry still raises TLBL, but
// through the general vector, not the refill vector.
func TestMemTLBInvalidMissUsesGeneralVector(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.tlb.WriteIndexed(0, TLBEntry{VPN2: 0, ASID: 0, PFN0: 0x4, V0: false})
	c.SetGPR(2, 0x00000100) // even half of the installed pair, V=0

	lw := word(opLW, 2, 1, 0, 0, 0)
	c.execMem(hLW, lw)

	if got := c.cp0.CauseExcCode(); got != excTLBL {
		t.Fatalf("CauseExcCode = %d, want excTLBL", got)
	}
	if c.nextPC != vectorNormalBase+vectorGeneralOffset {
		t.Fatalf("next_pc = %#x, want the general vector (invalid entry, not a refill)", c.nextPC)
	}
}

func TestMemAddressErrorOnMisalignedWord(t *testing.T) {
	c, _ := newTestCPUWithBus()
	c.SetGPR(1, 0xFFFFFFFF80000001) // unaligned for LW
	lw := word(opLW, 1, 2, 0, 0, 0)
	c.execMem(hLW, lw)
	if c.cp0.CauseExcCode() != excADEL {
		t.Fatalf("CauseExcCode = %d, want excADEL", c.cp0.CauseExcCode())
	}
}
