package main

import "testing"

func TestN64BusReadWriteWordRoundTrip(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	bus.WriteWord(0x100, 0xDEADBEEF)
	if got := bus.ReadWord(0x100); got != 0xDEADBEEF {
		t.Fatalf("ReadWord = %#x, want %#x", got, 0xDEADBEEF)
	}
}

func TestN64BusBigEndianByteOrder(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	bus.WriteWord(0x200, 0x11223344)
	if got := bus.ReadByte(0x200); got != 0x11 {
		t.Fatalf("most significant byte at lowest address = %#x, want 0x11", got)
	}
	if got := bus.ReadByte(0x203); got != 0x44 {
		t.Fatalf("least significant byte at highest address = %#x, want 0x44", got)
	}
}

func TestN64BusHalfAndDwordRoundTrip(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	bus.WriteHalf(0x10, 0xBEEF)
	if got := bus.ReadHalf(0x10); got != 0xBEEF {
		t.Fatalf("ReadHalf = %#x, want 0xBEEF", got)
	}
	bus.WriteDword(0x20, 0x0123456789ABCDEF)
	if got := bus.ReadDword(0x20); got != 0x0123456789ABCDEF {
		t.Fatalf("ReadDword = %#x, want 0x0123456789ABCDEF", got)
	}
}

func TestN64BusMapIOInterceptsRegion(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	var written uint64
	bus.MapIO(0xF000, 0xF00F,
		func(physical uint32, width uint) uint64 { return 0x42 },
		func(physical uint32, width uint, value uint64) { written = value })

	if got := bus.ReadWord(0xF000); got != 0x42 {
		t.Fatalf("ReadWord via IO region = %#x, want 0x42", got)
	}
	bus.WriteWord(0xF000, 7)
	if written != 7 {
		t.Fatalf("onWrite saw %d, want 7", written)
	}
}

func TestN64BusMapIOPanicsAfterSeal(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	bus.Seal()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic from MapIO after Seal")
		}
	}()
	bus.MapIO(0, 0xF, nil, nil)
}

func TestN64BusLoadROM(t *testing.T) {
	bus := NewN64Bus(2 * 1024 * 1024)
	rom := []byte{1, 2, 3, 4}
	const base = 0x1000
	if err := bus.LoadROM(base, rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if got := bus.ReadByte(base); got != 1 {
		t.Fatalf("ReadByte at load base = %d, want 1", got)
	}
}

func TestN64BusLoadROMTooLarge(t *testing.T) {
	bus := NewN64Bus(16)
	if err := bus.LoadROM(8, make([]byte, 32)); err == nil {
		t.Fatal("expected error loading oversized ROM")
	}
}

func TestN64BusCartridgeWindow(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	rom := []byte{0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77, 0x88}
	if err := bus.LoadROM(CART_DOM1_BASE, rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if got := bus.ReadWord(CART_DOM1_BASE); got != 0x11223344 {
		t.Fatalf("ReadWord in cartridge window = %#x, want 0x11223344", got)
	}
	if got := bus.ReadByte(CART_DOM1_BASE + 7); got != 0x88 {
		t.Fatalf("ReadByte at window end = %#x, want 0x88", got)
	}
	if got := bus.ReadWord(CART_DOM1_BASE + 8); got != 0 {
		t.Fatalf("ReadWord past the image = %#x, want 0", got)
	}
}

func TestN64BusCartridgeWindowIsReadOnly(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	if err := bus.LoadROM(CART_DOM1_BASE, []byte{0x11, 0x22, 0x33, 0x44}); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	bus.WriteWord(CART_DOM1_BASE, 0xDEADBEEF)
	if got := bus.ReadWord(CART_DOM1_BASE); got != 0x11223344 {
		t.Fatalf("cartridge window after write = %#x, want 0x11223344 (read-only)", got)
	}
}

func TestN64BusCopyThrough(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	if err := bus.LoadROM(CART_DOM1_BASE, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	var invalidated []uint32
	bus.SetInvalidateHook(func(p uint32) { invalidated = append(invalidated, p) })

	bus.CopyThrough(0x400, CART_DOM1_BASE, 4)
	if got := bus.ReadWord(0x400); got != 0x01020304 {
		t.Fatalf("ReadWord at copy destination = %#x, want 0x01020304", got)
	}
	if len(invalidated) != 4 || invalidated[0] != 0x400 || invalidated[3] != 0x403 {
		t.Fatalf("invalidate hook saw %v, want one call per written byte 0x400..0x403", invalidated)
	}
}

func TestN64BusCopyThroughObservesMMIO(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	bus.MapIO(0xF000, 0xF00F,
		func(physical uint32, width uint) uint64 { return uint64(physical & 0xFF) },
		nil)

	bus.CopyThrough(0x500, 0xF000, 2)
	if got := bus.ReadByte(0x500); got != 0x00 {
		t.Fatalf("first copied byte = %#x, want the MMIO read result 0x00", got)
	}
	if got := bus.ReadByte(0x501); got != 0x01 {
		t.Fatalf("second copied byte = %#x, want the MMIO read result 0x01", got)
	}
}

func TestN64BusReset(t *testing.T) {
	bus := NewN64Bus(64 * 1024)
	bus.WriteWord(0x30, 0xFFFFFFFF)
	bus.Reset()
	if got := bus.ReadWord(0x30); got != 0 {
		t.Fatalf("ReadWord after Reset = %#x, want 0", got)
	}
}
