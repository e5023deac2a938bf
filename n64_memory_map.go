// n64_memory_map.go - Master physical address map reference
//
// Centralises the N64 physical memory map: one documentation table plus
// small range-test helpers, with each device's detailed register layout
// left to its own file (n64_rsp_worker.go for SP; MI/VI/AI/PI/SI/DPC MMIO
// itself is out of scope per the bus collaborator seam in n64_bus.go).
//
// MEMORY MAP OVERVIEW
// ===================
//
// Address Range             Size   Region              Constants File
// -----------------------------------------------------------------------
// 0x00000000-0x007FFFFF     8MB    RDRAM (base)        n64_bus.go
// 0x00800000-0x03EFFFFF     -      RDRAM (expansion)   n64_bus.go
// 0x04000000-0x04001FFF     8KB    SP DMEM+IMEM        n64_rsp_worker.go
// 0x04040000-0x0404001F     32B    SP registers        n64_rsp_worker.go
// 0x04080000-0x04080007     8B     SP PC/IBIST         n64_rsp_worker.go
// 0x04100000-0x0410001F     32B    DP command regs     -
// 0x04300000-0x0430000F     16B    MI registers        scheduler.go (MI)
// 0x04400000-0x0440003F     64B    VI registers        scheduler.go (VI)
// 0x04500000-0x04500017     24B    AI registers        scheduler.go (AI)
// 0x04600000-0x04600034     52B    PI registers        -
// 0x04700000-0x04700020     32B    RI registers        -
// 0x04800000-0x0480001C     28B    SI registers        -
// 0x1FC00000-0x1FC007BF     1984B  PIF ROM+RAM         -
// 0x10000000-0x1FBFFFFF     -      Cartridge domain    n64_bus.go (LoadROM)
//
// Everything outside RDRAM is modeled as pluggable IORegion windows on the
// Bus collaborator (§6); this file only documents where they sit and offers
// small classification helpers over the ranges.

package main

const (
	RDRAM_BASE = 0x00000000
	RDRAM_END  = 0x03EFFFFF

	SP_DMEM_BASE = 0x04000000
	SP_IMEM_BASE = 0x04001000
	SP_MEM_END   = 0x04001FFF

	// SP_BASE/SP_STATUS_REG etc. are defined in n64_rsp_worker.go.
	SP_REGS_END = SP_BASE + 0x1F

	DP_CMD_BASE = 0x04100000
	DP_CMD_END  = 0x0410001F

	MI_BASE = 0x04300000
	MI_END  = 0x0430000F

	VI_BASE = 0x04400000
	VI_END  = 0x0440003F

	AI_BASE = 0x04500000
	AI_END  = 0x04500017

	PI_BASE = 0x04600000
	PI_END  = 0x04600034

	RI_BASE = 0x04700000
	RI_END  = 0x04700020

	SI_BASE = 0x04800000
	SI_END  = 0x0480001C

	CART_DOM1_BASE = 0x10000000
	CART_DOM1_END  = 0x1FBFFFFF

	PIF_BASE = 0x1FC00000
	PIF_END  = 0x1FC007BF
)

// IsRDRAMAddress returns true if physical falls within flat RDRAM.
func IsRDRAMAddress(physical uint32) bool {
	return physical >= RDRAM_BASE && physical <= RDRAM_END
}

// IsCartridgeAddress returns true if physical falls within cartridge domain 1,
// where LoadROM stages the ROM image (§6 binary formats).
func IsCartridgeAddress(physical uint32) bool {
	return physical >= CART_DOM1_BASE && physical <= CART_DOM1_END
}

// GetPhysicalRegion returns a human-readable device name for a physical
// address, for diagnostics and fatal-error messages.
func GetPhysicalRegion(physical uint32) string {
	switch {
	case IsRDRAMAddress(physical):
		return "RDRAM"
	case physical >= SP_DMEM_BASE && physical <= SP_MEM_END:
		return "SP-DMEM/IMEM"
	case physical >= SP_BASE && physical <= SP_REGS_END:
		return "SP-regs"
	case physical >= DP_CMD_BASE && physical <= DP_CMD_END:
		return "DP-command"
	case physical >= MI_BASE && physical <= MI_END:
		return "MI"
	case physical >= VI_BASE && physical <= VI_END:
		return "VI"
	case physical >= AI_BASE && physical <= AI_END:
		return "AI"
	case physical >= PI_BASE && physical <= PI_END:
		return "PI"
	case physical >= RI_BASE && physical <= RI_END:
		return "RI"
	case physical >= SI_BASE && physical <= SI_END:
		return "SI"
	case IsCartridgeAddress(physical):
		return "cartridge"
	case physical >= PIF_BASE && physical <= PIF_END:
		return "PIF"
	default:
		return "unmapped"
	}
}
