// r4300i_constants.go - R4300i opcode, category and exception constants

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

// Primary opcode field (bits 31:26).
const (
	opSPECIAL = 0x00
	opREGIMM  = 0x01
	opJ       = 0x02
	opJAL     = 0x03
	opBEQ     = 0x04
	opBNE     = 0x05
	opBLEZ    = 0x06
	opBGTZ    = 0x07
	opADDI    = 0x08
	opADDIU   = 0x09
	opSLTI    = 0x0A
	opSLTIU   = 0x0B
	opANDI    = 0x0C
	opORI     = 0x0D
	opXORI    = 0x0E
	opLUI     = 0x0F
	opCOP0    = 0x10
	opCOP1    = 0x11
	opCOP2    = 0x12
	opBEQL    = 0x14
	opBNEL    = 0x15
	opBLEZL   = 0x16
	opBGTZL   = 0x17
	opDADDI   = 0x18
	opDADDIU  = 0x19
	opLDL     = 0x1A
	opLDR     = 0x1B
	opLB      = 0x20
	opLH      = 0x21
	opLWL     = 0x22
	opLW      = 0x23
	opLBU     = 0x24
	opLHU     = 0x25
	opLWR     = 0x26
	opLWU     = 0x27
	opSB      = 0x28
	opSH      = 0x29
	opSWL     = 0x2A
	opSW      = 0x2B
	opSDL     = 0x2C
	opSDR     = 0x2D
	opSWR     = 0x2E
	opCACHE   = 0x2F
	opLL      = 0x30
	opLWC1    = 0x31
	opLLD     = 0x34
	opLDC1    = 0x35
	opLD      = 0x37
	opSC      = 0x38
	opSWC1    = 0x39
	opSCD     = 0x3C
	opSDC1    = 0x3D
	opSD      = 0x3F
)

// SPECIAL function field (bits 5:0) when opcode == opSPECIAL.
const (
	fnSLL     = 0x00
	fnSRL     = 0x02
	fnSRA     = 0x03
	fnSLLV    = 0x04
	fnSRLV    = 0x06
	fnSRAV    = 0x07
	fnJR      = 0x08
	fnJALR    = 0x09
	fnSYSCALL = 0x0C
	fnBREAK   = 0x0D
	fnSYNC    = 0x0F
	fnMFHI    = 0x10
	fnMTHI    = 0x11
	fnMFLO    = 0x12
	fnMTLO    = 0x13
	fnDSLLV   = 0x14
	fnDSRLV   = 0x16
	fnDSRAV   = 0x17
	fnMULT    = 0x18
	fnMULTU   = 0x19
	fnDIV     = 0x1A
	fnDIVU    = 0x1B
	fnDMULT   = 0x1C
	fnDMULTU  = 0x1D
	fnDDIV    = 0x1E
	fnDDIVU   = 0x1F
	fnADD     = 0x20
	fnADDU    = 0x21
	fnSUB     = 0x22
	fnSUBU    = 0x23
	fnAND     = 0x24
	fnOR      = 0x25
	fnXOR     = 0x26
	fnNOR     = 0x27
	fnSLT     = 0x2A
	fnSLTU    = 0x2B
	fnDADD    = 0x2C
	fnDADDU   = 0x2D
	fnDSUB    = 0x2E
	fnDSUBU   = 0x2F
	fnTGE     = 0x30
	fnTGEU    = 0x31
	fnTLT     = 0x32
	fnTLTU    = 0x33
	fnTEQ     = 0x34
	fnTNE     = 0x36
	fnDSLL    = 0x38
	fnDSRL    = 0x3A
	fnDSRA    = 0x3B
	fnDSLL32  = 0x3C
	fnDSRL32  = 0x3E
	fnDSRA32  = 0x3F
)

// REGIMM rt field (bits 20:16) when opcode == opREGIMM.
const (
	rtBLTZ   = 0x00
	rtBGEZ   = 0x01
	rtBLTZL  = 0x02
	rtBGEZL  = 0x03
	rtTGEI   = 0x08
	rtTGEIU  = 0x09
	rtTLTI   = 0x0A
	rtTLTIU  = 0x0B
	rtTEQI   = 0x0C
	rtTNEI   = 0x0E
	rtBLTZAL = 0x10
	rtBGEZAL = 0x11
	rtBLTZALL = 0x12
	rtBGEZALL = 0x13
)

// COP0 rs field (bits 25:21) when opcode == opCOP0.
const (
	cop0rsMF = 0x00
	cop0rsMT = 0x04
	cop0rsCO = 0x10 // funct field selects TLB op
)

// COP0 funct field when cop0rs == cop0rsCO.
const (
	cop0fnTLBR  = 0x01
	cop0fnTLBWI = 0x02
	cop0fnTLBWR = 0x06
	cop0fnTLBP  = 0x08
	cop0fnERET  = 0x18
)

// COP1 rs field (bits 25:21) when opcode == opCOP1.
const (
	cop1rsMF  = 0x00
	cop1rsDMF = 0x01
	cop1rsCF  = 0x02
	cop1rsMT  = 0x04
	cop1rsDMT = 0x05
	cop1rsCT  = 0x06
	cop1rsBC  = 0x08
	cop1rsS   = 0x10
	cop1rsD   = 0x11
	cop1rsW   = 0x14
	cop1rsL   = 0x15
)

// COP1 BC rt field (bits 20:16) when cop1rs == cop1rsBC.
const (
	cop1bcF  = 0x00
	cop1bcT  = 0x01
	cop1bcFL = 0x02
	cop1bcTL = 0x03
)

// COP1 funct field (arithmetic/compare/convert ops on cop1rsS/cop1rsD/cop1rsW/cop1rsL).
const (
	cop1fnADD    = 0x00
	cop1fnSUB    = 0x01
	cop1fnMUL    = 0x02
	cop1fnDIV    = 0x03
	cop1fnSQRT   = 0x04
	cop1fnABS    = 0x05
	cop1fnMOV    = 0x06
	cop1fnNEG    = 0x07
	cop1fnROUNDL = 0x08
	cop1fnTRUNCL = 0x09
	cop1fnCEILL  = 0x0A
	cop1fnFLOORL = 0x0B
	cop1fnROUNDW = 0x0C
	cop1fnTRUNCW = 0x0D
	cop1fnCEILW  = 0x0E
	cop1fnFLOORW = 0x0F
	cop1fnCVTS   = 0x20
	cop1fnCVTD   = 0x21
	cop1fnCVTW   = 0x24
	cop1fnCVTL   = 0x25
	cop1fnCF     = 0x30 // base of C.cond.fmt; low 4 bits select condition
)

// instrCategory is the decoder's classification of an instruction, driving
// delay-slot bookkeeping and the dynarec's block terminator policy.
type instrCategory uint8

const (
	catNORMAL instrCategory = iota
	catBRANCH
	catBRANCHLIKELY
	catERET
	catTLBWRITE
	catSTORE
)

// CP0 register indices (the 32-entry CP0 register file).
const (
	cp0Index    = 0
	cp0Random   = 1
	cp0EntryLo0 = 2
	cp0EntryLo1 = 3
	cp0Context  = 4
	cp0PageMask = 5
	cp0Wired    = 6
	cp0BadVAddr = 8
	cp0Count    = 9
	cp0EntryHi  = 10
	cp0Compare  = 11
	cp0Status   = 12
	cp0Cause    = 13
	cp0EPC      = 14
	cp0PRId     = 15
	cp0Config   = 16
	cp0LLAddr   = 17
	cp0WatchLo  = 18
	cp0WatchHi  = 19
	cp0XContext = 20
	cp0ErrCtl   = 26
	cp0CacheErr = 27
	cp0TagLo    = 28
	cp0TagHi    = 29
	cp0ErrorEPC = 30
)

// MIPS III exception codes (Cause.exception_code).
const (
	excINT    = 0  // interrupt
	excMOD    = 1  // TLB modification
	excTLBL   = 2  // TLB miss, load/fetch
	excTLBS   = 3  // TLB miss, store
	excADEL   = 4  // address error, load/fetch
	excADES   = 5  // address error, store
	excSYS    = 8  // syscall
	excBP     = 9  // breakpoint
	excRI     = 10 // reserved instruction
	excCPU    = 11 // coprocessor unusable
	excOV     = 12 // arithmetic overflow
	excTR     = 13 // trap
	excFPE    = 15 // floating-point
)

const (
	statusIE  = 1 << 0
	statusEXL = 1 << 1
	statusERL = 1 << 2
	statusKSU = 3 << 3
	statusIM0 = 1 << 8
	statusBEV = 1 << 22
	statusFR  = 1 << 26
	statusKX  = 1 << 7  // conceptual 64-bit addressing flag (simplified placeholder)
)

const (
	causeIP2Shift    = 10
	causeExcCodeMask = 0x7C
	causeExcCodeShift = 2
	causeBD          = 1 << 31
	causeCEShift     = 28
)

// Vector offsets, relative to the bootstrap or normal base selected by Status.bev.
const (
	vectorTLBRefillOffset = 0x000
	vectorGeneralOffset   = 0x180
	vectorBootstrapBase   = 0xFFFFFFFFBFC00200
	vectorNormalBase      = 0xFFFFFFFF80000000
)

// CYCLES_PER_INSTR is the constant cycle cost charged to cp0.Count per
// committed instruction (§3 Cycle accounting).
const CYCLES_PER_INSTR = 2

// PAGE_SIZE is the block-cache page granularity: one slot per 4-byte
// instruction on a 4 KiB physical page (§3 Block cache).
const (
	PAGE_SIZE  = 4096
	PAGE_SHIFT = 12
	slotsPerPage = PAGE_SIZE / 4
)

const (
	// NUM_SHORTLINES/NUM_LONGLINES make up one video frame in the scheduler's
	// line-stepped loop (§4.7): an NTSC field is 262 ordinary scanlines plus
	// the one long half-line.
	NUM_SHORTLINES = 262
	NUM_LONGLINES  = 1
)

// Intent distinguishes load vs store translation for TLB dirty-bit checks
// and exception-code selection (§4.3).
type accessIntent uint8

const (
	intentLoad accessIntent = iota
	intentStore
	intentFetch
)

// interrupt sources the core observes on the shared MI.intr word (§6).
const (
	IntrVI = 1 << 3
	IntrSI = 1 << 1
	IntrAI = 1 << 2
	IntrPI = 1 << 4
	IntrDP = 1 << 5
	IntrSP = 1 << 0
)
