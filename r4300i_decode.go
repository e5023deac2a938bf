// r4300i_decode.go - pure instruction decoder (C3)

package main

// Decoded is the decoder's output: a handler identity plus the category and
// exception-possibility tags that drive delay-slot bookkeeping and the
// dynarec's block terminator policy. Decoding never touches CPU state.
type Decoded struct {
	HandlerID        int
	Category         instrCategory
	ExceptionPossible bool
	RawCopErr        uint32 // populated only for the reserved-instruction/COP2 case
}

// Handler ids. These are dense so the interpreter and dynarec can both index
// a flat dispatch table by id (§9 "function-pointer dispatch per opcode").
const (
	hNOP = iota
	hSLL
	hSRL
	hSRA
	hSLLV
	hSRLV
	hSRAV
	hJR
	hJALR
	hSYSCALL
	hBREAK
	hSYNC
	hMFHI
	hMTHI
	hMFLO
	hMTLO
	hDSLLV
	hDSRLV
	hDSRAV
	hMULT
	hMULTU
	hDIV
	hDIVU
	hDMULT
	hDMULTU
	hDDIV
	hDDIVU
	hADD
	hADDU
	hSUB
	hSUBU
	hAND
	hOR
	hXOR
	hNOR
	hSLT
	hSLTU
	hDADD
	hDADDU
	hDSUB
	hDSUBU
	hTGE
	hTGEU
	hTLT
	hTLTU
	hTEQ
	hTNE
	hDSLL
	hDSRL
	hDSRA
	hDSLL32
	hDSRL32
	hDSRA32
	hJ
	hJAL
	hBEQ
	hBNE
	hBLEZ
	hBGTZ
	hADDI
	hADDIU
	hSLTI
	hSLTIU
	hANDI
	hORI
	hXORI
	hLUI
	hBEQL
	hBNEL
	hBLEZL
	hBGTZL
	hDADDI
	hDADDIU
	hLDL
	hLDR
	hLB
	hLH
	hLWL
	hLW
	hLBU
	hLHU
	hLWR
	hLWU
	hSB
	hSH
	hSWL
	hSW
	hSDL
	hSDR
	hSWR
	hCACHE
	hLL
	hLWC1
	hLLD
	hLDC1
	hLD
	hSC
	hSWC1
	hSCD
	hSDC1
	hSD
	hBLTZ
	hBGEZ
	hBLTZL
	hBGEZL
	hTGEI
	hTGEIU
	hTLTI
	hTLTIU
	hTEQI
	hTNEI
	hBLTZAL
	hBGEZAL
	hBLTZALL
	hBGEZALL
	hMFC0
	hMTC0
	hTLBR
	hTLBWI
	hTLBWR
	hTLBP
	hERET
	hMFC1
	hDMFC1
	hCFC1
	hMTC1
	hDMTC1
	hCTC1
	hBC1F
	hBC1T
	hBC1FL
	hBC1TL
	hFPUADD
	hFPUSUB
	hFPUMUL
	hFPUDIV
	hFPUSQRT
	hFPUABS
	hFPUMOV
	hFPUNEG
	hFPUROUNDL
	hFPUTRUNCL
	hFPUCEILL
	hFPUFLOORL
	hFPUROUNDW
	hFPUTRUNCW
	hFPUCEILW
	hFPUFLOORW
	hFPUCVTS
	hFPUCVTD
	hFPUCVTW
	hFPUCVTL
	hFPUCOMPARE
	hRESERVED
)

// Decode classifies a 32-bit instruction word. fetchPC is carried only for
// diagnostics in the reserved-instruction path.
func Decode(word uint32, fetchPC uint64) Decoded {
	op := word >> 26
	switch op {
	case opSPECIAL:
		return decodeSpecial(word)
	case opREGIMM:
		return decodeRegimm(word)
	case opJ:
		return Decoded{HandlerID: hJ, Category: catBRANCH}
	case opJAL:
		return Decoded{HandlerID: hJAL, Category: catBRANCH}
	case opBEQ:
		return Decoded{HandlerID: hBEQ, Category: catBRANCH}
	case opBNE:
		return Decoded{HandlerID: hBNE, Category: catBRANCH}
	case opBLEZ:
		return Decoded{HandlerID: hBLEZ, Category: catBRANCH}
	case opBGTZ:
		return Decoded{HandlerID: hBGTZ, Category: catBRANCH}
	case opADDI:
		return Decoded{HandlerID: hADDI, ExceptionPossible: true}
	case opADDIU:
		return Decoded{HandlerID: hADDIU}
	case opSLTI:
		return Decoded{HandlerID: hSLTI}
	case opSLTIU:
		return Decoded{HandlerID: hSLTIU}
	case opANDI:
		return Decoded{HandlerID: hANDI}
	case opORI:
		return Decoded{HandlerID: hORI}
	case opXORI:
		return Decoded{HandlerID: hXORI}
	case opLUI:
		return Decoded{HandlerID: hLUI}
	case opCOP0:
		return decodeCop0(word)
	case opCOP1:
		return decodeCop1(word)
	case opCOP2:
		return Decoded{HandlerID: hRESERVED, Category: catNORMAL, ExceptionPossible: true, RawCopErr: 2}
	case opBEQL:
		return Decoded{HandlerID: hBEQL, Category: catBRANCHLIKELY}
	case opBNEL:
		return Decoded{HandlerID: hBNEL, Category: catBRANCHLIKELY}
	case opBLEZL:
		return Decoded{HandlerID: hBLEZL, Category: catBRANCHLIKELY}
	case opBGTZL:
		return Decoded{HandlerID: hBGTZL, Category: catBRANCHLIKELY}
	case opDADDI:
		return Decoded{HandlerID: hDADDI, ExceptionPossible: true}
	case opDADDIU:
		return Decoded{HandlerID: hDADDIU}
	case opLDL:
		return Decoded{HandlerID: hLDL, ExceptionPossible: true}
	case opLDR:
		return Decoded{HandlerID: hLDR, ExceptionPossible: true}
	case opLB:
		return Decoded{HandlerID: hLB, ExceptionPossible: true}
	case opLH:
		return Decoded{HandlerID: hLH, ExceptionPossible: true}
	case opLWL:
		return Decoded{HandlerID: hLWL, ExceptionPossible: true}
	case opLW:
		return Decoded{HandlerID: hLW, ExceptionPossible: true}
	case opLBU:
		return Decoded{HandlerID: hLBU, ExceptionPossible: true}
	case opLHU:
		return Decoded{HandlerID: hLHU, ExceptionPossible: true}
	case opLWR:
		return Decoded{HandlerID: hLWR, ExceptionPossible: true}
	case opLWU:
		return Decoded{HandlerID: hLWU, ExceptionPossible: true}
	case opSB:
		return Decoded{HandlerID: hSB, Category: catSTORE, ExceptionPossible: true}
	case opSH:
		return Decoded{HandlerID: hSH, Category: catSTORE, ExceptionPossible: true}
	case opSWL:
		return Decoded{HandlerID: hSWL, Category: catSTORE, ExceptionPossible: true}
	case opSW:
		return Decoded{HandlerID: hSW, Category: catSTORE, ExceptionPossible: true}
	case opSDL:
		return Decoded{HandlerID: hSDL, Category: catSTORE, ExceptionPossible: true}
	case opSDR:
		return Decoded{HandlerID: hSDR, Category: catSTORE, ExceptionPossible: true}
	case opSWR:
		return Decoded{HandlerID: hSWR, Category: catSTORE, ExceptionPossible: true}
	case opCACHE:
		return Decoded{HandlerID: hCACHE}
	case opLL:
		return Decoded{HandlerID: hLL, ExceptionPossible: true}
	case opLWC1:
		return Decoded{HandlerID: hLWC1, ExceptionPossible: true}
	case opLLD:
		return Decoded{HandlerID: hLLD, ExceptionPossible: true}
	case opLDC1:
		return Decoded{HandlerID: hLDC1, ExceptionPossible: true}
	case opLD:
		return Decoded{HandlerID: hLD, ExceptionPossible: true}
	case opSC:
		return Decoded{HandlerID: hSC, Category: catSTORE, ExceptionPossible: true}
	case opSWC1:
		return Decoded{HandlerID: hSWC1, Category: catSTORE, ExceptionPossible: true}
	case opSCD:
		return Decoded{HandlerID: hSCD, Category: catSTORE, ExceptionPossible: true}
	case opSDC1:
		return Decoded{HandlerID: hSDC1, Category: catSTORE, ExceptionPossible: true}
	case opSD:
		return Decoded{HandlerID: hSD, Category: catSTORE, ExceptionPossible: true}
	default:
		return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
	}
}

func decodeSpecial(word uint32) Decoded {
	if word == 0 {
		return Decoded{HandlerID: hNOP}
	}
	fn := word & 0x3F
	switch fn {
	case fnSLL:
		return Decoded{HandlerID: hSLL}
	case fnSRL:
		return Decoded{HandlerID: hSRL}
	case fnSRA:
		return Decoded{HandlerID: hSRA}
	case fnSLLV:
		return Decoded{HandlerID: hSLLV}
	case fnSRLV:
		return Decoded{HandlerID: hSRLV}
	case fnSRAV:
		return Decoded{HandlerID: hSRAV}
	case fnJR:
		return Decoded{HandlerID: hJR, Category: catBRANCH}
	case fnJALR:
		return Decoded{HandlerID: hJALR, Category: catBRANCH}
	case fnSYSCALL:
		return Decoded{HandlerID: hSYSCALL, ExceptionPossible: true}
	case fnBREAK:
		return Decoded{HandlerID: hBREAK, ExceptionPossible: true}
	case fnSYNC:
		return Decoded{HandlerID: hSYNC}
	case fnMFHI:
		return Decoded{HandlerID: hMFHI}
	case fnMTHI:
		return Decoded{HandlerID: hMTHI}
	case fnMFLO:
		return Decoded{HandlerID: hMFLO}
	case fnMTLO:
		return Decoded{HandlerID: hMTLO}
	case fnDSLLV:
		return Decoded{HandlerID: hDSLLV}
	case fnDSRLV:
		return Decoded{HandlerID: hDSRLV}
	case fnDSRAV:
		return Decoded{HandlerID: hDSRAV}
	case fnMULT:
		return Decoded{HandlerID: hMULT}
	case fnMULTU:
		return Decoded{HandlerID: hMULTU}
	case fnDIV:
		return Decoded{HandlerID: hDIV}
	case fnDIVU:
		return Decoded{HandlerID: hDIVU}
	case fnDMULT:
		return Decoded{HandlerID: hDMULT}
	case fnDMULTU:
		return Decoded{HandlerID: hDMULTU}
	case fnDDIV:
		return Decoded{HandlerID: hDDIV}
	case fnDDIVU:
		return Decoded{HandlerID: hDDIVU}
	case fnADD:
		return Decoded{HandlerID: hADD, ExceptionPossible: true}
	case fnADDU:
		return Decoded{HandlerID: hADDU}
	case fnSUB:
		return Decoded{HandlerID: hSUB, ExceptionPossible: true}
	case fnSUBU:
		return Decoded{HandlerID: hSUBU}
	case fnAND:
		return Decoded{HandlerID: hAND}
	case fnOR:
		return Decoded{HandlerID: hOR}
	case fnXOR:
		return Decoded{HandlerID: hXOR}
	case fnNOR:
		return Decoded{HandlerID: hNOR}
	case fnSLT:
		return Decoded{HandlerID: hSLT}
	case fnSLTU:
		return Decoded{HandlerID: hSLTU}
	case fnDADD:
		return Decoded{HandlerID: hDADD, ExceptionPossible: true}
	case fnDADDU:
		return Decoded{HandlerID: hDADDU}
	case fnDSUB:
		return Decoded{HandlerID: hDSUB, ExceptionPossible: true}
	case fnDSUBU:
		return Decoded{HandlerID: hDSUBU}
	case fnTGE:
		return Decoded{HandlerID: hTGE, ExceptionPossible: true}
	case fnTGEU:
		return Decoded{HandlerID: hTGEU, ExceptionPossible: true}
	case fnTLT:
		return Decoded{HandlerID: hTLT, ExceptionPossible: true}
	case fnTLTU:
		return Decoded{HandlerID: hTLTU, ExceptionPossible: true}
	case fnTEQ:
		return Decoded{HandlerID: hTEQ, ExceptionPossible: true}
	case fnTNE:
		return Decoded{HandlerID: hTNE, ExceptionPossible: true}
	case fnDSLL:
		return Decoded{HandlerID: hDSLL}
	case fnDSRL:
		return Decoded{HandlerID: hDSRL}
	case fnDSRA:
		return Decoded{HandlerID: hDSRA}
	case fnDSLL32:
		return Decoded{HandlerID: hDSLL32}
	case fnDSRL32:
		return Decoded{HandlerID: hDSRL32}
	case fnDSRA32:
		return Decoded{HandlerID: hDSRA32}
	default:
		return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
	}
}

func decodeRegimm(word uint32) Decoded {
	rt := (word >> 16) & 0x1F
	switch rt {
	case rtBLTZ:
		return Decoded{HandlerID: hBLTZ, Category: catBRANCH}
	case rtBGEZ:
		return Decoded{HandlerID: hBGEZ, Category: catBRANCH}
	case rtBLTZL:
		return Decoded{HandlerID: hBLTZL, Category: catBRANCHLIKELY}
	case rtBGEZL:
		return Decoded{HandlerID: hBGEZL, Category: catBRANCHLIKELY}
	case rtTGEI:
		return Decoded{HandlerID: hTGEI, ExceptionPossible: true}
	case rtTGEIU:
		return Decoded{HandlerID: hTGEIU, ExceptionPossible: true}
	case rtTLTI:
		return Decoded{HandlerID: hTLTI, ExceptionPossible: true}
	case rtTLTIU:
		return Decoded{HandlerID: hTLTIU, ExceptionPossible: true}
	case rtTEQI:
		return Decoded{HandlerID: hTEQI, ExceptionPossible: true}
	case rtTNEI:
		return Decoded{HandlerID: hTNEI, ExceptionPossible: true}
	case rtBLTZAL:
		return Decoded{HandlerID: hBLTZAL, Category: catBRANCH}
	case rtBGEZAL:
		return Decoded{HandlerID: hBGEZAL, Category: catBRANCH}
	case rtBLTZALL:
		return Decoded{HandlerID: hBLTZALL, Category: catBRANCHLIKELY}
	case rtBGEZALL:
		return Decoded{HandlerID: hBGEZALL, Category: catBRANCHLIKELY}
	default:
		return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
	}
}

func decodeCop0(word uint32) Decoded {
	rs := (word >> 21) & 0x1F
	switch rs {
	case cop0rsMF:
		return Decoded{HandlerID: hMFC0}
	case cop0rsMT:
		return Decoded{HandlerID: hMTC0}
	case cop0rsCO:
		switch word & 0x3F {
		case cop0fnTLBR:
			return Decoded{HandlerID: hTLBR, Category: catTLBWRITE}
		case cop0fnTLBWI:
			return Decoded{HandlerID: hTLBWI, Category: catTLBWRITE}
		case cop0fnTLBWR:
			return Decoded{HandlerID: hTLBWR, Category: catTLBWRITE}
		case cop0fnTLBP:
			return Decoded{HandlerID: hTLBP, Category: catTLBWRITE}
		case cop0fnERET:
			return Decoded{HandlerID: hERET, Category: catERET, ExceptionPossible: true}
		default:
			return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
		}
	default:
		return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
	}
}

func decodeCop1(word uint32) Decoded {
	rs := (word >> 21) & 0x1F
	switch rs {
	case cop1rsMF:
		return Decoded{HandlerID: hMFC1}
	case cop1rsDMF:
		return Decoded{HandlerID: hDMFC1}
	case cop1rsCF:
		return Decoded{HandlerID: hCFC1}
	case cop1rsMT:
		return Decoded{HandlerID: hMTC1}
	case cop1rsDMT:
		return Decoded{HandlerID: hDMTC1}
	case cop1rsCT:
		return Decoded{HandlerID: hCTC1}
	case cop1rsBC:
		switch (word >> 16) & 0x1F {
		case cop1bcF:
			return Decoded{HandlerID: hBC1F, Category: catBRANCH}
		case cop1bcT:
			return Decoded{HandlerID: hBC1T, Category: catBRANCH}
		case cop1bcFL:
			return Decoded{HandlerID: hBC1FL, Category: catBRANCHLIKELY}
		case cop1bcTL:
			return Decoded{HandlerID: hBC1TL, Category: catBRANCHLIKELY}
		default:
			return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
		}
	case cop1rsS, cop1rsD, cop1rsW, cop1rsL:
		fn := word & 0x3F
		if fn&0x30 == cop1fnCF {
			return Decoded{HandlerID: hFPUCOMPARE}
		}
		switch fn {
		case cop1fnADD:
			return Decoded{HandlerID: hFPUADD}
		case cop1fnSUB:
			return Decoded{HandlerID: hFPUSUB}
		case cop1fnMUL:
			return Decoded{HandlerID: hFPUMUL}
		case cop1fnDIV:
			return Decoded{HandlerID: hFPUDIV}
		case cop1fnSQRT:
			return Decoded{HandlerID: hFPUSQRT}
		case cop1fnABS:
			return Decoded{HandlerID: hFPUABS}
		case cop1fnMOV:
			return Decoded{HandlerID: hFPUMOV}
		case cop1fnNEG:
			return Decoded{HandlerID: hFPUNEG}
		case cop1fnROUNDL:
			return Decoded{HandlerID: hFPUROUNDL}
		case cop1fnTRUNCL:
			return Decoded{HandlerID: hFPUTRUNCL}
		case cop1fnCEILL:
			return Decoded{HandlerID: hFPUCEILL}
		case cop1fnFLOORL:
			return Decoded{HandlerID: hFPUFLOORL}
		case cop1fnROUNDW:
			return Decoded{HandlerID: hFPUROUNDW}
		case cop1fnTRUNCW:
			return Decoded{HandlerID: hFPUTRUNCW}
		case cop1fnCEILW:
			return Decoded{HandlerID: hFPUCEILW}
		case cop1fnFLOORW:
			return Decoded{HandlerID: hFPUFLOORW}
		case cop1fnCVTS:
			return Decoded{HandlerID: hFPUCVTS}
		case cop1fnCVTD:
			return Decoded{HandlerID: hFPUCVTD}
		case cop1fnCVTW:
			return Decoded{HandlerID: hFPUCVTW}
		case cop1fnCVTL:
			return Decoded{HandlerID: hFPUCVTL}
		default:
			return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
		}
	default:
		return Decoded{HandlerID: hRESERVED, ExceptionPossible: true}
	}
}
