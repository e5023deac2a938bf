// r4300i_fields.go - instruction word field extraction helpers

package main

func fRS(word uint32) uint   { return uint((word >> 21) & 0x1F) }
func fRT(word uint32) uint   { return uint((word >> 16) & 0x1F) }
func fRD(word uint32) uint   { return uint((word >> 11) & 0x1F) }
func fSA(word uint32) uint   { return uint((word >> 6) & 0x1F) }
func fImm16(word uint32) uint16 { return uint16(word) }
func fImmSigned(word uint32) int64 { return int64(int16(uint16(word))) }
func fTarget(word uint32) uint32 { return word & 0x03FFFFFF }
func fFmtFT(word uint32) uint { return uint((word >> 16) & 0x1F) }
func fFmtFS(word uint32) uint { return uint((word >> 11) & 0x1F) }
func fFmtFD(word uint32) uint { return uint((word >> 6) & 0x1F) }
