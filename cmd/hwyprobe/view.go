package main

import "unsafe"

// float64View reinterprets the first n*8 bytes of buf as n float64s.
// buf must be 8-byte aligned and at least n*8 bytes long.
func float64View(buf []byte, n int) []float64 {
	if n == 0 {
		return nil
	}
	if n < 0 || n > len(buf)/8 {
		panic("hwyprobe: buffer too short for float64 view")
	}
	if uintptr(unsafe.Pointer(&buf[0]))%8 != 0 {
		panic("hwyprobe: buffer is not 8-byte aligned")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(&buf[0])), n)
}
