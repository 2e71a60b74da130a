package main

// #include <stdlib.h>
import "C"

import "unsafe"

// cString copies s onto the C heap the way a foreign caller would hand it
// to us. The returned func frees it. Only the tests call this; it lives
// outside _test.go because test files cannot import "C".
func cString(s string) (*C.char, func()) {
	cs := C.CString(s)
	return cs, func() { C.free(unsafe.Pointer(cs)) }
}
