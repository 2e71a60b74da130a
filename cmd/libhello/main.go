// Command libhello is the C-callable face of the greeter and adder.
//
// Build it as a shared object:
//
//	go build -buildmode=c-shared -o libhello.so ./cmd/libhello
//
// which also writes libhello.h declaring:
//
//	void hello(char* name);
//	void many_hello(char* name, int count);
//	void err_hello(char* name);
//	int add(int a, int b);
package main

import "C"

import (
	"github.com/dropbox/libhello/greeter"
	"github.com/dropbox/libhello/math2"
)

//export hello
func hello(name *C.char) {
	greeter.Hello(C.GoString(name))
}

//export many_hello
func many_hello(name *C.char, count C.int) {
	greeter.ManyHello(C.GoString(name), int(count))
}

//export err_hello
func err_hello(name *C.char) {
	greeter.ErrHello(C.GoString(name))
}

//export add
func add(a, b C.int) C.int {
	return C.int(math2.Add(int32(a), int32(b)))
}

// Required by -buildmode=c-shared; never runs.
func main() {}
