package reader

import "github.com/coreos/pkg/dlopen"

// #include <stdlib.h>
import "C"

// ReadSymbols loads the shared object at from and returns the JSON symbol
// table stored in its symbol global.
func ReadSymbols(from, symbol string) (string, error) {
	handle, err := dlopen.GetHandle([]string{from})
	if err != nil {
		return "", err
	}
	defer handle.Close()

	sym, err := handle.GetSymbolPointer(symbol)
	if err != nil {
		return "", err
	}

	return C.GoString((*C.char)(sym)), nil
}
