// File: api/errors.go
//
// Common error values shared across the library.

package api

import "fmt"

var (
	ErrLoopClosed = fmt.Errorf("event loop is closed")
	ErrNotArmed   = fmt.Errorf("descriptor is not armed")
)
