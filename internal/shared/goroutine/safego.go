// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"hotelops/internal/shared/logger"
)

// SafeGo launches fn on a new goroutine and logs instead of crashing when it panics.
func SafeGo(log logger.Interface, name string, fn func()) {
	go Protect(log, name, fn)
}

// Protect runs fn on the calling goroutine, recovering and logging a panic.
// It reports whether fn returned normally.
func Protect(log logger.Interface, name string, fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("goroutine panicked",
				"goroutine", name,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			ok = false
		}
	}()
	fn()
	return true
}
