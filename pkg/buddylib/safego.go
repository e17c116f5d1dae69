package buddylib

import (
	"runtime/debug"
	"sync"

	"github.com/studybuddy/remindd/pkg/logger"
)

// SafeGo runs fn in a goroutine with panic recovery. A panicking timer
// callback must never escape to the runtime, so every fire path in the
// scheduler goes through here.
// If wg is non-nil, it is decremented on completion (normal or panic).
// If onPanic is non-nil, it is called with the recovered value.
func SafeGo(l logger.Logger, wg *sync.WaitGroup, context string, onPanic func(r any), fn func()) {
	go func() {
		if wg != nil {
			defer wg.Done()
		}
		defer func() {
			if r := recover(); r != nil {
				if l != nil {
					l.Error("PANIC [%s]: %v\n%s", context, r, debug.Stack())
				}
				if onPanic != nil {
					onPanic(r)
				}
			}
		}()
		fn()
	}()
}
