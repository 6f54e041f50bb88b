package async

import (
	"runtime/debug"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithField("component", "async")

func pcall(name string, fn func()) {
	defer func() {
		if err := recover(); err != nil {
			logger.WithField("task", name).Errorf("async/pcall: Error=%v\n%s", err, debug.Stack())
		}
	}()

	fn()
}

// Run executes fn in a new goroutine. A panic is logged instead of
// crashing the process.
func Run(name string, fn func()) {
	go pcall(name, fn)
}

// Start is like Run, the returned channel is closed once fn has returned
// or panicked.
func Start(name string, fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		pcall(name, fn)
	}()
	return done
}
