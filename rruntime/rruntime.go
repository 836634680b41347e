// Package rruntime starts goroutines with a recover handler, so a
// panicking background task is logged before it takes the process down.
package rruntime

import (
	"fmt"

	"github.com/rudderlabs/rudder-go-kit/logger"
)

// Go starts function in a new goroutine. A panic inside it is logged
// and then re-raised.
//
// If the function takes any parameters, create local variables for every
// argument before calling Go, so the arguments are evaluated
// immediately, and close over those.
func Go(function func()) {
	GoHandleError(function, panicOnError)
}

func GoHandleError(function func(), errorHandler func(err error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.NewLogger().Child("rruntime").Errorf("goroutine panicked: %v", r)
				errorHandler(fmt.Errorf("%v", r))
			}
		}()
		function()
	}()
}

func panicOnError(err error) {
	panic(err)
}

type goRoutineFactory struct{}

// GoRoutineFactory satisfies the goroutine-factory contract of
// rudder-go-kit's stats service.
var GoRoutineFactory goRoutineFactory

func (goRoutineFactory) Go(function func()) {
	Go(function)
}
