package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// interruptChannel receives the shutdown signals.
var interruptChannel chan os.Signal

// addHandlerChannel registers handlers with the main interrupt handler.
var addHandlerChannel = make(chan func())

// InterruptHandlersDone is closed after all interrupt handlers ran.
var InterruptHandlersDone = make(chan struct{})

var SimulateInterruptChannel = make(chan struct{}, 1)

var signals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SimulateInterrupt starts a clean shutdown from inside the process.
func SimulateInterrupt() {
	select {
	case SimulateInterruptChannel <- struct{}{}:
	default:
	}
}

// mainInterruptHandler runs the registered handlers in LIFO order on the
// first signal. It must be run as a goroutine.
func mainInterruptHandler() {
	var interruptCallbacks []func()
	invokeCallbacks := func() {
		for i := range interruptCallbacks {
			idx := len(interruptCallbacks) - 1 - i
			interruptCallbacks[idx]()
		}
		close(InterruptHandlersDone)
	}

	for {
		select {
		case <-interruptChannel:
			invokeCallbacks()
			return
		case <-SimulateInterruptChannel:
			invokeCallbacks()
			return
		case handler := <-addHandlerChannel:
			interruptCallbacks = append(interruptCallbacks, handler)
		}
	}
}

// AddInterruptHandler adds a handler to call on shutdown.
func AddInterruptHandler(handler func()) {
	if interruptChannel == nil {
		interruptChannel = make(chan os.Signal, 1)
		signal.Notify(interruptChannel, signals...)
		go mainInterruptHandler()
	}
	addHandlerChannel <- handler
}

// ShutdownContext returns a context cancelled once shutdown begins, so
// long running commands such as a chain build or a broadcast loop stop
// between two transactions.
func ShutdownContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	AddInterruptHandler(cancel)
	return ctx
}

// InterruptRequested reports whether shutdown already happened.
func InterruptRequested() bool {
	select {
	case <-InterruptHandlersDone:
		return true
	default:
	}
	return false
}
