package middleware

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"

	"video-splitter/internal/logging"
)

// recoveryLogger routes gorilla's recovery output through the process logger.
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	logging.Error("panic recovered: %s", fmt.Sprint(v...))
}

// Recover turns a panicking handler into a 500 response and logs the value
// and stack.
func Recover(next http.Handler) http.Handler {
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(next)
}
