// Package logger provides the plain stdlib logger used by the NewsGuard
// command-line tools, where structured output would just be noise.
package logger

import (
	"fmt"
	"log"
	"os"
)

// New returns a stdout logger prefixed with the tool name.
func New(component string) *log.Logger {
	prefix := fmt.Sprintf("[%s] ", component)
	return log.New(os.Stdout, prefix, log.LstdFlags|log.Lshortfile)
}
