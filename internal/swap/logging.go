package swap

import (
	"log"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Logger is the informational-line sink swap_init and check_pressure
// write to (spec sections 4.A and 4.F each call for "one informational
// line"). Grounded on the teacher's direct fmt.Printf/cprintf calls,
// generalized into an injectable interface so tests can capture
// output instead of writing to stdout.
type Logger interface {
	Printf(format string, args ...interface{})
}

// stdLogger adapts the standard library's *log.Logger to Logger.
type stdLogger struct{ l *log.Logger }

func (s stdLogger) Printf(format string, args ...interface{}) { s.l.Printf(format, args...) }

// DefaultLogger wraps log.Default().
func DefaultLogger() Logger { return stdLogger{l: log.Default()} }

// numberPrinter formats large slot/threshold/batch counts with
// locale-correct digit grouping, so the informational lines read
// sensibly even for a simulator configured with far more than
// NSWAPSLOTS=800 slots. Grounded on the teacher's own
// golang.org/x/text dependency.
var numberPrinter = message.NewPrinter(language.English)

// formatCount renders n using numberPrinter, e.g. "12,345".
func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}
