package swap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type capturingLogger struct {
	lines []string
}

func (l *capturingLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}

func TestSlotTableInitLogsOnce(t *testing.T) {
	logger := &capturingLogger{}
	st := NewSlotTable(logger)
	st.Init()
	require.Len(t, logger.lines, 1)
}

func TestFormatCountGroupsDigits(t *testing.T) {
	require.Equal(t, "1,234,567", formatCount(1234567))
	require.Equal(t, "42", formatCount(42))
}
