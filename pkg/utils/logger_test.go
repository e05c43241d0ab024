package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerLevels(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerTo(&out, &errOut)

	l.Infof("generated %d lines", 3)
	l.Warnf("unit mismatch for %s", "carrot")
	l.Error("store unavailable")

	assert.Contains(t, out.String(), "INFO: ")
	assert.Contains(t, out.String(), "generated 3 lines")
	assert.Contains(t, errOut.String(), "WARN: ")
	assert.Contains(t, errOut.String(), "unit mismatch for carrot")
	assert.Contains(t, errOut.String(), "ERROR: ")
	assert.NotContains(t, out.String(), "store unavailable")
}
