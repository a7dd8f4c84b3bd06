package diag

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_New_WritesRecordsAtOrAboveLevel(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	l := New(&buf, slog.LevelInfo)

	l.FixpointPass("FIRST", 1, true)
	l.StateBuilt("build-1", 0, 4)

	out := buf.String()
	assert.NotContains(out, "fixpoint pass", "debug records should be filtered out below LevelInfo")
	assert.Contains(out, "state built")
	assert.Contains(out, "build-1")
}

func Test_Discard_WritesNothing(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer

	d := Discard()
	d.Shift("build-2", 3, "x")
	d.Reduce("build-2", 3, "C")
	d.Accept("build-2")

	assert.Empty(strings.TrimSpace(buf.String()), "Discard is backed by io.Discard, never buf")
}
