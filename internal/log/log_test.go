package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLog_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	Info(CatNav, "navigated", "uri", "/Root", "id")

	out := buf.String()
	require.Contains(t, out, "[INFO] [nav] navigated uri=/Root id=<missing>")
	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
}

func TestLog_MinLevelAndDisable(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	SetMinLevel(LevelWarn)
	Debug(CatRegistry, "hidden")
	Warn(CatRegistry, "shown")
	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "[WARN] [registry] shown")

	buf.Reset()
	SetEnabled(false)
	Error(CatRegistry, "muted")
	require.Empty(t, buf.String())
}

func TestLog_ErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(Reset)

	ErrorErr(CatJournal, "back failed", errors.New("empty"))
	ErrorErr(CatJournal, "nil error", nil)

	require.Contains(t, buf.String(), "back failed error=empty")
	require.Contains(t, buf.String(), "nil error error=<nil>")
}

func TestLog_Subscribe(t *testing.T) {
	InitWriter(nil)
	t.Cleanup(Reset)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := Subscribe(ctx)
	require.NotNil(t, ch)

	Info(CatCache, "hit", "key", "Root")

	select {
	case ev := <-ch:
		require.Contains(t, ev.Payload, "[cache] hit key=Root")
	case <-time.After(time.Second):
		require.Fail(t, "no log event published")
	}
}

func TestLog_NoLogger(t *testing.T) {
	Reset()
	require.Nil(t, Subscribe(context.Background()))
	require.NotPanics(t, func() { Info(CatCLI, "dropped") })
}

func TestFormatEntry_QuotesAwkwardValues(t *testing.T) {
	at := time.Date(2025, 12, 6, 10, 45, 0, 0, time.UTC)

	line := formatEntry(at, LevelWarn, CatCLI, "step failed", []any{"arg", "..", "err", "a b", "q", "k=v"})

	require.Equal(t, "2025-12-06T10:45:00 [WARN] [cli] step failed arg=.. err=\"a b\" q=\"k=v\"\n", line)
	require.Equal(t, "UNKNOWN", Level(9).String())
}
