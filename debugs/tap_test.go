package debugs

import (
	"bytes"
	"context"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/undotape/modes"
)

func TestTapDump(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(
		modes.ForTest(t),
		new(Module),
	).Fork(
		func() Interactive {
			return false
		},
		func() DumpWriter {
			return buf
		},
	).Call(func(
		tap Tap,
	) {
		tap(context.Background(), "test", map[string]any{
			"pc":     3,
			"halted": true,
			"window": []byte{1, 2},
		})
	})

	if got := buf.String(); got != "halted = True\npc = 3\nwindow = [1, 2]\n" {
		t.Fatalf("got %q", got)
	}
}
