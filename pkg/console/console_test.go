package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterOutput(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Banner("Demo")
	p.Section("Step 1")
	p.Line("%d. %s", 1, p.Accent("hello"))
	p.Success("done %s", "!")

	out := buf.String()
	for _, want := range []string{"Demo", "═", "【Step 1】", "─", "hello", "done !"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
