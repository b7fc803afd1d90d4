package prompt

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// RenderDiff marks up the change from existing to suggested. With colour,
// deletions are red and insertions green; without it deletions read [-x-]
// and insertions {+x+}.
func RenderDiff(existing, suggested string, colorize bool) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(existing, suggested, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			if colorize {
				b.WriteString(ansiRed + d.Text + ansiReset)
			} else {
				b.WriteString("[-" + d.Text + "-]")
			}
		case diffmatchpatch.DiffInsert:
			if colorize {
				b.WriteString(ansiGreen + d.Text + ansiReset)
			} else {
				b.WriteString("{+" + d.Text + "+}")
			}
		case diffmatchpatch.DiffEqual:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
