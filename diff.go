package wiremodel

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/wiremodel/wiremodel-go/debug"
	"github.com/wiremodel/wiremodel-go/encode"
)

type diffCfg struct {
	color bool
}

type DiffOpt func(*diffCfg)

// DiffColor colorizes inserted and deleted lines.
func DiffColor(v bool) DiffOpt {
	return func(c *diffCfg) { c.color = v }
}

// Diff renders a line-based comparison of the encoded forms of from
// and to.  If there are no differences, Diff returns "".
func Diff(from, to any, opts ...DiffOpt) (string, error) {
	cfg := &diffCfg{}
	for _, opt := range opts {
		opt(cfg)
	}
	a, err := encode.JSON(from, encode.Indent(2))
	if err != nil {
		return "", err
	}
	b, err := encode.JSON(to, encode.Indent(2))
	if err != nil {
		return "", err
	}
	if string(a) == string(b) {
		return "", nil
	}
	if debug.Diff() {
		debug.Logf("diff %d bytes vs %d bytes\n", len(a), len(b))
	}

	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(string(a)+"\n", string(b)+"\n")
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix, paint := "  ", nopaint
		switch d.Type {
		case diffpatch.DiffInsert:
			prefix = "+ "
			if cfg.color {
				paint = color.GreenString
			}
		case diffpatch.DiffDelete:
			prefix = "- "
			if cfg.color {
				paint = color.RedString
			}
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(paint("%s%s", prefix, line))
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

func nopaint(format string, a ...any) string {
	return fmt.Sprintf(format, a...)
}
