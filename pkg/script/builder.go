package script

import (
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/treesmith/treesmith/pkg/errors"
)

// builder accumulates script text. Every embedded path or argument
// goes through shell quoting; the first quoting failure is kept and
// reported once at the end, so emission code stays linear.
type builder struct {
	buf strings.Builder
	err error
}

// quote returns s quoted for bash. Plain words come back unchanged, so
// the generated scripts stay readable.
func (b *builder) quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil && b.err == nil {
		b.err = errors.Wrapf(err, errors.ErrScriptGen, "cannot embed %q in a script", s)
	}
	return q
}

// line writes one raw line.
func (b *builder) line(s string) {
	b.buf.WriteString(s)
	b.buf.WriteByte('\n')
}

// linef writes one formatted raw line. Arguments are embedded verbatim
// and must already be quoted.
func (b *builder) linef(format string, args ...interface{}) {
	b.line(fmt.Sprintf(format, args...))
}

// quotedLine joins argv into one command string, quoting every
// argument.
func (b *builder) quotedLine(argv ...string) string {
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = b.quote(a)
	}
	return strings.Join(quoted, " ")
}

// cmd writes one command line, quoting every argument.
func (b *builder) cmd(argv ...string) {
	b.line(b.quotedLine(argv...))
}

// blank writes an empty line.
func (b *builder) blank() {
	b.buf.WriteByte('\n')
}

// text returns the accumulated script, or the first quoting error.
func (b *builder) text() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.buf.String(), nil
}
