// Package cemit implements the structured emitter design note §9 asks for:
// "a tree of fragments with named holes" in place of whole-program string
// substitution. A Frag is rendered into a strings.Builder; a "hole" is an
// ordinary Go struct field holding another Frag, so the Go compiler itself
// rejects a misspelled substitution point at compile time -- there is no
// map[string]string lookup anywhere in this package for a typo to hide in.
//
// There is no direct chai analogue for this package (chai builds an LLVM
// ir.Module value graph instead of text); it is shaped after that pattern
// ("construct typed values, then print") but targets C source text.
package cemit

import (
	"io"
	"strings"
)

// Frag is implemented by every fragment of generated C.
type Frag interface {
	Render(b *strings.Builder)
}

// Lit is a fragment of literal text with no holes.
type Lit string

// Render writes l verbatim.
func (l Lit) Render(b *strings.Builder) { b.WriteString(string(l)) }

// Seq concatenates fragments in order with nothing between them.
type Seq []Frag

// Render writes every fragment in s in order.
func (s Seq) Render(b *strings.Builder) {
	for _, f := range s {
		if f != nil {
			f.Render(b)
		}
	}
}

// Join renders frags in order separated by sep.
type Join struct {
	Sep   string
	Frags []Frag
}

// Render writes j.Frags separated by j.Sep.
func (j Join) Render(b *strings.Builder) {
	for i, f := range j.Frags {
		if i > 0 {
			b.WriteString(j.Sep)
		}
		if f != nil {
			f.Render(b)
		}
	}
}

// Lines joins frags with a trailing newline after each, including the last.
type Lines []Frag

// Render writes each fragment in ls followed by a newline.
func (ls Lines) Render(b *strings.Builder) {
	for _, f := range ls {
		if f != nil {
			f.Render(b)
			b.WriteByte('\n')
		}
	}
}

// Sprint renders f to a string.
func Sprint(f Frag) string {
	var b strings.Builder
	f.Render(&b)
	return b.String()
}

// Fprint renders f to w.
func Fprint(w io.Writer, f Frag) (int, error) {
	return io.WriteString(w, Sprint(f))
}
