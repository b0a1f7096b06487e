// Package codegen implements the Coder: it turns a fully
// checked AST -- every node already carries a non-recovery Type, and every
// NameExp.Decl already resolves -- into a single C translation unit that
// links against the host's internal headers. Code generation only ever
// runs after scope analysis and checking have both reported zero errors,
// so several AST shapes the grammar allows but the checker rejects
// (indirect calls, float-to-integer casts) are treated here as internal
// compiler errors rather than re-diagnosed.
//
// Grounded on chai/bootstrap's separation between a stateless value
// builder and a stateful module writer; adapted from chai's LLVM
// ir.Module value graph to a text-based C translation unit, using the
// cemit package for the parts of the output that benefit from structure
// (signatures, registration tables) and plain string-building for
// straight-line statement sequences, matching design note §9's fragment
// proposal without forcing every line of generated C through it.
package codegen

import (
	"fmt"
	"strings"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/cemit"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// Coder holds all per-compilation state. Nothing here is package-global:
// two concurrent compiles of two different modules never share a Coder,
// so their temp counters and local-name tables never collide (design note
// §9, "Global mutable counter").
type Coder struct {
	rep    *report.Reporter
	module string

	tmpCounter   int
	localNames   map[*ast.Decl]string
	localCounter int

	curFunc *ast.Func
}

// New creates a Coder that reports internal failures through rep and
// names its Lua-visible entry point luaopen_<module>.
func New(rep *report.Reporter, module string) *Coder {
	return &Coder{
		rep:        rep,
		module:     module,
		localNames: make(map[*ast.Decl]string),
	}
}

func (c *Coder) newTemp() string {
	c.tmpCounter++
	return tempName(c.tmpCounter)
}

// localNameFor returns the mangled C name for a parameter or local
// declaration, assigning one the first time d is seen. Names are unique
// per Decl identity rather than per source name, so two sibling blocks
// that both declare "x" never collide even though the generated C does
// not always reproduce Pallene's block nesting 1:1.
func (c *Coder) localNameFor(d *ast.Decl) string {
	if d == ast.Unresolved {
		report.ICE("codegen reached the Unresolved declaration sentinel")
	}
	if name, ok := c.localNames[d]; ok {
		return name
	}
	c.localCounter++
	name := fmt.Sprintf("%s_%d", localName(d.Name), c.localCounter)
	c.localNames[d] = name
	return name
}

// Generate lowers tops to a complete C translation unit. tops must already
// have passed scope analysis and checking with zero reported errors.
func (c *Coder) Generate(tops []ast.TopLevel) (string, error) {
	assignGlobals(tops)

	var funcs []*ast.Func
	var vars []*ast.Var
	var records []*ast.Record
	for _, top := range tops {
		switch n := top.(type) {
		case *ast.Func:
			if !n.Ignore {
				funcs = append(funcs, n)
			}
		case *ast.Var:
			if !n.Ignore {
				vars = append(vars, n)
			}
		case *ast.Record:
			if !n.Ignore {
				records = append(records, n)
			}
		case *ast.Import:
			report.ICE("codegen reached an Import node; imports are rejected by the checker")
		}
	}

	var b strings.Builder
	b.WriteString(preamble)
	b.WriteByte('\n')

	cemit.Fprint(&b, recordStructs(records))
	b.WriteByte('\n')

	cemit.Fprint(&b, globalsDecl(len(funcs)+len(vars)))
	b.WriteByte('\n')

	for _, f := range funcs {
		cemit.Fprint(&b, c.funcPrototype(f))
		b.WriteString(";\n")
	}
	b.WriteByte('\n')

	for _, f := range funcs {
		cemit.Fprint(&b, c.genFunc(f))
		b.WriteByte('\n')
	}

	cemit.Fprint(&b, c.genVarInit(vars))
	b.WriteByte('\n')

	for _, f := range funcs {
		if !f.IsLocal {
			cemit.Fprint(&b, c.genLuaWrapper(f))
			b.WriteByte('\n')
		}
	}

	cemit.Fprint(&b, c.genLuaOpen(funcs))

	return b.String(), nil
}

func recordStructs(records []*ast.Record) cemit.Frag {
	var lines cemit.Lines
	for _, r := range records {
		lines = append(lines, cemit.Lit(fmt.Sprintf("/* record %s uses the host's generic Table representation; */", r.Name)))
		lines = append(lines, cemit.Lit("/* field access is not implemented; no generated code reads its fields. */"))
	}
	return lines
}

// globalsDecl emits the static handle to the module's globals table: a
// single Lua table allocated once in luaopen_<module> and anchored for the
// lifetime of the host state, holding one slot per top-level Func/Var.
func globalsDecl(n int) cemit.Frag {
	return cemit.Lines{
		cemit.Lit(fmt.Sprintf("#define PALLENE_NGLOBALS %d", n)),
		cemit.Lit("static Table *globals = NULL;"),
	}
}

func (c *Coder) funcPrototype(f *ast.Func) cemit.Frag {
	return cemit.Seq{
		cemit.Lit(ctype(returnTypeOf(f)) + " "),
		cemit.Lit(f.TitanEntryPoint),
		cemit.Lit("("),
		c.paramList(f),
		cemit.Lit(")"),
	}
}

// paramList assigns every parameter its mangled local name (via the same
// per-Coder table genFunc's body uses for DeclStat/For locals) before
// rendering the signature, so a prototype emitted ahead of the body and
// the body itself always agree on the name.
func (c *Coder) paramList(f *ast.Func) cemit.Frag {
	frags := []cemit.Frag{cemit.Lit("lua_State *L")}
	for _, p := range f.Params {
		frags = append(frags, cemit.Lit(ctype(p.Type)+" "+c.localNameFor(p)))
	}
	return cemit.Join{Sep: ", ", Frags: frags}
}

func returnTypeOf(f *ast.Func) types.Type {
	if len(f.Type.Returns) == 0 {
		return types.Nil
	}
	return f.Type.Returns[0]
}
