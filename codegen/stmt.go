package codegen

import (
	"fmt"
	"strings"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/cemit"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// genFunc emits one top-level function's definition: signature, then a
// braced body built from its Block. curFunc tracks which function a Return
// belongs to, mirroring the checker's own curFunc bookkeeping.
func (c *Coder) genFunc(f *ast.Func) fragLines {
	c.curFunc = f
	defer func() { c.curFunc = nil }()

	var lines fragLines
	lines = append(lines, c.funcPrototypeString(f)+" {")
	lines = append(lines, indentAll(c.genBlock(f.Block))...)
	if noTrailingReturn(f) {
		lines = append(lines, indentAll(defaultReturn(f))...)
	}
	lines = append(lines, "}")
	return lines
}

func (c *Coder) funcPrototypeString(f *ast.Func) string {
	return cemit.Sprint(c.funcPrototype(f))
}

// noTrailingReturn reports whether the body's last statement is something
// other than a Return, in which case genFunc appends a default return. That
// covers nil-returning functions that simply fall off the end and bodies
// the checker accepts as "definitely returns" without a final Return (an
// If whose arms all return), which the C compiler cannot see through on
// its own.
func noTrailingReturn(f *ast.Func) bool {
	stats := f.Block.Stats
	if len(stats) == 0 {
		return true
	}
	_, ok := stats[len(stats)-1].(*ast.Return)
	return !ok
}

func defaultReturn(f *ast.Func) []string {
	if len(f.Type.Returns) == 0 {
		return []string{"return 0;"}
	}
	return []string{fmt.Sprintf("return (%s)0;", ctype(f.Type.Returns[0]))}
}

// fragLines is a sequence of already-indented C source lines. It satisfies
// cemit.Frag so statement-lowering output (built as plain []string, since
// nearly every line here is a one-off printf-style statement rather than a
// structure worth a dedicated Frag type) can still be spliced into the
// Seq/Lines-built parts of the translation unit in emitter.go.
type fragLines []string

func (ls fragLines) Render(b *strings.Builder) {
	for _, l := range ls {
		b.WriteString(l)
		b.WriteByte('\n')
	}
}

func (c *Coder) genBlock(b *ast.Block) fragLines {
	var lines fragLines
	for _, s := range b.Stats {
		lines = append(lines, c.genStat(s)...)
	}
	return lines
}

func (c *Coder) genStat(s ast.Stat) fragLines {
	switch st := s.(type) {
	case *ast.Block:
		var lines fragLines
		lines = append(lines, "{")
		lines = append(lines, indentAll(c.genBlock(st))...)
		lines = append(lines, "}")
		return lines
	case *ast.While:
		return c.genWhile(st)
	case *ast.Repeat:
		return c.genRepeat(st)
	case *ast.If:
		return c.genIf(st)
	case *ast.For:
		return c.genFor(st)
	case *ast.Assign:
		return c.genAssign(st)
	case *ast.DeclStat:
		return c.genDeclStat(st)
	case *ast.Call:
		r := c.genExpr(st.CallExp)
		var lines fragLines
		lines = append(lines, r.Prelude...)
		lines = append(lines, r.Value+";")
		return lines
	case *ast.Return:
		return c.genReturn(st)
	default:
		report.ICE("codegen reached an unhandled statement type %T", s)
		return nil
	}
}

func (c *Coder) genWhile(st *ast.While) fragLines {
	cond := c.genExpr(st.Cond)
	var lines fragLines
	lines = append(lines, "for (;;) {")
	var body fragLines
	body = append(body, cond.Prelude...)
	body = append(body, fmt.Sprintf("if (!(%s)) break;", cond.Value))
	body = append(body, c.genBlock(st.Block)...)
	lines = append(lines, indentAll(body)...)
	lines = append(lines, "}")
	return lines
}

// genRepeat lowers "repeat block until cond" as for(;;){ body; prelude; if
// (cond) break; }: the condition is evaluated, and its prelude executed,
// after the body -- so a local the body declares is still in scope when
// the condition reads it.
func (c *Coder) genRepeat(st *ast.Repeat) fragLines {
	cond := c.genExpr(st.Cond)
	var lines fragLines
	lines = append(lines, "for (;;) {")
	var body fragLines
	body = append(body, c.genBlock(st.Block)...)
	body = append(body, cond.Prelude...)
	body = append(body, fmt.Sprintf("if (%s) break;", cond.Value))
	lines = append(lines, indentAll(body)...)
	lines = append(lines, "}")
	return lines
}

// genIf unfolds the elseif chain right-to-left: each arm's condition
// prelude is only valid once every earlier arm's condition has already
// tested false, so it is nested inside the previous arm's else branch
// rather than hoisted to the top.
func (c *Coder) genIf(st *ast.If) fragLines {
	return c.genIfArms(st.Thens, st.Else)
}

func (c *Coder) genIfArms(arms []ast.CondBlock, els *ast.Block) fragLines {
	if len(arms) == 0 {
		if els == nil {
			return nil
		}
		var lines fragLines
		lines = append(lines, "{")
		lines = append(lines, indentAll(c.genBlock(els))...)
		lines = append(lines, "}")
		return lines
	}

	arm := arms[0]
	cond := c.genExpr(arm.Cond)

	var lines fragLines
	lines = append(lines, cond.Prelude...)
	lines = append(lines, fmt.Sprintf("if (%s) {", cond.Value))
	lines = append(lines, indentAll(c.genBlock(arm.Block))...)
	rest := c.genIfArms(arms[1:], els)
	if len(rest) > 0 {
		lines = append(lines, "} else {")
		lines = append(lines, indentAll(rest)...)
		lines = append(lines, "}")
	} else {
		lines = append(lines, "}")
	}
	return lines
}

// genFor lowers the numeric for loop. The loop variable, limit, and step
// are each evaluated once into their own C locals before the loop starts,
// matching Lua's own forprep semantics (the expressions are not
// re-evaluated every iteration); the direction of the comparison is
// decided once, from the sign of the step, rather than re-checked every
// iteration.
func (c *Coder) genFor(st *ast.For) fragLines {
	start := c.genExpr(st.Start)
	finish := c.genExpr(st.Finish)

	var step evalResult
	if st.Step != nil {
		step = c.genExpr(st.Step)
	} else {
		step = single("1")
	}

	elemType := st.Decl.Type
	ct := ctype(elemType)
	loopVar := c.localNameFor(st.Decl)
	limit := c.newTemp()
	stepVar := c.newTemp()

	var lines fragLines
	lines = append(lines, "{")
	var body fragLines
	body = append(body, start.Prelude...)
	body = append(body, fmt.Sprintf("%s %s = %s;", ct, loopVar, start.Value))
	body = append(body, finish.Prelude...)
	body = append(body, fmt.Sprintf("%s %s = %s;", ct, limit, finish.Value))
	body = append(body, step.Prelude...)
	body = append(body, fmt.Sprintf("%s %s = %s;", ct, stepVar, step.Value))

	advance := fmt.Sprintf("%s + %s", loopVar, stepVar)
	if types.HasTag(elemType, "Integer") {
		advance = fmt.Sprintf("intop(+, %s, %s)", loopVar, stepVar)
	}

	body = append(body, fmt.Sprintf("if (%s > 0) {", stepVar))
	body = append(body, fmt.Sprintf("  for (; %s <= %s; %s = %s) {", loopVar, limit, loopVar, advance))
	body = append(body, indentAll(indentAll(c.genBlock(st.Block)))...)
	body = append(body, "  }")
	body = append(body, "} else {")
	body = append(body, fmt.Sprintf("  for (; %s >= %s; %s = %s) {", loopVar, limit, loopVar, advance))
	body = append(body, indentAll(indentAll(c.genBlock(st.Block)))...)
	body = append(body, "  }")
	body = append(body, "}")

	lines = append(lines, indentAll(body)...)
	lines = append(lines, "}")
	return lines
}

func (c *Coder) genAssign(st *ast.Assign) fragLines {
	rhs := c.genExpr(st.Exp)
	var lines fragLines
	lines = append(lines, rhs.Prelude...)

	switch lv := st.Var.(type) {
	case *ast.NameExp:
		switch d := lv.Decl.(type) {
		case *ast.Decl:
			lines = append(lines, fmt.Sprintf("%s = %s;", c.localNameFor(d), rhs.Value))
		case *ast.Var:
			lines = append(lines, globalSet(d.VarDecl.Type, d.GlobalIndex, rhs.Value))
		default:
			report.ICE("codegen reached an assignment to an unresolved name")
		}
	case *ast.BracketExp:
		arr := c.genExpr(lv.Exp)
		idx := c.genExpr(lv.Index)
		lines = append(lines, arr.Prelude...)
		lines = append(lines, idx.Prelude...)
		slot := c.newTemp()
		lines = append(lines, fmt.Sprintf("TValue *%s = luaH_setint(L, %s, %s);", slot, arr.Value, idx.Value))
		lines = append(lines, setSlot(lv.GetType(), slot, rhs.Value))
		lines = append(lines, fmt.Sprintf("luaC_barrierback(L, obj2gco(%s), %s);", arr.Value, slot))
	default:
		report.ICE("codegen reached an assignment to an unsupported lvalue %T", st.Var)
	}
	return lines
}

func (c *Coder) genDeclStat(st *ast.DeclStat) fragLines {
	rhs := c.genExpr(st.Exp)
	name := c.localNameFor(st.Decl)
	var lines fragLines
	lines = append(lines, rhs.Prelude...)
	lines = append(lines, fmt.Sprintf("%s %s = %s;", ctype(st.Decl.Type), name, rhs.Value))
	return lines
}

func (c *Coder) genReturn(st *ast.Return) fragLines {
	if st.Exp == nil {
		return fragLines{"return 0;"}
	}
	r := c.genExpr(st.Exp)
	var lines fragLines
	lines = append(lines, r.Prelude...)
	lines = append(lines, fmt.Sprintf("return %s;", r.Value))
	return lines
}
