package codegen

import (
	"fmt"
	"strconv"

	"github.com/Cyb3rCrypt/pallene/ast"
	"github.com/Cyb3rCrypt/pallene/report"
	"github.com/Cyb3rCrypt/pallene/types"
)

// evalResult is the prelude/rvalue pair design note §9 asks for: Prelude is
// zero or more complete C statements that must run, in order, before Value
// -- a pure C expression with no remaining side effects -- is used. Every
// expression lowering function returns one of these; statement lowering
// (stmt.go) is responsible for splicing Prelude into the surrounding
// statement list ahead of whatever uses Value.
type evalResult struct {
	Prelude []string
	Value   string
}

func single(value string) evalResult { return evalResult{Value: value} }

// withPrelude folds extra statements onto the front of an evalResult whose
// Value already accounts for them, used when a caller builds a compound
// rvalue out of several sub-results.
func withPrelude(prelude []string, value string) evalResult {
	return evalResult{Prelude: prelude, Value: value}
}

func (c *Coder) genExpr(e ast.Exp) evalResult {
	switch ex := e.(type) {
	case *ast.NilLit:
		return single("0")
	case *ast.BoolLit:
		if ex.Value {
			return single("1")
		}
		return single("0")
	case *ast.IntLit:
		return single(fmt.Sprintf("%dLL", ex.Value))
	case *ast.FloatLit:
		return single(floatLit(ex.Value))
	case *ast.StringLit:
		return single(fmt.Sprintf("luaS_newliteral(L, %s)", strconv.Quote(ex.Value)))
	case *ast.NameExp:
		return c.genName(ex)
	case *ast.UnopExp:
		return c.genUnop(ex)
	case *ast.BinopExp:
		return c.genBinop(ex)
	case *ast.BracketExp:
		return c.genBracket(ex)
	case *ast.CallExp:
		return c.genCall(ex)
	case *ast.InitList:
		return c.genInitList(ex)
	case *ast.Concat:
		report.ICE("codegen reached a Concat node; string concatenation is not implemented in the core and the checker should have rejected it")
	case *ast.Cast:
		return c.genCast(ex)
	case *ast.DotExp:
		report.ICE("codegen reached a DotExp; field access is rejected by the checker")
	default:
		report.ICE("codegen reached an unhandled expression type %T", e)
	}
	return evalResult{}
}

func floatLit(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	for _, r := range s {
		if r == '.' || r == 'e' || r == 'E' || r == 'n' /* nan/inf */ {
			return s
		}
	}
	return s + ".0"
}

// genName loads the value a NameExp refers to: a parameter or local reads
// straight from its C variable; a top-level Var reads out of the module's
// globals table through the slot accessor matching its type; a Func name
// only ever appears as the callee of a CallExp, which genCall handles
// directly without going through genExpr.
func (c *Coder) genName(ex *ast.NameExp) evalResult {
	switch d := ex.Decl.(type) {
	case *ast.Decl:
		return single(c.localNameFor(d))
	case *ast.Var:
		return single(globalGet(d.VarDecl.Type, d.GlobalIndex))
	case *ast.Func:
		report.ICE("codegen reached a bare function-name expression outside of a call")
	default:
		report.ICE("codegen reached an unresolved name %q", ex.Name)
	}
	return evalResult{}
}

// globalSlot is the TValue* into the globals table array backing slot idx.
func globalSlot(idx int) string {
	return fmt.Sprintf("(&globals->array[%d])", idx)
}

// globalGet reads the native value out of slot idx, unwrapping the host's
// tagged representation with the accessor matching t.
func globalGet(t types.Type, idx int) string {
	slot := globalSlot(idx)
	switch {
	case types.HasTag(t, "Nil"):
		return "0"
	case types.HasTag(t, "Boolean"):
		return fmt.Sprintf("bvalue(%s)", slot)
	case types.HasTag(t, "Integer"):
		return fmt.Sprintf("ivalue(%s)", slot)
	case types.HasTag(t, "Float"):
		return fmt.Sprintf("fltvalue(%s)", slot)
	case types.HasTag(t, "String"):
		return fmt.Sprintf("tsvalue(%s)", slot)
	case types.HasTag(t, "Array"):
		return fmt.Sprintf("hvalue(%s)", slot)
	default:
		report.ICE("no global accessor for %s", t)
		return ""
	}
}

// globalSet returns the statement that stores native value v of type t
// into slot idx. GC-managed values (String, Array) go through the
// barrier-aware PALLENE_SET_GLOBAL_OBJ macro (preamble.go) so the globals
// table never holds a dangling reference after the next collection; flat
// values are a plain tagged store.
func globalSet(t types.Type, idx int, v string) string {
	slot := globalSlot(idx)
	switch {
	case types.HasTag(t, "Boolean"):
		return fmt.Sprintf("setbvalue(%s, %s);", slot, v)
	case types.HasTag(t, "Integer"):
		return fmt.Sprintf("setivalue(%s, %s);", slot, v)
	case types.HasTag(t, "Float"):
		return fmt.Sprintf("setfltvalue(%s, %s);", slot, v)
	case types.HasTag(t, "String"):
		return fmt.Sprintf("PALLENE_SET_GLOBAL_OBJ(L, globals, %d, obj2gco(%s), PALLENE_TAG_STR);", idx, v)
	case types.HasTag(t, "Array"):
		return fmt.Sprintf("PALLENE_SET_GLOBAL_OBJ(L, globals, %d, obj2gco(%s), PALLENE_TAG_TAB);", idx, v)
	default:
		report.ICE("no global setter for %s", t)
		return ""
	}
}

func (c *Coder) genUnop(ex *ast.UnopExp) evalResult {
	operand := c.genExpr(ex.Exp)
	switch ex.Op {
	case ast.UnNeg:
		if types.HasTag(ex.Exp.GetType(), "Integer") {
			return withPrelude(operand.Prelude, fmt.Sprintf("intop(-, 0, %s)", operand.Value))
		}
		return withPrelude(operand.Prelude, fmt.Sprintf("(-(%s))", operand.Value))
	case ast.UnNot:
		return withPrelude(operand.Prelude, fmt.Sprintf("(!(%s))", operand.Value))
	case ast.UnLen:
		return withPrelude(operand.Prelude, fmt.Sprintf("((lua_Integer)luaH_getn(%s))", operand.Value))
	case ast.UnBNot:
		return withPrelude(operand.Prelude, fmt.Sprintf("(~(%s))", operand.Value))
	}
	report.ICE("codegen reached an unhandled unary operator %d", ex.Op)
	return evalResult{}
}

func (c *Coder) genBinop(ex *ast.BinopExp) evalResult {
	if ex.Op == ast.BinAnd || ex.Op == ast.BinOr {
		return c.genShortCircuit(ex)
	}
	if ex.Op == ast.BinConcatOp {
		report.ICE("codegen reached a BinConcatOp; string concatenation is not implemented in the core and the checker should have rejected it")
	}

	lhs := c.genExpr(ex.Lhs)
	rhs := c.genExpr(ex.Rhs)
	prelude := append(append([]string{}, lhs.Prelude...), rhs.Prelude...)
	lt := ex.Lhs.GetType()

	value := c.binopValue(ex.Op, lt, lhs.Value, rhs.Value)
	return withPrelude(prelude, value)
}

func (c *Coder) binopValue(op ast.BinOp, lt types.Type, a, b string) string {
	isFloat := types.HasTag(lt, "Float")

	switch op {
	case ast.BinAdd:
		if isFloat {
			return fmt.Sprintf("(%s + %s)", a, b)
		}
		return fmt.Sprintf("intop(+, %s, %s)", a, b)
	case ast.BinSub:
		if isFloat {
			return fmt.Sprintf("(%s - %s)", a, b)
		}
		return fmt.Sprintf("intop(-, %s, %s)", a, b)
	case ast.BinMul:
		if isFloat {
			return fmt.Sprintf("(%s * %s)", a, b)
		}
		return fmt.Sprintf("intop(*, %s, %s)", a, b)
	case ast.BinDiv:
		return fmt.Sprintf("((lua_Number)(%s) / (lua_Number)(%s))", a, b)
	case ast.BinPow:
		return fmt.Sprintf("pow((lua_Number)(%s), (lua_Number)(%s))", a, b)
	case ast.BinMod:
		if isFloat {
			return fmt.Sprintf("luai_nummod_wrap(%s, %s)", a, b)
		}
		return fmt.Sprintf("luaV_mod(L, %s, %s)", a, b)
	case ast.BinIDiv:
		if isFloat {
			return fmt.Sprintf("floor((lua_Number)(%s) / (lua_Number)(%s))", a, b)
		}
		return fmt.Sprintf("luaV_idiv(L, %s, %s)", a, b)
	case ast.BinBXor:
		return fmt.Sprintf("(%s ^ %s)", a, b)
	case ast.BinBOr:
		return fmt.Sprintf("(%s | %s)", a, b)
	case ast.BinBAnd:
		return fmt.Sprintf("(%s & %s)", a, b)
	case ast.BinShl:
		return fmt.Sprintf("luaV_shiftl(%s, %s)", a, b)
	case ast.BinShr:
		return fmt.Sprintf("luaV_shiftl(%s, -(%s))", a, b)
	case ast.BinLt:
		return c.compare("<", lt, a, b)
	case ast.BinGt:
		return c.compare(">", lt, a, b)
	case ast.BinLe:
		return c.compare("<=", lt, a, b)
	case ast.BinGe:
		return c.compare(">=", lt, a, b)
	case ast.BinEq:
		return c.equality(lt, a, b, false)
	case ast.BinNe:
		return c.equality(lt, a, b, true)
	}
	report.ICE("codegen reached an unhandled binary operator %d", op)
	return ""
}

func (c *Coder) compare(op string, lt types.Type, a, b string) string {
	if types.HasTag(lt, "String") {
		return fmt.Sprintf("(PALLENE_STR_CMP(%s, %s) %s 0)", a, b, op)
	}
	return fmt.Sprintf("(%s %s %s)", a, op, b)
}

func (c *Coder) equality(lt types.Type, a, b string, negate bool) string {
	var cmp string
	if types.HasTag(lt, "String") {
		cmp = fmt.Sprintf("PALLENE_STR_EQ(%s, %s)", a, b)
	} else {
		cmp = fmt.Sprintf("(%s == %s)", a, b)
	}
	if negate {
		return fmt.Sprintf("(!%s)", cmp)
	}
	return cmp
}

// genShortCircuit implements Lua's and/or value semantics:
// the emitted temp holds whichever operand's value actually won, evaluating
// the right side only when the left side's truth value requires it.
func (c *Coder) genShortCircuit(ex *ast.BinopExp) evalResult {
	lhs := c.genExpr(ex.Lhs)
	tmp := c.newTemp()
	ct := ctype(ex.GetType())

	var guard string
	if ex.Op == ast.BinAnd {
		guard = fmt.Sprintf("if (%s) {", lhs.Value)
	} else {
		guard = fmt.Sprintf("if (!(%s)) {", lhs.Value)
	}

	rhs := c.genExpr(ex.Rhs)
	var body []string
	body = append(body, rhs.Prelude...)
	body = append(body, fmt.Sprintf("%s = %s;", tmp, rhs.Value))

	prelude := append([]string{}, lhs.Prelude...)
	prelude = append(prelude, fmt.Sprintf("%s %s;", ct, tmp))
	prelude = append(prelude, fmt.Sprintf("%s = %s;", tmp, lhs.Value))
	prelude = append(prelude, guard)
	prelude = append(prelude, indentAll(body)...)
	prelude = append(prelude, "}")

	return withPrelude(prelude, tmp)
}

func indentAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = "  " + l
	}
	return out
}

func (c *Coder) genBracket(ex *ast.BracketExp) evalResult {
	arr := c.genExpr(ex.Exp)
	idx := c.genExpr(ex.Index)
	prelude := append(append([]string{}, arr.Prelude...), idx.Prelude...)

	tmp := c.newTemp()
	prelude = append(prelude, fmt.Sprintf("const TValue *%s = luaH_getint(%s, %s);", tmp, arr.Value, idx.Value))

	return withPrelude(prelude, globalGetFromSlot(ex.GetType(), tmp))
}

// globalGetFromSlot is globalGet's sibling for a TValue* that is not a
// globals-table slot (an array element, in particular).
func globalGetFromSlot(t types.Type, slot string) string {
	switch {
	case types.HasTag(t, "Nil"):
		return "0"
	case types.HasTag(t, "Boolean"):
		return fmt.Sprintf("bvalue(%s)", slot)
	case types.HasTag(t, "Integer"):
		return fmt.Sprintf("ivalue(%s)", slot)
	case types.HasTag(t, "Float"):
		return fmt.Sprintf("fltvalue(%s)", slot)
	case types.HasTag(t, "String"):
		return fmt.Sprintf("tsvalue(%s)", slot)
	case types.HasTag(t, "Array"):
		return fmt.Sprintf("hvalue(%s)", slot)
	default:
		report.ICE("no slot accessor for %s", t)
		return ""
	}
}

func (c *Coder) genCall(ex *ast.CallExp) evalResult {
	name, ok := ex.Exp.(*ast.NameExp)
	if !ok {
		report.ICE("codegen reached an indirect call; the checker rejects this")
	}
	fn, ok := name.Decl.(*ast.Func)
	if !ok {
		report.ICE("codegen reached a call to a non-function decl; the checker rejects this")
	}

	var prelude []string
	args := []string{"L"}
	for _, a := range ex.Args {
		r := c.genExpr(a)
		prelude = append(prelude, r.Prelude...)
		args = append(args, r.Value)
	}

	value := fmt.Sprintf("%s(%s)", fn.TitanEntryPoint, joinArgs(args))
	return withPrelude(prelude, value)
}

func joinArgs(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}

func (c *Coder) genInitList(ex *ast.InitList) evalResult {
	arr := ex.GetType().(*types.ArrayType)

	var prelude []string
	tmp := c.newTemp()
	prelude = append(prelude, fmt.Sprintf("Table *%s = luaH_new(L);", tmp))
	prelude = append(prelude, fmt.Sprintf("luaH_resize(L, %s, %d, 0);", tmp, len(ex.Exps)))

	for i, el := range ex.Exps {
		r := c.genExpr(el)
		prelude = append(prelude, r.Prelude...)
		slot := c.newTemp()
		prelude = append(prelude, fmt.Sprintf("TValue *%s = luaH_setint(L, %s, %d);", slot, tmp, i+1))
		prelude = append(prelude, setSlot(arr.Elem, slot, r.Value))
		prelude = append(prelude, fmt.Sprintf("luaC_barrierback(L, obj2gco(%s), %s);", tmp, slot))
	}

	return withPrelude(prelude, tmp)
}

// setSlot returns the statement that stores v of type t into the TValue*
// named slot, using the accessor that matches t's representation.
func setSlot(t types.Type, slot, v string) string {
	switch {
	case types.HasTag(t, "Nil"):
		return fmt.Sprintf("setnilvalue(%s);", slot)
	case types.HasTag(t, "Boolean"):
		return fmt.Sprintf("setbvalue(%s, %s);", slot, v)
	case types.HasTag(t, "Integer"):
		return fmt.Sprintf("setivalue(%s, %s);", slot, v)
	case types.HasTag(t, "Float"):
		return fmt.Sprintf("setfltvalue(%s, %s);", slot, v)
	case types.HasTag(t, "String"):
		return fmt.Sprintf("setsvalue(L, %s, %s);", slot, v)
	case types.HasTag(t, "Array"):
		return fmt.Sprintf("sethvalue(L, %s, %s);", slot, v)
	default:
		report.ICE("no slot setter for %s", t)
		return ""
	}
}

func (c *Coder) genCast(ex *ast.Cast) evalResult {
	src := c.genExpr(ex.Exp)
	from := ex.Exp.GetType()
	to := ex.GetType()

	switch {
	case types.Equals(from, to):
		return src
	case types.HasTag(from, "Integer") && types.HasTag(to, "Float"):
		return withPrelude(src.Prelude, fmt.Sprintf("((lua_Number)(%s))", src.Value))
	default:
		report.ICE("codegen reached an unsupported cast %s -> %s; the checker rejects this", from, to)
		return evalResult{}
	}
}
