// Package types implements the type lattice: a closed sum of
// Nil, Boolean, Integer, Float, String, Array, Function, and Record, with
// structural equality (nominal for records) and a canonical printer used in
// diagnostics. Grounded on chai/bootstrap/types/types.go's interface-based
// type sum, simplified from chai's primitive-width lattice to seven
// variants plus Record.
package types

import "strings"

// Type is the interface every variant of the lattice implements. Methods are
// unexported by design: callers compare and print types through the package
// functions below rather than type-switching on the interface themselves,
// the same discipline chai's own Type interface enforces.
type Type interface {
	equals(other Type) bool
	tag() string
	String() string
}

// Equals reports whether a and b are the same type: structural equality for
// every variant except Record, which compares by declaration identity
// (nominal typing).
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.equals(b)
}

// HasTag reports whether t is the variant named by tagName ("Nil", "Boolean",
// "Integer", "Float", "String", "Array", "Function", "Record").
func HasTag(t Type, tagName string) bool {
	return t != nil && t.tag() == tagName
}

// IsNumeric reports whether t is Integer or Float, the operand class the
// checker requires for arithmetic and relational operators.
func IsNumeric(t Type) bool {
	return HasTag(t, "Integer") || HasTag(t, "Float")
}

// -----------------------------------------------------------------------------

type nilType struct{}

// Nil is the singleton Nil type.
var Nil Type = nilType{}

func (nilType) equals(other Type) bool { return HasTag(other, "Nil") }
func (nilType) tag() string            { return "Nil" }
func (nilType) String() string         { return "nil" }

type booleanType struct{}

// Boolean is the singleton Boolean type.
var Boolean Type = booleanType{}

func (booleanType) equals(other Type) bool { return HasTag(other, "Boolean") }
func (booleanType) tag() string            { return "Boolean" }
func (booleanType) String() string         { return "boolean" }

type integerType struct{}

// Integer is the singleton Integer type. Integer and Float are distinct
// types with no implicit coercion between them at the type level; a Cast
// expression is the only way to convert.
var Integer Type = integerType{}

func (integerType) equals(other Type) bool { return HasTag(other, "Integer") }
func (integerType) tag() string            { return "Integer" }
func (integerType) String() string         { return "integer" }

type floatType struct{}

// Float is the singleton Float type.
var Float Type = floatType{}

func (floatType) equals(other Type) bool { return HasTag(other, "Float") }
func (floatType) tag() string            { return "Float" }
func (floatType) String() string         { return "float" }

type stringType struct{}

// String is the singleton String type.
var String Type = stringType{}

func (stringType) equals(other Type) bool { return HasTag(other, "String") }
func (stringType) tag() string            { return "String" }
func (stringType) String() string         { return "string" }

// -----------------------------------------------------------------------------

// ArrayType is an array of a single element type: "{T}" in source syntax.
type ArrayType struct {
	Elem Type
}

// NewArray constructs an ArrayType over elem.
func NewArray(elem Type) *ArrayType {
	return &ArrayType{Elem: elem}
}

func (a *ArrayType) equals(other Type) bool {
	oa, ok := other.(*ArrayType)
	return ok && Equals(a.Elem, oa.Elem)
}

func (a *ArrayType) tag() string { return "Array" }

func (a *ArrayType) String() string {
	return "{" + a.Elem.String() + "}"
}

// -----------------------------------------------------------------------------

// FunctionType is a function signature: "(T1,...) -> (U1,...)" in source
// syntax. The core only emits and calls single-return functions, but the
// type itself carries a slice of return types since the source grammar
// allows the general form.
type FunctionType struct {
	Params  []Type
	Returns []Type
}

// NewFunction constructs a FunctionType.
func NewFunction(params, returns []Type) *FunctionType {
	return &FunctionType{Params: params, Returns: returns}
}

func (f *FunctionType) equals(other Type) bool {
	of, ok := other.(*FunctionType)
	if !ok || len(f.Params) != len(of.Params) || len(f.Returns) != len(of.Returns) {
		return false
	}
	for i, p := range f.Params {
		if !Equals(p, of.Params[i]) {
			return false
		}
	}
	for i, r := range f.Returns {
		if !Equals(r, of.Returns[i]) {
			return false
		}
	}
	return true
}

func (f *FunctionType) tag() string { return "Function" }

func (f *FunctionType) String() string {
	var b strings.Builder
	b.WriteByte('(')
	writeTypeList(&b, f.Params)
	b.WriteString(") -> (")
	writeTypeList(&b, f.Returns)
	b.WriteByte(')')
	return b.String()
}

func writeTypeList(b *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
}

// -----------------------------------------------------------------------------

// RecordType is a nominal record type: two RecordTypes are equal only if
// they refer to the same declaration, never
// by comparing field lists -- two records with identical fields but
// different declarations are distinct types.
type RecordType struct {
	Name   string
	Fields []RecordField

	// decl identifies the declaring node. It is an opaque comparable value
	// (the *ast.Record pointer, in practice) rather than an index, so
	// record identity is pointer identity; the checker sets this once at
	// collection time and never mutates it afterward.
	decl interface{}
}

// RecordField is one field of a record: name and declared type.
type RecordField struct {
	Name string
	Type Type
}

// NewRecord constructs a RecordType. decl must be unique per declaration and
// stable for the declaration's lifetime; the checker passes the declaring
// *ast.Record node.
func NewRecord(name string, fields []RecordField, decl interface{}) *RecordType {
	return &RecordType{Name: name, Fields: fields, decl: decl}
}

// FieldType returns the declared type of field name and whether it exists.
func (r *RecordType) FieldType(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

func (r *RecordType) equals(other Type) bool {
	or, ok := other.(*RecordType)
	return ok && r.decl == or.decl
}

func (r *RecordType) tag() string { return "Record" }

func (r *RecordType) String() string { return r.Name }
