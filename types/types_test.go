package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveEquality(t *testing.T) {
	assert.True(t, Equals(Integer, Integer))
	assert.False(t, Equals(Integer, Float), "Integer and Float must be distinct")
	assert.False(t, Equals(Nil, Boolean))
}

func TestArrayEquality(t *testing.T) {
	a := NewArray(Integer)
	b := NewArray(Integer)
	c := NewArray(Float)

	assert.True(t, Equals(a, b))
	assert.False(t, Equals(a, c))
}

func TestRecordNominalEquality(t *testing.T) {
	declA := &struct{ n string }{"Point"}
	declB := &struct{ n string }{"Point"}

	r1 := NewRecord("Point", []RecordField{{"x", Integer}, {"y", Integer}}, declA)
	r2 := NewRecord("Point", []RecordField{{"x", Integer}, {"y", Integer}}, declA)
	r3 := NewRecord("Point", []RecordField{{"x", Integer}, {"y", Integer}}, declB)

	assert.True(t, Equals(r1, r2), "same declaration identity must compare equal")
	assert.False(t, Equals(r1, r3), "identical field lists from different declarations must not compare equal")
}

func TestFunctionEquality(t *testing.T) {
	f1 := NewFunction([]Type{Integer, Integer}, []Type{Integer})
	f2 := NewFunction([]Type{Integer, Integer}, []Type{Integer})
	f3 := NewFunction([]Type{Integer, Float}, []Type{Integer})

	assert.True(t, Equals(f1, f2))
	assert.False(t, Equals(f1, f3))
	assert.Equal(t, "(integer, integer) -> (integer)", f1.String())
}

func TestHasTagAndIsNumeric(t *testing.T) {
	assert.True(t, HasTag(Integer, "Integer"))
	assert.False(t, HasTag(Integer, "Float"))
	assert.True(t, IsNumeric(Integer))
	assert.True(t, IsNumeric(Float))
	assert.False(t, IsNumeric(String))
}
