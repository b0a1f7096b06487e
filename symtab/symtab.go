// Package symtab implements SymTab: a stack of lexical scopes
// mapping name to declaration node, with duplicate detection at the top
// scope and a scoped-acquisition helper that guarantees push/pop symmetry
// even when the callback panics.
//
// Grounded on chai/bootstrap/depm/symbol_table.go's Define/Lookup shape,
// simplified from chai's cross-package forward-resolution model (chai
// allows a name to be used before its defining statement, anywhere in the
// dependency graph) down to a single-pass, single-file, lexically scoped
// model: the dialect has no forward references across scopes, so SymTab
// never needs an "unresolved" side table.
package symtab

// FunctionKey is the reserved sentinel name SymTab uses to stash the
// enclosing function declaration in its own scope, so that a nested Return
// statement can recover the expected return type.
const FunctionKey = "$function"

// SymTab is a stack of scopes. The zero value is not usable; use New.
type SymTab struct {
	scopes []map[string]interface{}
}

// New creates a SymTab with a single, empty top-level scope.
func New() *SymTab {
	return &SymTab{scopes: []map[string]interface{}{{}}}
}

// push opens a new scope.
func (st *SymTab) push() {
	st.scopes = append(st.scopes, map[string]interface{}{})
}

// pop closes the innermost scope.
func (st *SymTab) pop() {
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// AddSymbol inserts name into the innermost scope, returning false if name
// already exists *in that scope*; the caller decides whether a
// collision is an error. Shadowing an outer scope's name is always allowed.
func (st *SymTab) AddSymbol(name string, node interface{}) bool {
	top := st.scopes[len(st.scopes)-1]
	if _, dup := top[name]; dup {
		return false
	}
	top[name] = node
	return true
}

// FindSymbol looks up name across every open scope, innermost first,
// returning the declaration node and whether it was found.
func (st *SymTab) FindSymbol(name string) (interface{}, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if node, ok := st.scopes[i][name]; ok {
			return node, true
		}
	}
	return nil, false
}

// FindDup peeks the innermost scope only, without searching outward.
// ScopeAnalysis does not call it; it detects redeclarations through
// AddSymbol's return value instead.
func (st *SymTab) FindDup(name string) (interface{}, bool) {
	top := st.scopes[len(st.scopes)-1]
	node, ok := top[name]
	return node, ok
}

// WithBlock pushes a new scope, runs fn, and pops the scope on every exit
// path -- including a panic propagating out of fn -- matching's
// "Pops must be guaranteed even when fn raises".
func (st *SymTab) WithBlock(fn func()) {
	st.push()
	defer st.pop()
	fn()
}
