package ast

// Block is a sequence of statements introducing a new lexical scope.
type Block struct {
	base
	Stats []Stat
}

func (*Block) stat() {}

// Stat is implemented by every statement variant.
type Stat interface {
	Node
	stat()
}

// While is "while cond do block end".
type While struct {
	base
	Cond  Exp
	Block *Block
}

func (*While) stat() {}

// Repeat is "repeat block until cond" -- note the condition is evaluated
// after the block and may reference names the block declares: it lowers to
// for(;;){ body; prelude; if(cond) break; }.
type Repeat struct {
	base
	Block *Block
	Cond  Exp
}

func (*Repeat) stat() {}

// CondBlock is one "cond then block" arm of an If.
type CondBlock struct {
	Cond  Exp
	Block *Block
}

// If is a chain of "if/elseif" arms plus an optional else block.
type If struct {
	base
	Thens []CondBlock
	Else  *Block
}

func (*If) stat() {}

// For is a numeric for loop: "for decl = start, finish[, step] do block end".
type For struct {
	base
	Decl   *Decl
	Start  Exp
	Finish Exp
	Step   Exp // nil if unspecified; the checker/coder treat this as literal 1.
	Block  *Block
}

func (*For) stat() {}

// Assign is "var = exp" where var is an existing lvalue (Name, Bracket, or
// Dot), not a new declaration.
type Assign struct {
	base
	Var Exp
	Exp Exp
}

func (*Assign) stat() {}

// DeclStat is "local decl = exp", introducing a new name in the current
// scope.
type DeclStat struct {
	base
	Decl *Decl
	Exp  Exp
}

func (*DeclStat) stat() {}

// Call is a statement consisting of a single call expression evaluated for
// its side effects, its result discarded.
type Call struct {
	base
	CallExp *CallExp
}

func (*Call) stat() {}

// Return is "return exp" or "return" (Exp is nil) inside a function body.
type Return struct {
	base
	Exp Exp // nil for a bare return from a Nil-returning function.
}

func (*Return) stat() {}
