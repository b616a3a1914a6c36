package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwLet represents the 'let' keyword.
	KwLet // let
	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwMut represents the 'mut' keyword.
	KwMut // mut
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwTrait represents the 'trait' keyword.
	KwTrait // trait
	// KwImpl represents the 'impl' keyword.
	KwImpl // impl
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwMatch represents the 'match' keyword.
	KwMatch // match
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwUse represents the 'use' keyword.
	KwUse // use
	// KwMod represents the 'mod' keyword.
	KwMod // mod
	// KwAs represents the 'as' keyword.
	KwAs // as
	// KwType represents the 'type' keyword.
	KwType // type
	// KwPub represents the 'pub' keyword.
	KwPub // pub
	// KwWhere represents the 'where' keyword.
	KwWhere // where
	// KwSelfValue represents the 'self' keyword.
	KwSelfValue // self
	// KwSelfType represents the 'Self' keyword.
	KwSelfType // Self
	// KwMove represents the 'move' keyword.
	KwMove // move
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit
	// CharLit represents a character literal token.
	CharLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// Assign represents the assign operator token.
	Assign // =
	// EqEq represents the equality operator token.
	EqEq // ==
	// Bang represents the bang operator token.
	Bang // !
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=
	// Shl represents the shift-left operator token.
	Shl // <<
	// Shr represents the shift-right operator token.
	Shr // >>
	// Amp represents the ampersand token.
	Amp // &
	// Pipe represents the pipe token.
	Pipe // |
	// Caret represents the caret token.
	Caret // ^
	// AndAnd represents the logical-and token.
	AndAnd // &&
	// OrOr represents the logical-or token.
	OrOr // ||
	// Question represents the question operator token.
	Question // ?
	// Colon represents the colon token.
	Colon // :
	// ColonColon represents the path separator token.
	ColonColon // ::
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// DotDot represents the range token.
	DotDot // ..
	// DotDotEq represents the inclusive range token.
	DotDotEq // ..=
	// Arrow represents the return-type arrow token.
	Arrow // ->
	// FatArrow represents the match arm arrow token.
	FatArrow // =>
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// Hash represents the attribute hash token.
	Hash // #
	// At represents the at token.
	At // @
	// Underscore represents the wildcard token.
	Underscore // _
)

var kindNames = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "ident",
	KwFn: "fn", KwLet: "let", KwConst: "const", KwMut: "mut", KwStruct: "struct",
	KwTrait: "trait", KwImpl: "impl", KwFor: "for", KwIn: "in", KwIf: "if",
	KwElse: "else", KwWhile: "while", KwMatch: "match", KwBreak: "break",
	KwContinue: "continue", KwReturn: "return", KwUse: "use", KwMod: "mod",
	KwAs: "as", KwType: "type", KwPub: "pub", KwWhere: "where",
	KwSelfValue: "self", KwSelfType: "Self", KwMove: "move", KwTrue: "true", KwFalse: "false",
	IntLit: "int", FloatLit: "float", StringLit: "string", CharLit: "char",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", Assign: "=",
	EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Shl: "<<", Shr: ">>", Amp: "&", Pipe: "|", Caret: "^", AndAnd: "&&", OrOr: "||",
	Question: "?", Colon: ":", ColonColon: "::", Semicolon: ";", Comma: ",",
	Dot: ".", DotDot: "..", DotDotEq: "..=", Arrow: "->", FatArrow: "=>",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}", LBracket: "[", RBracket: "]",
	Hash: "#", At: "@", Underscore: "_",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}
