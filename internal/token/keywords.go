package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"const":    KwConst,
	"mut":      KwMut,
	"struct":   KwStruct,
	"trait":    KwTrait,
	"impl":     KwImpl,
	"for":      KwFor,
	"in":       KwIn,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"match":    KwMatch,
	"break":    KwBreak,
	"continue": KwContinue,
	"return":   KwReturn,
	"use":      KwUse,
	"mod":      KwMod,
	"as":       KwAs,
	"type":     KwType,
	"pub":      KwPub,
	"where":    KwWhere,
	"self":     KwSelfValue,
	"Self":     KwSelfType,
	"move":     KwMove,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: `Self` и `self` — разные токены.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
