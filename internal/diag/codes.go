package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexUnterminatedChar         Code = 1005

	// Парсерные
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectSemicolon    Code = 2004
	SynUnclosedDelimiter  Code = 2005
	SynExpectType         Code = 2006
	SynExpectExpr         Code = 2007
	SynExpectImplMember   Code = 2008

	// Форматирование: информационные исходы правил (rewrite applied / skipped).
	FmtRewriteApplied Code = 3001
	FmtRewriteSkipped Code = 3002

	// I/O
	IOLoadFileError Code = 4001
)

var codeNames = map[Code]string{
	UnknownCode:                 "unknown",
	LexUnknownChar:              "lex-unknown-char",
	LexUnterminatedString:       "lex-unterminated-string",
	LexUnterminatedBlockComment: "lex-unterminated-block-comment",
	LexBadNumber:                "lex-bad-number",
	LexUnterminatedChar:         "lex-unterminated-char",
	SynUnexpectedToken:          "syn-unexpected-token",
	SynUnexpectedTopLevel:       "syn-unexpected-top-level",
	SynExpectIdentifier:         "syn-expect-identifier",
	SynExpectSemicolon:          "syn-expect-semicolon",
	SynUnclosedDelimiter:        "syn-unclosed-delimiter",
	SynExpectType:               "syn-expect-type",
	SynExpectExpr:               "syn-expect-expr",
	SynExpectImplMember:         "syn-expect-impl-member",
	FmtRewriteApplied:           "fmt-rewrite-applied",
	FmtRewriteSkipped:           "fmt-rewrite-skipped",
	IOLoadFileError:             "io-load-file",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code-%d", uint16(c))
}
