// Package format is the rule-application engine: it re-emits a parsed file
// while applying comment normalization, impl-member reordering, struct field
// alignment, shorthand rewrites and overflow layout for long calls.
//
// Назначение: детерминированная перепечатка AST с локальными правилами.
// Не делает: семантического анализа, IO, обхода каталогов.
// Зависимости: internal/ast, internal/source, internal/config, internal/diag.
package format
