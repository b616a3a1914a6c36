// Package ast defines the arena-backed syntax tree the formatter rewrites.
//
// Назначение: компактное представление Rune-файла со спанами и комментариями.
// Не делает: разбора (internal/parser) и печати (internal/format).
//
// Nodes are addressed by typed 1-based IDs into per-kind arenas; ID 0 is the
// "no node" sentinel. Every node owns its children exclusively (tree, no
// cycles) and carries the byte span it was parsed from, so anything the
// formatter does not understand can be re-emitted verbatim.
package ast
