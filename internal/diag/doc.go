// Package diag collects diagnostics produced by the lexer, parser and the
// formatting engine.
//
// Назначение: единый контейнер (Bag) и контракт (Reporter) для всех фаз.
// Не делает: рендеринга в терминал — этим занимается cmd/runefmt.
// Formatting rewrite outcomes (applied/skipped) are informational: correctness
// never depends on anyone consuming them.
package diag
