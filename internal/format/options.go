package format

import (
	"runefmt/internal/config"
	"runefmt/internal/diag"
)

// Options parameterize one FormatFile call.
type Options struct {
	Config config.Config
	// Reporter receives informational rewrite-applied/skipped diagnostics.
	// nil отключает их: корректность от них не зависит.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.Config.MaxWidth == 0 {
		o.Config = config.Default()
	}
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
	return o
}

// indentWidth is the canonical indentation step, in spaces.
const indentWidth = 4
