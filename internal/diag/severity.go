package diag

// Severity ranks how much a diagnostic matters to the outcome of a run.
type Severity uint8

const (
	// SevInfo marks advisory output: rewrite notices, skipped shorthands.
	SevInfo Severity = iota
	// SevWarning marks suspicious input that still formats cleanly.
	SevWarning
	// SevError marks input the formatter refuses to rewrite.
	SevError
)

var severityNames = [...]string{"INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}
