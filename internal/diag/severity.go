package diag

// Severity is the weight of a diagnostic. The ordering matters: Bag's
// HasErrors/HasWarnings compare against these values, and cmd/dac fails a
// run on any SevError finding.
type Severity uint8

const (
	// SevInfo marks purely informational output.
	SevInfo Severity = iota
	// SevWarning marks findings that do not fail the run.
	SevWarning
	// SevError marks rule violations.
	SevError
)

// String renders the severity the way the pretty and JSON formatters
// expect it.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
