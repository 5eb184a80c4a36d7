package runner

// State is where a rule run ended up, or is.
type State int

const (
	Gated State = iota
	Skipped
	Querying
	Scanning
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Gated:
		return "gated"
	case Skipped:
		return "skipped"
	case Querying:
		return "querying"
	case Scanning:
		return "scanning"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
