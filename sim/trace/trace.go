package trace

// TraceLevel controls the verbosity of pool tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelPool captures every grant, enqueue, release and handoff.
	TraceLevelPool TraceLevel = "pool"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone: true,
	TraceLevelPool: true,
	"":             true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// PoolTrace collects pool transitions during one replication.
type PoolTrace struct {
	Records []PoolRecord
}

// NewPoolTrace creates a PoolTrace ready for recording.
func NewPoolTrace() *PoolTrace {
	return &PoolTrace{
		Records: make([]PoolRecord, 0),
	}
}

// Record appends a pool transition.
func (pt *PoolTrace) Record(record PoolRecord) {
	pt.Records = append(pt.Records, record)
}
