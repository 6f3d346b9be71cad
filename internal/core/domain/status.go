package domain

// ModuleStatus represents the lifecycle state of one module's manifest generation.
type ModuleStatus string

const (
	// StatusPending indicates the module is waiting to be scheduled.
	StatusPending ModuleStatus = "pending"
	// StatusRunning indicates the module's manifest is being generated.
	StatusRunning ModuleStatus = "running"
	// StatusCompleted indicates the manifest was generated and written.
	StatusCompleted ModuleStatus = "completed"
	// StatusFailed indicates generation failed; no manifest was written.
	StatusFailed ModuleStatus = "failed"
	// StatusCached indicates generation was skipped because the inputs are unchanged.
	StatusCached ModuleStatus = "cached"
)

// IsTerminal reports whether a status is final.
func (s ModuleStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCached:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a message recorded on a telemetry vertex.
type LogLevel int

const (
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	if l == LogLevelWarn {
		return "WARN"
	}
	return "INFO"
}
