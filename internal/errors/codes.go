package errors

import "strings"

// ErrorCode identifies a class of launcher failure.
type ErrorCode string

// ErrorCategory groups error codes by subsystem.
type ErrorCategory string

const (
	ErrorCategoryPath    ErrorCategory = "PATH"
	ErrorCategoryPort    ErrorCategory = "PORT"
	ErrorCategoryProcess ErrorCategory = "PROCESS"
	ErrorCategoryConfig  ErrorCategory = "CONFIG"
	ErrorCategoryUnknown ErrorCategory = "UNKNOWN"
)

// Path errors.
const (
	ErrPathNotFound ErrorCode = "PATH_NOT_FOUND"
)

// Port errors.
const (
	ErrPortRangeInvalid     ErrorCode = "PORT_RANGE_INVALID"
	ErrPortCheckFailed      ErrorCode = "PORT_CHECK_FAILED"
	ErrPortAllocationFailed ErrorCode = "PORT_ALLOCATION_FAILED"
)

// Process errors.
const (
	ErrProcessSpawnFailed ErrorCode = "PROCESS_SPAWN_FAILED"
	ErrProcessReapPartial ErrorCode = "PROCESS_REAP_PARTIAL"
)

// Config errors.
const (
	ErrConfigLoadFailed ErrorCode = "CONFIG_LOAD_FAILED"
	ErrConfigSaveFailed ErrorCode = "CONFIG_SAVE_FAILED"
)

// Generic errors.
const (
	ErrUnknown ErrorCode = "UNKNOWN"
)

// Category derives the subsystem from the code prefix.
func (c ErrorCode) Category() ErrorCategory {
	parts := strings.SplitN(string(c), "_", 2)
	if len(parts) == 0 {
		return ErrorCategoryUnknown
	}

	switch parts[0] {
	case "PATH":
		return ErrorCategoryPath
	case "PORT":
		return ErrorCategoryPort
	case "PROCESS":
		return ErrorCategoryProcess
	case "CONFIG":
		return ErrorCategoryConfig
	default:
		return ErrorCategoryUnknown
	}
}

// String returns the code as a string.
func (c ErrorCode) String() string {
	return string(c)
}
