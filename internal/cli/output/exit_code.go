package output

import (
	"strings"
	"sync/atomic"
)

const (
	ErrorCodeInvalidArgument  = "INVALID_ARGUMENT"
	ErrorCodeInvalidDateRange = "INVALID_DATE_RANGE"
	ErrorCodeNotFound         = "NOT_FOUND"
	ErrorCodeConflict         = "CONFLICT"
	ErrorCodeDBError          = "DB_ERROR"
	ErrorCodeConfigError      = "CONFIG_ERROR"
	ErrorCodeInternal         = "INTERNAL_ERROR"
)

var processExitCode atomic.Int32

func ResetProcessExitCode() {
	processExitCode.Store(0)
}

func CurrentProcessExitCode() int {
	return int(processExitCode.Load())
}

func SetProcessExitCodeFromEnvelope(envelope Envelope) {
	if envelope.Ok || envelope.Error == nil {
		processExitCode.Store(0)
		return
	}

	processExitCode.Store(int32(ExitCodeForErrorCode(envelope.Error.Code)))
}

func ExitCodeForErrorCode(errorCode string) int {
	switch strings.ToUpper(strings.TrimSpace(errorCode)) {
	case ErrorCodeInvalidArgument, ErrorCodeInvalidDateRange:
		return 2
	case ErrorCodeNotFound:
		return 3
	case ErrorCodeConflict:
		return 4
	case ErrorCodeDBError:
		return 5
	case ErrorCodeConfigError:
		return 7
	default:
		return 1
	}
}
