package vmpu

import "fmt"

// FaultError wraps a recoverable-supervisor-level failure: invalid
// configuration detected at init or at a box-management call, as opposed
// to a hardware SecureFault, which never returns an error (see halt.go).
type FaultError struct {
	Code    FaultErrorCode
	message string
}

// FaultErrorCode enumerates the kinds of configuration-time failure the
// Supervisor's setup API can report.
type FaultErrorCode int

const (
	ErrCodeUnknown FaultErrorCode = iota
	ErrCodeSlotCacheLocked
	ErrCodeInvalidSlot
	ErrCodeRegionNotFound
	ErrCodeUnknownBox
	ErrCodeZeroBSS
	ErrCodeNoDriver
)

func (e FaultError) Error() string {
	if e.message != "" {
		return e.message
	}
	switch e.Code {
	case ErrCodeSlotCacheLocked:
		return "vmpu: slot cache is locked"
	case ErrCodeInvalidSlot:
		return "vmpu: invalid static slot index"
	case ErrCodeRegionNotFound:
		return "vmpu: no covering region found"
	case ErrCodeUnknownBox:
		return "vmpu: unknown box id"
	case ErrCodeZeroBSS:
		return "vmpu: bss size must be non-zero"
	case ErrCodeNoDriver:
		return "vmpu: supervisor has no driver configured"
	default:
		return fmt.Sprintf("vmpu: unknown error code %d", e.Code)
	}
}

// Sentinel errors for common configuration-time failures.
var (
	ErrSlotCacheLocked = FaultError{Code: ErrCodeSlotCacheLocked}
	ErrInvalidSlot     = FaultError{Code: ErrCodeInvalidSlot}
	ErrRegionNotFound  = FaultError{Code: ErrCodeRegionNotFound}
	ErrUnknownBox      = FaultError{Code: ErrCodeUnknownBox}
	ErrZeroBSS         = FaultError{Code: ErrCodeZeroBSS}
	ErrNoDriver        = FaultError{Code: ErrCodeNoDriver}
)
