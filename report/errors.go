package report

import "fmt"

// AcquireError means the driver context could not be created.
type AcquireError struct {
	Err error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire CUDA context: %v", e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// DriverError is a failed driver call. Device is -1 for calls not tied to a
// device.
type DriverError struct {
	Op     string
	Device int
	Err    error
}

func (e *DriverError) Error() string {
	if e.Device < 0 {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed for device %d: %v", e.Op, e.Device, e.Err)
}

func (e *DriverError) Unwrap() error { return e.Err }
