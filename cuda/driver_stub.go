//go:build !cuda

package cuda

type stubDriver struct{}

// New returns a driver whose calls all fail with ErrNotCompiled.
func New() Driver {
	return stubDriver{}
}

func (stubDriver) Acquire() (Context, error)                   { return nil, ErrNotCompiled }
func (stubDriver) DeviceCount() (int, error)                   { return 0, ErrNotCompiled }
func (stubDriver) DeviceProperties(int) (Properties, error)    { return Properties{}, ErrNotCompiled }
func (stubDriver) DeviceName(int, []byte) error                { return ErrNotCompiled }
func (stubDriver) DeviceTotalMem(int) (uint64, error)          { return 0, ErrNotCompiled }
func (stubDriver) DeviceAttribute(int, Attribute) (int, error) { return 0, ErrNotCompiled }
