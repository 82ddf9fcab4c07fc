// Package cuda exposes the subset of the CUDA driver API needed to read static
// device capabilities. Devices are addressed by their zero-based ordinal.
package cuda

import (
	"errors"
	"fmt"
)

// Attribute is a CUdevice_attribute value accepted by DeviceAttribute.
type Attribute int

const (
	AttrMaxThreadsPerBlock   Attribute = 1
	AttrMaxSharedMemPerBlock Attribute = 8
	AttrTotalConstantMemory  Attribute = 9
	AttrWarpSize             Attribute = 10
	AttrMaxRegistersPerBlock Attribute = 12
)

func (a Attribute) String() string {
	switch a {
	case AttrMaxThreadsPerBlock:
		return "max threads per block"
	case AttrMaxSharedMemPerBlock:
		return "max shared memory per block"
	case AttrTotalConstantMemory:
		return "total constant memory"
	case AttrWarpSize:
		return "warp size"
	case AttrMaxRegistersPerBlock:
		return "max registers per block"
	default:
		return fmt.Sprintf("attribute(%d)", int(a))
	}
}

// Result is a CUresult code returned by a failed driver call.
type Result int

const (
	ErrInvalidValue   Result = 1
	ErrNotInitialized Result = 3
	ErrNoDevice       Result = 100
	ErrInvalidDevice  Result = 101
	ErrInvalidContext Result = 201
)

func (r Result) Error() string {
	return fmt.Sprintf("CUDA error code: %d", int(r))
}

// ErrNotCompiled is returned by every call when the binary was built without
// the cuda build tag.
var ErrNotCompiled = errors.New("CUDA support not compiled in (build with -tags cuda)")

// Properties mirrors CUdevprop. It is returned fully populated or not at all.
type Properties struct {
	MaxThreadsPerBlock  int    `yaml:"max_threads_per_block"`
	MaxThreadsDim       [3]int `yaml:"max_threads_dim"`
	MaxGridSize         [3]int `yaml:"max_grid_size"`
	SharedMemPerBlock   int    `yaml:"shared_mem_per_block"`
	TotalConstantMemory int    `yaml:"total_constant_memory"`
	SIMDWidth           int    `yaml:"simd_width"`
	MemPitch            int    `yaml:"mem_pitch"`
	RegsPerBlock        int    `yaml:"regs_per_block"`
	ClockRate           int    `yaml:"clock_rate"`
	TextureAlign        int    `yaml:"texture_align"`
}

// MaxGrid returns the largest grid dimension.
func (p Properties) MaxGrid() int { return max(p.MaxGridSize[0], p.MaxGridSize[1], p.MaxGridSize[2]) }

// MaxBlock returns the largest block dimension.
func (p Properties) MaxBlock() int {
	return max(p.MaxThreadsDim[0], p.MaxThreadsDim[1], p.MaxThreadsDim[2])
}

// Context is a live driver context. Queries are only valid until Close.
type Context interface {
	Close() error
}

// Driver is the set of driver calls used to enumerate devices.
type Driver interface {
	// Acquire creates the context every later call depends on.
	Acquire() (Context, error)
	DeviceCount() (int, error)
	DeviceProperties(dev int) (Properties, error)
	// DeviceName writes the NUL-terminated device name into buf.
	DeviceName(dev int, buf []byte) error
	DeviceTotalMem(dev int) (uint64, error)
	DeviceAttribute(dev int, attr Attribute) (int, error)
}
