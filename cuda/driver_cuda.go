//go:build cuda

package cuda

/*
#cgo LDFLAGS: -lcuda
#include <cuda.h>
*/
import "C"
import (
	"fmt"
	"unsafe"

	"gorgonia.org/cu"
)

type cudaDriver struct{}

// New returns the libcuda-backed driver.
func New() Driver {
	return cudaDriver{}
}

type cudaContext struct {
	ctx cu.CUContext
}

func (c *cudaContext) Close() error {
	return cu.DestroyContext(&c.ctx)
}

func (cudaDriver) Acquire() (Context, error) {
	ctx, err := cu.Device(0).MakeContext(cu.SchedAuto)
	if err != nil {
		return nil, fmt.Errorf("create context on device 0: %w", err)
	}
	return &cudaContext{ctx: ctx}, nil
}

func (cudaDriver) DeviceCount() (int, error) {
	return cu.NumDevices()
}

func (cudaDriver) DeviceProperties(dev int) (Properties, error) {
	var p C.CUdevprop
	if r := C.cuDeviceGetProperties(&p, C.CUdevice(dev)); r != C.CUDA_SUCCESS {
		return Properties{}, Result(r)
	}
	return Properties{
		MaxThreadsPerBlock:  int(p.maxThreadsPerBlock),
		MaxThreadsDim:       [3]int{int(p.maxThreadsDim[0]), int(p.maxThreadsDim[1]), int(p.maxThreadsDim[2])},
		MaxGridSize:         [3]int{int(p.maxGridSize[0]), int(p.maxGridSize[1]), int(p.maxGridSize[2])},
		SharedMemPerBlock:   int(p.sharedMemPerBlock),
		TotalConstantMemory: int(p.totalConstantMemory),
		SIMDWidth:           int(p.SIMDWidth),
		MemPitch:            int(p.memPitch),
		RegsPerBlock:        int(p.regsPerBlock),
		ClockRate:           int(p.clockRate),
		TextureAlign:        int(p.textureAlign),
	}, nil
}

func (cudaDriver) DeviceName(dev int, buf []byte) error {
	if len(buf) == 0 {
		return ErrInvalidValue
	}
	r := C.cuDeviceGetName((*C.char)(unsafe.Pointer(&buf[0])), C.int(len(buf)), C.CUdevice(dev))
	if r != C.CUDA_SUCCESS {
		return Result(r)
	}
	return nil
}

func (cudaDriver) DeviceTotalMem(dev int) (uint64, error) {
	total, err := cu.Device(dev).TotalMem()
	if err != nil {
		return 0, err
	}
	return uint64(total), nil
}

func (cudaDriver) DeviceAttribute(dev int, attr Attribute) (int, error) {
	return cu.Device(dev).Attribute(cu.DeviceAttribute(attr))
}
