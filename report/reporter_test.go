package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuvietnguyenit/cuda-devquery/cuda"
)

func t4(name string) cuda.SimDevice {
	return cuda.SimDevice{
		Name:     name,
		TotalMem: 15843721216,
		WarpSize: 32,
		Properties: cuda.Properties{
			MaxThreadsPerBlock:  1024,
			MaxThreadsDim:       [3]int{1024, 1024, 64},
			MaxGridSize:         [3]int{2147483647, 65535, 65535},
			SharedMemPerBlock:   49152,
			TotalConstantMemory: 65536,
			SIMDWidth:           32,
			RegsPerBlock:        65536,
		},
	}
}

const t4Block = `0: Tesla T4
  Total memory:        15.843.721.216 bytes
  Shared memory:               49.152 bytes
  Constant memory:             65.536 bytes
  Block registers:             65.536
  Warp size:                       32
  Max grid size:        2.147.483.647
  Max block size:               1.024
  Threads per block:            1.024
  SIMD width:                      32

`

func run(t *testing.T, s *cuda.Sim, opts Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := NewReporter(s, &out, opts).Run()
	return out.String(), err
}

func TestRunSingleDevice(t *testing.T) {
	s := &cuda.Sim{Devices: []cuda.SimDevice{t4("Tesla T4")}}
	out, err := run(t, s, Options{})
	require.NoError(t, err)
	assert.Equal(t, t4Block, out)
	assert.Equal(t, 1, s.Acquisitions())
	assert.True(t, s.Released())
}

func TestRunNoDevices(t *testing.T) {
	s := &cuda.Sim{}
	out, err := run(t, s, Options{})
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"acquire", "count"}, s.Calls)
}

func TestRunOrdering(t *testing.T) {
	const k = 4
	s := &cuda.Sim{}
	for i := 0; i < k; i++ {
		s.Devices = append(s.Devices, t4(fmt.Sprintf("gpu-%d", i)))
	}
	out, err := run(t, s, Options{})
	require.NoError(t, err)

	blocks := strings.Split(strings.TrimSuffix(out, "\n\n"), "\n\n")
	require.Len(t, blocks, k)
	labels := []string{"Total memory:", "Shared memory:", "Constant memory:", "Block registers:",
		"Warp size:", "Max grid size:", "Max block size:", "Threads per block:", "SIMD width:"}
	for i, b := range blocks {
		lines := strings.Split(b, "\n")
		require.Len(t, lines, 10)
		assert.Equal(t, fmt.Sprintf("%d: gpu-%d", i, i), lines[0])
		for j, l := range labels {
			assert.True(t, strings.HasPrefix(lines[j+1], "  "+l), "line %q", lines[j+1])
		}
	}

	assert.Equal(t, "acquire", s.Calls[0])
	assert.Equal(t, "count", s.Calls[1])
	assert.Equal(t, []string{"properties 0", "name 0", "total_mem 0", "attribute 0"}, s.Calls[2:6])
	assert.Len(t, s.Calls, 2+4*k)
}

func TestRunPropertiesFailure(t *testing.T) {
	s := &cuda.Sim{
		Devices: []cuda.SimDevice{t4("Tesla T4"), t4("Tesla T4"), t4("Tesla T4")},
		Fails:   []cuda.Fail{{Op: cuda.OpProperties, Device: 1, Code: cuda.ErrInvalidDevice}},
	}
	out, err := run(t, s, Options{})
	require.Error(t, err)

	var de *DriverError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Device)
	assert.Equal(t, "device properties", de.Op)
	assert.ErrorIs(t, err, cuda.ErrInvalidDevice)

	assert.Equal(t, t4Block, out)
	assert.NotContains(t, out, "1: ")
	assert.NotContains(t, s.Calls, "properties 2")
	assert.True(t, s.Released())
}

func TestRunFailureMidDevice(t *testing.T) {
	for _, op := range []cuda.Op{cuda.OpName, cuda.OpTotalMem, cuda.OpAttribute} {
		t.Run(string(op), func(t *testing.T) {
			s := &cuda.Sim{
				Devices: []cuda.SimDevice{t4("Tesla T4"), t4("Tesla T4")},
				Fails:   []cuda.Fail{{Op: op, Device: 1, Code: cuda.ErrNoDevice}},
			}
			out, err := run(t, s, Options{})
			var de *DriverError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, 1, de.Device)
			assert.Contains(t, err.Error(), "device 1")
			assert.Equal(t, t4Block, out)
		})
	}
}

func TestRunCountFailure(t *testing.T) {
	s := &cuda.Sim{Fails: []cuda.Fail{{Op: cuda.OpCount, Code: cuda.ErrNotInitialized}}}
	out, err := run(t, s, Options{})
	var de *DriverError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, -1, de.Device)
	assert.Equal(t, "device count failed: CUDA error code: 3", err.Error())
	assert.Empty(t, out)
}

func TestRunAcquireFailure(t *testing.T) {
	s := &cuda.Sim{
		Devices: []cuda.SimDevice{t4("Tesla T4")},
		Fails:   []cuda.Fail{{Op: cuda.OpAcquire, Code: cuda.ErrNoDevice}},
	}
	out, err := run(t, s, Options{})
	var ae *AcquireError
	require.ErrorAs(t, err, &ae)
	assert.ErrorIs(t, err, cuda.ErrNoDevice)
	assert.Empty(t, out)
	assert.Equal(t, []string{"acquire"}, s.Calls)
}

func TestRunNameWithoutTerminator(t *testing.T) {
	d := t4("")
	d.RawName = bytes.Repeat([]byte{'N'}, cuda.NameBufferSize)
	s := &cuda.Sim{Devices: []cuda.SimDevice{d}}
	out, err := run(t, s, Options{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0: \n"))
}

func TestRunHuman(t *testing.T) {
	s := &cuda.Sim{Devices: []cuda.SimDevice{t4("Tesla T4")}}
	out, err := run(t, s, Options{Human: true})
	require.NoError(t, err)
	assert.Contains(t, out, "  Total memory:        15.843.721.216 bytes (15 GiB)\n")
	assert.Contains(t, out, "  Shared memory:               49.152 bytes (48 KiB)\n")
	assert.Contains(t, out, "  Warp size:                       32\n")
}

func TestRunTable(t *testing.T) {
	s := &cuda.Sim{Devices: []cuda.SimDevice{t4("Tesla T4"), t4("Tesla V100")}}
	out, err := run(t, s, Options{Table: true})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "0: Tesla T4\n"))
	assert.Contains(t, out, "1: Tesla V100\n")
	for _, want := range []string{"Total memory", "15.843.721.216 bytes", "SIMD width", "2.147.483.647"} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "0: Tesla T4"), strings.Index(out, "1: Tesla V100"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWriteFailure(t *testing.T) {
	s := &cuda.Sim{Devices: []cuda.SimDevice{t4("Tesla T4")}}
	err := NewReporter(s, failWriter{}, Options{}).Run()
	assert.ErrorContains(t, err, "write device 0: disk full")
}

func TestNegativeValuesClamp(t *testing.T) {
	d := Device{Props: cuda.Properties{SIMDWidth: -1}}
	f := d.Fields()
	assert.Equal(t, "SIMD width", f[8].Label)
	assert.Zero(t, f[8].Value)
}
