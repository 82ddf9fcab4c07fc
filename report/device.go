package report

import "github.com/vuvietnguyenit/cuda-devquery/cuda"

// Device is the snapshot of one device taken during a run.
type Device struct {
	Index    int
	Name     string
	TotalMem uint64
	WarpSize int
	Props    cuda.Properties
}

// Field is one reported value. Bytes marks memory sizes.
type Field struct {
	Label string
	Value uint64
	Bytes bool
}

// Fields returns the reported values in output order.
func (d Device) Fields() []Field {
	p := d.Props
	return []Field{
		{Label: "Total memory", Value: d.TotalMem, Bytes: true},
		{Label: "Shared memory", Value: count(p.SharedMemPerBlock), Bytes: true},
		{Label: "Constant memory", Value: count(p.TotalConstantMemory), Bytes: true},
		{Label: "Block registers", Value: count(p.RegsPerBlock)},
		{Label: "Warp size", Value: count(d.WarpSize)},
		{Label: "Max grid size", Value: count(p.MaxGrid())},
		{Label: "Max block size", Value: count(p.MaxBlock())},
		{Label: "Threads per block", Value: count(p.MaxThreadsPerBlock)},
		{Label: "SIMD width", Value: count(p.SIMDWidth)},
	}
}

// count converts a driver int to an unsigned count. The driver never
// reports negative limits; if it does they print as 0.
func count(v int) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
