// Package report queries every visible device and prints its capabilities.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/vuvietnguyenit/cuda-devquery/cuda"
)

const (
	labelWidth = 20
	valueWidth = 15
)

// Options control how device blocks are rendered.
type Options struct {
	Table bool // render each device as a table
	Human bool // append IEC sizes to memory values
}

// Reporter walks devices in index order and writes one block per device.
type Reporter struct {
	driver cuda.Driver
	out    io.Writer
	opts   Options
}

func NewReporter(d cuda.Driver, out io.Writer, opts Options) *Reporter {
	return &Reporter{driver: d, out: out, opts: opts}
}

// Run acquires the context, then queries and prints every device. The first
// failing call ends the run; blocks already written are kept.
func (r *Reporter) Run() error {
	ctx, err := r.driver.Acquire()
	if err != nil {
		return &AcquireError{Err: err}
	}
	defer func() {
		if err := ctx.Close(); err != nil {
			slog.Warn("failed to release CUDA context", "err", err)
		}
	}()

	n, err := r.driver.DeviceCount()
	if err != nil {
		return &DriverError{Op: "device count", Device: -1, Err: err}
	}
	slog.Debug("enumerating devices", "count", n)

	for i := 0; i < n; i++ {
		d, err := r.query(i)
		if err != nil {
			return err
		}
		if err := r.write(d); err != nil {
			return fmt.Errorf("write device %d: %w", i, err)
		}
	}
	return nil
}

func (r *Reporter) query(i int) (Device, error) {
	fail := func(op string, err error) (Device, error) {
		slog.Debug("driver call failed", "device", i, "op", op, "err", err)
		return Device{}, &DriverError{Op: op, Device: i, Err: err}
	}

	slog.Debug("querying device", "device", i)
	props, err := r.driver.DeviceProperties(i)
	if err != nil {
		return fail("device properties", err)
	}

	var buf [cuda.NameBufferSize]byte
	if err := r.driver.DeviceName(i, buf[:]); err != nil {
		return fail("device name", err)
	}

	total, err := r.driver.DeviceTotalMem(i)
	if err != nil {
		return fail("device total memory", err)
	}

	warp, err := r.driver.DeviceAttribute(i, cuda.AttrWarpSize)
	if err != nil {
		return fail("device attribute "+cuda.AttrWarpSize.String(), err)
	}

	return Device{
		Index:    i,
		Name:     cuda.DecodeName(buf[:]),
		TotalMem: total,
		WarpSize: warp,
		Props:    props,
	}, nil
}

func (r *Reporter) write(d Device) error {
	if r.opts.Table {
		return r.writeTable(d)
	}
	_, err := io.WriteString(r.out, r.block(d))
	return err
}

func (r *Reporter) block(d Device) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s\n", d.Index, d.Name)
	for _, f := range d.Fields() {
		fmt.Fprintf(&b, "  %-*s%s%s\n", labelWidth, f.Label+":", Dots(f.Value, valueWidth), r.suffix(f))
	}
	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) suffix(f Field) string {
	if !f.Bytes {
		return ""
	}
	if r.opts.Human {
		return " bytes (" + humanize.IBytes(f.Value) + ")"
	}
	return " bytes"
}
