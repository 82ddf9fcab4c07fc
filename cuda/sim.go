package cuda

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Op names a driver call for failure injection.
type Op string

const (
	OpAcquire    Op = "acquire"
	OpCount      Op = "count"
	OpProperties Op = "properties"
	OpName       Op = "name"
	OpTotalMem   Op = "total_mem"
	OpAttribute  Op = "attribute"
)

// SimDevice is one device exposed by Sim.
type SimDevice struct {
	Name       string     `yaml:"name"`
	TotalMem   uint64     `yaml:"total_mem"`
	WarpSize   int        `yaml:"warp_size"`
	Properties Properties `yaml:"properties"`

	// RawName, when set, is copied into the name buffer verbatim instead of Name.
	RawName []byte `yaml:"-"`
}

// Fail makes the Op call on Device return Code. Device is ignored for
// acquire and count.
type Fail struct {
	Op     Op     `yaml:"op"`
	Device int    `yaml:"device"`
	Code   Result `yaml:"code"`
}

// Sim is an in-memory Driver. Every query fails with ErrNotInitialized
// before Acquire and with ErrInvalidContext after the context is closed.
type Sim struct {
	Devices []SimDevice `yaml:"devices"`
	Fails   []Fail      `yaml:"fail"`

	// Calls records every call in order, e.g. "name 1".
	Calls []string `yaml:"-"`

	acquired int
	closed   bool
}

var _ Driver = (*Sim)(nil)

type simContext struct {
	s *Sim
}

func (c simContext) Close() error {
	if c.s.closed {
		return ErrInvalidContext
	}
	c.s.closed = true
	return nil
}

// LoadFixture reads a Sim from a YAML file.
func LoadFixture(path string) (*Sim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var s Sim
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &s, nil
}

// Acquisitions reports how many times Acquire succeeded.
func (s *Sim) Acquisitions() int { return s.acquired }

// Released reports whether the acquired context has been closed.
func (s *Sim) Released() bool { return s.closed }

func (s *Sim) record(op Op, dev int) {
	if dev < 0 {
		s.Calls = append(s.Calls, string(op))
		return
	}
	s.Calls = append(s.Calls, fmt.Sprintf("%s %d", op, dev))
}

func (s *Sim) check(op Op, dev int) error {
	s.record(op, dev)
	for _, f := range s.Fails {
		if f.Op != op {
			continue
		}
		if op == OpAcquire || op == OpCount || f.Device == dev {
			if f.Code == 0 {
				return ErrInvalidDevice
			}
			return f.Code
		}
	}
	if op == OpAcquire {
		return nil
	}
	if s.acquired == 0 {
		return ErrNotInitialized
	}
	if s.closed {
		return ErrInvalidContext
	}
	if op != OpCount && (dev < 0 || dev >= len(s.Devices)) {
		return ErrInvalidDevice
	}
	return nil
}

func (s *Sim) Acquire() (Context, error) {
	if err := s.check(OpAcquire, -1); err != nil {
		return nil, err
	}
	s.acquired++
	s.closed = false
	return simContext{s: s}, nil
}

func (s *Sim) DeviceCount() (int, error) {
	if err := s.check(OpCount, -1); err != nil {
		return 0, err
	}
	return len(s.Devices), nil
}

func (s *Sim) DeviceProperties(dev int) (Properties, error) {
	if err := s.check(OpProperties, dev); err != nil {
		return Properties{}, err
	}
	return s.Devices[dev].Properties, nil
}

func (s *Sim) DeviceName(dev int, buf []byte) error {
	if err := s.check(OpName, dev); err != nil {
		return err
	}
	d := s.Devices[dev]
	if d.RawName != nil {
		copy(buf, d.RawName)
		return nil
	}
	if len(buf) == 0 {
		return ErrInvalidValue
	}
	n := copy(buf[:len(buf)-1], d.Name)
	buf[n] = 0
	return nil
}

func (s *Sim) DeviceTotalMem(dev int) (uint64, error) {
	if err := s.check(OpTotalMem, dev); err != nil {
		return 0, err
	}
	return s.Devices[dev].TotalMem, nil
}

func (s *Sim) DeviceAttribute(dev int, attr Attribute) (int, error) {
	if err := s.check(OpAttribute, dev); err != nil {
		return 0, err
	}
	p := s.Devices[dev].Properties
	switch attr {
	case AttrWarpSize:
		return s.Devices[dev].WarpSize, nil
	case AttrMaxThreadsPerBlock:
		return p.MaxThreadsPerBlock, nil
	case AttrMaxSharedMemPerBlock:
		return p.SharedMemPerBlock, nil
	case AttrTotalConstantMemory:
		return p.TotalConstantMemory, nil
	case AttrMaxRegistersPerBlock:
		return p.RegsPerBlock, nil
	default:
		return 0, ErrInvalidValue
	}
}
