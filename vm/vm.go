// This file is part of synacor - https://github.com/db47h/synacor
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vm

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Control holds the execution settings owned by the code driving the VM. The
// debug package reads them and requests changes through debug.Actions.
type Control struct {
	Trace       bool          // log every instruction before executing it
	Breakpoints bitset.BitSet // addresses where Run stops with the Break state
	StepLimit   int64         // maximum number of steps per call to Run; 0 means no limit
}

// Instance represents a Synacor VM instance.
type Instance struct {
	IP Word // Instruction Pointer
	Storage
	Control
	term     Terminal
	log      zerolog.Logger
	insCount int64
}

// Option interface
type Option func(*Instance) error

// Term configures the terminal. The default is a Console without any input
// source.
func Term(t Terminal) Option {
	return func(i *Instance) error {
		if t == nil {
			return errors.New("nil terminal")
		}
		i.term = t
		return nil
	}
}

// Logger sets the logger used for instruction tracing. The default logger
// discards everything.
func Logger(l zerolog.Logger) Option {
	return func(i *Instance) error { i.log = l; return nil }
}

// Trace enables or disables instruction tracing.
func Trace(enable bool) Option {
	return func(i *Instance) error { i.Control.Trace = enable; return nil }
}

// StepLimit sets the maximum number of instructions executed by a single call
// to Run.
func StepLimit(n int64) Option {
	return func(i *Instance) error {
		if n < 0 {
			return errors.Errorf("negative step limit %d", n)
		}
		i.Control.StepLimit = n
		return nil
	}
}

// Breakpoint sets breakpoints at the given addresses.
func Breakpoint(addrs ...Word) Option {
	return func(i *Instance) error {
		for _, a := range addrs {
			if int(a) >= MemSize {
				return errors.Errorf("breakpoint address %d out of range", a)
			}
			i.Breakpoints.Set(uint(a))
		}
		return nil
	}
}

// SetOptions sets the provided options.
func (i *Instance) SetOptions(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return err
		}
	}
	return nil
}

// New creates a new VM instance. The image is copied into memory starting at
// address 0. It must not be larger than MemSize and all its words must be
// valid, otherwise an ErrInvalidWord error is returned.
//
// Options will be set by calling SetOptions.
func New(image []Word, opts ...Option) (*Instance, error) {
	if len(image) > MemSize {
		return nil, errors.Errorf("image too large: %d words", len(image))
	}
	if err := Validate(image); err != nil {
		return nil, err
	}
	i := &Instance{
		log: zerolog.Nop(),
	}
	copy(i.Mem[:], image)
	if err := i.SetOptions(opts...); err != nil {
		return nil, err
	}
	if i.term == nil {
		i.term = NewConsole()
	}
	return i, nil
}

// Terminal returns the instance terminal.
func (i *Instance) Terminal() Terminal { return i.term }

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
