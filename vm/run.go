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
	"context"

	"github.com/pkg/errors"
)

// number of steps between two checks of the context
const ctxCheckSteps = 1024

// Step decodes and executes the instruction at IP.
//
// If the in instruction has no input available, IP is left unchanged and Step
// returns Waiting, or Break if the terminal entered interactive mode.
//
// If an error occurs, IP will point to the instruction that triggered the
// error.
func (i *Instance) Step() (st State, err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = errors.Wrapf(e, "recovered error @ip=%d, stack %d", i.IP, len(i.Stack))
			default:
				panic(e)
			}
		}
	}()
	in, err := Decode(&i.Mem, i.IP)
	if err != nil {
		return Running, err
	}
	if i.Control.Trace {
		i.log.Info().
			Int64("step", i.insCount).
			Uint16("ip", uint16(i.IP)).
			Stringer("ins", in).
			Uints16("regs", regs16(&i.Regs)).
			Int("stack", len(i.Stack)).
			Msg("exec")
	}
	st, err = Execute(in, &i.IP, &i.Storage, i.term)
	if err != nil {
		return st, err
	}
	switch st {
	case Waiting:
		if i.term.Interactive() {
			st = Break
		}
	default:
		i.insCount++
	}
	return st, nil
}

func regs16(r *Registers) []uint16 {
	v := make([]uint16, len(r))
	for k := range r {
		v[k] = uint16(r[k])
	}
	return v
}

// Run starts execution of the VM.
//
// Run returns when the program halts (Halted), when the in instruction has no
// input available (Waiting), when the terminal escape has been read or a
// breakpoint is reached (Break), when StepLimit instructions have been
// executed (Running) or when ctx is canceled (Running and ctx.Err()).
//
// The breakpoint at the current IP, if any, is ignored for the first step so
// that a program stopped on a breakpoint can be resumed.
//
// Calling Run again after Waiting or Break retries the pending instruction.
func (i *Instance) Run(ctx context.Context) (State, error) {
	var steps int64
	for {
		if steps%ctxCheckSteps == 0 {
			if err := ctx.Err(); err != nil {
				return Running, err
			}
		}
		if steps > 0 && i.Breakpoints.Test(uint(i.IP)) {
			return Break, nil
		}
		if i.Control.StepLimit > 0 && steps >= i.Control.StepLimit {
			return Running, nil
		}
		st, err := i.Step()
		steps++
		if err != nil || st != Running {
			return st, err
		}
	}
}
