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

package debug

import "github.com/db47h/synacor/vm"

// RegWrite is a register write request.
type RegWrite struct {
	Reg   vm.Register
	Value vm.Word
}

// MemWrite is a memory write request.
type MemWrite struct {
	Addr  vm.Word
	Value vm.Word
}

// Actions describes the changes requested by a debugger command. The zero
// value requests nothing.
type Actions struct {
	Quit    bool      // leave the debugger
	Verbose *bool     // new value of the trace setting
	SetReg  *RegWrite // register write
	SetMem  *MemWrite // memory write
	Break   *vm.Word  // breakpoint to toggle
	Step    int       // number of instructions to execute before re-entering the debugger
}

// Apply applies the state changes requested in a to i. Quit and Step are left
// to the caller.
func (a Actions) Apply(i *vm.Instance) {
	if a.Verbose != nil {
		i.Control.Trace = *a.Verbose
	}
	if a.SetReg != nil {
		i.Regs.Set(a.SetReg.Reg, a.SetReg.Value)
	}
	if a.SetMem != nil {
		i.Mem.Write(a.SetMem.Addr, a.SetMem.Value)
	}
	if a.Break != nil {
		b := uint(*a.Break)
		if i.Breakpoints.Test(b) {
			i.Breakpoints.Clear(b)
		} else {
			i.Breakpoints.Set(b)
		}
	}
}

// Resume returns true if execution should resume.
func (a Actions) Resume() bool {
	return a.Quit || a.Step > 0
}
