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

// Registers is the VM register file.
type Registers [NumRegs]Word

// Get returns the value of register r.
func (rs *Registers) Get(r Register) Word { return rs[r] }

// Set sets the value of register r.
func (rs *Registers) Set(r Register, v Word) { rs[r] = v }

// Resolve returns the value of a literal operand or the content of the
// register it refers to.
func (rs Registers) Resolve(o Operand) Word {
	if r, ok := o.Register(); ok {
		return rs[r]
	}
	return o.Value()
}

// Assign stores v in the register o refers to. It does nothing if o is a
// literal.
func (rs *Registers) Assign(o Operand, v Word) {
	if r, ok := o.Register(); ok {
		rs[r] = v
	}
}

// Memory is the VM address space, shared by code and data.
//
// Addresses must be lower than MemSize. Accessing memory out of range panics.
type Memory [MemSize]Word

// maximum instruction size
const windowSize = 4

// Read returns the word at addr.
func (m *Memory) Read(addr Word) Word { return m[addr] }

// Write stores v at addr.
func (m *Memory) Write(addr, v Word) { m[addr] = v }

// Window returns a slice of up to 4 words starting at addr, enough to hold any
// instruction and its operands. The returned slice shares storage with m.
func (m *Memory) Window(addr Word) []Word {
	end := int(addr) + windowSize
	if end > len(m) {
		end = len(m)
	}
	return m[addr:end:end]
}

// Stack is the VM stack. The zero value is an empty stack.
type Stack []Word

// Push pushes v on top of the stack.
func (s *Stack) Push(v Word) {
	*s = append(*s, v)
}

// Pop removes the value on top of the stack and returns it. It returns an
// ErrStackUnderflow error if the stack is empty.
func (s *Stack) Pop() (Word, error) {
	l := len(*s) - 1
	if l < 0 {
		return 0, ErrStackUnderflow
	}
	v := (*s)[l]
	*s = (*s)[:l]
	return v, nil
}

// Len returns the stack depth.
func (s Stack) Len() int { return len(s) }

// Values returns a copy of the stack contents, bottom first.
func (s Stack) Values() []Word {
	return append([]Word(nil), s...)
}

// Storage holds the three storage regions of the VM.
type Storage struct {
	Mem   Memory
	Regs  Registers
	Stack Stack
}
