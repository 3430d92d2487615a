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

// State is the execution state reported by Execute, Step and Run.
type State int

// Execution states.
const (
	Running State = iota // ready to execute the next instruction
	Halted               // halt, or ret with an empty stack
	Waiting              // in instruction waiting for input
	Break                // debugger requested: escape line or breakpoint
)

var stateNames = [...]string{"running", "halted", "waiting", "break"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

func b2w(b bool) Word {
	if b {
		return 1
	}
	return 0
}

// Execute executes a single instruction. Instructions that do not branch
// advance ip by their size. If the terminal has no input available, the in
// instruction leaves ip unchanged and Execute returns Waiting.
func Execute(in Instruction, ip *Word, st *Storage, t Terminal) (State, error) {
	a, b, c := in.Args[0], in.Args[1], in.Args[2]
	r := &st.Regs
	switch in.Op {
	case OpHalt:
		return Halted, nil
	case OpSet:
		r.Assign(a, r.Resolve(b))
	case OpPush:
		st.Stack.Push(r.Resolve(a))
	case OpPop:
		v, err := st.Stack.Pop()
		if err != nil {
			return Running, &Error{Errno: ErrStackUnderflow, Addr: in.Addr}
		}
		r.Assign(a, v)
	case OpEq:
		r.Assign(a, b2w(r.Resolve(b) == r.Resolve(c)))
	case OpGt:
		r.Assign(a, b2w(r.Resolve(b) > r.Resolve(c)))
	case OpJmp:
		*ip = r.Resolve(a)
		return Running, nil
	case OpJt:
		if r.Resolve(a) != 0 {
			*ip = r.Resolve(b)
			return Running, nil
		}
	case OpJf:
		if r.Resolve(a) == 0 {
			*ip = r.Resolve(b)
			return Running, nil
		}
	case OpAdd:
		r.Assign(a, Word((uint32(r.Resolve(b))+uint32(r.Resolve(c)))%Modulus))
	case OpMult:
		r.Assign(a, Word((uint32(r.Resolve(b))*uint32(r.Resolve(c)))%Modulus))
	case OpMod:
		d := r.Resolve(c)
		if d == 0 {
			return Running, &Error{Errno: ErrDivideByZero, Addr: in.Addr}
		}
		r.Assign(a, r.Resolve(b)%d)
	case OpAnd:
		r.Assign(a, r.Resolve(b)&r.Resolve(c))
	case OpOr:
		r.Assign(a, r.Resolve(b)|r.Resolve(c))
	case OpNot:
		r.Assign(a, ^r.Resolve(b)&MaxValue)
	case OpRmem:
		r.Assign(a, st.Mem.Read(r.Resolve(b)))
	case OpWmem:
		st.Mem.Write(r.Resolve(a), r.Resolve(b))
	case OpCall:
		st.Stack.Push(*ip + in.Size())
		*ip = r.Resolve(a)
		return Running, nil
	case OpRet:
		v, err := st.Stack.Pop()
		if err != nil {
			// empty stack means halt
			return Halted, nil
		}
		*ip = v
		return Running, nil
	case OpOut:
		if err := t.WriteByte(byte(r.Resolve(a))); err != nil {
			return Running, err
		}
	case OpIn:
		ch, ok := t.ReadChar()
		if !ok {
			return Waiting, nil
		}
		r.Assign(a, Word(ch))
	case OpNoop:
	default:
		return Running, &Error{Errno: ErrInvalidOpcode, Addr: in.Addr, Word: Word(in.Op)}
	}
	*ip += in.Size()
	return Running, nil
}
