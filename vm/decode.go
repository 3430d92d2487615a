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
	"strconv"
	"strings"
)

// Instruction is a decoded instruction. Only the first Op.NumArgs() entries
// of Args are meaningful.
type Instruction struct {
	Op   Opcode
	Addr Word // address of the opcode word
	Args [3]Operand
}

// NewInstruction builds an instruction from its opcode and operands. It is
// the inverse of DecodeWindow, mainly useful for tests and code generation.
func NewInstruction(op Opcode, addr Word, args ...Operand) Instruction {
	in := Instruction{Op: op, Addr: addr}
	copy(in.Args[:], args)
	return in
}

// Name returns the instruction mnemonic.
func (in Instruction) Name() string { return in.Op.String() }

// Size returns the encoded size of the instruction, in words.
func (in Instruction) Size() Word { return 1 + Word(in.Op.NumArgs()) }

// Operands returns the meaningful operands of the instruction.
func (in Instruction) Operands() []Operand { return in.Args[:in.Op.NumArgs()] }

// Encode returns the word encoding of the instruction.
func (in Instruction) Encode() []Word {
	w := make([]Word, 0, in.Size())
	w = append(w, Word(in.Op))
	for _, a := range in.Operands() {
		w = append(w, a.Encode())
	}
	return w
}

// String renders the instruction as "mnemonic arg...".
func (in Instruction) String() string {
	var b strings.Builder
	b.WriteString(in.Name())
	for _, a := range in.Operands() {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	return b.String()
}

// Disassemble renders the instruction as a tab separated listing line:
// "address\tmnemonic\targ...".
func (in Instruction) Disassemble() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(in.Addr)))
	b.WriteByte('\t')
	b.WriteString(in.Name())
	for _, a := range in.Operands() {
		b.WriteByte('\t')
		b.WriteString(a.String())
	}
	return b.String()
}

type decodeFunc func(addr Word, w []Word) (Instruction, error)

// decoders is the dispatch table indexed by opcode.
var decoders = [opCount]decodeFunc{
	OpHalt: noArgs(OpHalt),
	OpSet:  twoArgs(OpSet),
	OpPush: oneArg(OpPush),
	OpPop:  oneArg(OpPop),
	OpEq:   threeArgs(OpEq),
	OpGt:   threeArgs(OpGt),
	OpJmp:  oneArg(OpJmp),
	OpJt:   twoArgs(OpJt),
	OpJf:   twoArgs(OpJf),
	OpAdd:  threeArgs(OpAdd),
	OpMult: threeArgs(OpMult),
	OpMod:  threeArgs(OpMod),
	OpAnd:  threeArgs(OpAnd),
	OpOr:   threeArgs(OpOr),
	OpNot:  twoArgs(OpNot),
	OpRmem: twoArgs(OpRmem),
	OpWmem: twoArgs(OpWmem),
	OpCall: oneArg(OpCall),
	OpRet:  noArgs(OpRet),
	OpOut:  oneArg(OpOut),
	OpIn:   oneArg(OpIn),
	OpNoop: noArgs(OpNoop),
}

func noArgs(op Opcode) decodeFunc {
	return func(addr Word, _ []Word) (Instruction, error) {
		return Instruction{Op: op, Addr: addr}, nil
	}
}

func oneArg(op Opcode) decodeFunc    { return operands(op, 1) }
func twoArgs(op Opcode) decodeFunc   { return operands(op, 2) }
func threeArgs(op Opcode) decodeFunc { return operands(op, 3) }

func operands(op Opcode, n int) decodeFunc {
	return func(addr Word, w []Word) (Instruction, error) {
		in := Instruction{Op: op, Addr: addr}
		if len(w) < n+1 {
			// instruction truncated by the end of memory
			return in, &Error{Errno: ErrInvalidOperand, Addr: addr + Word(len(w))}
		}
		for i := 0; i < n; i++ {
			o, err := DecodeOperand(w[i+1])
			if err != nil {
				e := err.(*Error)
				e.Addr = addr + 1 + Word(i)
				return in, e
			}
			in.Args[i] = o
		}
		return in, nil
	}
}

// DecodeWindow decodes the instruction whose opcode is w[0]. The addr
// argument is the address of w[0] and is only used for error reporting and
// rendering.
func DecodeWindow(addr Word, w []Word) (Instruction, error) {
	if len(w) == 0 {
		return Instruction{}, &Error{Errno: ErrInvalidOpcode, Addr: addr}
	}
	if !IsOpcode(w[0]) {
		return Instruction{}, &Error{Errno: ErrInvalidOpcode, Addr: addr, Word: w[0]}
	}
	return decoders[w[0]](addr, w)
}

// Decode decodes the instruction at addr in m.
func Decode(m *Memory, addr Word) (Instruction, error) {
	return DecodeWindow(addr, m.Window(addr))
}
