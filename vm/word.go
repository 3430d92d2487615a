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

	"github.com/pkg/errors"
)

// Word is the raw type stored in a memory location or register.
type Word uint16

const (
	// MemSize is the number of words in memory.
	MemSize = 1 << 15
	// NumRegs is the number of registers.
	NumRegs = 8
	// MaxValue is the largest literal value.
	MaxValue Word = MemSize - 1
	// Modulus is applied to the results of add and mult.
	Modulus = MemSize
	// MaxWord is the largest valid encoding (register r7).
	MaxWord Word = regBase + NumRegs - 1

	regBase Word = MemSize
)

// Register is a register index in the range 0..7. Values of this type are
// validated when created, so accessing a register cannot fail.
type Register uint8

// NewRegister returns the register with the given index.
func NewRegister(i int) (Register, error) {
	if i < 0 || i >= NumRegs {
		return 0, errors.Errorf("invalid register index %d", i)
	}
	return Register(i), nil
}

func (r Register) String() string {
	return "r" + strconv.Itoa(int(r))
}

// Operand is a decoded instruction argument: either a literal value or a
// register reference.
type Operand struct {
	v   Word
	reg bool
}

// Literal returns a literal operand. It panics if v is larger than MaxValue.
func Literal(v Word) Operand {
	if v > MaxValue {
		panic(errors.Errorf("literal %d out of range", v))
	}
	return Operand{v: v}
}

// Reg returns an operand referring to register r.
func Reg(r Register) Operand {
	return Operand{v: Word(r), reg: true}
}

// DecodeOperand converts an encoded word to an operand. Words larger than
// MaxWord return an ErrInvalidOperand error.
func DecodeOperand(w Word) (Operand, error) {
	switch {
	case w <= MaxValue:
		return Operand{v: w}, nil
	case w <= MaxWord:
		return Operand{v: w - regBase, reg: true}, nil
	}
	return Operand{}, &Error{Errno: ErrInvalidOperand, Word: w}
}

// IsRegister returns true if o refers to a register.
func (o Operand) IsRegister() bool { return o.reg }

// Register returns the register o refers to. ok is false for literals.
func (o Operand) Register() (r Register, ok bool) {
	return Register(o.v), o.reg
}

// Value returns the literal value of o. It is only meaningful for literals.
func (o Operand) Value() Word { return o.v }

// Encode returns the word encoding of o.
func (o Operand) Encode() Word {
	if o.reg {
		return regBase + o.v
	}
	return o.v
}

func (o Operand) String() string {
	if o.reg {
		return Register(o.v).String()
	}
	return strconv.Itoa(int(o.v))
}
