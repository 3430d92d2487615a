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

import "strconv"

// List of VM errors for Errno.
const (
	ErrInvalidWord Errno = iota + 1
	ErrInvalidOpcode
	ErrInvalidOperand
	ErrStackUnderflow
	ErrDivideByZero
)

var strError = [...]string{
	"",
	"invalid word",
	"invalid opcode",
	"invalid operand",
	"stack underflow",
	"division by zero",
}

// Errno describes the nature of a VM error. Use errors.Cause to get the
// Errno of an error returned by this package:
//
//	if errors.Cause(err) == vm.ErrStackUnderflow {
//		...
//	}
type Errno int

func (e Errno) Error() string {
	if e <= 0 || int(e) >= len(strError) {
		return "errno " + strconv.Itoa(int(e))
	}
	return strError[e]
}

// Error describes the cause and the context of a VM error.
type Error struct {
	Errno Errno // nature of the error
	Addr  Word  // address of the offending word or instruction
	Word  Word  // offending word, if any
}

func (e *Error) Error() string {
	msg := e.Errno.Error()
	switch e.Errno {
	case ErrInvalidWord, ErrInvalidOpcode, ErrInvalidOperand:
		msg += " " + strconv.Itoa(int(e.Word))
	}
	return msg + " at " + strconv.Itoa(int(e.Addr))
}

// Cause implements the causer interface of github.com/pkg/errors.
func (e *Error) Cause() error { return e.Errno }

// Unwrap returns the Errno of e.
func (e *Error) Unwrap() error { return e.Errno }
