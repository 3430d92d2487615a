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

// Opcode is an instruction opcode.
type Opcode Word

// Synacor Virtual Machine Opcodes.
const (
	OpHalt Opcode = iota
	OpSet
	OpPush
	OpPop
	OpEq
	OpGt
	OpJmp
	OpJt
	OpJf
	OpAdd
	OpMult
	OpMod
	OpAnd
	OpOr
	OpNot
	OpRmem
	OpWmem
	OpCall
	OpRet
	OpOut
	OpIn
	OpNoop

	opCount
)

var opcodes = [opCount]struct {
	name string
	args int
}{
	{"halt", 0},
	{"set", 2},
	{"push", 1},
	{"pop", 1},
	{"eq", 3},
	{"gt", 3},
	{"jmp", 1},
	{"jt", 2},
	{"jf", 2},
	{"add", 3},
	{"mult", 3},
	{"mod", 3},
	{"and", 3},
	{"or", 3},
	{"not", 2},
	{"rmem", 2},
	{"wmem", 2},
	{"call", 1},
	{"ret", 0},
	{"out", 1},
	{"in", 1},
	{"noop", 0},
}

var opcodeIndex = make(map[string]Opcode, opCount)

func init() {
	for i, v := range opcodes {
		opcodeIndex[v.name] = Opcode(i)
	}
}

// IsOpcode returns true if w is a valid opcode.
func IsOpcode(w Word) bool { return w < Word(opCount) }

// LookupOpcode returns the opcode with the given mnemonic.
func LookupOpcode(name string) (op Opcode, ok bool) {
	op, ok = opcodeIndex[name]
	return op, ok
}

// NumArgs returns the number of operands expected by op.
func (op Opcode) NumArgs() int {
	if op >= opCount {
		return 0
	}
	return opcodes[op].args
}

func (op Opcode) String() string {
	if op >= opCount {
		return "op(" + strconv.Itoa(int(op)) + ")"
	}
	return opcodes[op].name
}
