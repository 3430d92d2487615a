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

package asm

import (
	"io"
	"strconv"

	"github.com/db47h/synacor/internal/synio"
	"github.com/db47h/synacor/vm"
)

// Assemble compiles assembly read from the supplied io.Reader and returns the
// resulting image and error if any.
//
// Then name parameter is used only in error messages to name the source of the
// error. If the io.Reader is a file, name should be the file name.
//
// The returned error, if not nil, can safely be cast to an ErrAsm value that
// will contain up to 10 entries.
func Assemble(name string, r io.Reader) (img []vm.Word, err error) {
	return newParser().Parse(name, r)
}

// Disassemble writes a disassembly of the instruction at position pc in mem to
// the specified io.Writer and returns the position of the next instruction
// and any write error.
//
// Words that do not decode to a valid instruction are written as raw words
// and next is pc+1. Since code and data are not delimited in an image, the
// disassembly may be misaligned after inline data.
func Disassemble(mem []vm.Word, pc int, w io.Writer) (next int, err error) {
	ew := synio.NewErrWriter(w)
	end := pc + 4
	if end > len(mem) {
		end = len(mem)
	}
	in, derr := vm.DecodeWindow(vm.Word(pc), mem[pc:end])
	if derr != nil {
		io.WriteString(ew, strconv.Itoa(pc)+"\t"+strconv.Itoa(int(mem[pc])))
		return pc + 1, ew.Err
	}
	io.WriteString(ew, in.Disassemble())
	return pc + int(in.Size()), ew.Err
}

// DisassembleAll writes a disassembly of all words in mem to the specified
// io.Writer, one line per instruction or raw word. If codeEnd is greater than
// zero, words at addresses codeEnd and above are written as raw words. It
// will return any write error.
func DisassembleAll(mem []vm.Word, codeEnd int, w io.Writer) error {
	ew := synio.NewErrWriter(w)
	for pc := 0; pc < len(mem); {
		if codeEnd > 0 && pc >= codeEnd {
			io.WriteString(ew, strconv.Itoa(pc)+"\t"+strconv.Itoa(int(mem[pc])))
			pc++
		} else {
			pc, _ = Disassemble(mem, pc, ew)
		}
		ew.Write([]byte{'\n'})
		if ew.Err != nil {
			return ew.Err
		}
	}
	return nil
}
