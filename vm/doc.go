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

// Package vm implements the Synacor challenge virtual machine.
//
// The machine has 16-bit words, eight registers, a single 32768 words address
// space shared by code and data, an unbounded stack and a character terminal.
// Words 0..32767 are literal values, words 32768..32775 designate registers
// r0..r7 and any larger word is invalid.
//
// Instructions are decoded on demand from memory at every step, so programs
// that write over their own code behave as expected. The same decoder (Decode
// and DecodeWindow) is used by the executor, the asm disassembler and the
// debug package, so a listing can never disagree with what actually runs.
//
// I/O goes through the Terminal interface. The provided Console can be fed a
// script of command lines, can read live lines from an io.Reader once the
// script is exhausted and recognizes an escape line that hands control over
// to a debugger. When no input is available, the in instruction does not
// advance the instruction pointer and Run returns with the Waiting state: the
// same instruction is retried on the next call once input has been fed.
//
// As in most small VMs, the instruction pointer is not incremented in a
// single place: each instruction deals with it as needed.
package vm
