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

// The synacor command line tool runs Synacor challenge programs with the
// package github.com/db47h/synacor/vm, and drops into an interactive debugger
// on demand.
//
// Usage:
//
//	-asm filename
//		  assemble and run source file filename instead of loading an image
//	-break address
//		  set a breakpoint at address (can be specified multiple times)
//	-code-end address
//		  with -disasm, dump words at or after address as raw data
//	-debug
//		  enable debug diagnostics
//	-disasm
//		  disassemble the image to stdout and exit
//	-dump
//		  dump registers and stack upon exit
//	-escape char
//		  input lines starting with char enter the debugger (default >)
//	-image filename
//		  Load program image from file filename (default "challenge.bin")
//	-noprompt
//		  read debugger commands from stdin without line editing
//	-o filename
//		  save the loaded or assembled image to filename and exit
//	-script filename
//		  play the walkthrough filename before reading commands from stdin
//	-solve
//		  print the coins and orb puzzle solutions and exit
//	-steps n
//		  stop after n instructions (0 means no limit)
//	-teleporter
//		  search the teleporter code and exit
//	-trace
//		  log every executed instruction
//	-workers int
//		  number of workers for the teleporter search (default NumCPU)
//
// Once the walkthrough, if any, has been played, the program reads its input
// from stdin. A line starting with the escape marker is not sent to the
// program: it suspends execution and starts the debugger. Type "help" at the
// debugger prompt for a list of commands, and "quit" to resume execution. The
// debugger is also started when a breakpoint is reached.
//
// When stdin is a terminal, debugger commands are read with a line editor
// supporting command completion. -noprompt disables it.
//
// -script: the walkthrough is a YAML file listing the commands to play. The
// teleporter check can be bypassed after a given number of commands:
//
//	commands:
//	  - take tablet
//	  - use tablet
//	  # ...
//	teleporter:
//	  after: 42
//	  code: 25734
//
// -teleporter: brute force search of the value of r7 that passes the
// teleporter check. The search runs on all CPUs unless -workers is specified.
//
// -asm, -o: the assembler accepts the mnemonics of the instruction set, with
// registers r0 to r7, labels, and the .org, .equ and .dat directives. See
// package github.com/db47h/synacor/asm. Combined with -o, the assembled image
// is saved to disk instead of being run.
//
// -steps: the budget includes the instructions executed while playing the
// walkthrough.
//
// -debug: will print a full stacktrace and dump the VM registers should the
// VM crash.
//
// -dump: dump the instruction pointer, registers and stack to stdout on exit.
package main
