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

// Package debug implements the command language of the Synacor VM debugger.
//
// A Debugger executes one command line at a time against a VM instance. It
// only reads the instance state: changes are returned as Actions and applied
// by the code driving the VM with Actions.Apply, so that execution order stays
// under the control of a single loop.
//
// Commands:
//
//	view [n]	show the next n instructions from the instruction pointer
//	regs		show registers
//	stack		show the stack
//	print a		print the word at address a
//	show a [n]	show n instructions at address a
//	verbose on|off	turn instruction tracing on or off
//	setr r val	set register r (0-7) to val
//	setm a val	set memory address a to val
//	break [a]	toggle breakpoint at address a, or list breakpoints
//	step [n]	execute n instructions, then return to the debugger
//	quit, q		leave the debugger and resume execution
//	help		show help
//
// Numeric arguments are unsigned 16 bits decimal values. Commands with missing
// or invalid arguments do nothing.
package debug
