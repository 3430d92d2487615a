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

// Package asm provides utility functions to assemble and disassemble Synacor
// VM code.
//
// Supported assembler mnemonics:
//
//	a, b and c are operands. reg operands must be registers (or the write is
//	ignored), val operands are either a literal value or a register whose
//	content is used. Arithmetic is modulo 32768.
//
//	opcode	asm	args		description
//	------	---	----		------------------------------------------------------
//	0	halt			stop execution
//	1	set	reg val		set register a to the value of b
//	2	push	val		push a onto the stack
//	3	pop	reg		remove the top element from the stack and write it into a
//	4	eq	reg val val	set a to 1 if b is equal to c, 0 otherwise
//	5	gt	reg val val	set a to 1 if b is greater than c, 0 otherwise
//	6	jmp	val		jump to a
//	7	jt	val val		if a is nonzero, jump to b
//	8	jf	val val		if a is zero, jump to b
//	9	add	reg val val	assign into a the sum of b and c
//	10	mult	reg val val	store into a the product of b and c
//	11	mod	reg val val	store into a the remainder of b divided by c
//	12	and	reg val val	store into a the bitwise and of b and c
//	13	or	reg val val	store into a the bitwise or of b and c
//	14	not	reg val		store 15-bit bitwise inverse of b in a
//	15	rmem	reg val		read memory at address b and write it to a
//	16	wmem	val val		write the value from b into memory at address a
//	17	call	val		push the address of the next instruction and jump to a
//	18	ret			pop an address from the stack and jump to it. Halts if the stack is empty
//	19	out	val		write the character represented by ascii code a to the terminal
//	20	in	reg		read a character from the terminal and write its ascii code to a
//	21	noop			no operation
//
// Registers are named r0 to r7.
//
// Comments:
//
// Comments are placed between parentheses, i.e. '(' and ')'. The body of the
// comment must be separated from the enclosing parentheses by a space:
//
//	( this is a valid comment )
//	( this is a
//	  rather long
//	  multiline comment )
//
// Literals and identifiers:
//
// Input is split at white space (space, tab or new line) into tokens. The
// parser then does the following:
//
//	- If a token can be converted to a Go integer (see strconv.ParseInt), it will
//	  be converted to an integer literal.
//	- If it is a Go character literal between single quotes, it will be converted to
//	  the corresponding integer literal. ' ' cannot be used since it contains a
//	  space; use 32 instead.
//	- If a token is the name of a defined constant, it will be replaced internally by
//	  the constant's value and can be used anywhere an integer literal is expected.
//	- r0 to r7 are registers.
//	- Then, if an instruction is expected, the token is looked up in the assembler
//	  mnemonics. If an argument is expected, the token is a label reference.
//
// Instruction arguments must be in the range 0-32767 or be a register. Values
// placed where an instruction is expected are compiled as raw words like .dat
// does.
//
// Labels:
//
// Labels are defined by prefixing them with a colon (:) and can be used as an
// address in any argument (without the ':' prefix):
//
//		call foo	( forward references are ok )
//		halt
//	:foo	out 'x'
//		ret
//
// Local labels:
//
// Local labels work in the same way as in the GNU assembler. They are defined
// as a colon followed by a sequence of digits (i.e. :007, :0, :42) and can be
// defined multiple times. References to such labels must be suffixed with
// either a '-' (backward reference to the last definition of this label), or
// a '+' (forward reference to the next definition of this label):
//
//	:1	jmp 1+	( jumps to the next :1 )
//	:2	jmp 1-	( jumps to the previous :1 )
//	:1	jmp 2+
//	:2	jmp 1-
//
// Assembler directives:
//
//	.equ <IDENTIFIER> <value>
//
// defines a constant value. The value must be an integer value, named
// constant or character literal.
//
//	.org <value>
//
// places the next instruction at the given address.
//
//	.dat <value>
//
// compiles the specified value, named constant, register, character literal
// or label address as a raw word. Values up to 65535 are accepted, which is
// how invalid images are produced for testing purposes:
//
//	:table	.dat 65
//		.dat 'B'
//
// The words at addresses table+0 and table+1 will contain 65 and 66 respectively.
package asm
