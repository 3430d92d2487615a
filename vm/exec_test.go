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

package vm_test

import (
	"testing"

	"github.com/db47h/synacor/vm"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reg(i int) vm.Operand { return vm.Reg(vm.Register(i)) }

func lit(v vm.Word) vm.Operand { return vm.Literal(v) }

func exec(t *testing.T, st *vm.Storage, ip vm.Word, op vm.Opcode, args ...vm.Operand) vm.Word {
	t.Helper()
	s, err := vm.Execute(vm.NewInstruction(op, ip, args...), &ip, st, vm.NewConsole())
	require.NoError(t, err)
	require.Equal(t, vm.Running, s)
	return ip
}

func TestDecodeOperand(t *testing.T) {
	o, err := vm.DecodeOperand(32767)
	require.NoError(t, err)
	assert.False(t, o.IsRegister())
	assert.Equal(t, vm.Word(32767), o.Value())

	o, err = vm.DecodeOperand(32768)
	require.NoError(t, err)
	r, ok := o.Register()
	assert.True(t, ok)
	assert.Equal(t, vm.Register(0), r)

	o, err = vm.DecodeOperand(32775)
	require.NoError(t, err)
	r, ok = o.Register()
	assert.True(t, ok)
	assert.Equal(t, vm.Register(7), r)
	assert.Equal(t, "r7", o.String())

	_, err = vm.DecodeOperand(32776)
	require.Error(t, err)
	assert.Equal(t, vm.ErrInvalidOperand, errors.Cause(err))

	_, err = vm.NewRegister(8)
	assert.Error(t, err)

	o, err = vm.DecodeOperand(vm.Literal(vm.MaxValue).Encode())
	require.NoError(t, err)
	assert.Equal(t, vm.MaxValue, o.Value())
	assert.Panics(t, func() { vm.Literal(40000) })
	assert.Panics(t, func() { vm.Literal(vm.MaxValue + 1) })
}

func TestDecode(t *testing.T) {
	var m vm.Memory
	copy(m[100:], []vm.Word{9, 32771, 32770, 37})
	in, err := vm.Decode(&m, 100)
	require.NoError(t, err)
	assert.Equal(t, vm.OpAdd, in.Op)
	assert.Equal(t, vm.Word(4), in.Size())
	assert.Equal(t, "add r3 r2 37", in.String())
	assert.Equal(t, "100\tadd\tr3\tr2\t37", in.Disassemble())

	m[200] = 22
	_, err = vm.Decode(&m, 200)
	assert.Equal(t, vm.ErrInvalidOpcode, errors.Cause(err))

	copy(m[300:], []vm.Word{1, 32776, 0})
	_, err = vm.Decode(&m, 300)
	require.Error(t, err)
	assert.Equal(t, vm.ErrInvalidOperand, errors.Cause(err))
	assert.Equal(t, vm.Word(301), err.(*vm.Error).Addr)

	// truncated by the end of memory
	m[vm.MemSize-1] = vm.Word(vm.OpAdd)
	_, err = vm.Decode(&m, vm.MemSize-1)
	assert.Equal(t, vm.ErrInvalidOperand, errors.Cause(err))

	_, err = vm.DecodeWindow(0, nil)
	assert.Equal(t, vm.ErrInvalidOpcode, errors.Cause(err))
}

func TestOpcodes(t *testing.T) {
	for w := vm.Word(0); w < 22; w++ {
		op := vm.Opcode(w)
		require.True(t, vm.IsOpcode(w))
		o, ok := vm.LookupOpcode(op.String())
		require.True(t, ok)
		assert.Equal(t, op, o)
	}
	assert.False(t, vm.IsOpcode(22))
	assert.Equal(t, 3, vm.OpAdd.NumArgs())
	assert.Equal(t, 0, vm.OpRet.NumArgs())
	assert.Equal(t, "op(42)", vm.Opcode(42).String())
}

func TestDecode_roundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)
	properties.Property("encode(decode(w)) == w", prop.ForAll(
		func(op, a, b, c uint16) bool {
			w := []vm.Word{vm.Word(op), vm.Word(a), vm.Word(b), vm.Word(c)}
			w = w[:1+vm.Opcode(op).NumArgs()]
			in, err := vm.DecodeWindow(10, w)
			if err != nil {
				return false
			}
			enc := in.Encode()
			if len(enc) != len(w) || int(in.Size()) != len(w) {
				return false
			}
			for i := range w {
				if enc[i] != w[i] {
					return false
				}
			}
			in2, err := vm.DecodeWindow(10, enc)
			return err == nil && in2 == in
		},
		gen.UInt16Range(0, 21),
		gen.UInt16Range(0, 32775),
		gen.UInt16Range(0, 32775),
		gen.UInt16Range(0, 32775),
	))
	properties.TestingRun(t)
}

func TestArithmetic_properties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	v := gen.UInt16Range(0, 32767)
	properties.Property("add wraps around", prop.ForAll(
		func(b, c uint16) bool {
			var st vm.Storage
			vm.Execute(vm.NewInstruction(vm.OpAdd, 0, reg(0), lit(vm.Word(b)), lit(vm.Word(c))), new(vm.Word), &st, nil)
			return st.Regs.Get(0) == vm.Word((uint32(b)+uint32(c))%32768)
		}, v, v))
	properties.Property("mult wraps around", prop.ForAll(
		func(b, c uint16) bool {
			var st vm.Storage
			vm.Execute(vm.NewInstruction(vm.OpMult, 0, reg(0), lit(vm.Word(b)), lit(vm.Word(c))), new(vm.Word), &st, nil)
			return st.Regs.Get(0) == vm.Word((uint32(b)*uint32(c))%32768)
		}, v, v))
	properties.Property("not is an involution", prop.ForAll(
		func(b uint16) bool {
			var st vm.Storage
			ip := vm.Word(0)
			vm.Execute(vm.NewInstruction(vm.OpNot, 0, reg(0), lit(vm.Word(b))), &ip, &st, nil)
			vm.Execute(vm.NewInstruction(vm.OpNot, 0, reg(1), reg(0)), &ip, &st, nil)
			return st.Regs.Get(0) <= vm.MaxValue && st.Regs.Get(1) == vm.Word(b)
		}, v))
	properties.Property("eq and gt produce 0 or 1", prop.ForAll(
		func(b, c uint16) bool {
			var st vm.Storage
			ip := vm.Word(0)
			vm.Execute(vm.NewInstruction(vm.OpEq, 0, reg(0), lit(vm.Word(b)), lit(vm.Word(c))), &ip, &st, nil)
			vm.Execute(vm.NewInstruction(vm.OpGt, 0, reg(1), lit(vm.Word(b)), lit(vm.Word(c))), &ip, &st, nil)
			eq, gt := st.Regs.Get(0), st.Regs.Get(1)
			return (eq == 1) == (b == c) && (gt == 1) == (b > c) && eq <= 1 && gt <= 1
		}, v, v))
	properties.Property("push then pop round trip", prop.ForAll(
		func(b uint16, depth int) bool {
			var st vm.Storage
			for k := 0; k < depth; k++ {
				st.Stack.Push(vm.Word(k))
			}
			ip := vm.Word(0)
			vm.Execute(vm.NewInstruction(vm.OpPush, 0, lit(vm.Word(b))), &ip, &st, nil)
			_, err := vm.Execute(vm.NewInstruction(vm.OpPop, 2, reg(3)), &ip, &st, nil)
			return err == nil && st.Regs.Get(3) == vm.Word(b) && st.Stack.Len() == depth && ip == 4
		}, v, gen.IntRange(0, 10)))
	properties.TestingRun(t)
}

func TestExecute_scenarios(t *testing.T) {
	var st vm.Storage
	st.Regs.Set(2, 40)
	ip := exec(t, &st, 0, vm.OpAdd, reg(3), reg(2), lit(37))
	assert.Equal(t, vm.Word(77), st.Regs.Get(3))
	assert.Equal(t, vm.Word(4), ip)

	st.Regs.Set(2, 4)
	exec(t, &st, 0, vm.OpNot, reg(3), reg(2))
	assert.Equal(t, vm.Word(32763), st.Regs.Get(3))

	// branches
	assert.Equal(t, vm.Word(13), exec(t, &st, 10, vm.OpJt, lit(0), lit(100)))
	assert.Equal(t, vm.Word(100), exec(t, &st, 10, vm.OpJt, lit(3), lit(100)))
	assert.Equal(t, vm.Word(100), exec(t, &st, 10, vm.OpJf, lit(0), lit(100)))
	assert.Equal(t, vm.Word(13), exec(t, &st, 10, vm.OpJf, reg(3), lit(100)))
	assert.Equal(t, vm.Word(5), exec(t, &st, 10, vm.OpJmp, lit(5)))

	// call / ret
	assert.Equal(t, vm.Word(100), exec(t, &st, 10, vm.OpCall, lit(100)))
	assert.Equal(t, []vm.Word{12}, st.Stack.Values())
	assert.Equal(t, vm.Word(12), exec(t, &st, 100, vm.OpRet))
	assert.Zero(t, st.Stack.Len())

	// literal destination
	regs := st.Regs
	exec(t, &st, 0, vm.OpSet, lit(1), lit(42))
	assert.Equal(t, regs, st.Regs)

	// wmem / rmem
	exec(t, &st, 0, vm.OpWmem, lit(1000), lit(1234))
	assert.Equal(t, vm.Word(1234), st.Mem.Read(1000))
	exec(t, &st, 0, vm.OpRmem, reg(5), lit(1000))
	assert.Equal(t, vm.Word(1234), st.Regs.Get(5))
}

func TestExecute_io(t *testing.T) {
	var st vm.Storage
	c := vm.NewConsole()
	ip := vm.Word(50)
	s, err := vm.Execute(vm.NewInstruction(vm.OpIn, ip, reg(0)), &ip, &st, c)
	require.NoError(t, err)
	assert.Equal(t, vm.Waiting, s)
	assert.Equal(t, vm.Word(50), ip)

	c.Feed("A")
	s, err = vm.Execute(vm.NewInstruction(vm.OpIn, ip, reg(0)), &ip, &st, c)
	require.NoError(t, err)
	assert.Equal(t, vm.Running, s)
	assert.Equal(t, vm.Word(52), ip)
	assert.Equal(t, vm.Word('A'), st.Regs.Get(0))

	_, err = vm.Execute(vm.NewInstruction(vm.OpOut, ip, reg(0)), &ip, &st, c)
	require.NoError(t, err)
	assert.Equal(t, "A", c.Drain())
	assert.Equal(t, "", c.Output())

	s, err = vm.Execute(vm.NewInstruction(vm.OpHalt, ip), &ip, &st, c)
	require.NoError(t, err)
	assert.Equal(t, vm.Halted, s)
	assert.Equal(t, "halted", s.String())
}
