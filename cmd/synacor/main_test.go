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

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/c-bata/go-prompt"
	"github.com/db47h/synacor/asm"
	"github.com/db47h/synacor/challenge"
	"github.com/db47h/synacor/debug"
	"github.com/db47h/synacor/vm"
	"github.com/logrusorgru/aurora/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const echoSrc = `
:loop	in r0
	eq r1 r0 'q'
	jt r1 end
	out r0
	jmp loop
:end	halt
`

type testSession struct {
	*session
	out bytes.Buffer // program output
	dbg bytes.Buffer // debugger output
}

func newTestSession(t *testing.T, src string, script []string, opts ...vm.Option) *testSession {
	t.Helper()
	img, err := asm.Assemble(t.Name(), strings.NewReader(src))
	require.NoError(t, err)
	ts := new(testSession)
	c := vm.NewConsole(vm.Echo(&ts.out), vm.Script(script...))
	i, err := vm.New(img, append(opts, vm.Term(c))...)
	require.NoError(t, err)
	ts.session = &session{
		i:    i,
		c:    c,
		d:    debug.New(&ts.dbg, nil),
		read: c.NextLine,
		log:  zerolog.Nop(),
	}
	return ts
}

func TestSession_escape(t *testing.T) {
	s := newTestSession(t, echoSrc, []string{"ab", ">", "regs", "quit", "qq"})
	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, "ab\n", s.out.String())
	assert.Equal(t,
		"=> [0] in r0\n"+
			"Registers: r0=10 r1=0 r2=0 r3=0 r4=0 r5=0 r6=0 r7=0\n"+
			"Quitting debugger\n",
		s.dbg.String())
	assert.False(t, s.c.Interactive())
}

func TestSession_step(t *testing.T) {
	s := newTestSession(t, echoSrc, []string{">", "step 2", "xy", "regs", "quit", "q"})
	require.NoError(t, s.run(context.Background()))
	// "y" stays with the program, the debugger reads the next line
	assert.Equal(t, "xy\n", s.out.String())
	assert.Equal(t,
		"=> [0] in r0\n"+
			"=> [6] jt r1 13\n"+
			"Registers: r0=120 r1=0 r2=0 r3=0 r4=0 r5=0 r6=0 r7=0\n"+
			"Quitting debugger\n",
		s.dbg.String())
	assert.Equal(t, int64(0), s.i.Control.StepLimit)
}

func TestSession_stepHalt(t *testing.T) {
	s := newTestSession(t, echoSrc, []string{">", "step 5", "q"})
	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, "", s.out.String())
	assert.Equal(t, "=> [0] in r0\n", s.dbg.String())
}

func TestSession_breakpoint(t *testing.T) {
	s := newTestSession(t, echoSrc,
		[]string{"a", "stack", "setr 7 25734", "quit", "break 0", "quit", "q"},
		vm.Breakpoint(0))
	require.NoError(t, s.run(context.Background()))
	// the new line after "a" is left to the program
	assert.Equal(t, "a\n", s.out.String())
	assert.Equal(t,
		"*  [0] in r0\n"+
			"Stack: []\n"+
			"Quitting debugger\n"+
			"*  [0] in r0\n"+
			"Breakpoint at 0 cleared\n"+
			"Quitting debugger\n",
		s.dbg.String())
	assert.Equal(t, vm.Word(25734), s.i.Regs[7])
	assert.False(t, s.i.Breakpoints.Test(0))
}

func TestSession_endOfCommands(t *testing.T) {
	s := newTestSession(t, echoSrc, []string{"hi", ">"})
	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, "hi\n", s.out.String())
	assert.True(t, s.c.Interactive())
}

func TestSession_endOfInput(t *testing.T) {
	s := newTestSession(t, echoSrc, []string{"hi"})
	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, "hi\n", s.out.String())
	assert.Empty(t, s.dbg.String())
}

func TestSession_maxSteps(t *testing.T) {
	s := newTestSession(t, ":l jmp l", nil)
	s.maxSteps = 100
	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, int64(100), s.i.InstructionCount())
}

func TestSession_walkthroughBudget(t *testing.T) {
	s := newTestSession(t, echoSrc, nil)
	s.maxSteps = 12
	w := &challenge.Walkthrough{Commands: []string{"abc", "de"}}
	st, err := playWalkthrough(context.Background(), w, s.i, s.c, s.maxSteps)
	require.NoError(t, err)
	assert.Equal(t, vm.Running, st)
	require.NoError(t, s.run(context.Background()))
	assert.Equal(t, "ab", s.out.String())
	assert.Equal(t, int64(12), s.i.InstructionCount())
}

func TestSession_canceled(t *testing.T) {
	s := newTestSession(t, ":l jmp l", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Equal(t, context.Canceled, s.run(ctx))
}

func TestComplete(t *testing.T) {
	suggest := func(s string) []string {
		b := prompt.NewBuffer()
		b.InsertText(s, false, true)
		var names []string
		for _, s := range complete(*b.Document()) {
			names = append(names, s.Text)
		}
		return names
	}
	assert.Equal(t, []string{"regs"}, suggest("re"))
	assert.Equal(t, []string{"setr", "setm"}, suggest("se"))
	assert.Empty(t, suggest("regs 1"))
}

func TestFlags(t *testing.T) {
	var l wordList
	require.NoError(t, l.Set("5511"))
	require.NoError(t, l.Set("0x10"))
	assert.Error(t, l.Set("32768"))
	assert.Error(t, l.Set("abc"))
	assert.Equal(t, "5511,16", l.String())

	e := escapeChar(vm.DefaultEscape)
	assert.Equal(t, ">", e.String())
	require.NoError(t, e.Set("!"))
	assert.Equal(t, byte('!'), e.Get())
	assert.Error(t, e.Set("ab"))
}

func TestPrintSolutions(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, printSolutions(&b, aurora.New(aurora.WithColors(false))))
	assert.Equal(t, "coins:\n"+
		"\tuse blue coin\n"+
		"\tuse red coin\n"+
		"\tuse shiny coin\n"+
		"\tuse concave coin\n"+
		"\tuse corroded coin\n"+
		"orb:\n"+
		"\tgo north\n\tgo east\n\tgo east\n\tgo north\n\tgo west\n\tgo south\n"+
		"\tgo east\n\tgo east\n\tgo west\n\tgo north\n\tgo north\n\tgo east\n"+
		"teleporter: 25734\n", b.String())
}
