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

package debug

import (
	"io"
	"strconv"
	"strings"

	"github.com/db47h/synacor/internal/synio"
	"github.com/db47h/synacor/vm"
	"github.com/logrusorgru/aurora/v4"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Command describes a debugger command.
type Command struct {
	Name  string
	Args  string
	Help  string
	alias string
	exec  func(d *Debugger, args []string, i *vm.Instance, a *Actions)
}

var commands []Command

func init() {
	commands = []Command{
		{Name: "view", Args: "[n]", Help: "Show next <n> instructions.", exec: (*Debugger).view},
		{Name: "regs", Help: "Show registers.", exec: (*Debugger).regs},
		{Name: "stack", Help: "Show stack.", exec: (*Debugger).stack},
		{Name: "print", Args: "a", Help: "Print value at address <a>.", exec: (*Debugger).print},
		{Name: "show", Args: "a [n]", Help: "Show <n> instructions at address <a>.", exec: (*Debugger).show},
		{Name: "verbose", Args: "on|off", Help: "Turn verbose mode on/off.", exec: (*Debugger).verbose},
		{Name: "setr", Args: "r val", Help: "Set register <r> to <val>.", exec: (*Debugger).setr},
		{Name: "setm", Args: "a val", Help: "Set memory address <a> to <val>.", exec: (*Debugger).setm},
		{Name: "break", Args: "[a]", Help: "Toggle breakpoint at address <a>, list breakpoints.", exec: (*Debugger).brk},
		{Name: "step", Args: "[n]", Help: "Execute <n> instructions.", exec: (*Debugger).step},
		{Name: "quit", alias: "q", Help: "Quit debugger.", exec: (*Debugger).quit},
		{Name: "help", Help: "Show this help.", exec: func(d *Debugger, _ []string, _ *vm.Instance, _ *Actions) { d.help("") }},
	}
}

// Commands returns the list of debugger commands.
func Commands() []Command {
	return append([]Command(nil), commands...)
}

func lookup(name string) *Command {
	for k := range commands {
		if c := &commands[k]; c.Name == name || c.alias == name {
			return c
		}
	}
	return nil
}

// Debugger executes debugger commands and writes their output to an
// io.Writer.
type Debugger struct {
	w  *synio.ErrWriter
	au *aurora.Aurora
}

// New returns a new Debugger writing to w. au configures output colors; if
// nil, colors are disabled.
func New(w io.Writer, au *aurora.Aurora) *Debugger {
	if au == nil {
		au = aurora.New(aurora.WithColors(false))
	}
	return &Debugger{w: synio.NewErrWriter(w), au: au}
}

// Err returns the first write error, if any.
func (d *Debugger) Err() error { return d.w.Err }

// Exec executes the command line against i and returns the actions requested
// by the command. The state of i is not modified.
func (d *Debugger) Exec(line string, i *vm.Instance) (a Actions) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return a
	}
	c := lookup(f[0])
	if c == nil {
		d.help(f[0])
		return a
	}
	c.exec(d, f[1:], i, &a)
	return a
}

func parseWord(s string) (vm.Word, bool) {
	v, err := strconv.ParseUint(s, 10, 16)
	return vm.Word(v), err == nil
}

func arg(args []string, n int) (vm.Word, bool) {
	if n >= len(args) {
		return 0, false
	}
	return parseWord(args[n])
}

// count returns the optional count argument at index n, 1 if missing.
func count(args []string, n int) (int, bool) {
	if n >= len(args) {
		return 1, true
	}
	v, ok := parseWord(args[n])
	return int(v), ok
}

func (d *Debugger) view(args []string, i *vm.Instance, _ *Actions) {
	if n, ok := count(args, 0); ok {
		d.disassemble(i, i.IP, n)
	}
}

func (d *Debugger) show(args []string, i *vm.Instance, _ *Actions) {
	addr, ok := arg(args, 0)
	if !ok {
		return
	}
	if n, ok := count(args, 1); ok {
		d.disassemble(i, addr, n)
	}
}

func (d *Debugger) disassemble(i *vm.Instance, addr vm.Word, n int) {
	for ; n > 0 && int(addr) < vm.MemSize; n-- {
		in, err := vm.Decode(&i.Mem, addr)
		if err != nil {
			d.w.Printf("[%d] %v\n", d.au.Cyan(addr), d.au.Red(err))
			return
		}
		mark := "  "
		if addr == i.IP {
			mark = "=>"
		}
		if i.Breakpoints.Test(uint(addr)) {
			mark = "* "
		}
		d.w.Printf("%s [%d] %v\n", mark, d.au.Cyan(addr), in)
		addr += in.Size()
	}
}

func (d *Debugger) regs(_ []string, i *vm.Instance, _ *Actions) {
	var b strings.Builder
	for r, v := range i.Regs {
		b.WriteString(" " + vm.Register(r).String() + "=" + strconv.Itoa(int(v)))
	}
	d.w.Printf("Registers:%s\n", b.String())
}

func (d *Debugger) stack(_ []string, i *vm.Instance, _ *Actions) {
	d.w.Printf("Stack: %v\n", i.Stack.Values())
}

func (d *Debugger) print(args []string, i *vm.Instance, _ *Actions) {
	addr, ok := arg(args, 0)
	if !ok || int(addr) >= vm.MemSize {
		return
	}
	d.w.Printf("[%d] %d\n", d.au.Cyan(addr), i.Mem.Read(addr))
}

func (d *Debugger) verbose(args []string, _ *vm.Instance, a *Actions) {
	if len(args) == 0 {
		return
	}
	var v bool
	switch args[0] {
	case "on":
		v = true
	case "off":
	default:
		return
	}
	a.Verbose = &v
	s := "OFF"
	if v {
		s = "ON"
	}
	d.w.Printf("Verbose mode %s\n", d.au.Bold(s))
}

func (d *Debugger) setr(args []string, _ *vm.Instance, a *Actions) {
	if len(args) < 2 {
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return
	}
	r, err := vm.NewRegister(n)
	if err != nil {
		return
	}
	if v, ok := parseWord(args[1]); ok {
		a.SetReg = &RegWrite{r, v}
	}
}

func (d *Debugger) setm(args []string, _ *vm.Instance, a *Actions) {
	addr, ok := arg(args, 0)
	if !ok || int(addr) >= vm.MemSize {
		return
	}
	if v, ok := arg(args, 1); ok {
		a.SetMem = &MemWrite{addr, v}
	}
}

func (d *Debugger) brk(args []string, i *vm.Instance, a *Actions) {
	if len(args) == 0 {
		var b strings.Builder
		for p, ok := i.Breakpoints.NextSet(0); ok; p, ok = i.Breakpoints.NextSet(p + 1) {
			b.WriteString(" " + strconv.Itoa(int(p)))
		}
		d.w.Printf("Breakpoints:%s\n", b.String())
		return
	}
	addr, ok := arg(args, 0)
	if !ok || int(addr) >= vm.MemSize {
		return
	}
	a.Break = &addr
	if i.Breakpoints.Test(uint(addr)) {
		d.w.Printf("Breakpoint at %d cleared\n", d.au.Cyan(addr))
	} else {
		d.w.Printf("Breakpoint at %d set\n", d.au.Cyan(addr))
	}
}

func (d *Debugger) step(args []string, _ *vm.Instance, a *Actions) {
	if n, ok := count(args, 0); ok {
		a.Step = n
	}
}

func (d *Debugger) quit(_ []string, _ *vm.Instance, a *Actions) {
	d.w.WriteString("Quitting debugger\n")
	a.Quit = true
}

// suggest returns the command closest to name, if any.
func suggest(name string) string {
	var (
		best  string
		nr    = []rune(name)
		bestD = len(nr)
	)
	for _, c := range commands {
		dist := levenshtein.DistanceForStrings(nr, []rune(c.Name), levenshtein.DefaultOptions)
		if dist < bestD && dist < len(c.Name) && dist <= 2 {
			best, bestD = c.Name, dist
		}
	}
	return best
}

func (d *Debugger) help(unknown string) {
	if unknown != "" {
		d.w.Printf("%s %q", d.au.Red("Unknown command"), unknown)
		if s := suggest(unknown); s != "" {
			d.w.Printf(", did you mean %s?", d.au.Green(s))
		}
		d.w.WriteString("\n\n")
	}
	d.w.WriteString("Debugger help:\n\n")
	for _, c := range commands {
		name := c.Name
		if c.alias != "" {
			name += ", " + c.alias
		}
		if c.Args != "" {
			name += " " + c.Args
		}
		d.w.Printf("%-16s %s\n", name, c.Help)
	}
}
