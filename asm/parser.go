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
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/db47h/synacor/vm"
)

// maximum number of errors reported by Assemble
const maxErrors = 10

func isIdentRune(ch rune, i int) bool {
	return unicode.IsLetter(ch) || unicode.IsSymbol(ch) || unicode.IsPunct(ch) || unicode.IsDigit(ch)
}

// ErrAsm is the error type returned by Assemble. Each entry points to the
// location of one error in the source code.
type ErrAsm []struct {
	Pos scanner.Position
	Msg string
}

func (e ErrAsm) Error() string {
	var b strings.Builder
	for i := range e {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e[i].Pos.String())
		b.WriteString(": ")
		b.WriteString(e[i].Msg)
	}
	return b.String()
}

type labelSite struct {
	pos     scanner.Position
	address int
}

type label struct {
	labelSite
	uses []labelSite
}

// directive argument expected by the parser
type dirState int

const (
	dirNone dirState = iota
	dirOrg
	dirEqu
	dirDat
)

type parser struct {
	img     []vm.Word
	pc      int
	end     int
	s       scanner.Scanner
	labels  map[string]*label
	consts  map[string]labelSite
	locals  map[string]int
	args    int // operands left for the current instruction
	dir     dirState
	cstName string
	cstPos  scanner.Position
	errs    ErrAsm
}

func newParser() *parser {
	return &parser{
		labels: make(map[string]*label),
		consts: make(map[string]labelSite),
		locals: make(map[string]int),
	}
}

func (p *parser) error(pos scanner.Position, msg string) {
	if len(p.errs) >= maxErrors {
		return
	}
	p.errs = append(p.errs, struct {
		Pos scanner.Position
		Msg string
	}{pos, msg})
}

func (p *parser) pos() scanner.Position {
	pos := p.s.Position
	if !pos.IsValid() {
		pos = p.s.Pos()
	}
	return pos
}

func (p *parser) write(v vm.Word) {
	if p.pc >= vm.MemSize {
		p.error(p.pos(), "program too large")
		return
	}
	for p.pc >= len(p.img) {
		p.img = append(p.img, make([]vm.Word, 1024)...)
	}
	p.img[p.pc] = v
	p.pc++
	if p.pc > p.end {
		p.end = p.pc
	}
}

func (p *parser) useLabel(name string) {
	lbl := p.labels[name]
	if lbl == nil {
		lbl = &label{labelSite: labelSite{p.pos(), -1}}
		p.labels[name] = lbl
	}
	lbl.uses = append(lbl.uses, labelSite{p.pos(), p.pc})
	p.write(0)
}

func isLocal(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// localRef converts a local label reference like "1+" or "1-" to its
// internal name.
func (p *parser) localRef(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	n, dir := s[:len(s)-1], s[len(s)-1]
	if !isLocal(n) {
		return "", false
	}
	cnt := p.locals[n]
	switch dir {
	case '-':
		if cnt == 0 {
			p.error(p.pos(), "backward reference to undefined local label "+s)
			return "", true
		}
	case '+':
		cnt++
	default:
		return "", false
	}
	return n + "·" + strconv.Itoa(cnt), true
}

// number converts s to an integer value: integer literal, character literal or
// constant.
func (p *parser) number(s string) (int, bool, error) {
	if n, err := strconv.ParseInt(s, 0, 32); err == nil {
		return int(n), true, nil
	}
	if len(s) > 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		r, _, tail, err := strconv.UnquoteChar(s[1:len(s)-1], '\'')
		if err != nil || tail != "" {
			return 0, false, fmt.Errorf("invalid character literal %s", s)
		}
		return int(r), true, nil
	}
	if c, ok := p.consts[s]; ok {
		return c.address, true, nil
	}
	return 0, false, nil
}

func register(s string) (vm.Register, bool) {
	if len(s) != 2 || s[0] != 'r' || s[1] < '0' || s[1] > '7' {
		return 0, false
	}
	return vm.Register(s[1] - '0'), true
}

func (p *parser) defineLabel(s string) {
	n := s[1:]
	if n == "" {
		p.error(p.pos(), "empty label name")
		return
	}
	if isLocal(n) {
		p.locals[n]++
		n = n + "·" + strconv.Itoa(p.locals[n])
	}
	if cst, ok := p.consts[n]; ok {
		p.error(p.pos(), "label redefinition: "+n+", previously defined as a constant here: "+cst.pos.String())
		return
	}
	if _, ok := register(n); ok {
		p.error(p.pos(), "invalid label name: "+n)
		return
	}
	if l, ok := p.labels[n]; ok {
		if l.address != -1 {
			p.error(p.pos(), "label redefinition: "+n+", previous definition here: "+l.pos.String())
			return
		}
		l.address = p.pc
		l.pos = p.pos()
		return
	}
	p.labels[n] = &label{labelSite: labelSite{p.pos(), p.pc}}
}

func (p *parser) directive(s string) {
	switch s {
	case ".org":
		p.dir = dirOrg
	case ".dat":
		p.dir = dirDat
	case ".equ":
		if p.s.Scan() != scanner.Ident {
			p.error(p.pos(), ".equ: expected identifier, got "+p.s.TokenText())
			return
		}
		p.cstName = p.s.TokenText()
		if l, ok := p.labels[p.cstName]; ok {
			p.error(p.pos(), ".equ: redefinition of "+p.cstName+", previously defined or used as a label here: "+l.pos.String())
			return
		}
		p.cstPos = p.pos()
		p.dir = dirEqu
	default:
		p.error(p.pos(), "unknown directive: "+s)
	}
}

// value handles integer values according to the current parser state.
func (p *parser) value(v int) {
	switch p.dir {
	case dirOrg:
		if v < 0 || v >= vm.MemSize {
			p.error(p.pos(), "address out of range: "+strconv.Itoa(v))
			break
		}
		p.pc = v
	case dirEqu:
		p.consts[p.cstName] = labelSite{p.cstPos, v}
	default:
		max := int(vm.MaxValue)
		if p.args == 0 {
			// .dat or bare value: raw word
			max = 1<<16 - 1
		}
		if v < 0 || v > max {
			p.error(p.pos(), "value out of range: "+strconv.Itoa(v))
			v = 0
		}
		p.write(vm.Word(v))
		if p.args > 0 {
			p.args--
		}
	}
	p.dir = dirNone
}

// Parse does the parsing and compiling.
func (p *parser) Parse(name string, r io.Reader) ([]vm.Word, error) {
	p.s.Init(r)
	p.s.Error = func(s *scanner.Scanner, msg string) {
		p.error(p.pos(), msg)
	}
	p.s.IsIdentRune = isIdentRune
	p.s.Mode = scanner.ScanIdents
	p.s.Filename = name

	for tok := p.s.Scan(); tok != scanner.EOF && len(p.errs) < maxErrors; tok = p.s.Scan() {
		if tok != scanner.Ident {
			p.error(p.pos(), "unexpected character "+strconv.QuoteRune(tok))
			continue
		}
		s := p.s.TokenText()

		if s == "(" {
			// skip comments
			for tok = p.s.Scan(); tok != scanner.EOF && (tok != scanner.Ident || p.s.TokenText() != ")"); tok = p.s.Scan() {
			}
			if tok == scanner.EOF {
				p.error(p.pos(), "unterminated comment")
			}
			continue
		}

		v, ok, err := p.number(s)
		if err != nil {
			p.error(p.pos(), err.Error())
			continue
		}
		if ok {
			p.value(v)
			continue
		}

		if p.dir == dirOrg || p.dir == dirEqu {
			p.error(p.pos(), "expected value, got "+s)
			p.dir = dirNone
			continue
		}

		if rg, ok := register(s); ok {
			if p.args == 0 && p.dir != dirDat {
				p.error(p.pos(), "unexpected register "+s)
				continue
			}
			p.write(vm.Reg(rg).Encode())
			if p.args > 0 {
				p.args--
			}
			p.dir = dirNone
			continue
		}

		if p.args == 0 && p.dir == dirNone {
			switch s[0] {
			case ':':
				p.defineLabel(s)
				continue
			case '.':
				p.directive(s)
				continue
			}
			if op, ok := vm.LookupOpcode(s); ok {
				p.write(vm.Word(op))
				p.args = op.NumArgs()
				continue
			}
			p.error(p.pos(), "unknown instruction "+s)
			continue
		}

		// label reference
		if s[0] == ':' || s[0] == '.' {
			p.error(p.pos(), "unexpected "+s+" as argument")
			p.args, p.dir = 0, dirNone
			continue
		}
		if n, ok := p.localRef(s); ok {
			s = n
		}
		if s != "" {
			p.useLabel(s)
		} else {
			p.write(0)
		}
		if p.args > 0 {
			p.args--
		}
		p.dir = dirNone
	}

	if p.args > 0 || p.dir != dirNone {
		p.error(p.pos(), "unexpected end of input")
	}

	// write labels
	for n, l := range p.labels {
		if l.address == -1 {
			p.error(l.uses[0].pos, "undefined label "+n)
			continue
		}
		for _, u := range l.uses {
			if u.address < len(p.img) {
				p.img[u.address] = vm.Word(l.address)
			}
		}
	}

	if len(p.errs) > 0 {
		return nil, p.errs
	}
	return p.img[:p.end], nil
}
