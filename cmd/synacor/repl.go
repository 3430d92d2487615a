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
	"context"
	"sync/atomic"

	"github.com/c-bata/go-prompt"
	"github.com/db47h/synacor/debug"
	"github.com/db47h/synacor/vm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// lineReader returns the next debugger command line. ok is false once the
// command source is exhausted.
type lineReader func() (line string, ok bool)

// session drives a VM instance and its debugger.
type session struct {
	i        *vm.Instance
	c        *vm.Console
	d        *debug.Debugger
	read     lineReader
	log      zerolog.Logger
	maxSteps int64 // total instruction budget, 0 for none
}

// run executes the program until it halts, its input is exhausted or the
// instruction budget is spent. Breaks enter the debugger.
func (s *session) run(ctx context.Context) error {
	for {
		if s.maxSteps > 0 {
			left := s.maxSteps - s.i.InstructionCount()
			if left <= 0 {
				s.log.Warn().Int64("steps", s.maxSteps).Msg("step limit reached")
				return nil
			}
			s.i.Control.StepLimit = left
		}
		st, err := s.i.Run(ctx)
		s.c.Drain()
		if err != nil {
			return err
		}
		switch st {
		case vm.Halted:
			s.log.Debug().Int64("steps", s.i.InstructionCount()).Msg("halted")
			return nil
		case vm.Waiting:
			return errors.Wrap(s.c.Err(), "end of input")
		case vm.Break:
			done, err := s.debug(ctx)
			if err != nil || done {
				return err
			}
		}
	}
}

// debug reads and executes debugger commands until one of them resumes
// execution. done is true if the program must not be resumed.
func (s *session) debug(ctx context.Context) (done bool, err error) {
	s.d.Exec("view", s.i)
	for {
		line, ok := s.read()
		if !ok {
			return true, nil
		}
		a := s.d.Exec(line, s.i)
		if err = s.d.Err(); err != nil {
			return true, err
		}
		a.Apply(s.i)
		switch {
		case a.Quit:
			s.c.Resume()
			return false, nil
		case a.Step > 0:
			s.c.Resume()
			st, err := s.step(ctx, a.Step)
			if err != nil {
				return true, err
			}
			if st == vm.Halted || st == vm.Waiting {
				s.log.Info().Stringer("state", st).Msg("program stopped while stepping")
				return true, nil
			}
			s.d.Exec("view", s.i)
		}
	}
}

// step executes at most n instructions.
func (s *session) step(ctx context.Context, n int) (vm.State, error) {
	limit := s.i.Control.StepLimit
	s.i.Control.StepLimit = int64(n)
	defer func() { s.i.Control.StepLimit = limit }()
	st, err := s.i.Run(ctx)
	s.c.Drain()
	return st, err
}

func complete(d prompt.Document) []prompt.Suggest {
	if d.TextBeforeCursor() != d.GetWordBeforeCursor() {
		// arguments
		return nil
	}
	cmds := debug.Commands()
	s := make([]prompt.Suggest, 0, len(cmds))
	for _, c := range cmds {
		s = append(s, prompt.Suggest{Text: c.Name, Description: c.Help})
	}
	return prompt.FilterHasPrefix(s, d.GetWordBeforeCursor(), true)
}

// eofParser wraps the line editor input to detect a lone Ctrl-D, on which
// prompt.Input returns an empty line.
type eofParser struct {
	prompt.ConsoleParser
	ctrlD atomic.Bool // last key read was Ctrl-D
}

func (p *eofParser) Read() ([]byte, error) {
	b, err := p.ConsoleParser.Read()
	if len(b) > 0 {
		p.ctrlD.Store(len(b) == 1 && b[0] == 0x04)
	}
	return b, err
}

// eof returns true if line was returned because of Ctrl-D on an empty line.
func (p *eofParser) eof(line string) bool {
	return line == "" && p.ctrlD.Load()
}

// promptReader returns a lineReader using a line editor with command
// completion. The terminal settings are restored after each line. Ctrl-D on
// an empty line ends the command source.
func promptReader(log zerolog.Logger) lineReader {
	return func() (string, bool) {
		restore, err := saveTerm()
		if err != nil {
			log.Warn().Err(err).Msg("terminal settings not saved")
		} else {
			defer restore()
		}
		in := &eofParser{ConsoleParser: prompt.NewStandardInputParser()}
		l := prompt.Input("(dbg) ", complete,
			prompt.OptionParser(in),
			prompt.OptionTitle("synacor debugger"),
			prompt.OptionPrefixTextColor(prompt.Cyan))
		return l, !in.eof(l)
	}
}
