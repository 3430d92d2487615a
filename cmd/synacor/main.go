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
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"

	"github.com/db47h/synacor/asm"
	"github.com/db47h/synacor/challenge"
	"github.com/db47h/synacor/debug"
	"github.com/db47h/synacor/vm"
	"github.com/logrusorgru/aurora/v4"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type wordList []vm.Word

func (l *wordList) String() string {
	s := make([]string, len(*l))
	for k, v := range *l {
		s[k] = strconv.Itoa(int(v))
	}
	return strings.Join(s, ",")
}

func (l *wordList) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return err
	}
	if n >= vm.MemSize {
		return errors.Errorf("address %d out of range", n)
	}
	*l = append(*l, vm.Word(n))
	return nil
}

func (l *wordList) Get() interface{} { return *l }

type escapeChar byte

func (e *escapeChar) String() string { return string(rune(*e)) }
func (e *escapeChar) Set(s string) error {
	if len(s) != 1 {
		return errors.Errorf("escape marker must be a single character, got %q", s)
	}
	*e = escapeChar(s[0])
	return nil
}
func (e *escapeChar) Get() interface{} { return byte(*e) }

var (
	debugMode      bool
	dump           bool
	trace          bool
	noPrompt       bool
	teleporter     bool
	solve          bool
	disasm         bool
	codeEnd        int
	steps          int64
	workers        int
	outFileName    string
	asmFileName    string
	scriptFileName string
	breakpoints    wordList
	escape         = escapeChar(vm.DefaultEscape)
)

func atExit(i *vm.Instance, au *aurora.Aurora, err error) {
	if err == nil {
		return
	}
	if !debugMode {
		fmt.Fprintf(os.Stderr, "\n%v\n", au.Red(err))
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "\n%+v\n", err)
	if i != nil {
		challenge.DumpVM(i, os.Stderr)
	}
	os.Exit(1)
}

func loadImage(fs afero.Fs, imageName string) ([]vm.Word, error) {
	if asmFileName == "" {
		return vm.LoadFile(fs, imageName)
	}
	f, err := fs.Open(asmFileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	return asm.Assemble(asmFileName, f)
}

// playWalkthrough plays w on i. The instructions it executes count against
// the budget, 0 meaning no limit.
func playWalkthrough(ctx context.Context, w *challenge.Walkthrough, i *vm.Instance, c *vm.Console, budget int64) (vm.State, error) {
	i.Control.StepLimit = budget
	st, _, err := w.Run(ctx, i, c)
	return st, err
}

func newLogger(colors bool) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !colors}).
		With().Timestamp().Logger()
}

func main() {
	var (
		err error
		i   *vm.Instance
	)

	colors := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	au := aurora.New(aurora.WithColors(colors))

	// dump state, catch and log errors
	defer func() {
		if err == nil && dump && i != nil {
			err = challenge.DumpVM(i, os.Stdout)
		}
		atExit(i, au, err)
	}()

	var imageName = flag.String("image", "challenge.bin", "Load program image from file `filename`")
	flag.StringVar(&asmFileName, "asm", "", "assemble and run source file `filename` instead of loading an image")
	flag.StringVar(&outFileName, "o", "", "save the loaded or assembled image to `filename` and exit")
	flag.StringVar(&scriptFileName, "script", "", "play the walkthrough `filename` before reading commands from stdin")
	flag.BoolVar(&disasm, "disasm", false, "disassemble the image to stdout and exit")
	flag.IntVar(&codeEnd, "code-end", 0, "with -disasm, dump words at or after `address` as raw data")
	flag.BoolVar(&trace, "trace", false, "log every executed instruction")
	flag.Int64Var(&steps, "steps", 0, "stop after `n` instructions (0 means no limit)")
	flag.Var(&breakpoints, "break", "set a breakpoint at `address` (can be specified multiple times)")
	flag.Var(&escape, "escape", "input lines starting with `char` enter the debugger")
	flag.BoolVar(&dump, "dump", false, "dump registers and stack upon exit")
	flag.BoolVar(&teleporter, "teleporter", false, "search the teleporter code and exit")
	flag.IntVar(&workers, "workers", runtime.NumCPU(), "number of workers for the teleporter search")
	flag.BoolVar(&solve, "solve", false, "print the coins and orb puzzle solutions and exit")
	flag.BoolVar(&debugMode, "debug", false, "enable debug diagnostics")
	flag.BoolVar(&noPrompt, "noprompt", false, "read debugger commands from stdin without line editing")

	flag.Parse()

	log := newLogger(colors)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case teleporter:
		err = searchTeleporter(ctx, os.Stdout, log)
		return
	case solve:
		err = printSolutions(os.Stdout, au)
		return
	}

	fs := afero.NewOsFs()
	var img []vm.Word
	img, err = loadImage(fs, *imageName)
	if err != nil {
		return
	}

	if outFileName != "" {
		err = vm.SaveFile(fs, outFileName, img)
		if err == nil {
			log.Info().Str("file", outFileName).Int("words", len(img)).Msg("image saved")
		}
		return
	}

	if disasm {
		w := bufio.NewWriter(os.Stdout)
		err = asm.DisassembleAll(img, codeEnd, w)
		if ferr := w.Flush(); err == nil {
			err = errors.Wrap(ferr, "write failed")
		}
		return
	}

	c := vm.NewConsole(vm.Echo(os.Stdout), vm.Escape(byte(escape)))
	i, err = vm.New(img,
		vm.Term(c),
		vm.Logger(log),
		vm.Trace(trace),
		vm.Breakpoint(breakpoints...))
	if err != nil {
		return
	}

	if scriptFileName != "" {
		var (
			w  *challenge.Walkthrough
			st vm.State
		)
		w, err = challenge.LoadWalkthrough(fs, scriptFileName)
		if err != nil {
			return
		}
		st, err = playWalkthrough(ctx, w, i, c, steps)
		if err != nil || st == vm.Halted {
			return
		}
		log.Info().Int("commands", len(w.Commands)).Msg("walkthrough done")
	}

	c.SetOptions(vm.Live(os.Stdin))
	s := &session{
		i:        i,
		c:        c,
		d:        debug.New(os.Stdout, au),
		read:     c.NextLine,
		log:      log,
		maxSteps: steps,
	}
	if !noPrompt && isatty.IsTerminal(os.Stdin.Fd()) {
		s.read = promptReader(log)
	}
	err = s.run(ctx)
}
