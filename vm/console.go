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

package vm

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Terminal is the character device used by the out and in instructions.
type Terminal interface {
	// WriteByte writes a character.
	WriteByte(c byte) error
	// ReadChar returns the next input character. If no input is available
	// right now, ok is false and the in instruction will be retried.
	ReadChar() (c byte, ok bool)
	// Interactive returns true when the user asked to suspend execution and
	// enter the debugger.
	Interactive() bool
}

// DefaultEscape is the default escape marker. A line starting with it switches
// the Console to interactive mode.
const DefaultEscape = '>'

// Console is a line buffered Terminal. Input lines come from a queue of
// scripted command lines, then from an optional live io.Reader once the
// script is exhausted.
//
// All output is accumulated and can be retrieved with Output or Drain. It can
// also be echoed as it comes to another io.Writer.
type Console struct {
	out         bytes.Buffer
	echo        io.Writer
	line        []byte
	script      []string
	live        *bufio.Reader
	escape      byte
	interactive bool
	eof         bool
	err         error
}

// ConsoleOption interface
type ConsoleOption func(*Console)

// Echo sets a writer where output characters are copied as they come.
func Echo(w io.Writer) ConsoleOption {
	return func(c *Console) { c.echo = w }
}

// Script queues command lines. See Console.Feed.
func Script(lines ...string) ConsoleOption {
	return func(c *Console) { c.Feed(lines...) }
}

// Live sets the reader used as input source once the script is exhausted.
func Live(r io.Reader) ConsoleOption {
	return func(c *Console) {
		c.eof = false
		if br, ok := r.(*bufio.Reader); ok {
			c.live = br
			return
		}
		c.live = bufio.NewReader(r)
	}
}

// Escape sets the escape marker. The default is '>'.
func Escape(marker byte) ConsoleOption {
	return func(c *Console) { c.escape = marker }
}

// NewConsole returns a new Console configured with the given options.
func NewConsole(opts ...ConsoleOption) *Console {
	c := &Console{escape: DefaultEscape}
	c.SetOptions(opts...)
	return c
}

// SetOptions sets the provided options. Setting a new Live source clears the
// end of input condition of the previous one.
func (c *Console) SetOptions(opts ...ConsoleOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// Feed appends command lines to the input script. A trailing new line is
// appended to each of them.
func (c *Console) Feed(lines ...string) {
	c.script = append(c.script, lines...)
}

// WriteByte implements Terminal.
func (c *Console) WriteByte(b byte) error {
	c.out.WriteByte(b)
	if c.echo != nil {
		if _, err := c.echo.Write([]byte{b}); err != nil {
			return errors.Wrap(err, "console echo")
		}
	}
	return nil
}

// ReadChar implements Terminal.
func (c *Console) ReadChar() (byte, bool) {
	if len(c.line) == 0 {
		if c.interactive {
			return 0, false
		}
		l, ok := c.nextLine()
		if !ok {
			return 0, false
		}
		if c.IsEscape(l) {
			c.interactive = true
			return 0, false
		}
		c.line = append(c.line[:0], l...)
	}
	b := c.line[0]
	c.line = c.line[1:]
	return b, true
}

func (c *Console) nextLine() (string, bool) {
	if len(c.script) > 0 {
		l := c.script[0]
		c.script = c.script[1:]
		return l + "\n", true
	}
	if c.live == nil || c.eof {
		return "", false
	}
	l, err := c.live.ReadString('\n')
	if err != nil {
		c.eof = true
		if err != io.EOF {
			c.err = errors.Wrap(err, "console input")
		}
		if len(l) == 0 {
			return "", false
		}
		// last line without a terminating new line
		l += "\n"
	}
	return l, true
}

// NextLine reads a line from the input sources, bypassing the VM. The trailing
// new line is removed. Characters of the current line not yet read by the VM
// are left untouched. It is used to read debugger commands when no line
// editor is available.
func (c *Console) NextLine() (string, bool) {
	l, ok := c.nextLine()
	return strings.TrimRight(l, "\r\n"), ok
}

// IsEscape returns true if line starts with the escape marker.
func (c *Console) IsEscape(line string) bool {
	return len(line) > 0 && line[0] == c.escape
}

// Interactive implements Terminal.
func (c *Console) Interactive() bool { return c.interactive }

// Resume leaves interactive mode.
func (c *Console) Resume() { c.interactive = false }

// Pending returns true if more input may be available: buffered characters,
// scripted lines or a live source that has not reached EOF.
func (c *Console) Pending() bool {
	return len(c.line) > 0 || len(c.script) > 0 || (c.live != nil && !c.eof)
}

// Scripted returns the number of scripted lines not yet consumed.
func (c *Console) Scripted() int { return len(c.script) }

// Err returns the first error that occurred while reading the live source.
func (c *Console) Err() error { return c.err }

// Output returns all output accumulated so far.
func (c *Console) Output() string { return c.out.String() }

// Drain returns the accumulated output and clears it.
func (c *Console) Drain() string {
	s := c.out.String()
	c.out.Reset()
	return s
}
