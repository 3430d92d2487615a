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

//go:build !windows

package main

import (
	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
)

// saveTerm saves the terminal settings of stdin. The returned function
// restores them.
func saveTerm() (func(), error) {
	tios, err := termios.Tcgetattr(0)
	if err != nil {
		return nil, errors.Wrap(err, "Tcgetattr failed")
	}
	return func() {
		termios.Tcsetattr(0, termios.TCSANOW, tios)
	}, nil
}
