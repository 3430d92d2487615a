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

package challenge

import (
	"context"

	"github.com/db47h/synacor/vm"
	"github.com/pkg/errors"
)

// Play feeds commands to the console c and runs i until the program halts or
// waits for more input. It returns the final state and the output produced
// since the last call to c.Drain.
//
// An escape line in commands interrupts the run with the Break state.
func Play(ctx context.Context, i *vm.Instance, c *vm.Console, commands ...string) (vm.State, string, error) {
	c.Feed(commands...)
	st, err := i.Run(ctx)
	out := c.Drain()
	if err != nil {
		return st, out, errors.Wrapf(err, "play @ip=%d", i.IP)
	}
	return st, out, nil
}
