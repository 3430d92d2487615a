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
	"sync"

	"github.com/db47h/synacor/vm"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	// TeleporterCode is the value of r7 that passes the teleporter check.
	TeleporterCode vm.Word = 25734
	// TeleporterTarget is the result expected by the check.
	TeleporterTarget vm.Word = 6

	// addresses patched to bypass the check
	teleCallAddr  = 5511 // call 6027
	teleCheckAddr = 5516 // last operand of eq r1 r0 6
	teleArgA      = 4    // value of r0 before the call
)

// teleTable holds f(a, b) for a = 0..3 and all values of b.
type teleTable [4][vm.MemSize]vm.Word

// eval computes f(4, 1) for the given r7, where
//
//	f(0, b) = b+1
//	f(a, 0) = f(a-1, r7)
//	f(a, b) = f(a-1, f(a, b-1))
//
// and all additions are modulo 32768. Rows are filled bottom up, so that
// f(a, b) only depends on row a-1 and on f(a, b-1).
func (t *teleTable) eval(r7 vm.Word) vm.Word {
	for b := range t[0] {
		t[0][b] = vm.Word((b + 1) % vm.Modulus)
	}
	for a := 1; a < len(t); a++ {
		prev, row := &t[a-1], &t[a]
		row[0] = prev[r7]
		for b := 1; b < len(row); b++ {
			row[b] = prev[row[b-1]]
		}
	}
	// f(4, 1) = f(3, f(4, 0)) = f(3, f(3, r7))
	return t[3][t[3][r7]]
}

// TeleporterCheck returns the result of the teleporter confirmation routine
// for the given value of r7. The in-game routine is a deeply recursive
// Ackermann-like function that would take ages to complete on the VM.
func TeleporterCheck(r7 vm.Word) vm.Word {
	return new(teleTable).eval(r7 & vm.MaxValue)
}

var errFound = errors.New("found")

// FindTeleporterCode searches the values of r7 in [lo, hi) for which
// TeleporterCheck returns TeleporterTarget. The search runs on the given number
// of workers, each with its own memo table. progress, if not nil, is called
// after each rejected candidate. It may be called concurrently.
//
// If several candidates match, any of them may be returned.
func FindTeleporterCode(ctx context.Context, lo, hi vm.Word, workers int, progress func()) (vm.Word, error) {
	if workers < 1 {
		workers = 1
	}
	if hi > vm.MemSize {
		hi = vm.MemSize
	}
	var (
		once  sync.Once
		code  vm.Word
		cands = make(chan vm.Word)
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(cands)
		for c := lo; c < hi; c++ {
			select {
			case cands <- c:
			case <-gctx.Done():
				return nil
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			t := new(teleTable)
			for c := range cands {
				if gctx.Err() != nil {
					continue
				}
				if t.eval(c) == TeleporterTarget {
					once.Do(func() { code = c })
					return errFound
				}
				if progress != nil {
					progress()
				}
			}
			return nil
		})
	}
	switch err := g.Wait(); err {
	case errFound:
		return code, nil
	case nil:
		if err = ctx.Err(); err != nil {
			return 0, err
		}
		return 0, errors.Errorf("no teleporter code in range [%d, %d)", lo, hi)
	default:
		return 0, err
	}
}

// PatchTeleporter patches st so that the teleporter check is skipped and
// succeeds, and sets r7 to code.
func PatchTeleporter(st *vm.Storage, code vm.Word) {
	// replace the call to the check routine with noops
	st.Mem.Write(teleCallAddr, vm.Word(vm.OpNoop))
	st.Mem.Write(teleCallAddr+1, vm.Word(vm.OpNoop))
	// r0 is left untouched by the skipped call: compare it with its own value
	st.Mem.Write(teleCheckAddr, teleArgA)
	st.Regs.Set(7, code)
}
