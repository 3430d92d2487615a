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

import "github.com/pkg/errors"

// Coin is one of the coins found in the ruins. Its value is the number of
// dots seen when looking at it.
type Coin struct {
	Name  string
	Value int
}

// Coins found in the ruins.
var Coins = []Coin{
	{"red", 2},
	{"corroded", 3},
	{"shiny", 5},
	{"concave", 7},
	{"blue", 9},
}

// CoinTarget is the result of the equation engraved on the monument:
//
//	_ + _ * _^2 + _^3 - _ = 399
const CoinTarget = 399

func coinEquation(c []Coin) int {
	return c[0].Value + c[1].Value*c[2].Value*c[2].Value + c[3].Value*c[3].Value*c[3].Value - c[4].Value
}

// SolveCoins returns the permutation of the given 5 coins that satisfies the
// monument equation, in the order they must be used.
func SolveCoins(coins []Coin) ([]Coin, error) {
	if len(coins) != 5 {
		return nil, errors.Errorf("need 5 coins, got %d", len(coins))
	}
	p := append([]Coin(nil), coins...)
	// Heap's algorithm, non recursive
	var c [5]int
	if coinEquation(p) == CoinTarget {
		return p, nil
	}
	for i := 1; i < len(p); {
		if c[i] < i {
			if i%2 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[c[i]], p[i] = p[i], p[c[i]]
			}
			if coinEquation(p) == CoinTarget {
				return p, nil
			}
			c[i]++
			i = 1
		} else {
			c[i] = 0
			i++
		}
	}
	return nil, errors.New("no solution")
}

// CoinCommands returns the game commands that place the coins in order.
func CoinCommands(coins []Coin) []string {
	cmds := make([]string, len(coins))
	for i, c := range coins {
		cmds[i] = "use " + c.Name + " coin"
	}
	return cmds
}
