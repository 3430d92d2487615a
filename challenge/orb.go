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
	"strconv"

	"github.com/pkg/errors"
)

// The vault antechamber is a 4x4 grid of rooms. Position 0 is the bottom left
// corner where the orb is picked up, position 15 is the vault door at the top
// right corner:
//
//	*   8   -   1
//	4   *   11  *
//	+   4   -   18
//	22  -   9   *
//
// Entering a number room applies the operator of the previous room to the orb
// weight.
const (
	OrbStart  = 0
	OrbVault  = 15
	OrbTarget = 30

	orbSide     = 4
	maxOrbSteps = 16
)

type orbRoom struct {
	op  byte // '+', '-', '*' or 0 for a number room
	val int
}

var orbGrid = [orbSide * orbSide]orbRoom{
	{val: 22}, {op: '-'}, {val: 9}, {op: '*'},
	{op: '+'}, {val: 4}, {op: '-'}, {val: 18},
	{val: 4}, {op: '*'}, {val: 11}, {op: '*'},
	{op: '*'}, {val: 8}, {op: '-'}, {val: 1},
}

var orbMoves = [...]struct {
	name string
	d    int
}{
	{"north", orbSide},
	{"south", -orbSide},
	{"east", 1},
	{"west", -1},
}

// orbNext returns the position reached from p by moving in direction d, or -1
// if the move leaves the grid.
func orbNext(p, d int) int {
	row, col := p/orbSide, p%orbSide
	switch d {
	case orbSide:
		row++
	case -orbSide:
		row--
	case 1:
		col++
	case -1:
		col--
	}
	if row < 0 || row >= orbSide || col < 0 || col >= orbSide {
		return -1
	}
	return row*orbSide + col
}

func orbApply(op byte, w, v int) int {
	switch op {
	case '+':
		return w + v
	case '-':
		return w - v
	case '*':
		return w * v
	}
	return w
}

type orbState struct {
	pos    int
	weight int
	op     byte
}

// SolveOrb returns the shortest sequence of grid positions from OrbStart to
// OrbVault such that the orb weighs OrbTarget when reaching the vault. The orb
// weight must never drop below zero, the orb vanishes if brought back to the
// start room, and the vault door can only be reached once.
func SolveOrb() ([]int, error) {
	type node struct {
		orbState
		parent int
		depth  int
	}
	start := orbState{pos: OrbStart, weight: orbGrid[OrbStart].val}
	nodes := []node{{start, -1, 0}}
	seen := map[orbState]bool{start: true}

	path := func(k int) []int {
		var p []int
		for ; k >= 0; k = nodes[k].parent {
			p = append(p, nodes[k].pos)
		}
		for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
			p[i], p[j] = p[j], p[i]
		}
		return p
	}

	// breadth first: the first path found is the shortest one
	for k := 0; k < len(nodes); k++ {
		n := nodes[k]
		if n.depth >= maxOrbSteps {
			continue
		}
		for _, m := range orbMoves {
			next := orbNext(n.pos, m.d)
			if next < 0 || next == OrbStart {
				continue
			}
			s := orbState{pos: next, weight: n.weight}
			if r := orbGrid[next]; r.op != 0 {
				s.op = r.op
			} else {
				s.weight = orbApply(n.op, n.weight, r.val)
				if s.weight < 0 {
					continue
				}
			}
			if next == OrbVault {
				if s.weight == OrbTarget {
					nodes = append(nodes, node{s, k, n.depth + 1})
					return path(len(nodes) - 1), nil
				}
				continue
			}
			if seen[s] {
				continue
			}
			seen[s] = true
			nodes = append(nodes, node{s, k, n.depth + 1})
		}
	}
	return nil, errors.New("no path to the vault")
}

// OrbWeight returns the weight of the orb after following path from
// OrbStart. It returns an error if path is not a valid walk through the grid.
func OrbWeight(path []int) (int, error) {
	if len(path) == 0 || path[0] != OrbStart {
		return 0, errors.New("path must begin at the start room")
	}
	w, op := orbGrid[OrbStart].val, byte(0)
	for i := 1; i < len(path); i++ {
		p := path[i]
		if !orbAdjacent(path[i-1], p) {
			return 0, errors.Errorf("positions %d and %d are not adjacent", path[i-1], p)
		}
		if p == OrbStart {
			return 0, errors.New("the orb vanished in the start room")
		}
		if r := orbGrid[p]; r.op != 0 {
			op = r.op
		} else {
			w = orbApply(op, w, r.val)
			if w < 0 {
				return 0, errors.Errorf("negative weight at step %d", i)
			}
		}
		if p == OrbVault && i != len(path)-1 {
			return 0, errors.New("the vault door cannot be crossed")
		}
	}
	return w, nil
}

func orbAdjacent(p, q int) bool {
	_, err := orbDirection(p, q)
	return err == nil
}

func orbDirection(p, q int) (string, error) {
	if p >= 0 && p < len(orbGrid) {
		for _, m := range orbMoves {
			if orbNext(p, m.d) == q {
				return m.name, nil
			}
		}
	}
	return "", errors.Errorf("no move from %d to %d", p, q)
}

// Directions converts a path of grid positions to the game directions.
func Directions(path []int) ([]string, error) {
	var dirs []string
	for i := 1; i < len(path); i++ {
		d, err := orbDirection(path[i-1], path[i])
		if err != nil {
			return nil, errors.Wrap(err, "step "+strconv.Itoa(i))
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}
