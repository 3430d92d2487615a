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
	"strings"

	"github.com/db47h/synacor/vm"
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Teleporter configures the teleporter patch applied during a walkthrough.
type Teleporter struct {
	// After is the number of commands played before patching.
	After int `yaml:"after"`
	// Code is the value of r7. Zero means TeleporterCode.
	Code vm.Word `yaml:"code"`
}

// Walkthrough is a scripted run of the challenge:
//
//	commands:
//	  - take tablet
//	  - use tablet
//	  - ...
//	teleporter:
//	  after: 52
type Walkthrough struct {
	Commands   []string    `yaml:"commands"`
	Teleporter *Teleporter `yaml:"teleporter"`
}

// ParseWalkthrough parses a YAML walkthrough.
func ParseWalkthrough(data []byte) (*Walkthrough, error) {
	var w Walkthrough
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(err, "parse walkthrough")
	}
	if t := w.Teleporter; t != nil {
		if t.After < 0 || t.After > len(w.Commands) {
			return nil, errors.Errorf("teleporter patch after command %d: out of range", t.After)
		}
		if t.Code > vm.MaxValue {
			return nil, errors.Errorf("invalid teleporter code %d", t.Code)
		}
	}
	for i, c := range w.Commands {
		w.Commands[i] = strings.TrimSpace(c)
	}
	return &w, nil
}

// LoadWalkthrough loads a YAML walkthrough from the given file system.
func LoadWalkthrough(fs afero.Fs, fileName string) (*Walkthrough, error) {
	data, err := afero.ReadFile(fs, fileName)
	if err != nil {
		return nil, errors.Wrap(err, "read walkthrough")
	}
	w, err := ParseWalkthrough(data)
	return w, errors.Wrap(err, fileName)
}

// Run plays the walkthrough on i with the console c, patching the teleporter
// when configured. It returns the game output and the state of the VM after
// the last command.
//
// A non zero i.Control.StepLimit applies to the whole walkthrough. Escape
// lines are not allowed before the teleporter patch since Run would stop
// there without patching.
func (w *Walkthrough) Run(ctx context.Context, i *vm.Instance, c *vm.Console) (vm.State, string, error) {
	if w.Teleporter == nil {
		return Play(ctx, i, c, w.Commands...)
	}
	for n, cmd := range w.Commands[:w.Teleporter.After] {
		if c.IsEscape(cmd) {
			return vm.Running, "", errors.Errorf("command %d: escape line before the teleporter patch", n+1)
		}
	}
	var (
		out   strings.Builder
		limit = i.Control.StepLimit
		start = i.InstructionCount()
	)
	st, s, err := Play(ctx, i, c, w.Commands[:w.Teleporter.After]...)
	out.WriteString(s)
	if err != nil || st != vm.Waiting {
		return st, out.String(), err
	}
	code := w.Teleporter.Code
	if code == 0 {
		code = TeleporterCode
	}
	PatchTeleporter(&i.Storage, code)
	if limit > 0 {
		left := limit - (i.InstructionCount() - start)
		if left <= 0 {
			return vm.Running, out.String(), nil
		}
		i.Control.StepLimit = left
		defer func() { i.Control.StepLimit = limit }()
	}
	st, s, err = Play(ctx, i, c, w.Commands[w.Teleporter.After:]...)
	out.WriteString(s)
	return st, out.String(), err
}
