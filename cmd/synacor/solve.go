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
	"io"

	"github.com/db47h/synacor/challenge"
	"github.com/db47h/synacor/internal/synio"
	"github.com/db47h/synacor/vm"
	"github.com/logrusorgru/aurora/v4"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
)

func searchTeleporter(ctx context.Context, w io.Writer, log zerolog.Logger) error {
	bar := progressbar.Default(vm.MemSize, "teleporter code")
	code, err := challenge.FindTeleporterCode(ctx, 0, vm.MemSize, workers, func() { bar.Add(1) })
	bar.Finish()
	if err != nil {
		return err
	}
	log.Info().Uint16("code", uint16(code)).Int("workers", workers).Msg("teleporter code found")
	ew := synio.NewErrWriter(w)
	ew.Printf("%d\n", code)
	return ew.Err
}

func printSolutions(w io.Writer, au *aurora.Aurora) error {
	coins, err := challenge.SolveCoins(challenge.Coins)
	if err != nil {
		return err
	}
	path, err := challenge.SolveOrb()
	if err != nil {
		return err
	}
	dirs, err := challenge.Directions(path)
	if err != nil {
		return err
	}
	ew := synio.NewErrWriter(w)
	ew.Printf("%v\n", au.Bold("coins:"))
	for _, c := range challenge.CoinCommands(coins) {
		ew.Printf("\t%s\n", c)
	}
	ew.Printf("%v\n", au.Bold("orb:"))
	for _, d := range dirs {
		ew.Printf("\tgo %s\n", d)
	}
	ew.Printf("%v %v\n", au.Bold("teleporter:"), au.Green(challenge.TeleporterCode))
	return ew.Err
}
