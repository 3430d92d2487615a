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

package synio_test

import (
	"bytes"
	"testing"

	"github.com/db47h/synacor/internal/synio"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failWriter struct {
	n int
}

var errFull = errors.New("full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n <= 0 {
		return 0, errFull
	}
	w.n--
	return len(p), nil
}

func TestErrWriter(t *testing.T) {
	var b bytes.Buffer
	ew := synio.NewErrWriter(&b)
	ew.Printf("%d\t%s", 42, "halt")
	ew.WriteString("\n")
	require.NoError(t, ew.Err)
	assert.Equal(t, "42\thalt\n", b.String())
	assert.Same(t, ew, synio.NewErrWriter(ew))
}

func TestErrWriter_sticky(t *testing.T) {
	ew := synio.NewErrWriter(&failWriter{n: 1})
	_, err := ew.WriteString("ok")
	require.NoError(t, err)
	_, err = ew.WriteString("ko")
	require.Error(t, err)
	assert.Equal(t, errFull, errors.Cause(err))
	n, err := ew.WriteString("again")
	assert.Zero(t, n)
	assert.Equal(t, ew.Err, err)
}
