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

package vm_test

import (
	"bytes"
	"testing"

	"github.com/db47h/synacor/vm"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	img, err := vm.Load(bytes.NewReader([]byte{0x13, 0x00, 0x07, 0x80, 0x00, 0x00}))
	require.NoError(t, err)
	assert.Equal(t, []vm.Word{19, 32775, 0}, img)

	_, err = vm.Load(bytes.NewReader([]byte{0x13, 0x00, 0x08}))
	assert.EqualError(t, err, "odd image size: 3 bytes")

	_, err = vm.Load(bytes.NewReader([]byte{0x15, 0x00, 0x08, 0x80}))
	require.Error(t, err)
	assert.Equal(t, vm.ErrInvalidWord, errors.Cause(err))
	assert.Equal(t, vm.Word(1), err.(*vm.Error).Addr)
	assert.Equal(t, vm.Word(32776), err.(*vm.Error).Word)

	_, err = vm.Load(bytes.NewReader(make([]byte, 2*vm.MemSize+2)))
	assert.Error(t, err)

	img, err = vm.Load(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, img)
}

func TestLoadFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	want := []vm.Word{9, 32768, 32769, 4, 19, 32768, 0}
	require.NoError(t, vm.SaveFile(fs, "challenge.bin", want))

	b, err := afero.ReadFile(fs, "challenge.bin")
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 0, 0, 0x80, 1, 0x80, 4, 0, 19, 0, 0, 0x80, 0, 0}, b)

	img, err := vm.LoadFile(fs, "challenge.bin")
	require.NoError(t, err)
	assert.Equal(t, want, img)

	_, err = vm.LoadFile(fs, "missing.bin")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "bad.bin", []byte{0xff, 0xff}, 0644))
	_, err = vm.LoadFile(fs, "bad.bin")
	require.Error(t, err)
	assert.Equal(t, vm.ErrInvalidWord, errors.Cause(err))
	assert.Contains(t, err.Error(), "load bad.bin")
}
