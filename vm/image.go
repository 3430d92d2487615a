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
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Validate checks that all words in image are valid encodings. It returns an
// ErrInvalidWord error for the first word larger than MaxWord.
func Validate(image []Word) error {
	for p, w := range image {
		if w > MaxWord {
			return &Error{Errno: ErrInvalidWord, Addr: Word(p), Word: w}
		}
	}
	return nil
}

// Load reads a program image from r. Images are sequences of little endian
// 16 bits words and must not be larger than MemSize words.
func Load(r io.Reader) ([]Word, error) {
	var (
		b   [2]byte
		img []Word
		br  = bufio.NewReader(r)
	)
	for {
		n, err := io.ReadFull(br, b[:])
		if err != nil {
			if err == io.EOF {
				break
			}
			if err == io.ErrUnexpectedEOF && n == 1 {
				return nil, errors.Errorf("odd image size: %d bytes", 2*len(img)+1)
			}
			return nil, errors.Wrap(err, "word read failed")
		}
		if len(img) == MemSize {
			return nil, errors.Errorf("image larger than %d words", MemSize)
		}
		img = append(img, Word(binary.LittleEndian.Uint16(b[:])))
	}
	if err := Validate(img); err != nil {
		return nil, err
	}
	return img, nil
}

// LoadFile loads the program image fileName from the given file system.
func LoadFile(fs afero.Fs, fileName string) ([]Word, error) {
	f, err := fs.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()
	img, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", fileName)
	}
	return img, nil
}

// Save writes img to w as little endian 16 bits words.
func Save(w io.Writer, img []Word) error {
	bw := bufio.NewWriter(w)
	var b [2]byte
	for _, v := range img {
		binary.LittleEndian.PutUint16(b[:], uint16(v))
		if _, err := bw.Write(b[:]); err != nil {
			return errors.Wrap(err, "write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "write failed")
}

// SaveFile saves img to fileName in the given file system. The file is
// removed if an error occurs.
func SaveFile(fs afero.Fs, fileName string, img []Word) (err error) {
	f, err := fs.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = errors.Wrap(cerr, "close failed")
		}
		// delete file on error
		if err != nil {
			fs.Remove(fileName)
		}
	}()
	return Save(f, img)
}
