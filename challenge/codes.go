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
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"
)

// NumCodes is the number of codes found along the challenge.
const NumCodes = 8

// MD5 digests of the codes, in the order they are found.
var codeDigests = [NumCodes]string{
	"76ec2408e8fe3f1753c25db51efd8eb3",
	"0e6aa7be1f68d930926d72b3741a145c",
	"7997a3b2941eab92c1c0345d5747b420",
	"186f842951c0dcfe8838af1e7222b7d4",
	"2bf84e54b95ce97aefd9fc920451fc45",
	"e09640936b3ef532b7b8e83ce8f125f4",
	"4873cf6b76f62ac7d5a53605b2535a0c",
	"d0c54d4ed7f943280ce3e19532dbb1a6",
}

// VerifyCode returns true if code is the code number n, 0 being the code
// printed in the architecture document that comes with the challenge.
func VerifyCode(n int, code string) bool {
	if n < 0 || n >= NumCodes {
		return false
	}
	sum := md5.Sum([]byte(code))
	return hex.EncodeToString(sum[:]) == codeDigests[n]
}

// patterns locating codes 1 to 7 in the game text. Code 0 is not printed by
// the VM.
var codePatterns = [NumCodes]*regexp.Regexp{
	1: regexp.MustCompile(`into the challenge website: (\w+)`),
	2: regexp.MustCompile(`self-test completion code is: (\w+)`),
	3: regexp.MustCompile(`You find yourself writing "(\w+)" on the tablet`),
	4: regexp.MustCompile(`Chiseled on the wall of one of the passageways, you see:[.\n ]+(\w+)`),
	5: regexp.MustCompile(`You activate the teleporter!  As you spiral through time and space, you think you see a pattern in the stars\.\.\.[.\n ]+(\w+)`),
	6: regexp.MustCompile(`Someone seems to have drawn a message in the sand here:[.\n ]+(\w+)`),
	7: regexp.MustCompile(`Through the mirror, you see "(\w+)" scrawled in charcoal on your forehead\.`),
}

// FindCode looks for code number n in text. Code 7 is seen in a mirror and is
// returned mirrored back, ready for verification.
func FindCode(n int, text string) (string, bool) {
	if n <= 0 || n >= NumCodes {
		return "", false
	}
	m := codePatterns[n].FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if n == 7 {
		return MirrorCode(m[1]), true
	}
	return m[1], true
}

// FindMirrorCode returns the code read in the mirror at the end of the game.
func FindMirrorCode(text string) (string, bool) {
	return FindCode(7, text)
}

// MirrorCode returns code as seen through a mirror: characters are reversed
// and the letters p and q are swapped.
func MirrorCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for i := len(code) - 1; i >= 0; i-- {
		c := code[i]
		switch c {
		case 'p':
			c = 'q'
		case 'q':
			c = 'p'
		}
		b.WriteByte(c)
	}
	return b.String()
}
