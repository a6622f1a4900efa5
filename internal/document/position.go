// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package document

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/textseg"
	"github.com/hashicorp/stagefs/internal/source"
)

func ByteOffsetForPos(lines source.Lines, pos Pos) (int, error) {
	if pos.Line < 0 || pos.Line+1 > len(lines) {
		return 0, &InvalidPosErr{Pos: pos}
	}

	return byteOffsetForColumn(lines[pos.Line], pos.Column), nil
}

// byteOffsetForColumn takes a column counted in UTF-16 code units
// and finds the byte offset of the start of the UTF-8 sequence that
// represents it in the overall source buffer.
//
// If the column refers to the second unit of a UTF-16 surrogate pair
// then it is rounded down to the first unit. A column past the end of
// the line resolves to the end of the line.
func byteOffsetForColumn(l source.Line, col int) int {
	if col <= 0 {
		return l.Range.Start.Byte
	}

	if l.IsAllASCII() {
		if col > len(l.Bytes) {
			return l.Range.End.Byte
		}
		return l.Range.Start.Byte + col
	}

	byteCt := 0
	utf16Ct := 0
	remain := l.Bytes
	for {
		if len(remain) == 0 {
			return l.Range.End.Byte
		}
		if utf16Ct >= col {
			return l.Range.Start.Byte + byteCt
		}

		adv, chBytes, _ := textseg.ScanUTF8Sequences(remain, true)
		remain = remain[adv:]
		byteCt += adv
		for len(chBytes) > 0 {
			r, n := utf8.DecodeRune(chBytes)
			chBytes = chBytes[n:]
			c1, c2 := utf16.EncodeRune(r)
			if c1 == 0xfffd && c2 == 0xfffd {
				utf16Ct++ // codepoint fits in one 16-bit unit
			} else {
				utf16Ct += 2 // codepoint requires a surrogate pair
			}
		}
	}
}
