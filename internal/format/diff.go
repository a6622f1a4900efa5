// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package format

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/stagefs/internal/document"
	"github.com/hashicorp/stagefs/internal/source"
	"github.com/pmezard/go-difflib/difflib"
)

type fileChange struct {
	newText string
	rng     *hcl.Range
}

func (ch *fileChange) Text() string {
	return ch.newText
}

func (ch *fileChange) Range() *document.Range {
	if ch.rng == nil {
		return nil
	}

	return &document.Range{
		Start: document.Pos{
			Line:   ch.rng.Start.Line - 1,
			Column: ch.rng.Start.Column - 1,
		},
		End: document.Pos{
			Line:   ch.rng.End.Line - 1,
			Column: ch.rng.End.Column - 1,
		},
	}
}

const (
	opReplace = 'r'
	opDelete  = 'd'
	opInsert  = 'i'
	opEqual   = 'e'
)

// Diff returns line-based edits turning before into after.
// All ranges refer to before.
func Diff(filename string, before, after []byte) document.Changes {
	return diffLines(filename,
		source.MakeSourceLines(filename, before),
		source.MakeSourceLines(filename, after))
}

func diffLines(filename string, beforeLines, afterLines source.Lines) document.Changes {
	context := 3

	m := difflib.NewMatcher(
		source.StringLines(beforeLines),
		source.StringLines(afterLines))

	changes := make(document.Changes, 0)

	for _, group := range m.GetGroupedOpCodes(context) {
		for _, c := range group {
			if c.Tag == opEqual {
				continue
			}

			// lines of the original to replace, delete or insert at
			beforeStart, beforeEnd := c.I1, c.I2
			// lines of the formatted text
			afterStart, afterEnd := c.J1, c.J2

			switch c.Tag {
			case opReplace, opDelete:
				changes = append(changes, &fileChange{
					newText: joinLines(afterLines[afterStart:afterEnd]),
					rng:     spanOf(beforeLines[beforeStart:beforeEnd]),
				})
			case opInsert:
				var rng *hcl.Range
				if beforeStart < len(beforeLines) {
					rng = beforeLines[beforeStart].Range.Ptr()
				} else {
					rng = &hcl.Range{
						Filename: filename,
						Start:    hcl.InitialPos,
						End:      hcl.InitialPos,
					}
				}
				// insertion at the beginning of the line
				// is a 0-length range
				rng.End = rng.Start

				changes = append(changes, &fileChange{
					newText: joinLines(afterLines[afterStart:afterEnd]),
					rng:     rng,
				})
			}
		}
	}

	return changes
}

func spanOf(lines source.Lines) *hcl.Range {
	var rng *hcl.Range
	for i, line := range lines {
		if i == 0 {
			lr := line.Range
			rng = &lr
			continue
		}
		rng.End = line.Range.End
	}
	return rng
}

func joinLines(lines source.Lines) string {
	var b []byte
	for _, line := range lines {
		b = append(b, line.Bytes...)
	}
	return string(b)
}
