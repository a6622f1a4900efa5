// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package document

import (
	"bytes"
	"sort"

	"github.com/hashicorp/stagefs/internal/source"
)

type Change interface {
	Text() string
	Range() *Range
}

type Changes []Change

// ApplyChanges applies changes whose ranges all refer to the original
// text. Changes are spliced in reverse order of position so that offsets
// of earlier changes stay valid. A change with nil range replaces the
// whole content.
func ApplyChanges(original []byte, changes Changes) ([]byte, error) {
	if len(changes) == 0 {
		return original, nil
	}

	lines := source.MakeSourceLines("", original)

	type splice struct {
		idx        int
		start, end int
		text       string
	}
	splices := make([]splice, 0, len(changes))

	for i, ch := range changes {
		if ch.Range() == nil {
			splices = append(splices, splice{idx: i, start: 0, end: len(original), text: ch.Text()})
			continue
		}

		startByte, err := ByteOffsetForPos(lines, ch.Range().Start)
		if err != nil {
			return nil, err
		}
		endByte, err := ByteOffsetForPos(lines, ch.Range().End)
		if err != nil {
			return nil, err
		}
		if endByte < startByte {
			return nil, &InvalidRangeErr{Range: *ch.Range()}
		}

		splices = append(splices, splice{idx: i, start: startByte, end: endByte, text: ch.Text()})
	}

	// later positions first; for equal positions the later change goes
	// first so that the resulting text keeps the given order
	sort.SliceStable(splices, func(i, j int) bool {
		if splices[i].start != splices[j].start {
			return splices[i].start > splices[j].start
		}
		return splices[i].idx > splices[j].idx
	})

	buf := make([]byte, len(original))
	copy(buf, original)

	for _, s := range splices {
		if s.end > len(buf) {
			s.end = len(buf)
		}
		var out bytes.Buffer
		out.Grow(len(buf) - (s.end - s.start) + len(s.text))
		out.Write(buf[:s.start])
		out.WriteString(s.text)
		out.Write(buf[s.end:])
		buf = out.Bytes()
	}

	return buf, nil
}
