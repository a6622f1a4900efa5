// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package document

import "fmt"

// Range represents a range between two positions
// Positions are zero-indexed
type Range struct {
	Start, End Pos
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Pos represents a zero-indexed position. Column counts UTF-16 code units.
type Pos struct {
	Line, Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
