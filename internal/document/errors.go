// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package document

import (
	"fmt"
)

type InvalidPosErr struct {
	Pos Pos
}

func (e *InvalidPosErr) Error() string {
	return fmt.Sprintf("invalid position: %s", e.Pos)
}

type InvalidRangeErr struct {
	Range Range
}

func (e *InvalidRangeErr) Error() string {
	return fmt.Sprintf("invalid range: %s", e.Range)
}
