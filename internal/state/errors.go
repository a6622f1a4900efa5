// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package state

import (
	"fmt"
)

type ChangeNotFoundError struct {
	Path string
}

func (e *ChangeNotFoundError) Error() string {
	msg := "change not found"
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}

	return msg
}

func (e *ChangeNotFoundError) Is(err error) bool {
	_, ok := err.(*ChangeNotFoundError)
	return ok
}

func IsChangeNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ChangeNotFoundError)
	return ok
}
