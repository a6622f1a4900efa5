// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package filesystem implements a virtual tree of files staged
// in memory on top of an optional backing store.
//
//   - imports the backing root into the tree on construction
//   - records every mutation in a change ledger
//   - replays the ledger against the backing root on Finalize
//   - dumps the whole tree to any destination on FinalizeTo
package filesystem
