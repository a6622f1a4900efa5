// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package state

import (
	"io/ioutil"
	"log"

	"github.com/hashicorp/go-memdb"
)

const (
	changesTableName = "changes"
)

var dbSchema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		changesTableName: {
			Name: changesTableName,
			Indexes: map[string]*memdb.IndexSchema{
				"id": {
					Name:    "id",
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "Path"},
				},
				"seq": {
					Name:    "seq",
					Unique:  true,
					Indexer: &memdb.UintFieldIndex{Field: "Seq"},
				},
			},
		},
	},
}

type StateStore struct {
	Changes *ChangeStore

	db *memdb.MemDB
}

func NewStateStore() (*StateStore, error) {
	db, err := memdb.NewMemDB(dbSchema)
	if err != nil {
		return nil, err
	}

	return &StateStore{
		db: db,
		Changes: &ChangeStore{
			db:        db,
			tableName: changesTableName,
			logger:    defaultLogger,
		},
	}, nil
}

func (s *StateStore) SetLogger(logger *log.Logger) {
	s.Changes.logger = logger
}

var defaultLogger = log.New(ioutil.Discard, "", 0)
