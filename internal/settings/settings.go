// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package settings resolves formatting options from layered sources.
//
// Layers are applied over DefaultOptions in order, so later layers win:
// built-in defaults, then the project config file, then caller overrides.
package settings

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ProjectConfigFile is looked up in the root of the virtual tree.
const ProjectConfigFile = ".stagefmt.hcl"

const (
	QuotePreserve = "preserve"
	QuoteSingle   = "single"
	QuoteDouble   = "double"
)

type Options struct {
	IndentSize         int
	UseTabs            bool
	QuoteStyle         string
	Semicolons         bool
	InsertFinalNewline bool
	TrailingCommas     bool
}

func DefaultOptions() *Options {
	return &Options{
		IndentSize:         2,
		UseTabs:            false,
		QuoteStyle:         QuotePreserve,
		Semicolons:         true,
		InsertFinalNewline: true,
		TrailingCommas:     true,
	}
}

func (o *Options) Validate() error {
	if o.IndentSize < 1 || o.IndentSize > 16 {
		return fmt.Errorf("`indent_size` must be between 1 and 16, got %d", o.IndentSize)
	}

	switch o.QuoteStyle {
	case QuotePreserve, QuoteSingle, QuoteDouble:
	default:
		return fmt.Errorf("`quote_style` must be one of %q, %q or %q, got %q",
			QuotePreserve, QuoteSingle, QuoteDouble, o.QuoteStyle)
	}

	return nil
}

// Layer is a partial set of options. Nil fields leave
// the underlying value unchanged.
type Layer struct {
	IndentSize         *int    `mapstructure:"indent_size"`
	UseTabs            *bool   `mapstructure:"use_tabs"`
	QuoteStyle         *string `mapstructure:"quote_style"`
	Semicolons         *bool   `mapstructure:"semicolons"`
	InsertFinalNewline *bool   `mapstructure:"insert_final_newline"`
	TrailingCommas     *bool   `mapstructure:"trailing_commas"`
}

// Apply returns a copy of o with the non-nil fields of l applied.
func (o *Options) Apply(l *Layer) *Options {
	out := *o
	if l == nil {
		return &out
	}

	if l.IndentSize != nil {
		out.IndentSize = *l.IndentSize
	}
	if l.UseTabs != nil {
		out.UseTabs = *l.UseTabs
	}
	if l.QuoteStyle != nil {
		out.QuoteStyle = *l.QuoteStyle
	}
	if l.Semicolons != nil {
		out.Semicolons = *l.Semicolons
	}
	if l.InsertFinalNewline != nil {
		out.InsertFinalNewline = *l.InsertFinalNewline
	}
	if l.TrailingCommas != nil {
		out.TrailingCommas = *l.TrailingCommas
	}

	return &out
}

// Resolve applies layers over the defaults in the given order
// and validates the result.
func Resolve(layers ...*Layer) (*Options, error) {
	opts := DefaultOptions()
	for _, l := range layers {
		opts = opts.Apply(l)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

type DecodedOptions struct {
	Layer      *Layer
	UnusedKeys []string
}

func DecodeOptions(input interface{}) (*DecodedOptions, error) {
	var md mapstructure.Metadata
	var layer Layer

	config := &mapstructure.DecoderConfig{
		Metadata: &md,
		Result:   &layer,
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		panic(err)
	}

	if err := decoder.Decode(input); err != nil {
		return nil, err
	}

	return &DecodedOptions{
		Layer:      &layer,
		UnusedKeys: md.Unused,
	}, nil
}
