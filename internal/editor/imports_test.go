// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddImportDeclaration_endToEnd(t *testing.T) {
	e := newTestEditor(t, "")

	err := e.AddImportDeclaration([]ImportIdentifier{{Name: "mock"}}, "module", false)
	if err != nil {
		t.Fatal(err)
	}
	assertText(t, e, `import { mock } from "module";
`)

	err = e.AddImportDeclaration([]ImportIdentifier{{Name: "mock", Alias: "anotherMock"}}, "module", false)
	if err != nil {
		t.Fatal(err)
	}
	assertText(t, e, `import { mock, mock as anotherMock } from "module";
`)

	expectedRecords := []ImportRecord{
		{Name: "mock", Module: "module"},
		{Name: "mock", Module: "module", Alias: "anotherMock"},
	}
	if diff := cmp.Diff(expectedRecords, e.ImportRecords()); diff != "" {
		t.Fatalf("import records mismatch: %s", diff)
	}
}

func TestAddImportDeclaration(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		ids       []ImportIdentifier
		module    string
		isDefault bool
		expected  string
	}{
		{
			"duplicate is a no-op",
			`import { mock } from "module";
`,
			[]ImportIdentifier{{Name: "mock"}},
			"module",
			false,
			`import { mock } from "module";
`,
		},
		{
			"same name from another module",
			`import { mock } from "module";
`,
			[]ImportIdentifier{{Name: "mock"}},
			"other",
			false,
			`import { mock } from "module";
import { mock } from "other";
`,
		},
		{
			"alias already bound",
			`import { a as x } from "a";
`,
			[]ImportIdentifier{{Name: "b", Alias: "x"}, {Name: "c"}},
			"b",
			false,
			`import { a as x } from "a";
import { c } from "b";
`,
		},
		{
			"namespace alias already bound",
			`import * as ns from "a";
`,
			[]ImportIdentifier{{Name: "b", Alias: "ns"}},
			"b",
			false,
			`import * as ns from "a";
`,
		},
		{
			"duplicates within request",
			"",
			[]ImportIdentifier{{Name: "a"}, {Name: "a"}, {Name: "b", Alias: "c"}, {Name: "d", Alias: "c"}},
			"m",
			false,
			`import { a, b as c } from "m";
`,
		},
		{
			"extends existing declaration",
			`import { a } from "m";
import { x } from "other";
`,
			[]ImportIdentifier{{Name: "a"}, {Name: "b"}},
			"m",
			false,
			`import { a, b } from "m";
import { x } from "other";
`,
		},
		{
			"extends default import",
			`import React from "react";
`,
			[]ImportIdentifier{{Name: "useState"}},
			"react",
			false,
			`import React, { useState } from "react";
`,
		},
		{
			"skips namespace declaration",
			`import * as m from "m";
`,
			[]ImportIdentifier{{Name: "a"}},
			"m",
			false,
			`import * as m from "m";
import { a } from "m";
`,
		},
		{
			"inserted after last import",
			`import a from 'a';
const x = 1;
import b from 'b';

export default x;
`,
			[]ImportIdentifier{{Name: "c"}},
			"c",
			false,
			`import a from 'a';
const x = 1;
import b from 'b';
import { c } from 'c';

export default x;
`,
		},
		{
			"inserted first without imports",
			`const x = 1;
`,
			[]ImportIdentifier{{Name: "c"}},
			"c",
			false,
			`import { c } from "c";
const x = 1;
`,
		},
		{
			"default import",
			"",
			[]ImportIdentifier{{Name: "React", Alias: "R"}, {Name: "ignored"}},
			"react",
			true,
			`import React from "react";
`,
		},
		{
			"default added to named import",
			`import { useState } from "react";
`,
			[]ImportIdentifier{{Name: "React"}},
			"react",
			true,
			`import React, { useState } from "react";
`,
		},
		{
			"default already imported",
			`import React from "react";
`,
			[]ImportIdentifier{{Name: "React"}},
			"react",
			true,
			`import React from "react";
`,
		},
		{
			"another default of the same module",
			`import React from "react";
`,
			[]ImportIdentifier{{Name: "Preact"}},
			"react",
			true,
			`import React from "react";
import Preact from "react";
`,
		},
		{
			"type-only declaration is not extended",
			`import type { T } from "m";
const y = 2;
`,
			[]ImportIdentifier{{Name: "a"}, {Name: "z", Alias: "zz"}},
			"m",
			false,
			`import type { T } from "m";
import { a, z as zz } from "m";
const y = 2;
`,
		},
		{
			"type-only alias already bound",
			`import type { T as X } from "t";
`,
			[]ImportIdentifier{{Name: "b", Alias: "X"}, {Name: "c"}},
			"m",
			false,
			`import type { T as X } from "t";
import { c } from "m";
`,
		},
		{
			"require import is not extended",
			`import m = require("m");
const y = 2;
`,
			[]ImportIdentifier{{Name: "a"}},
			"m",
			false,
			`import m = require("m");
import { a } from "m";
const y = 2;
`,
		},
		{
			"inserted after namespace alias import",
			`import { a } from "a";
import B = NS.B;
const y = 2;
`,
			[]ImportIdentifier{{Name: "c"}},
			"c",
			false,
			`import { a } from "a";
import B = NS.B;
import { c } from "c";
const y = 2;
`,
		},
		{
			"keeps specifier comments",
			`import {
  a, // keep
} from "m";
`,
			[]ImportIdentifier{{Name: "b"}},
			"m",
			false,
			`import {
  a, // keep
  b,
} from "m";
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEditor(t, tc.src)

			err := e.AddImportDeclaration(tc.ids, tc.module, tc.isDefault)
			if err != nil {
				t.Fatal(err)
			}
			assertText(t, e, tc.expected)
		})
	}
}

func TestAddImportDeclaration_invalid(t *testing.T) {
	e := newTestEditor(t, "")

	if err := e.AddImportDeclaration([]ImportIdentifier{{Name: "a"}}, "", false); err == nil {
		t.Fatal("expected empty module to fail")
	}
	if err := e.AddImportDeclaration([]ImportIdentifier{{Alias: "a"}}, "m", false); err == nil {
		t.Fatal("expected empty name to fail")
	}
}

func TestPlanImports(t *testing.T) {
	records := []ImportRecord{
		{Name: "mock", Module: "module"},
		{Name: "x", Module: "other", Alias: "y"},
	}
	ids := []ImportIdentifier{
		{Name: "mock"},
		{Name: "mock", Alias: "anotherMock"},
		{Name: "z", Alias: "y"},
		{Name: "x"},
	}

	given := planImports(records, ids, "module", false)
	expected := []ImportIdentifier{
		{Name: "mock", Alias: "anotherMock"},
		{Name: "x"},
	}
	if diff := cmp.Diff(expected, given); diff != "" {
		t.Fatalf("planned imports mismatch: %s", diff)
	}
}

func TestImportRecords_typeOnly(t *testing.T) {
	e := newTestEditor(t, `import type T from "t";
import { type A, b as c } from "m";
import fs = require("fs");
`)

	expected := []ImportRecord{
		{Name: "T", Module: "t", TypeOnly: true},
		{Name: "A", Module: "m", TypeOnly: true},
		{Name: "b", Module: "m", Alias: "c"},
		{Name: "fs", Module: "fs"},
	}
	if diff := cmp.Diff(expected, e.ImportRecords()); diff != "" {
		t.Fatalf("import records mismatch: %s", diff)
	}
}
