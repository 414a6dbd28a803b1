/*
 * gdiface - Godot script interface conformance checker
 *
 * Copyright Flow Foundation
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pretty

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/errors"
)

type testError struct {
	common.Location
}

func (testError) Error() string {
	return "test error"
}

type testNote string

func (n testNote) Message() string {
	return string(n)
}

type testDetailedError struct {
	common.Location
}

var _ errors.SecondaryError = testDetailedError{}
var _ errors.ErrorNotes = testDetailedError{}

func (testDetailedError) Error() string {
	return "cannot represent type `decimal`"
}

func (testDetailedError) SecondaryError() string {
	return "use `double` instead"
}

func (testDetailedError) ErrorNotes() []errors.ErrorNote {
	return []errors.ErrorNote{
		testNote("decimal has no engine equivalent"),
	}
}

type testParentError struct {
	children []error
}

var _ errors.ParentError = testParentError{}

func (testParentError) Error() string {
	return "2 errors"
}

func (e testParentError) ChildErrors() []error {
	return e.children
}

func TestPrintBrokenCode(t *testing.T) {

	t.Parallel()

	const code = `interfaces: []`
	lineCount := len(strings.Split(code, "\n"))

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Location: common.Location{
				Path: "test",
				// NOTE: line number is after end of code
				Line:   lineCount + 2,
				Column: 1,
			},
		},
		map[string]string{
			"test": code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:3:1\n",
		sb.String(),
	)
}

func TestPrintTabs(t *testing.T) {

	t.Parallel()

	const code = "\t  \t   let x = 1"

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, false)
	err := printer.PrettyPrintError(
		testError{
			Location: common.Location{
				Path:   "test",
				Line:   1,
				Column: 8,
			},
		},
		map[string]string{
			"test": code,
		},
	)
	require.NoError(t, err)
	require.Equal(t,
		"error: test error\n"+
			" --> test:1:8\n"+
			"  |\n"+
			"1 | \t  \t   let x = 1\n"+
			"  | \t  \t   ^^^\n",
		sb.String(),
	)
}

func TestPrintSecondaryErrorAndNotes(t *testing.T) {

	t.Parallel()

	const code = "interfaces:\n" +
		"  - name: IShop\n" +
		"    methods:\n" +
		"      - name: Buy\n" +
		"        parameters:\n" +
		"          - name: price\n" +
		"            type: decimal\n" +
		"          - name: count\n" +
		"            type: int\n" +
		"      - name: Sell\n"

	err := testDetailedError{
		Location: common.Location{
			Path:   "shop.yaml",
			Line:   10,
			Column: 15,
		},
	}

	require.Equal(t,
		"error: cannot represent type `decimal`\n"+
			" --> shop.yaml:10:15\n"+
			"   |\n"+
			"10 |       - name: Sell\n"+
			"   | "+strings.Repeat(" ", 14)+"^^^^ use `double` instead\n"+
			"  = note: decimal has no engine equivalent\n",
		Sprint(err, map[string]string{"shop.yaml": code}),
	)
}

func TestPrintWithoutSource(t *testing.T) {

	t.Parallel()

	err := testError{
		Location: common.Location{
			Path: "missing.yaml",
			Line: 2,
		},
	}

	require.Equal(t,
		"error: test error\n"+
			" --> missing.yaml:2\n",
		Sprint(err, nil),
	)
}

func TestPrintWithoutColumn(t *testing.T) {

	t.Parallel()

	err := testError{
		Location: common.Location{
			Path: "test",
			Line: 1,
		},
	}

	require.Equal(t,
		"error: test error\n"+
			" --> test:1\n"+
			"  |\n"+
			"1 | interfaces: []\n"+
			"  |\n",
		Sprint(err, map[string]string{"test": "interfaces: []"}),
	)
}

func TestPrintParentError(t *testing.T) {

	t.Parallel()

	const code = "a\nb\n"

	err := testParentError{
		children: []error{
			testError{
				Location: common.Location{Path: "test", Line: 1, Column: 1},
			},
			errors.NewDefaultUserError("no location"),
		},
	}

	require.Equal(t,
		"error: 2 errors\n"+
			"\n"+
			"error: test error\n"+
			" --> test:1:1\n"+
			"  |\n"+
			"1 | a\n"+
			"  | ^\n"+
			"\n"+
			"error: no location\n",
		Sprint(err, map[string]string{"test": code}),
	)
}

func TestPrintColors(t *testing.T) {

	t.Parallel()

	var sb strings.Builder
	printer := NewErrorPrettyPrinter(&sb, true)
	err := printer.PrettyPrintError(errors.NewDefaultUserError("colored"), nil)
	require.NoError(t, err)

	require.Contains(t, sb.String(), "\x1b[")
	require.Contains(t, sb.String(), "colored")
}
