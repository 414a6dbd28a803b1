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

// Package pretty prints errors with an excerpt of the source they were reported for.
package pretty

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/logrusorgru/aurora/v4"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/errors"
)

type ErrorPrettyPrinter struct {
	writer    io.Writer
	colorizer *aurora.Aurora
}

func NewErrorPrettyPrinter(writer io.Writer, useColor bool) ErrorPrettyPrinter {
	return ErrorPrettyPrinter{
		writer:    writer,
		colorizer: aurora.New(aurora.WithColors(useColor)),
	}
}

// PrettyPrintError prints the given error.
// The sources are keyed by path, and are used to print an excerpt
// of the line the error was reported for.
// The child errors of parent errors are printed after the parent error.
func (p ErrorPrettyPrinter) PrettyPrintError(err error, sources map[string]string) error {
	var w strings.Builder

	p.writeError(&w, err, sources)

	_, writeErr := io.WriteString(p.writer, w.String())
	return writeErr
}

func (p ErrorPrettyPrinter) writeError(w *strings.Builder, err error, sources map[string]string) {
	p.writeHeader(w, err)

	if hasLocation, ok := err.(common.HasLocation); ok {
		location := hasLocation.SourceLocation()
		if location.Path != "" || location.IsKnown() {
			p.writeLocation(w, location)
			p.writeExcerpt(w, err, location, sources[location.Path])
		}
	}

	if errorNotes, ok := err.(errors.ErrorNotes); ok {
		for _, note := range errorNotes.ErrorNotes() {
			p.writeNote(w, note.Message())
		}
	}

	if parentError, ok := err.(errors.ParentError); ok {
		for _, childError := range parentError.ChildErrors() {
			w.WriteString("\n")
			p.writeError(w, childError, sources)
		}
	}
}

func (p ErrorPrettyPrinter) writeHeader(w *strings.Builder, err error) {
	w.WriteString(p.colorizer.Red("error").Bold().String())
	w.WriteString(p.colorizer.Bold(": " + err.Error()).String())
	w.WriteString("\n")
}

func (p ErrorPrettyPrinter) writeLocation(w *strings.Builder, location common.Location) {
	w.WriteString(p.colorizer.BrightBlue(" --> ").Bold().String())
	w.WriteString(location.String())
	w.WriteString("\n")
}

func (p ErrorPrettyPrinter) writeNote(w *strings.Builder, message string) {
	w.WriteString(p.colorizer.BrightBlue("  = ").Bold().String())
	w.WriteString(p.colorizer.Bold("note").String())
	w.WriteString(": ")
	w.WriteString(message)
	w.WriteString("\n")
}

func (p ErrorPrettyPrinter) writeExcerpt(
	w *strings.Builder,
	err error,
	location common.Location,
	source string,
) {
	if !location.IsKnown() || source == "" {
		return
	}

	lines := strings.Split(source, "\n")
	if location.Line > len(lines) {
		return
	}
	line := strings.TrimRight(lines[location.Line-1], "\r")

	lineNumber := strconv.Itoa(location.Line)
	gutter := strings.Repeat(" ", len(lineNumber))

	separator := p.colorizer.BrightBlue(gutter + " |").Bold().String()

	w.WriteString(separator)
	w.WriteString("\n")

	w.WriteString(p.colorizer.BrightBlue(lineNumber + " | ").Bold().String())
	w.WriteString(line)
	w.WriteString("\n")

	w.WriteString(separator)

	if location.Column == 0 {
		w.WriteString("\n")
		return
	}

	w.WriteString(" ")

	// Columns are 1-based
	start := min(location.Column-1, len(line))
	w.WriteString(indentation(line[:start]))

	markerLength := max(wordLength(line[start:]), 1)
	w.WriteString(p.colorizer.Red(strings.Repeat("^", markerLength)).Bold().String())

	if secondaryError, ok := err.(errors.SecondaryError); ok {
		w.WriteString(" ")
		w.WriteString(p.colorizer.Red(secondaryError.SecondaryError()).Bold().String())
	}

	w.WriteString("\n")
}

// indentation returns the prefix as whitespace, keeping tabs
func indentation(prefix string) string {
	var builder strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteRune(' ')
		}
	}
	return builder.String()
}

// wordLength returns the length of the word at the start of the given text
func wordLength(text string) int {
	length := 0
	for _, r := range text {
		if !isWordRune(r) {
			break
		}
		length++
	}
	return length
}

func isWordRune(r rune) bool {
	return r == '_' ||
		r == '@' ||
		r == '.' ||
		unicode.IsLetter(r) ||
		unicode.IsDigit(r)
}

// Sprint returns the pretty printed error without colors.
func Sprint(err error, sources map[string]string) string {
	var builder strings.Builder
	printer := NewErrorPrettyPrinter(&builder, false)
	if writeErr := printer.PrettyPrintError(err, sources); writeErr != nil {
		return fmt.Sprintf("%s (%s)", err, writeErr)
	}
	return builder.String()
}
