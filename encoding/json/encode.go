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

package json

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/onflow/gdiface/descriptor"
)

// An Encoder converts method lists and contracts into JSON-encoded bytes.
type Encoder struct {
	enc *json.Encoder
}

// EncodeMethodList returns the JSON-encoded representation of the given method list,
// in the format the engine reports method lists in.
func EncodeMethodList(methods *MethodList) ([]byte, error) {
	var w bytes.Buffer
	enc := NewEncoder(&w)

	err := enc.EncodeMethodList(methods)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// EncodeContract returns the JSON-encoded representation of the given contract.
func EncodeContract(contract *descriptor.InterfaceContract) ([]byte, error) {
	var w bytes.Buffer
	enc := NewEncoder(&w)

	err := enc.EncodeContract(contract)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// NewEncoder initializes an Encoder that will write JSON-encoded bytes to the
// given io.Writer.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: json.NewEncoder(w)}
}

// SetIndent instructs the encoder to format each encoded document
// with the given indentation.
func (e *Encoder) SetIndent(prefix, indent string) {
	e.enc.SetIndent(prefix, indent)
}

// EncodeMethodList writes the JSON-encoded representation of the given method list
// to this encoder's io.Writer.
//
// The parameters are encoded with their checked sub-properties,
// i.e. as introspected.
func (e *Encoder) EncodeMethodList(methods *MethodList) error {
	prepared := methodListJSON{
		Script:  methods.Script,
		Methods: encodeMethods(methods.Methods, encodeActualParameter),
	}

	err := e.enc.Encode(&prepared)
	if err != nil {
		return fmt.Errorf("failed to encode method list: %w", err)
	}
	return nil
}

// EncodeContract writes the JSON-encoded representation of the given contract
// to this encoder's io.Writer.
func (e *Encoder) EncodeContract(contract *descriptor.InterfaceContract) error {
	prepared := contractJSON{
		Interface: contract.Name,
		Methods:   encodeMethods(contract.Methods, encodeRequiredParameter),
	}

	if contract.Location.IsKnown() {
		prepared.Location = &locationJSON{
			Path:   contract.Location.Path,
			Line:   contract.Location.Line,
			Column: contract.Location.Column,
		}
	}

	err := e.enc.Encode(&prepared)
	if err != nil {
		return fmt.Errorf("failed to encode contract: %w", err)
	}
	return nil
}

// JSON struct definitions

type methodListJSON struct {
	Script  string       `json:"script,omitempty"`
	Methods []methodJSON `json:"methods"`
}

type contractJSON struct {
	Interface string        `json:"interface"`
	Location  *locationJSON `json:"location,omitempty"`
	Methods   []methodJSON  `json:"methods"`
}

type locationJSON struct {
	Path   string `json:"path"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

type methodJSON struct {
	Name    string             `json:"name"`
	Aliases []string           `json:"aliases,omitempty"`
	Args    []propertyInfoJSON `json:"args"`
	// DefaultArgs only has the right length, the values are unknown
	DefaultArgs []any            `json:"default_args"`
	Flags       uint             `json:"flags"`
	ID          int              `json:"id"`
	Return      propertyInfoJSON `json:"return"`
}

type propertyInfoJSON struct {
	Name       string      `json:"name"`
	ClassName  string      `json:"class_name"`
	Type       uint        `json:"type"`
	Hint       uint        `json:"hint"`
	HintString string      `json:"hint_string"`
	Usage      uint64      `json:"usage"`
	Checks     *checksJSON `json:"checks,omitempty"`
}

type checksJSON struct {
	Usage      *uint64 `json:"usage,omitempty"`
	Hint       *uint   `json:"hint,omitempty"`
	HintString *string `json:"hint_string,omitempty"`
}

func encodeMethods(
	methods []descriptor.MethodSignature,
	encodeParameter func(descriptor.ParameterDescriptor) propertyInfoJSON,
) []methodJSON {
	result := make([]methodJSON, 0, len(methods))

	for i, method := range methods {
		args := make([]propertyInfoJSON, 0, len(method.Parameters))
		for _, parameter := range method.Parameters {
			args = append(args, encodeParameter(parameter))
		}

		result = append(result, methodJSON{
			Name:        method.Name,
			Aliases:     method.Aliases,
			Args:        args,
			DefaultArgs: make([]any, method.DefaultArgumentCount),
			Flags:       uint(method.Flags),
			ID:          i,
			Return:      encodeParameter(method.Return),
		})
	}

	return result
}

func encodePropertyInfo(info descriptor.PropertyInfo) propertyInfoJSON {
	return propertyInfoJSON{
		Name:       info.Name,
		ClassName:  info.ClassName,
		Type:       uint(info.Type),
		Hint:       uint(info.Hint),
		HintString: info.HintString,
		Usage:      uint64(info.Usage),
	}
}

func encodeActualParameter(parameter descriptor.ParameterDescriptor) propertyInfoJSON {
	return encodePropertyInfo(parameter.PropertyInfo())
}

func encodeRequiredParameter(parameter descriptor.ParameterDescriptor) propertyInfoJSON {
	result := encodePropertyInfo(parameter.Type.PropertyInfo(parameter.Name))

	if !parameter.HasChecks() {
		return result
	}

	checks := &checksJSON{}

	if parameter.CheckedFlags != nil {
		usage := uint64(*parameter.CheckedFlags)
		checks.Usage = &usage
	}

	if parameter.CheckedHint != nil {
		hint := uint(*parameter.CheckedHint)
		checks.Hint = &hint
	}

	if parameter.CheckedHintString != nil {
		hintString := *parameter.CheckedHintString
		checks.HintString = &hintString
	}

	result.Checks = checks
	return result
}
