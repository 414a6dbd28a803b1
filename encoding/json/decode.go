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

// Package json decodes the method lists which the engine reports for a script,
// as returned by `Script.get_script_method_list()` and dumped to JSON,
// and encodes interface contracts.
package json

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/goccy/go-json"
	"github.com/itchyny/gojq"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/variant"
)

type pathElement interface {
	Append(w io.Writer)
}

type indexPathElement int

var _ pathElement = indexPathElement(0)

func (e indexPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, "[%d]", int(e))
}

type propertyPathElement string

var _ pathElement = propertyPathElement("")

func (e propertyPathElement) Append(w io.Writer) {
	_, _ = fmt.Fprintf(w, ".%s", e)
}

// MethodList is the list of methods of a script.
type MethodList struct {
	// Script is the path of the script, if known
	Script  string
	Methods []descriptor.MethodSignature
}

// A Decoder decodes JSON-encoded method lists.
type Decoder struct {
	dec         *json.Decoder
	filter      *gojq.Query
	ctx         context.Context
	pathContext []pathElement
	// contract controls if checked sub-properties are decoded
	// from the `checks` key instead of the introspected values
	contract bool
}

type Option func(*Decoder)

// WithFilter returns a new Decoder Option
// which selects the method list from the decoded document using a jq query.
// The first result of the query is decoded.
func WithFilter(filter *gojq.Query) Option {
	return func(decoder *Decoder) {
		decoder.filter = filter
	}
}

// WithContext returns a new Decoder Option
// which sets the context the filter is run with.
func WithContext(ctx context.Context) Option {
	return func(decoder *Decoder) {
		decoder.ctx = ctx
	}
}

// ParseFilter parses a jq query for use with WithFilter.
func ParseFilter(source string) (*gojq.Query, error) {
	query, err := gojq.Parse(source)
	if err != nil {
		return nil, errors.NewDefaultUserError("invalid filter %q: %w", source, err)
	}
	return query, nil
}

// Decode returns the method list decoded from its JSON-encoded representation.
//
// The document is either an array of method dictionaries,
// or an object with the keys `methods` and optionally `script`.
func Decode(b []byte, options ...Option) (*MethodList, error) {
	dec := NewDecoder(bytes.NewReader(b))

	for _, option := range options {
		option(dec)
	}

	return dec.Decode()
}

// NewDecoder initializes a Decoder that will decode JSON-encoded bytes from the
// given io.Reader.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		dec:         json.NewDecoder(r),
		ctx:         context.Background(),
		pathContext: make([]pathElement, 0, 8),
	}
}

// Decode reads JSON-encoded bytes from the io.Reader and decodes them to a method list.
//
// This function returns an error if the bytes represent JSON that is malformed
// or is not a method list.
func (d *Decoder) Decode() (methods *MethodList, err error) {
	document, err := d.decodeDocument()
	if err != nil {
		return nil, err
	}

	defer d.recoverDecodingError(&err, "method list")

	return d.decodeMethodList(document), nil
}

// DecodeContract returns the interface contract decoded from its JSON-encoded representation,
// as produced by EncodeContract.
func DecodeContract(b []byte, options ...Option) (*descriptor.InterfaceContract, error) {
	dec := NewDecoder(bytes.NewReader(b))

	for _, option := range options {
		option(dec)
	}

	return dec.DecodeContract()
}

// DecodeContract reads JSON-encoded bytes from the io.Reader and decodes them to an interface contract.
func (d *Decoder) DecodeContract() (contract *descriptor.InterfaceContract, err error) {
	document, err := d.decodeDocument()
	if err != nil {
		return nil, err
	}

	defer d.recoverDecodingError(&err, "contract")

	d.contract = true
	return d.decodeContract(document), nil
}

func (d *Decoder) decodeDocument() (any, error) {
	var document any

	err := d.dec.Decode(&document)
	if err != nil {
		return nil, errors.NewDefaultUserError("failed to decode JSON: %w", err)
	}

	if d.filter != nil {
		return d.runFilter(document)
	}

	return document, nil
}

// recoverDecodingError captures panics that occur during decoding
func (d *Decoder) recoverDecodingError(err *error, what string) {
	r := recover()
	if r == nil {
		return
	}

	panicErr, isError := r.(error)
	if !isError {
		panic(r)
	}

	// internal errors must not be turned into user errors
	if errors.IsInternalError(panicErr) {
		panic(r)
	}

	format := "failed to decode %s: %w"

	path := d.getPathString()
	if path != "" {
		format += fmt.Sprintf(" (at %s)", path)
	}

	*err = errors.NewDefaultUserError(format, what, panicErr)
}

func (d *Decoder) runFilter(document any) (any, error) {
	iter := d.filter.RunWithContext(d.ctx, document)

	result, ok := iter.Next()
	if !ok {
		return nil, errors.NewDefaultUserError(
			"filter %q produced no result",
			d.filter.String(),
		)
	}

	if err, ok := result.(error); ok {
		return nil, errors.NewDefaultUserError(
			"filter %q failed: %w",
			d.filter.String(),
			err,
		)
	}

	return result, nil
}

const (
	scriptKey      = "script"
	methodsKey     = "methods"
	nameKey        = "name"
	argsKey        = "args"
	defaultArgsKey = "default_args"
	flagsKey       = "flags"
	idKey          = "id"
	returnKey      = "return"
	aliasesKey     = "aliases"
	interfaceKey   = "interface"
	locationKey    = "location"
	pathKey        = "path"
	lineKey        = "line"
	columnKey      = "column"
	checksKey      = "checks"
	classNameKey   = "class_name"
	typeKey        = "type"
	hintKey        = "hint"
	hintStringKey  = "hint_string"
	usageKey       = "usage"
)

func (d *Decoder) pushPath(element pathElement) {
	d.pathContext = append(d.pathContext, element)
}

func (d *Decoder) popPath() {
	if len(d.pathContext) > 0 {
		d.pathContext = d.pathContext[:len(d.pathContext)-1]
	}
}

func (d *Decoder) getPathString() string {
	if len(d.pathContext) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, element := range d.pathContext {
		element.Append(&builder)
	}
	return builder.String()
}

func (d *Decoder) decodeMethodList(v any) *MethodList {
	switch v := v.(type) {
	case []any:
		return &MethodList{
			Methods: d.decodeMethods(v),
		}

	case map[string]any:
		obj := jsonObject(v)

		var script string
		if _, ok := obj[scriptKey]; ok {
			script = get(d, obj, scriptKey, toString)
		}

		methods := get(d, obj, methodsKey, func(valueJSON any) []descriptor.MethodSignature {
			return d.decodeMethods(toSlice(valueJSON))
		})

		return &MethodList{
			Script:  script,
			Methods: methods,
		}

	default:
		panic(errors.NewDefaultUserError(
			"expected JSON array or object with key `%s`, got %s",
			methodsKey,
			describe(v),
		))
	}
}

func (d *Decoder) decodeMethods(valuesJSON []any) []descriptor.MethodSignature {
	methods := make([]descriptor.MethodSignature, 0, len(valuesJSON))
	for i, valueJSON := range valuesJSON {
		d.pushPath(indexPathElement(i))
		methods = append(methods, d.decodeMethod(valueJSON))
		d.popPath()
	}
	return methods
}

func (d *Decoder) decodeMethod(valueJSON any) descriptor.MethodSignature {
	obj := toObject(valueJSON)

	name := get(d, obj, nameKey, toString)

	args := get(d, obj, argsKey, func(valueJSON any) []descriptor.ParameterDescriptor {
		argsJSON := toSlice(valueJSON)
		parameters := make([]descriptor.ParameterDescriptor, 0, len(argsJSON))
		for i, argJSON := range argsJSON {
			d.pushPath(indexPathElement(i))
			parameters = append(parameters, d.decodeParameter(argJSON))
			d.popPath()
		}
		return parameters
	})

	// Only the number of default arguments is of interest, not their values
	defaultArgumentCount := get(d, obj, defaultArgsKey, func(valueJSON any) int {
		return len(toSlice(valueJSON))
	})

	flags := get(d, obj, flagsKey, func(valueJSON any) variant.MethodFlags {
		return variant.MethodFlags(toUInt(valueJSON, math.MaxUint32))
	})

	// The method ID is informational only
	_ = get(d, obj, idKey, func(valueJSON any) uint {
		return toUInt(valueJSON, math.MaxInt32)
	})

	returnParameter := get(d, obj, returnKey, d.decodeParameter)

	var aliases []string
	if _, ok := obj[aliasesKey]; ok {
		aliases = get(d, obj, aliasesKey, d.decodeStrings)
	}

	return descriptor.MethodSignature{
		Name:                 name,
		Aliases:              aliases,
		Parameters:           args,
		Return:               returnParameter,
		DefaultArgumentCount: defaultArgumentCount,
		Flags:                flags,
	}
}

func (d *Decoder) decodeStrings(valueJSON any) []string {
	valuesJSON := toSlice(valueJSON)
	result := make([]string, 0, len(valuesJSON))
	for i, valueJSON := range valuesJSON {
		d.pushPath(indexPathElement(i))
		result = append(result, toString(valueJSON))
		d.popPath()
	}
	return result
}

func (d *Decoder) decodePropertyInfo(valueJSON any) descriptor.PropertyInfo {
	obj := toObject(valueJSON)

	return descriptor.PropertyInfo{
		Name:       get(d, obj, nameKey, toString),
		ClassName:  get(d, obj, classNameKey, toString),
		Type:       get(d, obj, typeKey, decodeKind),
		Hint:       get(d, obj, hintKey, decodeHint),
		HintString: get(d, obj, hintStringKey, toString),
		Usage:      get(d, obj, usageKey, decodeUsage),
	}
}

func decodeKind(valueJSON any) variant.Kind {
	kind := variant.Kind(toUInt(valueJSON, math.MaxUint8))
	if !kind.IsValid() {
		panic(errors.NewDefaultUserError("invalid variant type: %d", kind))
	}
	return kind
}

func decodeHint(valueJSON any) variant.PropertyHint {
	hint := variant.PropertyHint(toUInt(valueJSON, math.MaxUint8))
	if !hint.IsValid() {
		panic(errors.NewDefaultUserError("invalid property hint: %d", hint))
	}
	return hint
}

func decodeUsage(valueJSON any) variant.PropertyUsageFlags {
	return variant.PropertyUsageFlags(toUInt(valueJSON, math.MaxUint32))
}

func (d *Decoder) decodeParameter(valueJSON any) descriptor.ParameterDescriptor {
	info := d.decodePropertyInfo(valueJSON)

	if !d.contract {
		parameter, err := info.ParameterDescriptor()
		if err != nil {
			panic(errors.NewDefaultUserError("invalid property: %w", err))
		}
		return parameter
	}

	typ, err := info.TypeDescriptor()
	if err != nil {
		panic(errors.NewDefaultUserError("invalid property: %w", err))
	}

	parameter := descriptor.ParameterDescriptor{
		Name: info.Name,
		Type: typ,
	}

	obj := toObject(valueJSON)
	if checksJSON, ok := obj[checksKey]; ok {
		d.pushPath(propertyPathElement(checksKey))
		d.decodeChecks(toObject(checksJSON), &parameter)
		d.popPath()
	}

	return parameter
}

func (d *Decoder) decodeChecks(obj jsonObject, parameter *descriptor.ParameterDescriptor) {
	if _, ok := obj[usageKey]; ok {
		usage := get(d, obj, usageKey, decodeUsage)
		parameter.CheckedFlags = &usage
	}

	if _, ok := obj[hintKey]; ok {
		hint := get(d, obj, hintKey, decodeHint)
		parameter.CheckedHint = &hint
	}

	if _, ok := obj[hintStringKey]; ok {
		hintString := get(d, obj, hintStringKey, toString)
		parameter.CheckedHintString = &hintString
	}
}

func (d *Decoder) decodeContract(valueJSON any) *descriptor.InterfaceContract {
	obj := toObject(valueJSON)

	contract := &descriptor.InterfaceContract{
		Name: get(d, obj, interfaceKey, toString),
	}

	if _, ok := obj[locationKey]; ok {
		contract.Location = get(d, obj, locationKey, func(valueJSON any) common.Location {
			obj := toObject(valueJSON)
			return common.Location{
				Path:   get(d, obj, pathKey, toString),
				Line:   int(get(d, obj, lineKey, toLineNumber)),
				Column: int(get(d, obj, columnKey, toLineNumber)),
			}
		})
	}

	contract.Methods = get(d, obj, methodsKey, func(valueJSON any) []descriptor.MethodSignature {
		return d.decodeMethods(toSlice(valueJSON))
	})

	return contract
}

// JSON types

type jsonObject map[string]any

func get[T any](d *Decoder, obj jsonObject, key string, f func(valueJSON any) T) T {
	v, ok := obj[key]
	if !ok {
		panic(errors.NewDefaultUserError("missing property: %s", key))
	}

	d.pushPath(propertyPathElement(key))
	result := f(v)
	d.popPath()
	return result
}

// JSON conversion helpers

func describe(valueJSON any) string {
	switch valueJSON.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", valueJSON)
	}
}

func toUInt(valueJSON any, maxValue uint64) uint {
	v, ok := valueJSON.(float64)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON number, got %s", describe(valueJSON)))
	}

	if v < 0 || v != math.Trunc(v) || v > float64(maxValue) {
		panic(errors.NewDefaultUserError("expected unsigned integer, got %v", v))
	}

	return uint(v)
}

func toLineNumber(valueJSON any) uint {
	return toUInt(valueJSON, math.MaxInt32)
}

func toString(valueJSON any) string {
	v, ok := valueJSON.(string)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON string, got %s", describe(valueJSON)))
	}

	return v
}

func toSlice(valueJSON any) []any {
	v, ok := valueJSON.([]any)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON array, got %s", describe(valueJSON)))
	}

	return v
}

func toObject(valueJSON any) jsonObject {
	v, ok := valueJSON.(map[string]any)
	if !ok {
		panic(errors.NewDefaultUserError("expected JSON object, got %s", describe(valueJSON)))
	}

	return v
}
