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

package cbor

import (
	"fmt"
	"math"
	goRuntime "runtime"

	"github.com/fxamacker/cbor/v2"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/errors"
	"github.com/onflow/gdiface/variant"
)

// Contract cache files may come from anywhere,
// so the decoder limits the sizes of the decoded data items.
var CBORDecMode = func() cbor.DecMode {
	decMode, err := cbor.DecOptions{
		IndefLength:      cbor.IndefLengthForbidden,
		IntDec:           cbor.IntDecConvertNone,
		MaxArrayElements: 1_000_000,
		MaxMapPairs:      1_000_000,
		MaxNestedLevels:  16,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return decMode
}()

// Decoder decodes CBOR-encoded representations of contracts.
type Decoder struct {
	dec *cbor.StreamDecoder
}

// Decode returns a contract decoded from its CBOR-encoded representation.
func Decode(b []byte) (*descriptor.InterfaceContract, error) {
	dec := NewDecoder(b)

	contract, err := dec.Decode()
	if err != nil {
		return nil, err
	}

	if dec.dec.NumBytesDecoded() != len(b) {
		return nil, errors.NewDefaultUserError(
			"cbor: failed to decode: decoded %d bytes, received %d bytes",
			dec.dec.NumBytesDecoded(),
			len(b),
		)
	}

	return contract, nil
}

// NewDecoder initializes a Decoder that will decode CBOR-encoded bytes from the
// given bytes.
func NewDecoder(b []byte) *Decoder {
	// NOTE: encoded data is not copied by decoder.
	return &Decoder{
		dec: CBORDecMode.NewByteStreamDecoder(b),
	}
}

// Decode reads CBOR-encoded bytes and decodes them to a contract.
func (d *Decoder) Decode() (contract *descriptor.InterfaceContract, err error) {
	// Capture panics that occur during decoding.
	defer func() {
		if r := recover(); r != nil {
			// Don't recover Go errors, internal errors, or non-errors.
			switch r := r.(type) {
			case goRuntime.Error, errors.InternalError:
				panic(r)
			case error:
				err = r
			default:
				panic(r)
			}
		}

		if err != nil {
			err = errors.NewDefaultUserError("cbor: failed to decode: %w", err)
		}
	}()

	tagNum, err := d.dec.DecodeTagNumber()
	if err != nil {
		return nil, err
	}

	if tagNum != CBORTagInterfaceContract {
		return nil, fmt.Errorf(
			"unsupported top level message with CBOR tag number %d",
			tagNum,
		)
	}

	err = d.decodeArrayHead(encodedContractLength)
	if err != nil {
		return nil, err
	}

	name, err := d.dec.DecodeString()
	if err != nil {
		return nil, err
	}

	location, err := d.decodeLocation()
	if err != nil {
		return nil, err
	}

	methodCount, err := d.dec.DecodeArrayHead()
	if err != nil {
		return nil, err
	}

	methods := make([]descriptor.MethodSignature, 0, methodCount)
	for i := uint64(0); i < methodCount; i++ {
		method, err := d.decodeMethod()
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		methods = append(methods, method)
	}

	return &descriptor.InterfaceContract{
		Name:     name,
		Location: location,
		Methods:  methods,
	}, nil
}

func (d *Decoder) decodeArrayHead(expected uint64) error {
	n, err := d.dec.DecodeArrayHead()
	if err != nil {
		return err
	}
	if n != expected {
		return fmt.Errorf("expected array of %d elements, got %d", expected, n)
	}
	return nil
}

// decodeNullable decodes null and returns false,
// or returns true if the next data item is not null.
func (d *Decoder) decodeNullable() (bool, error) {
	nextType, err := d.dec.NextType()
	if err != nil {
		return false, err
	}

	if nextType == cbor.NilType {
		return false, d.dec.DecodeNil()
	}

	return true, nil
}

func (d *Decoder) decodeInt(maxValue uint64) (int, error) {
	value, err := d.dec.DecodeUint64()
	if err != nil {
		return 0, err
	}
	if value > maxValue {
		return 0, fmt.Errorf("value %d exceeds %d", value, maxValue)
	}
	return int(value), nil
}

func (d *Decoder) decodeLocation() (common.Location, error) {
	present, err := d.decodeNullable()
	if err != nil || !present {
		return common.Location{}, err
	}

	err = d.decodeArrayHead(encodedLocationLength)
	if err != nil {
		return common.Location{}, err
	}

	path, err := d.dec.DecodeString()
	if err != nil {
		return common.Location{}, err
	}

	line, err := d.decodeInt(math.MaxInt32)
	if err != nil {
		return common.Location{}, err
	}

	column, err := d.decodeInt(math.MaxInt32)
	if err != nil {
		return common.Location{}, err
	}

	return common.Location{
		Path:   path,
		Line:   line,
		Column: column,
	}, nil
}

func (d *Decoder) decodeStrings() ([]string, error) {
	count, err := d.dec.DecodeArrayHead()
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, nil
	}

	result := make([]string, 0, count)
	for i := uint64(0); i < count; i++ {
		s, err := d.dec.DecodeString()
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func (d *Decoder) decodeMethod() (descriptor.MethodSignature, error) {
	err := d.decodeArrayHead(encodedMethodLength)
	if err != nil {
		return descriptor.MethodSignature{}, err
	}

	// element 0: name
	name, err := d.dec.DecodeString()
	if err != nil {
		return descriptor.MethodSignature{}, err
	}

	// element 1: aliases
	aliases, err := d.decodeStrings()
	if err != nil {
		return descriptor.MethodSignature{}, err
	}

	// element 2: parameters
	parameterCount, err := d.dec.DecodeArrayHead()
	if err != nil {
		return descriptor.MethodSignature{}, err
	}

	parameters := make([]descriptor.ParameterDescriptor, 0, parameterCount)
	for i := uint64(0); i < parameterCount; i++ {
		parameter, err := d.decodeParameter()
		if err != nil {
			return descriptor.MethodSignature{}, fmt.Errorf("parameter %d: %w", i, err)
		}
		parameters = append(parameters, parameter)
	}

	// element 3: return
	returnParameter, err := d.decodeParameter()
	if err != nil {
		return descriptor.MethodSignature{}, fmt.Errorf("return: %w", err)
	}

	// element 4: default argument count
	defaultArgumentCount, err := d.decodeInt(parameterCount)
	if err != nil {
		return descriptor.MethodSignature{}, err
	}

	// element 5: flags
	flags, err := d.decodeInt(math.MaxUint32)
	if err != nil {
		return descriptor.MethodSignature{}, err
	}

	return descriptor.MethodSignature{
		Name:                 name,
		Aliases:              aliases,
		Parameters:           parameters,
		Return:               returnParameter,
		DefaultArgumentCount: defaultArgumentCount,
		Flags:                variant.MethodFlags(flags),
	}, nil
}

func (d *Decoder) decodeParameter() (descriptor.ParameterDescriptor, error) {
	err := d.decodeArrayHead(encodedParameterLength)
	if err != nil {
		return descriptor.ParameterDescriptor{}, err
	}

	// element 0: name
	name, err := d.dec.DecodeString()
	if err != nil {
		return descriptor.ParameterDescriptor{}, err
	}

	// element 1: type
	typ, err := d.decodeType()
	if err != nil {
		return descriptor.ParameterDescriptor{}, err
	}

	parameter := descriptor.ParameterDescriptor{
		Name: name,
		Type: typ,
	}

	// element 2: usage
	present, err := d.decodeNullable()
	if err != nil {
		return descriptor.ParameterDescriptor{}, err
	}
	if present {
		usage, err := d.decodeInt(math.MaxUint32)
		if err != nil {
			return descriptor.ParameterDescriptor{}, err
		}
		flags := variant.PropertyUsageFlags(usage)
		parameter.CheckedFlags = &flags
	}

	// element 3: hint
	present, err = d.decodeNullable()
	if err != nil {
		return descriptor.ParameterDescriptor{}, err
	}
	if present {
		value, err := d.decodeInt(uint64(variant.HintCount - 1))
		if err != nil {
			return descriptor.ParameterDescriptor{}, err
		}
		hint := variant.PropertyHint(value)
		parameter.CheckedHint = &hint
	}

	// element 4: hint string
	present, err = d.decodeNullable()
	if err != nil {
		return descriptor.ParameterDescriptor{}, err
	}
	if present {
		hintString, err := d.dec.DecodeString()
		if err != nil {
			return descriptor.ParameterDescriptor{}, err
		}
		parameter.CheckedHintString = &hintString
	}

	return parameter, nil
}

func (d *Decoder) decodeType() (descriptor.TypeDescriptor, error) {
	err := d.decodeArrayHead(encodedTypeLength)
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	// element 0: kind
	kind, err := d.decodeInt(uint64(variant.KindCount - 1))
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	// element 1: class name
	className, err := d.dec.DecodeString()
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	typ := descriptor.TypeDescriptor{
		Kind:      variant.Kind(kind),
		ClassName: className,
	}

	// element 2: container hint
	present, err := d.decodeNullable()
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}
	if present {
		err = d.decodeArrayHead(encodedContainerHintLen)
		if err != nil {
			return descriptor.TypeDescriptor{}, err
		}

		element, err := d.dec.DecodeString()
		if err != nil {
			return descriptor.TypeDescriptor{}, err
		}

		value, err := d.dec.DecodeString()
		if err != nil {
			return descriptor.TypeDescriptor{}, err
		}

		typ.ContainerHint = &descriptor.ContainerHint{
			Element: element,
			Value:   value,
		}
	}

	// element 3: enum marker
	typ.EnumMarker, err = d.dec.DecodeBool()
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	// element 4: any marker
	typ.AnyMarker, err = d.dec.DecodeBool()
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	err = typ.Validate()
	if err != nil {
		return descriptor.TypeDescriptor{}, err
	}

	return typ, nil
}
