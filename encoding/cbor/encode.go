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

// Package cbor encodes interface contracts in a deterministic binary format,
// used for contract cache files and contract fingerprints.
//
// The format is, in CDDL:
//
//	contract = #6.211([
//	    name: tstr,
//	    location: [path: tstr, line: uint, column: uint] / null,
//	    methods: [* method],
//	])
//
//	method = [
//	    name: tstr,
//	    aliases: [* tstr],
//	    parameters: [* parameter],
//	    return: parameter,
//	    default-argument-count: uint,
//	    flags: uint,
//	]
//
//	parameter = [
//	    name: tstr,
//	    type: type,
//	    usage: uint / null,
//	    hint: uint / null,
//	    hint-string: tstr / null,
//	]
//
//	type = [
//	    kind: uint,
//	    class-name: tstr,
//	    container-hint: [element: tstr, value: tstr] / null,
//	    enum: bool,
//	    any: bool,
//	]
package cbor

import (
	"bytes"
	"fmt"
	"io"
	goRuntime "runtime"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/onflow/gdiface/descriptor"
	"github.com/onflow/gdiface/errors"
)

const CBORTagInterfaceContract = 211

const (
	encodedContractLength   = 3
	encodedLocationLength   = 3
	encodedMethodLength     = 6
	encodedParameterLength  = 5
	encodedTypeLength       = 5
	encodedContainerHintLen = 2
)

// CBOREncMode
//
// See https://github.com/fxamacker/cbor:
// "For best performance, reuse EncMode and DecMode after creating them."
var CBOREncMode = func() cbor.EncMode {
	options := cbor.CoreDetEncOptions()
	encMode, err := options.EncMode()
	if err != nil {
		panic(err)
	}
	return encMode
}()

// An Encoder converts contracts into CBOR-encoded bytes.
type Encoder struct {
	enc *cbor.StreamEncoder
}

// Encode returns the CBOR-encoded representation of the given contract.
func Encode(contract *descriptor.InterfaceContract) ([]byte, error) {
	var w bytes.Buffer

	enc := NewEncoder(&w)
	defer enc.enc.Close()

	err := enc.Encode(contract)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// Fingerprint returns the SHA3-256 hash of the CBOR-encoded representation of the given contract.
// Equal contracts have equal fingerprints.
func Fingerprint(contract *descriptor.InterfaceContract) ([32]byte, error) {
	encoded, err := Encode(contract)
	if err != nil {
		return [32]byte{}, err
	}
	return sha3.Sum256(encoded), nil
}

// NewEncoder initializes an Encoder that will write CBOR-encoded bytes to the
// given io.Writer.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		enc: CBOREncMode.NewStreamEncoder(w),
	}
}

// Encode writes the CBOR-encoded representation of the given contract to this
// encoder's io.Writer.
func (e *Encoder) Encode(contract *descriptor.InterfaceContract) (err error) {
	// capture panics
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
			err = fmt.Errorf(
				"cbor: failed to encode contract %q: %w",
				contract.Name,
				err,
			)
		}
	}()

	// Encode tag number and array head of the contract.
	err = e.enc.EncodeRawBytes([]byte{
		// tag number
		0xd8, CBORTagInterfaceContract,
		// array, 3 items follow
		0x80 | encodedContractLength,
	})
	if err != nil {
		return err
	}

	// element 0: name
	err = e.enc.EncodeString(contract.Name)
	if err != nil {
		return err
	}

	// element 1: location
	err = e.encodeLocation(contract)
	if err != nil {
		return err
	}

	// element 2: methods
	err = e.enc.EncodeArrayHead(uint64(len(contract.Methods)))
	if err != nil {
		return err
	}
	for _, method := range contract.Methods {
		err = e.encodeMethod(method)
		if err != nil {
			return err
		}
	}

	return e.enc.Flush()
}

func (e *Encoder) encodeLocation(contract *descriptor.InterfaceContract) error {
	location := contract.Location
	if !location.IsKnown() {
		return e.enc.EncodeNil()
	}

	err := e.enc.EncodeArrayHead(encodedLocationLength)
	if err != nil {
		return err
	}

	err = e.enc.EncodeString(location.Path)
	if err != nil {
		return err
	}

	err = e.enc.EncodeUint64(uint64(location.Line))
	if err != nil {
		return err
	}

	return e.enc.EncodeUint64(uint64(location.Column))
}

func (e *Encoder) encodeMethod(method descriptor.MethodSignature) error {
	err := e.enc.EncodeArrayHead(encodedMethodLength)
	if err != nil {
		return err
	}

	// element 0: name
	err = e.enc.EncodeString(method.Name)
	if err != nil {
		return err
	}

	// element 1: aliases
	err = e.enc.EncodeArrayHead(uint64(len(method.Aliases)))
	if err != nil {
		return err
	}
	for _, alias := range method.Aliases {
		err = e.enc.EncodeString(alias)
		if err != nil {
			return err
		}
	}

	// element 2: parameters
	err = e.enc.EncodeArrayHead(uint64(len(method.Parameters)))
	if err != nil {
		return err
	}
	for _, parameter := range method.Parameters {
		err = e.encodeParameter(parameter)
		if err != nil {
			return err
		}
	}

	// element 3: return
	err = e.encodeParameter(method.Return)
	if err != nil {
		return err
	}

	// element 4: default argument count
	err = e.enc.EncodeUint64(uint64(method.DefaultArgumentCount))
	if err != nil {
		return err
	}

	// element 5: flags
	return e.enc.EncodeUint64(uint64(method.Flags))
}

func (e *Encoder) encodeParameter(parameter descriptor.ParameterDescriptor) error {
	err := e.enc.EncodeArrayHead(encodedParameterLength)
	if err != nil {
		return err
	}

	// element 0: name
	err = e.enc.EncodeString(parameter.Name)
	if err != nil {
		return err
	}

	// element 1: type
	err = e.encodeType(parameter.Type)
	if err != nil {
		return err
	}

	// element 2: usage
	if parameter.CheckedFlags == nil {
		err = e.enc.EncodeNil()
	} else {
		err = e.enc.EncodeUint64(uint64(*parameter.CheckedFlags))
	}
	if err != nil {
		return err
	}

	// element 3: hint
	if parameter.CheckedHint == nil {
		err = e.enc.EncodeNil()
	} else {
		err = e.enc.EncodeUint64(uint64(*parameter.CheckedHint))
	}
	if err != nil {
		return err
	}

	// element 4: hint string
	if parameter.CheckedHintString == nil {
		return e.enc.EncodeNil()
	}
	return e.enc.EncodeString(*parameter.CheckedHintString)
}

func (e *Encoder) encodeType(typ descriptor.TypeDescriptor) error {
	if err := typ.Validate(); err != nil {
		return err
	}

	err := e.enc.EncodeArrayHead(encodedTypeLength)
	if err != nil {
		return err
	}

	// element 0: kind
	err = e.enc.EncodeUint64(uint64(typ.Kind))
	if err != nil {
		return err
	}

	// element 1: class name
	err = e.enc.EncodeString(typ.ClassName)
	if err != nil {
		return err
	}

	// element 2: container hint
	if typ.ContainerHint == nil {
		err = e.enc.EncodeNil()
	} else {
		err = e.encodeContainerHint(typ.ContainerHint)
	}
	if err != nil {
		return err
	}

	// element 3: enum marker
	err = e.enc.EncodeBool(typ.EnumMarker)
	if err != nil {
		return err
	}

	// element 4: any marker
	return e.enc.EncodeBool(typ.AnyMarker)
}

func (e *Encoder) encodeContainerHint(hint *descriptor.ContainerHint) error {
	err := e.enc.EncodeArrayHead(encodedContainerHintLen)
	if err != nil {
		return err
	}

	err = e.enc.EncodeString(hint.Element)
	if err != nil {
		return err
	}

	return e.enc.EncodeString(hint.Value)
}
