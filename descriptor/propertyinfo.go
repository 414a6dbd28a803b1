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

package descriptor

import (
	"fmt"

	"github.com/onflow/gdiface/variant"
)

// PropertyInfo is the engine's description of an argument or return value,
// as found in method lists.
type PropertyInfo struct {
	Name       string
	ClassName  string
	Type       variant.Kind
	Hint       variant.PropertyHint
	HintString string
	Usage      variant.PropertyUsageFlags
}

// PropertyInfo projects the descriptor onto the engine's property description.
func (d TypeDescriptor) PropertyInfo(name string) PropertyInfo {
	info := PropertyInfo{
		Name:      name,
		ClassName: d.ClassName,
		Type:      d.Kind,
		Usage:     variant.UsageDefault,
	}

	if d.ContainerHint != nil {
		info.HintString = d.ContainerHint.String()
		if d.ContainerHint.IsDictionary() {
			info.Hint = variant.HintDictionaryType
		} else {
			info.Hint = variant.HintArrayType
		}
	}

	if d.EnumMarker {
		info.Usage |= variant.UsageClassIsEnum
	}

	if d.AnyMarker {
		info.Usage |= variant.UsageNilIsVariant
	}

	return info
}

// PropertyInfo projects the parameter onto the engine's property description.
// Checked sub-properties override the projected ones.
func (p ParameterDescriptor) PropertyInfo() PropertyInfo {
	info := p.Type.PropertyInfo(p.Name)
	if p.CheckedFlags != nil {
		info.Usage = *p.CheckedFlags
	}
	if p.CheckedHint != nil {
		info.Hint = *p.CheckedHint
	}
	if p.CheckedHintString != nil {
		info.HintString = *p.CheckedHintString
	}
	return info
}

// TypeDescriptor derives the type descriptor from the property description.
func (info PropertyInfo) TypeDescriptor() (TypeDescriptor, error) {
	if !info.Type.IsValid() {
		return TypeDescriptor{}, fmt.Errorf("invalid variant type %d", info.Type)
	}

	switch info.Type {
	case variant.KindNil:
		if info.Usage.Contains(variant.UsageNilIsVariant) {
			return Any(), nil
		}
		return Void(), nil

	case variant.KindObject:
		className := info.ClassName
		if className == "" {
			className = "Object"
		}
		return Object(className), nil

	case variant.KindInt:
		if info.Usage.Contains(variant.UsageClassIsEnum) && info.ClassName != "" {
			return Enum(info.ClassName), nil
		}
		return Primitive(variant.KindInt), nil

	case variant.KindArray:
		if info.Hint == variant.HintArrayType && info.HintString != "" {
			hint, err := ParseContainerHint(info.Type, info.HintString)
			if err != nil {
				return TypeDescriptor{}, err
			}
			return TypeDescriptor{Kind: info.Type, ContainerHint: hint}, nil
		}
		return Untyped(info.Type), nil

	case variant.KindDictionary:
		if info.Hint == variant.HintDictionaryType && info.HintString != "" {
			hint, err := ParseContainerHint(info.Type, info.HintString)
			if err != nil {
				return TypeDescriptor{}, err
			}
			return TypeDescriptor{Kind: info.Type, ContainerHint: hint}, nil
		}
		return Untyped(info.Type), nil

	default:
		return Primitive(info.Type), nil
	}
}

// ParameterDescriptor derives the parameter descriptor of an actual signature,
// with all sub-properties set to the introspected values.
func (info PropertyInfo) ParameterDescriptor() (ParameterDescriptor, error) {
	typ, err := info.TypeDescriptor()
	if err != nil {
		return ParameterDescriptor{}, err
	}

	usage := info.Usage
	hint := info.Hint
	hintString := info.HintString

	return ParameterDescriptor{
		Name:              info.Name,
		Type:              typ,
		CheckedFlags:      &usage,
		CheckedHint:       &hint,
		CheckedHintString: &hintString,
	}, nil
}
