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

package variant

//go:generate go run golang.org/x/tools/cmd/stringer -type=PropertyHint

// PropertyHint refines how a property or argument of a given kind is interpreted,
// e.g. the element type of a typed array.
type PropertyHint uint

const (
	HintNone PropertyHint = iota
	HintRange
	HintEnum
	HintEnumSuggestion
	HintExpEasing
	HintLink
	HintFlags
	HintLayers2DRender
	HintLayers2DPhysics
	HintLayers2DNavigation
	HintLayers3DRender
	HintLayers3DPhysics
	HintLayers3DNavigation
	HintFile
	HintDir
	HintGlobalFile
	HintGlobalDir
	HintResourceType
	HintMultilineText
	HintExpression
	HintPlaceholderText
	HintColorNoAlpha
	HintObjectID
	HintTypeString
	HintNodePathToEditedNode
	HintObjectTooBig
	HintNodePathValidTypes
	HintSaveFile
	HintGlobalSaveFile
	HintIntIsObjectID
	HintIntIsPointer
	HintArrayType
	HintLocaleID
	HintLocalizableString
	HintNodeType
	HintHideQuaternionEdit
	HintPassword
	HintLayersAvoidance
	HintDictionaryType
	HintToolButton
	HintOneshot

	// HintCount is the number of hints, it is not a valid hint
	HintCount
)

func (h PropertyHint) IsValid() bool {
	return h < HintCount
}

// IsContainerType reports whether the hint string carries a container's element types.
func (h PropertyHint) IsContainerType() bool {
	return h == HintArrayType || h == HintDictionaryType
}
