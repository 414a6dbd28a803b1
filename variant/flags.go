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

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// PropertyUsageFlags is the usage bit mask of a property or argument.
type PropertyUsageFlags uint64

const UsageNone PropertyUsageFlags = 0

const (
	UsageStorage PropertyUsageFlags = 1 << (iota + 1)
	UsageEditor
	UsageInternal
	UsageCheckable
	UsageChecked
	UsageGroup
	UsageCategory
	UsageSubgroup
	UsageClassIsBitfield
	UsageNoInstanceState
	UsageRestartIfChanged
	UsageScriptVariable
	UsageStoreIfNull
	UsageUpdateAllIfModified
	UsageScriptDefaultValue
	UsageClassIsEnum
	UsageNilIsVariant
	UsageArray
	UsageAlwaysDuplicate
	UsageNeverDuplicate
	UsageHighEndGFX
	UsageNodePathFromSceneRoot
	UsageResourceNotPersistent
	UsageKeyingIncrements
	UsageDeferredSetResource
	UsageEditorInstantiateObject
	UsageEditorBasicSetting
	UsageReadOnly
	UsageSecret
)

const UsageDefault = UsageStorage | UsageEditor

// usageFlagNames is indexed by bit position
var usageFlagNames = [...]string{
	1:  "STORAGE",
	2:  "EDITOR",
	3:  "INTERNAL",
	4:  "CHECKABLE",
	5:  "CHECKED",
	6:  "GROUP",
	7:  "CATEGORY",
	8:  "SUBGROUP",
	9:  "CLASS_IS_BITFIELD",
	10: "NO_INSTANCE_STATE",
	11: "RESTART_IF_CHANGED",
	12: "SCRIPT_VARIABLE",
	13: "STORE_IF_NULL",
	14: "UPDATE_ALL_IF_MODIFIED",
	15: "SCRIPT_DEFAULT_VALUE",
	16: "CLASS_IS_ENUM",
	17: "NIL_IS_VARIANT",
	18: "ARRAY",
	19: "ALWAYS_DUPLICATE",
	20: "NEVER_DUPLICATE",
	21: "HIGH_END_GFX",
	22: "NODE_PATH_FROM_SCENE_ROOT",
	23: "RESOURCE_NOT_PERSISTENT",
	24: "KEYING_INCREMENTS",
	25: "DEFERRED_SET_RESOURCE",
	26: "EDITOR_INSTANTIATE_OBJECT",
	27: "EDITOR_BASIC_SETTING",
	28: "READ_ONLY",
	29: "SECRET",
}

func (f PropertyUsageFlags) bits() *bitset.BitSet {
	return bitset.From([]uint64{uint64(f)})
}

// Contains reports whether all flags set in required are also set in f.
func (f PropertyUsageFlags) Contains(required PropertyUsageFlags) bool {
	return f.bits().IsSuperSet(required.bits())
}

// Missing returns the flags of required which are not set in f.
func (f PropertyUsageFlags) Missing(required PropertyUsageFlags) PropertyUsageFlags {
	return required &^ f
}

func (f PropertyUsageFlags) String() string {
	if f == UsageNone {
		return "NONE"
	}
	return joinFlagNames(f.bits(), usageFlagNames[:])
}

// MethodFlags is the bit mask describing how a method is declared.
type MethodFlags uint64

const (
	MethodFlagNormal MethodFlags = 1 << iota
	MethodFlagEditor
	MethodFlagConst
	MethodFlagVirtual
	MethodFlagVararg
	MethodFlagStatic
	MethodFlagObjectCore
	MethodFlagVirtualRequired
)

const MethodFlagsDefault = MethodFlagNormal

var methodFlagNames = [...]string{
	0: "NORMAL",
	1: "EDITOR",
	2: "CONST",
	3: "VIRTUAL",
	4: "VARARG",
	5: "STATIC",
	6: "OBJECT_CORE",
	7: "VIRTUAL_REQUIRED",
}

func (f MethodFlags) Has(flag MethodFlags) bool {
	return f&flag == flag
}

func (f MethodFlags) String() string {
	if f == 0 {
		return "NONE"
	}
	return joinFlagNames(bitset.From([]uint64{uint64(f)}), methodFlagNames[:])
}

func joinFlagNames(set *bitset.BitSet, names []string) string {
	var parts []string
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		if int(i) < len(names) && names[i] != "" {
			parts = append(parts, names[i])
		} else {
			parts = append(parts, fmt.Sprintf("1<<%d", i))
		}
	}
	return strings.Join(parts, "|")
}
