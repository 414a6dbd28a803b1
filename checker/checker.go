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

// Package checker decides whether the methods introspected from a script
// structurally satisfy an interface contract.
package checker

import (
	"sort"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/onflow/gdiface/common"
	"github.com/onflow/gdiface/descriptor"
)

// Unsatisfied is a required method which no actual method satisfies.
type Unsatisfied struct {
	Requirement descriptor.MethodSignature
	// Mismatches holds the first mismatch of each actual method
	// which matched the requirement by name
	Mismatches []Mismatch
	// Suggestion is the closest actual method name,
	// if no actual method matched by name
	Suggestion string
}

// Result is the verdict of a conformance check.
type Result struct {
	Contract    *descriptor.InterfaceContract
	Unsatisfied []Unsatisfied
}

func (r Result) Satisfied() bool {
	return len(r.Unsatisfied) == 0
}

// Err returns a *ConformanceError if the contract is not satisfied, and nil otherwise.
func (r Result) Err() error {
	if r.Satisfied() {
		return nil
	}
	return &ConformanceError{
		Interface:   r.Contract.Name,
		Location:    r.Contract.Location,
		Unsatisfied: r.Unsatisfied,
	}
}

// IsSatisfied reports whether every required method is satisfied by some actual method.
// Actual methods not required by the contract are ignored,
// and an actual method may satisfy multiple required methods.
func IsSatisfied(required *descriptor.InterfaceContract, actual []descriptor.MethodSignature) bool {
	for _, requirement := range required.Methods {
		if !isSatisfiedBySome(requirement, actual) {
			return false
		}
	}
	return true
}

func isSatisfiedBySome(requirement descriptor.MethodSignature, actual []descriptor.MethodSignature) bool {
	for _, candidate := range actual {
		if !namesMatch(requirement, candidate) {
			continue
		}
		if _, ok := firstMismatch(requirement, candidate); !ok {
			return true
		}
	}
	return false
}

// Check is like IsSatisfied, but reports why each unsatisfied required method is not satisfied.
func Check(required *descriptor.InterfaceContract, actual []descriptor.MethodSignature) Result {
	result := Result{
		Contract: required,
	}

	for _, requirement := range required.Methods {
		unsatisfied, ok := checkRequirement(requirement, actual)
		if ok {
			continue
		}
		result.Unsatisfied = append(result.Unsatisfied, unsatisfied)
	}

	return result
}

func checkRequirement(
	requirement descriptor.MethodSignature,
	actual []descriptor.MethodSignature,
) (
	Unsatisfied,
	bool,
) {
	unsatisfied := Unsatisfied{
		Requirement: requirement,
	}

	for _, candidate := range actual {
		if !namesMatch(requirement, candidate) {
			continue
		}

		mismatch, ok := firstMismatch(requirement, candidate)
		if !ok {
			return Unsatisfied{}, true
		}

		mismatch.Candidate = candidate.Name
		unsatisfied.Mismatches = append(unsatisfied.Mismatches, mismatch)
	}

	if len(unsatisfied.Mismatches) == 0 {
		unsatisfied.Suggestion = closestName(requirement.Names(), actual)
	}

	return unsatisfied, false
}

// namesMatch reports whether the names and aliases of the methods intersect.
func namesMatch(requirement, candidate descriptor.MethodSignature) bool {
	for _, name := range requirement.Names() {
		if candidate.HasName(name) {
			return true
		}
	}
	return false
}

// firstMismatch returns the first mismatch between the required and the candidate method.
// The boolean result is false if the candidate satisfies the requirement.
func firstMismatch(requirement, candidate descriptor.MethodSignature) (Mismatch, bool) {
	if len(requirement.Parameters) != len(candidate.Parameters) {
		return newArityMismatch(len(requirement.Parameters), len(candidate.Parameters)), true
	}

	for i, parameter := range requirement.Parameters {
		mismatch, ok := parameterMismatch(parameter, candidate.Parameters[i])
		if ok {
			mismatch.Index = i
			return mismatch, true
		}
	}

	mismatch, ok := parameterMismatch(requirement.Return, candidate.Return)
	if ok {
		mismatch.Index = ReturnIndex
		return mismatch, true
	}

	return Mismatch{}, false
}

func parameterMismatch(required, actual descriptor.ParameterDescriptor) (Mismatch, bool) {
	requiredType := required.Type
	actualType := actual.Type

	if !requiredType.SameType(actualType) {
		return Mismatch{
			Kind:     MismatchType,
			Expected: requiredType.String(),
			Actual:   actualType.String(),
		}, true
	}

	// An unspecified container hint matches any container hint
	requiredHint := requiredType.ContainerHint
	if requiredHint != nil &&
		!common.DeepEquals(requiredHint, actualType.ContainerHint) {

		return Mismatch{
			Kind:     MismatchContainerHint,
			Expected: containerHintString(requiredHint),
			Actual:   containerHintString(actualType.ContainerHint),
		}, true
	}

	if required.CheckedFlags != nil {
		requiredFlags := *required.CheckedFlags
		actualFlags := actual.UsageFlags()
		if !actualFlags.Contains(requiredFlags) {
			return Mismatch{
				Kind:     MismatchFlags,
				Expected: requiredFlags.String(),
				Actual:   actualFlags.String(),
			}, true
		}
	}

	if required.CheckedHint != nil {
		requiredHint := *required.CheckedHint
		actualHint := actual.Hint()
		if requiredHint != actualHint {
			return Mismatch{
				Kind:     MismatchHint,
				Expected: requiredHint.String(),
				Actual:   actualHint.String(),
			}, true
		}
	}

	if required.CheckedHintString != nil {
		requiredHintString := *required.CheckedHintString
		actualHintString := actual.HintString()
		if requiredHintString != actualHintString {
			return Mismatch{
				Kind:     MismatchHintString,
				Expected: requiredHintString,
				Actual:   actualHintString,
			}, true
		}
	}

	return Mismatch{}, false
}

const untypedContainerHint = "untyped"

func containerHintString(hint *descriptor.ContainerHint) string {
	if hint == nil {
		return untypedContainerHint
	}
	return hint.String()
}

// closestName returns the actual method name or alias
// with the smallest edit distance to one of the given names,
// or the empty string if no name is close enough.
func closestName(names []string, actual []descriptor.MethodSignature) string {
	var candidateNames []string
	for _, method := range actual {
		candidateNames = append(candidateNames, method.Names()...)
	}

	sort.Strings(candidateNames)

	var closest string
	var closestDistance int

	for _, name := range names {
		nameRunes := []rune(name)

		for _, candidateName := range candidateNames {
			distance := levenshtein.DistanceForStrings(
				nameRunes,
				[]rune(candidateName),
				levenshtein.DefaultOptions,
			)

			// Don't suggest names that require a complete rewrite
			if distance >= len(name) || distance >= len(candidateName) {
				continue
			}

			if closest == "" || distance < closestDistance {
				closest = candidateName
				closestDistance = distance
			}
		}
	}

	return closest
}
