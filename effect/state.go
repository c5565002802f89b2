// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

// ValueKind is the scalar kind of a state assignment value.
type ValueKind uint8

const (
	KindFloat ValueKind = iota
	KindInt
	KindBool
	KindString
	KindProgram
)

// String returns the kind name used in effect dumps.
func (k ValueKind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindProgram:
		return "program"
	default:
		return "unknown"
	}
}

// StateValue is the typed value of a state assignment.
// Numeric kinds keep their components in Numbers; bools are 0 or 1.
type StateValue struct {
	Kind    ValueKind
	Numbers []float64
	String  string
}

// Count returns the number of components of a numeric value.
func (v StateValue) Count() int {
	return len(v.Numbers)
}

// StateAssignment is a fixed-function or sampler state setting.
type StateAssignment struct {
	Name  string
	Value StateValue
}

// FloatState returns a float state assignment.
func FloatState(name string, values ...float64) StateAssignment {
	return StateAssignment{Name: name, Value: StateValue{Kind: KindFloat, Numbers: values}}
}

// IntState returns an int state assignment.
func IntState(name string, values ...int) StateAssignment {
	nums := make([]float64, len(values))
	for i, v := range values {
		nums[i] = float64(v)
	}
	return StateAssignment{Name: name, Value: StateValue{Kind: KindInt, Numbers: nums}}
}

// BoolState returns a bool state assignment.
func BoolState(name string, values ...bool) StateAssignment {
	nums := make([]float64, len(values))
	for i, v := range values {
		if v {
			nums[i] = 1
		}
	}
	return StateAssignment{Name: name, Value: StateValue{Kind: KindBool, Numbers: nums}}
}

// StringState returns a string state assignment.
func StringState(name, value string) StateAssignment {
	return StateAssignment{Name: name, Value: StateValue{Kind: KindString, String: value}}
}

// ProgramState returns a program-binding state assignment.
func ProgramState(name, entry string) StateAssignment {
	return StateAssignment{Name: name, Value: StateValue{Kind: KindProgram, String: entry}}
}
