// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Model and Experiment structures produced by every
// loader.
package config

import (
	"fmt"

	"github.com/vk/expgrid/internal/param"
)

// Model is the unified representation of all loaded experiment files.
type Model struct {
	Experiments []*Experiment
}

// NewModel creates and returns an empty Model.
func NewModel() *Model {
	return &Model{Experiments: []*Experiment{}}
}

// Merge appends the experiments of other, keeping their order.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Experiments = append(m.Experiments, other.Experiments...)
}

// Experiment is the format-agnostic representation of an `experiment`
// block.
type Experiment struct {
	Name   string
	FSInfo *FSInfo

	Source      []string
	Target      []string
	Features    []string
	ForEach     []string
	AggregateBy []string

	// Rule is carried through to the plan untouched.
	Rule string

	// Parameter space
	Parameters []*param.Set
	Product    map[string][]param.Value
	Sample     *Sample
}

// Sample describes `Count` random parameter assignments.
type Sample struct {
	Count   int
	Uniform map[string]Range
	Choice  map[string][]param.Value
}

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64
	Max float64
}

// FSInfo records where a definition was declared.
type FSInfo struct {
	FilePath string
	Line     int
}

// NewFSInfo creates an FSInfo for a definition starting at line.
func NewFSInfo(filePath string, line int) *FSInfo {
	return &FSInfo{FilePath: filePath, Line: line}
}

func (f *FSInfo) String() string {
	if f == nil {
		return "<unknown>"
	}
	if f.Line <= 0 {
		return f.FilePath
	}
	return fmt.Sprintf("%s:%d", f.FilePath, f.Line)
}
