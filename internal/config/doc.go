// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package config defines the format-agnostic model of experiment definitions
// and the Loader interface that format adapters implement.
//
// # Core Concepts
//
//   - Model: every experiment found across the loaded files, in file order.
//
//   - Experiment: one declared step. Label fields are already listized; the
//     parameter space is kept in its declared form (explicit sets, a product
//     block and a sample block) and expanded later by the builder.
//
//   - FSInfo: the file and line an experiment came from, used in error
//     messages.
//
// Concrete loaders live in the hcl_adapter and yaml_adapter packages. Chain
// combines several of them into one Loader.
package config
