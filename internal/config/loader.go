// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Loader interface and the Chain combinator.
package config

import (
	"context"

	"github.com/vk/expgrid/internal/ctxlog"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every file it understands under the given paths and
	// translates it into the format-agnostic model. Files in other formats
	// are ignored.
	Load(ctx context.Context, paths ...string) (*Model, error)
}

// Chain runs each loader over the same paths and concatenates their
// experiments in loader order.
type Chain []Loader

// Load implements Loader.
func (c Chain) Load(ctx context.Context, paths ...string) (*Model, error) {
	logger := ctxlog.FromContext(ctx)
	model := NewModel()
	for _, l := range c {
		m, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		model.Merge(m)
	}
	logger.Debug("Configuration chain loaded.", "loaders", len(c), "experiments", len(model.Experiments))
	return model, nil
}
