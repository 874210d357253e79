// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package sg

import (
	"sync"

	"github.com/gogpu/sgview"
)

// EffectRefs counts the effect-dependency claims held against a drawable.
//
// Every dependent (a texture proxy, a shader effect) holds one claim while
// bound. A claim taken with hide set also suppresses the drawable's own,
// non-proxied rendering; the drawable is hidden while at least one such
// claim is held. Each Ref/Deref is atomic with respect to the others.
type EffectRefs struct {
	mu    sync.Mutex
	refs  int
	hides int

	// onChange runs outside the lock after the hidden state flips.
	onChange func()
}

// Ref takes one claim. If hide is set the claim also hides the drawable.
func (e *EffectRefs) Ref(hide bool) {
	e.mu.Lock()
	e.refs++
	flipped := false
	if hide {
		e.hides++
		flipped = e.hides == 1
	}
	fn := e.onChange
	e.mu.Unlock()

	if flipped && fn != nil {
		fn()
	}
}

// Deref releases one claim taken with the same hide value.
// Releasing a claim that is not held is ignored.
func (e *EffectRefs) Deref(hide bool) {
	e.mu.Lock()
	if e.refs == 0 || (hide && e.hides == 0) {
		e.mu.Unlock()
		sgview.Logger().Warn("sg: effect claim released but not held", "hide", hide)
		return
	}
	e.refs--
	flipped := false
	if hide {
		e.hides--
		flipped = e.hides == 0
	}
	fn := e.onChange
	e.mu.Unlock()

	if flipped && fn != nil {
		fn()
	}
}

// Refs returns the number of held claims.
func (e *EffectRefs) Refs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refs
}

// HideRefs returns the number of held claims that hide the drawable.
func (e *EffectRefs) HideRefs() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hides
}

// Hidden reports whether the drawable is suppressed from its own rendering.
func (e *EffectRefs) Hidden() bool {
	return e.HideRefs() > 0
}
