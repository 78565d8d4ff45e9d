// Package testutil provides testing utilities for the cacheext policy.
// This file contains the failure-injecting registry wrapper.
package testutil

import (
	"errors"
	"sync"

	cacheext "github.com/bennyrubin/cache-ext"
)

// ErrScripted is the default error returned by scripted registry
// failures.
var ErrScripted = errors.New("scripted registry failure")

// FlakyRegistry wraps a cacheext.ListRegistry with per-call failure
// scripts and call tracking. Each script slice is consumed by call order:
// a nil entry lets the call through to the inner registry, a non-nil
// entry fails the call with that error, and calls beyond the script
// always pass through.
type FlakyRegistry struct {
	mu sync.Mutex

	// Inner receives the calls that the scripts let through.
	Inner cacheext.ListRegistry

	// Failure scripts, indexed by call number per operation.
	NewListErrs []error
	AppendErrs  []error
	IterateErrs []error

	// Call counters for assertion purposes.
	NewListCalls int
	AppendCalls  int
	IterateCalls int
	RemoveCalls  int

	// Created records the handles returned by successful NewList calls
	// in order, letting tests name the segments a policy provisioned.
	Created []cacheext.ListID
}

// WrapRegistry creates a FlakyRegistry around inner with empty scripts,
// so every call passes through until a script is installed.
func WrapRegistry(inner cacheext.ListRegistry) *FlakyRegistry {
	return &FlakyRegistry{Inner: inner}
}

// scriptedErr consumes position call of script.
func scriptedErr(script []error, call int) error {
	if call < len(script) {
		return script[call]
	}
	return nil
}

// NewList implements cacheext.ListRegistry.
func (f *FlakyRegistry) NewList(group cacheext.GroupID) (cacheext.ListID, error) {
	f.mu.Lock()
	err := scriptedErr(f.NewListErrs, f.NewListCalls)
	f.NewListCalls++
	f.mu.Unlock()

	if err != nil {
		return 0, err
	}

	id, err := f.Inner.NewList(group)
	if err == nil {
		f.mu.Lock()
		f.Created = append(f.Created, id)
		f.mu.Unlock()
	}
	return id, err
}

// Append implements cacheext.ListRegistry.
func (f *FlakyRegistry) Append(list cacheext.ListID, page cacheext.Page) error {
	f.mu.Lock()
	err := scriptedErr(f.AppendErrs, f.AppendCalls)
	f.AppendCalls++
	f.mu.Unlock()

	if err != nil {
		return err
	}
	return f.Inner.Append(list, page)
}

// Remove implements cacheext.ListRegistry. Removals are never scripted
// to fail; the contract has no failure mode for them.
func (f *FlakyRegistry) Remove(page cacheext.Page) bool {
	f.mu.Lock()
	f.RemoveCalls++
	f.mu.Unlock()

	return f.Inner.Remove(page)
}

// Iterate implements cacheext.ListRegistry.
func (f *FlakyRegistry) Iterate(group cacheext.GroupID, list cacheext.ListID, fn cacheext.IterFunc) error {
	f.mu.Lock()
	err := scriptedErr(f.IterateErrs, f.IterateCalls)
	f.IterateCalls++
	f.mu.Unlock()

	if err != nil {
		return err
	}
	return f.Inner.Iterate(group, list, fn)
}

// Cold returns the first list the policy created through this wrapper,
// which Initialize provisions as the cold segment.
func (f *FlakyRegistry) Cold() cacheext.ListID {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Created) < 1 {
		return 0
	}
	return f.Created[0]
}

// Hot returns the second list the policy created through this wrapper,
// which Initialize provisions as the hot segment.
func (f *FlakyRegistry) Hot() cacheext.ListID {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.Created) < 2 {
		return 0
	}
	return f.Created[1]
}
