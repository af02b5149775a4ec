// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"strings"
	"sync"
)

// TestLogCapture collects log lines so tests can assert what a workflow
// reported, for example that a rejected upgrade never logged an override.
type TestLogCapture struct {
	mu      sync.RWMutex
	Entries []string
}

// NewTestLogCaptureQuiet keeps the captured lines off stderr.
func NewTestLogCaptureQuiet() *TestLogCapture {
	return &TestLogCapture{Entries: make([]string, 0)}
}

func (c *TestLogCapture) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries = append(c.Entries, string(p))
	return len(p), nil
}

// ContainsAll reports whether every substring appears in some captured line.
func (c *TestLogCapture) ContainsAll(substrs ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, substr := range substrs {
		found := false
		for _, entry := range c.Entries {
			if strings.Contains(entry, substr) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// GetEntries returns a copy of the captured lines.
func (c *TestLogCapture) GetEntries() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]string, len(c.Entries))
	copy(entries, c.Entries)
	return entries
}

// Clear drops the captured lines, letting one test check a second run.
func (c *TestLogCapture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Entries = make([]string, 0)
}
