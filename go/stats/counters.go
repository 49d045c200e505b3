/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stats

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
)

// Counter is expvar.Int+Get+hook
type Counter struct {
	i    atomic.Int64
	help string
}

// NewCounter returns a new Counter
func NewCounter(name string, help string) *Counter {
	v := &Counter{help: help}
	if name != "" {
		publish(name, v)
	}
	return v
}

// Add adds the provided value to the Counter
func (v *Counter) Add(delta int64) {
	v.i.Add(delta)
}

// Reset resets the counter value to 0
func (v *Counter) Reset() {
	v.i.Store(0)
}

// Get returns the value
func (v *Counter) Get() int64 {
	return v.i.Load()
}

// String is the implementation of expvar.var
func (v *Counter) String() string {
	return strconv.FormatInt(v.i.Load(), 10)
}

// Help returns the help string
func (v *Counter) Help() string {
	return v.help
}

// CountersWithSingleLabel tracks multiple counts keyed by the value of a
// single label, for example the event type or the error kind.
type CountersWithSingleLabel struct {
	// mu only protects adding and retrieving the value (*int64) from the map,
	// modification to the actual number (int64) should be done with atomic funcs.
	mu        sync.RWMutex
	counts    map[string]*int64
	help      string
	labelName string
}

// NewCountersWithSingleLabel creates a new CountersWithSingleLabel instance.
// If name is set, the variable gets published. The optional tags are
// pre-created with a zero value.
func NewCountersWithSingleLabel(name, help, labelName string, tags ...string) *CountersWithSingleLabel {
	c := &CountersWithSingleLabel{
		counts:    make(map[string]*int64),
		help:      help,
		labelName: labelName,
	}
	for _, tag := range tags {
		c.counts[tag] = new(int64)
	}
	if name != "" {
		publish(name, c)
	}
	return c
}

func (c *CountersWithSingleLabel) getValueAddr(name string) *int64 {
	c.mu.RLock()
	a, ok := c.counts[name]
	c.mu.RUnlock()

	if ok {
		return a
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// we need to check the existence again
	// as it may be created by other goroutine.
	a, ok = c.counts[name]
	if ok {
		return a
	}
	a = new(int64)
	c.counts[name] = a
	return a
}

// Add adds a value to a named counter.
func (c *CountersWithSingleLabel) Add(name string, value int64) {
	a := c.getValueAddr(name)
	atomic.AddInt64(a, value)
}

// Reset resets a specific counter value to 0.
func (c *CountersWithSingleLabel) Reset(name string) {
	a := c.getValueAddr(name)
	atomic.StoreInt64(a, 0)
}

// ResetAll resets all counter values.
func (c *CountersWithSingleLabel) ResetAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts = make(map[string]*int64)
}

// Counts returns a copy of the counts map.
func (c *CountersWithSingleLabel) Counts() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	counts := make(map[string]int64, len(c.counts))
	for k, a := range c.counts {
		counts[k] = atomic.LoadInt64(a)
	}
	return counts
}

// String implements expvar.Var. Keys are sorted so the output is stable.
func (c *CountersWithSingleLabel) String() string {
	counts := c.Counts()
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := bytes.NewBuffer(make([]byte, 0, 256))
	b.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%q: %v", k, counts[k])
	}
	b.WriteString("}")
	return b.String()
}

// Help returns the help string.
func (c *CountersWithSingleLabel) Help() string {
	return c.help
}

// Label returns the label name.
func (c *CountersWithSingleLabel) Label() string {
	return c.labelName
}
