/* Copyright 2024 Statepath Authors
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package fleet hosts collections of workflow machines and the
// storage collaborators that persist their current states.
//
// The engine in core never persists anything; the stores here write a
// machine's current state after successful transitions and restore it
// on load via Instance.Restore.
package fleet

import (
	"sync"
)

// Fleet is a collection of Machines.
//
// The lock guards the id map, not the individual machines: firing one
// machine from multiple goroutines still requires synchronization by
// the caller.
type Fleet struct {
	sync.RWMutex

	Id       string              `json:"id"`
	Machines map[string]*Machine `json:"machines"`
}

// NewFleet makes an empty Fleet.
func NewFleet(id string) *Fleet {
	return &Fleet{
		Id:       id,
		Machines: make(map[string]*Machine),
	}
}

// Add puts a machine into the fleet, replacing any machine with the
// same id.
func (f *Fleet) Add(m *Machine) {
	f.Lock()
	f.Machines[m.Id] = m
	f.Unlock()
}

// Get finds a machine by id.
func (f *Fleet) Get(id string) (*Machine, bool) {
	f.RLock()
	m, have := f.Machines[id]
	f.RUnlock()
	return m, have
}

// Remove deletes a machine by id, reporting whether it was there.
func (f *Fleet) Remove(id string) bool {
	f.Lock()
	_, have := f.Machines[id]
	delete(f.Machines, id)
	f.Unlock()
	return have
}

// Copy gets a read lock and returns a copy of the fleet.
func (f *Fleet) Copy() *Fleet {
	f.RLock()
	ms := make(map[string]*Machine, len(f.Machines))
	for id, m := range f.Machines {
		ms[id] = m.Copy()
	}
	acc := &Fleet{
		Id:       f.Id,
		Machines: ms,
	}
	f.RUnlock()
	return acc
}
