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

package fleet

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/statepath/workflow/core"

	bolt "go.etcd.io/bbolt"
)

// MachineState is the persisted record for one machine: enough to
// rebind the spec and restore the current state on load.
type MachineState struct {
	// Mid is the id for the machine.
	Mid string `json:"id,omitempty"`

	SpecSource *SpecSource `json:"spec,omitempty"`
	StateName  string      `json:"node"`

	// Deleted marks a tombstone in a batch of changes.
	Deleted bool `json:"-"`
}

// StateOf captures a machine's current state as a record.
func StateOf(m *Machine) *MachineState {
	return &MachineState{
		Mid:        m.Id,
		SpecSource: m.SpecSource,
		StateName:  m.Instance.CurrentState(),
	}
}

var machinesBucket = []byte("machines")

// NotFound is returned by ReadState for an unknown machine id.
var NotFound = errors.New("machine not found")

// BoltStore persists MachineStates in a bbolt file.
type BoltStore struct {
	filename string
	db       *bolt.DB
}

// NewBoltStore makes a store backed by the given file.  Call Open
// before use.
func NewBoltStore(filename string) *BoltStore {
	return &BoltStore{
		filename: filename,
	}
}

// Open opens the backing file and ensures the bucket exists.
func (s *BoltStore) Open(ctx context.Context) error {
	opts := &bolt.Options{
		Timeout: time.Second,
	}

	db, err := bolt.Open(s.filename, 0644, opts)
	if err != nil {
		return err
	}
	s.db = db

	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(machinesBucket)
		return err
	})
}

// Close closes the backing file.
func (s *BoltStore) Close(ctx context.Context) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WriteState upserts one machine record.  A Deleted record removes the
// machine instead.
func (s *BoltStore) WriteState(ctx context.Context, ms *MachineState) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(machinesBucket)
		if ms.Deleted {
			return b.Delete([]byte(ms.Mid))
		}
		js, err := json.Marshal(ms)
		if err != nil {
			return err
		}
		return b.Put([]byte(ms.Mid), js)
	})
}

// ReadState finds one machine record by id.
func (s *BoltStore) ReadState(ctx context.Context, mid string) (*MachineState, error) {
	var ms *MachineState
	err := s.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket(machinesBucket).Get([]byte(mid))
		if bs == nil {
			return NotFound
		}
		ms = &MachineState{}
		return json.Unmarshal(bs, ms)
	})
	return ms, err
}

// Load reads every record, resolves each spec through the provider,
// and rebinds live machines at their persisted states.
func (s *BoltStore) Load(ctx context.Context, provider SpecProvider) (map[string]*Machine, error) {
	acc := make(map[string]*Machine)
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(machinesBucket).ForEach(func(k, v []byte) error {
			var ms MachineState
			if err := json.Unmarshal(v, &ms); err != nil {
				return err
			}
			spec, err := provider.FindSpec(ctx, ms.SpecSource)
			if err != nil {
				return err
			}
			in := core.NewInstance(spec)
			if err := in.Restore(ms.StateName); err != nil {
				return err
			}
			acc[ms.Mid] = &Machine{
				Id:         ms.Mid,
				SpecSource: ms.SpecSource,
				Instance:   in,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Saver makes a transition hook that persists the machine's new state
// on every successful transition.  Register it with
// Builder.OnTransition (or call it yourself from an entry hook).
func (s *BoltStore) Saver(m *Machine) core.Hook {
	return func(ctx context.Context, t *core.Transition) error {
		return s.WriteState(ctx, &MachineState{
			Mid:        m.Id,
			SpecSource: m.SpecSource,
			StateName:  t.To,
		})
	}
}
