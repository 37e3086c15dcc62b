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
	"os"
)

// JSONStore is a primitive facility to store fleet state as JSON in a
// file.
//
// Not glamorous or efficient.  Fine for demos and small tools; use
// BoltStore for anything that should survive contact with production.
type JSONStore struct {
	// StateOutputFilename, if not empty, will be the filename for
	// writing state as JSON.
	StateOutputFilename string

	// StateInputFilename optionally gives a filename that
	// contains state to return when Read is called.
	StateInputFilename string

	State map[string]*MachineState
}

func NewJSONStore() *JSONStore {
	return &JSONStore{
		StateOutputFilename: "state.json",
	}
}

// Read reads StateInputFilename, which should contain a JSON
// representation of the fleet's state.
func (s *JSONStore) Read(ctx context.Context) (map[string]*MachineState, error) {
	if s.StateInputFilename != "" {
		js, err := os.ReadFile(s.StateInputFilename)
		if err != nil {
			return nil, err
		}
		if err = json.Unmarshal(js, &s.State); err != nil {
			return nil, err
		}
		return s.State, nil
	}
	return make(map[string]*MachineState), nil
}

// WriteState writes the whole fleet state as JSON.
func (s *JSONStore) WriteState(ctx context.Context) error {
	if s.StateOutputFilename == "" {
		return nil
	}
	if s.State == nil {
		s.State = make(map[string]*MachineState)
	}
	js, err := json.MarshalIndent(&s.State, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.StateOutputFilename, js, 0644)
}

// Update overlays the given records on the in-memory state.  Deleted
// records remove machines.
func (s *JSONStore) Update(changes []*MachineState) {
	if s.State == nil {
		s.State = make(map[string]*MachineState)
	}
	for _, ms := range changes {
		if ms.Deleted {
			delete(s.State, ms.Mid)
			continue
		}
		s.State[ms.Mid] = ms
	}
}
