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
	"errors"

	"github.com/statepath/workflow/core"
)

// Machine is a named, hosted workflow instance: an id, where its spec
// came from, and the live core.Instance.
type Machine struct {
	Id string `json:"id,omitempty"`

	// SpecSource is here to facilitate serialization and spec
	// rebinding on load.
	SpecSource *SpecSource `json:"spec,omitempty"`

	Instance *core.Instance `json:"-"`
}

// Copy returns a new Machine sharing the instance and spec source.
func (m *Machine) Copy() *Machine {
	return &Machine{
		Id:         m.Id,
		SpecSource: m.SpecSource, // Not copied.
		Instance:   m.Instance,   // Not copied.
	}
}

// SpecSource holds the origin of a specification.
//
// A source for a Spec can be a registry name, a URL or filename, or an
// actual spec right here.  Just how a SpecSource is used is up to the
// SpecProvider.
type SpecSource struct {
	// Name is an optional string that a provider can resolve
	// (typically against a core.Registry).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// URL is an optional pointer to a spec document.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Inline is an optional actual spec right here.
	Inline *core.Spec `json:"inline,omitempty" yaml:",omitempty"`
}

// NewSpecSource creates a SpecSource with the given name.
func NewSpecSource(name string) *SpecSource {
	return &SpecSource{
		Name: name,
	}
}

// Copy makes a shallow copy of the given SpecSource.
func (s *SpecSource) Copy() *SpecSource {
	return &SpecSource{
		Name:   s.Name,
		URL:    s.URL,
		Inline: s.Inline,
	}
}

// SpecProvider can FindSpec given a SpecSource.
type SpecProvider interface {
	FindSpec(ctx context.Context, s *SpecSource) (*core.Spec, error)
}

// RegistryProvider resolves SpecSource names against a core.Registry.
type RegistryProvider struct {
	// Registry defaults to core.DefaultRegistry.
	Registry *core.Registry
}

// FindSpec returns the Inline spec if given; otherwise it looks up the
// source's Name in the registry.
func (p *RegistryProvider) FindSpec(ctx context.Context, s *SpecSource) (*core.Spec, error) {
	if s == nil {
		return nil, errors.New("no spec source")
	}
	if s.Inline != nil {
		return s.Inline, nil
	}
	if s.Name == "" {
		return nil, errors.New("spec source has no name")
	}
	r := p.Registry
	if r == nil {
		r = core.DefaultRegistry
	}
	spec, have := r.Lookup(s.Name)
	if !have {
		return nil, errors.New(`spec "` + s.Name + `" not registered`)
	}
	return spec, nil
}
