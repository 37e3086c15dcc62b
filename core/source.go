package core

// YAML specification documents.
//
// The schema uses lists, not maps, for states and events so that
// declaration order survives parsing (the first state listed is the
// initial state).  Meta is a list of single-pair maps for the same
// reason.
//
//	name: article
//	doc: |
//	  Article review workflow.
//	states:
//	  - name: new
//	    events:
//	      - name: submit
//	        to: awaiting_review
//	        meta:
//	          - doc: author submits a draft
//	        action:
//	          interpreter: goja
//	          source: |
//	            log("submitted");

import (
	"errors"
	"os"

	"github.com/jsccast/yaml"
)

type specDoc struct {
	Name   string     `yaml:"name" json:"name"`
	Doc    string     `yaml:"doc" json:"doc"`
	States []stateDoc `yaml:"states" json:"states"`
}

type stateDoc struct {
	Name    string                   `yaml:"name" json:"name"`
	Doc     string                   `yaml:"doc" json:"doc"`
	Events  []eventDoc               `yaml:"events" json:"events"`
	OnEntry *sourceDoc               `yaml:"onEntry" json:"onEntry"`
	OnExit  *sourceDoc               `yaml:"onExit" json:"onExit"`
	Meta    []map[string]interface{} `yaml:"meta" json:"meta"`
}

type eventDoc struct {
	Name   string                   `yaml:"name" json:"name"`
	Doc    string                   `yaml:"doc" json:"doc"`
	To     string                   `yaml:"to" json:"to"`
	Action *sourceDoc               `yaml:"action" json:"action"`
	Meta   []map[string]interface{} `yaml:"meta" json:"meta"`
}

type sourceDoc struct {
	Interpreter string      `yaml:"interpreter" json:"interpreter"`
	Source      interface{} `yaml:"source" json:"source"`
}

func (s *sourceDoc) actionSource() *ActionSource {
	if s == nil {
		return nil
	}
	return &ActionSource{
		Interpreter: s.Interpreter,
		Source:      s.Source,
	}
}

func metaFromPairs(pairs []map[string]interface{}) (*Meta, error) {
	if 0 == len(pairs) {
		return nil, nil
	}
	m := NewMeta()
	for _, pair := range pairs {
		if len(pair) != 1 {
			return nil, errors.New("meta item should have exactly one key")
		}
		for k, v := range pair {
			m.Set(k, v)
		}
	}
	return m, nil
}

// ParseSpec parses a YAML specification document.  The resulting Spec
// is not Compiled.
func ParseSpec(bs []byte) (*Spec, error) {
	var doc specDoc
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return nil, err
	}

	spec := &Spec{
		Name: doc.Name,
		Doc:  doc.Doc,
	}

	for _, sd := range doc.States {
		if sd.Name == "" {
			return nil, errors.New("state with no name in spec " + doc.Name)
		}
		meta, err := metaFromPairs(sd.Meta)
		if err != nil {
			return nil, err
		}
		st := &State{
			Name:        sd.Name,
			Doc:         sd.Doc,
			EntrySource: sd.OnEntry.actionSource(),
			ExitSource:  sd.OnExit.actionSource(),
			Meta:        meta,
		}
		if err := spec.AddState(st); err != nil {
			return nil, err
		}
		for _, ed := range sd.Events {
			if ed.Name == "" {
				return nil, errors.New(`event with no name in state "` + sd.Name + `"`)
			}
			meta, err := metaFromPairs(ed.Meta)
			if err != nil {
				return nil, err
			}
			e := &Event{
				Name:         ed.Name,
				Doc:          ed.Doc,
				Target:       ed.To,
				ActionSource: ed.Action.actionSource(),
				Meta:         meta,
			}
			if err := st.AddEvent(e); err != nil {
				return nil, err
			}
		}
	}

	return spec, nil
}

// ReadSpecFile reads and parses a YAML specification file.
func ReadSpecFile(filename string) (*Spec, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseSpec(bs)
}
