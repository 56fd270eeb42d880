package replay

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-relbuf/pkg/addedrelations"
	"github.com/dd0wney/cluso-relbuf/pkg/validation"
)

// Step operations
const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpIsEmpty = "is_empty"
	OpView    = "view"
	OpAll     = "all"
)

// Script is a recorded sequence of transaction events against one buffer.
type Script struct {
	Name      string                `yaml:"name" validate:"required"`
	Config    addedrelations.Config `yaml:"config"`
	Relations []RelationSpec        `yaml:"relations" validate:"dive"`
	Generate  []Generate            `yaml:"generate" validate:"dive"`
	Steps     []Step                `yaml:"steps" validate:"required,min=1,dive"`
}

// RelationSpec declares a named relation.
type RelationSpec struct {
	Name  string `yaml:"name" validate:"required"`
	Kind  string `yaml:"kind" validate:"required,oneof=edge property"`
	Type  string `yaml:"type" validate:"required"`
	Out   uint64 `yaml:"out"`
	In    uint64 `yaml:"in"`
	Value string `yaml:"value"`
}

// Generate declares Count relations named Prefix1..PrefixN. Edge i runs from
// vertex i to vertex i+1; property i sits on vertex i with value i.
type Generate struct {
	Prefix string `yaml:"prefix" validate:"required"`
	Count  int    `yaml:"count" validate:"min=1,max=100000"`
	Kind   string `yaml:"kind" validate:"required,oneof=edge property"`
	Type   string `yaml:"type" validate:"required"`
}

// Step is one buffer operation. Add and remove name a single relation or a
// range; view takes an optional filter.
type Step struct {
	Op       string     `yaml:"op" validate:"required,oneof=add remove is_empty view all"`
	Relation string     `yaml:"relation"`
	Range    *NameRange `yaml:"range"`
	Filter   *Filter    `yaml:"filter"`
}

// MaxRangeSize bounds how many relations a single range step may name.
const MaxRangeSize = 100000

// NameRange selects Prefix<From> through Prefix<To>, inclusive.
type NameRange struct {
	Prefix string `yaml:"prefix" validate:"required"`
	From   int    `yaml:"from" validate:"gte=0"`
	To     int    `yaml:"to" validate:"gtefield=From"`
}

// Seq yields the names in the range in order
func (r NameRange) Seq() iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := r.From; i <= r.To; i++ {
			// stop before i++ can wrap at math.MaxInt
			if !yield(fmt.Sprintf("%s%d", r.Prefix, i)) || i == r.To {
				return
			}
		}
	}
}

// check bounds the range size. From and To are already ordered and
// non-negative, so To-From cannot overflow.
func (r NameRange) check() error {
	return validation.NewConfigValidator("Range").
		MaxInt("Span", r.To-r.From, MaxRangeSize-1).
		Validate()
}

func (r NameRange) String() string {
	return fmt.Sprintf("%s%d..%s%d", r.Prefix, r.From, r.Prefix, r.To)
}

// Filter narrows a view. Empty fields match everything; set fields must all
// match.
type Filter struct {
	Type   string  `yaml:"type"`
	Kind   string  `yaml:"kind" validate:"omitempty,oneof=edge property"`
	Vertex *uint64 `yaml:"vertex"`
}

// LoadFile reads and validates a script from path
func LoadFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML script. Unknown keys are rejected.
func Load(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks field constraints and that every step refers to a
// declared relation.
func (s *Script) Validate() error {
	if err := validation.ValidateStruct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}

	names := make(map[string]bool, len(s.Relations))
	err := validation.NewConfigValidator("Script").
		Custom("Relations", func() error {
			for _, spec := range s.Relations {
				if err := declare(names, spec.Name); err != nil {
					return err
				}
				if err := validation.ValidateName(spec.Type); err != nil {
					return fmt.Errorf("relation %q type: %w", spec.Name, err)
				}
			}
			return nil
		}).
		Custom("Generate", func() error {
			for _, g := range s.Generate {
				if err := validation.ValidateName(g.Type); err != nil {
					return fmt.Errorf("generated %q type: %w", g.Prefix, err)
				}
				for name := range (NameRange{Prefix: g.Prefix, From: 1, To: g.Count}).Seq() {
					if err := declare(names, name); err != nil {
						return err
					}
				}
			}
			return nil
		}).
		Custom("Steps", func() error {
			for i, step := range s.Steps {
				if err := step.check(i+1, names); err != nil {
					return err
				}
			}
			return nil
		}).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	return nil
}

func declare(names map[string]bool, name string) error {
	if err := validation.ValidateName(name); err != nil {
		return err
	}
	if names[name] {
		return fmt.Errorf("relation %q declared twice", name)
	}
	names[name] = true
	return nil
}

func (st Step) check(index int, names map[string]bool) error {
	switch st.Op {
	case OpAdd, OpRemove:
		if (st.Relation == "") == (st.Range == nil) {
			return stepError(index, st.Op, errors.New("exactly one of relation or range is required"))
		}
		if st.Range != nil {
			if err := st.Range.check(); err != nil {
				return stepError(index, st.Op, err)
			}
		}
		for name := range st.targets() {
			if !names[name] {
				return unknownRelation(index, st.Op, name)
			}
		}
		if st.Filter != nil {
			return stepError(index, st.Op, errors.New("filter is only valid for view"))
		}
	default:
		if st.Relation != "" || st.Range != nil {
			return stepError(index, st.Op, errors.New("relation and range are only valid for add and remove"))
		}
		if st.Filter != nil && st.Op != OpView {
			return stepError(index, st.Op, errors.New("filter is only valid for view"))
		}
	}
	return nil
}

// targets lists the relation names an add or remove step touches
func (st Step) targets() iter.Seq[string] {
	if st.Range != nil {
		return st.Range.Seq()
	}
	return slices.Values([]string{st.Relation})
}
