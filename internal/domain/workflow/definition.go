package workflow

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"workorder-approval/internal/domain/workorder"
)

// Stage binds an approval level to the role that acts on it and the status a
// work order carries while waiting there.
type Stage struct {
	Level  int
	Role   Role
	Status workorder.Status
}

// Definition is the ordered stage table of a workflow. Build it with
// NewDefinition; the zero value has no stages and is unusable.
type Definition struct {
	stages []Stage
}

// NewDefinition validates stages and returns a Definition. Levels must be
// contiguous from 1; the order of the input does not matter. An empty Status
// defaults to PENDING_<ROLE>.
func NewDefinition(stages []Stage) (Definition, error) {
	if len(stages) == 0 {
		return Definition{}, fmt.Errorf("%w: workflow needs at least one stage", ErrInvalidArgument)
	}
	out := make([]Stage, len(stages))
	copy(out, stages)
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })

	seen := make(map[workorder.Status]int, len(out))
	for i := range out {
		s := &out[i]
		if s.Level != i+1 {
			return Definition{}, fmt.Errorf("%w: stage levels must run 1..%d without gaps, got level %d at position %d",
				ErrInvalidArgument, len(out), s.Level, i+1)
		}
		if !s.Role.Valid() || s.Role == RoleSubmitter {
			return Definition{}, fmt.Errorf("%w: stage %d has unusable approver role %q", ErrInvalidArgument, s.Level, s.Role)
		}
		if s.Status == "" {
			s.Status = workorder.Status("PENDING_" + strings.ToUpper(string(s.Role)))
		}
		if !strings.HasPrefix(string(s.Status), "PENDING_") {
			return Definition{}, fmt.Errorf("%w: stage %d status %q must start with PENDING_", ErrInvalidArgument, s.Level, s.Status)
		}
		if prev, dup := seen[s.Status]; dup {
			return Definition{}, fmt.Errorf("%w: status %q used by stages %d and %d", ErrInvalidArgument, s.Status, prev, s.Level)
		}
		seen[s.Status] = s.Level
	}
	return Definition{stages: out}, nil
}

// DefaultDefinition is the two-level EHS then Manager workflow.
func DefaultDefinition() Definition {
	d, err := NewDefinition([]Stage{
		{Level: 1, Role: RoleEHS, Status: workorder.StatusPendingEHS},
		{Level: 2, Role: RoleManager, Status: workorder.StatusPendingManager},
	})
	if err != nil {
		panic(err)
	}
	return d
}

type definitionFile struct {
	Stages []struct {
		Level  int    `yaml:"level"`
		Role   string `yaml:"role"`
		Status string `yaml:"status"`
	} `yaml:"stages"`
}

// LoadDefinition parses a YAML stage table:
//
//	stages:
//	  - level: 1
//	    role: EHS
//	    status: PENDING_EHS
func LoadDefinition(r io.Reader) (Definition, error) {
	var f definitionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Definition{}, fmt.Errorf("%w: decode workflow definition: %v", ErrInvalidArgument, err)
	}
	stages := make([]Stage, 0, len(f.Stages))
	for _, s := range f.Stages {
		role, err := ParseRole(s.Role)
		if err != nil {
			return Definition{}, err
		}
		stages = append(stages, Stage{Level: s.Level, Role: role, Status: workorder.Status(s.Status)})
	}
	return NewDefinition(stages)
}

func LoadDefinitionFile(path string) (Definition, error) {
	f, err := os.Open(path)
	if err != nil {
		return Definition{}, err
	}
	defer f.Close()
	return LoadDefinition(f)
}

func (d Definition) TotalLevels() int { return len(d.stages) }

// Stage returns the stage configured for level.
func (d Definition) Stage(level int) (Stage, bool) {
	if level < 1 || level > len(d.stages) {
		return Stage{}, false
	}
	return d.stages[level-1], true
}

// StageForStatus finds the stage whose pending status is s.
func (d Definition) StageForStatus(s workorder.Status) (Stage, bool) {
	for _, st := range d.stages {
		if st.Status == s {
			return st, true
		}
	}
	return Stage{}, false
}

func (d Definition) Stages() []Stage {
	out := make([]Stage, len(d.stages))
	copy(out, d.stages)
	return out
}
