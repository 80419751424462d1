package workflow

import (
	"errors"
	"strings"
	"testing"

	"workorder-approval/internal/domain/workorder"
)

func TestDefaultDefinition(t *testing.T) {
	d := DefaultDefinition()
	if d.TotalLevels() != 2 {
		t.Fatalf("TotalLevels = %d, want 2", d.TotalLevels())
	}
	s1, ok := d.Stage(1)
	if !ok || s1.Role != RoleEHS || s1.Status != workorder.StatusPendingEHS {
		t.Fatalf("stage 1 = %+v", s1)
	}
	s2, ok := d.Stage(2)
	if !ok || s2.Role != RoleManager || s2.Status != workorder.StatusPendingManager {
		t.Fatalf("stage 2 = %+v", s2)
	}
	if _, ok := d.Stage(3); ok {
		t.Fatalf("stage 3 should not exist")
	}
	if st, ok := d.StageForStatus(workorder.StatusPendingManager); !ok || st.Level != 2 {
		t.Fatalf("StageForStatus(PENDING_MANAGER) = %+v, %v", st, ok)
	}
}

func TestNewDefinition_SortsAndDefaultsStatus(t *testing.T) {
	d, err := NewDefinition([]Stage{
		{Level: 2, Role: RoleManager},
		{Level: 1, Role: RoleEHS},
	})
	if err != nil {
		t.Fatalf("NewDefinition: %v", err)
	}
	st := d.Stages()
	if st[0].Level != 1 || st[0].Status != "PENDING_EHS" || st[1].Status != "PENDING_MANAGER" {
		t.Fatalf("unexpected stages: %+v", st)
	}
	// Stages returns a copy
	st[0].Role = RoleAdmin
	if s, _ := d.Stage(1); s.Role != RoleEHS {
		t.Fatalf("Stages leaked internal slice")
	}
}

func TestNewDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		stages []Stage
		msg    string
	}{
		{"empty", nil, "at least one stage"},
		{"gap", []Stage{{Level: 1, Role: RoleEHS}, {Level: 3, Role: RoleManager}}, "without gaps"},
		{"submitter approver", []Stage{{Level: 1, Role: RoleSubmitter}}, "unusable approver role"},
		{"unknown role", []Stage{{Level: 1, Role: "Janitor"}}, "unusable approver role"},
		{"duplicate status", []Stage{{Level: 1, Role: RoleEHS}, {Level: 2, Role: RoleEHS}}, "used by stages"},
		{"reserved status", []Stage{{Level: 1, Role: RoleEHS, Status: "APPROVED"}}, "must start with PENDING_"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefinition(tt.stages)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Fatalf("error %q does not mention %q", err, tt.msg)
			}
		})
	}
}

func TestLoadDefinitionFile(t *testing.T) {
	d, err := LoadDefinitionFile("testdata/three_level.yaml")
	if err != nil {
		t.Fatalf("LoadDefinitionFile: %v", err)
	}
	if d.TotalLevels() != 3 {
		t.Fatalf("TotalLevels = %d, want 3", d.TotalLevels())
	}
	s3, _ := d.Stage(3)
	if s3.Role != RoleAdmin || s3.Status != "PENDING_DIRECTOR" {
		t.Fatalf("stage 3 = %+v", s3)
	}
}

func TestLoadDefinition_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"unknown role":  "stages:\n  - level: 1\n    role: Janitor\n",
		"unknown field": "stages:\n  - level: 1\n    role: EHS\n    colour: red\n",
		"not yaml":      "stages: [",
	} {
		if _, err := LoadDefinition(strings.NewReader(src)); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%s: want ErrInvalidArgument, got %v", name, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"ehs": RoleEHS, " Manager ": RoleManager, "ADMIN": RoleAdmin, "submitter": RoleSubmitter} {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseRole("root"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("ParseRole(root) err = %v", err)
	}
}
