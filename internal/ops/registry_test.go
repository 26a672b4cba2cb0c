package ops

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRegistry_BasicRegistration(t *testing.T) {
	registry := NewRegistry()

	cmd := &cobra.Command{Use: "run"}
	if err := registry.Register("run", GroupPipeline, cmd, "Execute the pipeline once"); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	reg, ok := registry.GetCommand("run")
	if !ok {
		t.Fatal("GetCommand() did not find registered command")
	}
	if reg.Group != GroupPipeline {
		t.Errorf("expected group %s, got %s", GroupPipeline, reg.Group)
	}
	if reg.Description != "Execute the pipeline once" {
		t.Errorf("unexpected description: %s", reg.Description)
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	registry := NewRegistry()
	cmd := &cobra.Command{Use: "run"}

	if err := registry.Register("run", GroupPipeline, cmd, "first"); err != nil {
		t.Fatalf("first Register() failed: %v", err)
	}
	if err := registry.Register("run", GroupPipeline, cmd, "second"); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegistry_GroupIndexSorted(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"run", "fmt", "report"} {
		if err := registry.Register(name, GroupPipeline, &cobra.Command{Use: name}, name); err != nil {
			t.Fatalf("Register(%s) failed: %v", name, err)
		}
	}

	commands := registry.GetCommandsByGroup(GroupPipeline)
	if len(commands) != 3 {
		t.Fatalf("expected 3 pipeline commands, got %d", len(commands))
	}
	expected := []string{"fmt", "report", "run"}
	for i, c := range commands {
		if c.Name != expected[i] {
			t.Errorf("expected %s at position %d, got %s", expected[i], i, c.Name)
		}
	}
}

func TestRegistry_EmptyGroup(t *testing.T) {
	registry := NewRegistry()
	if got := registry.GetCommandsByGroup(GroupSupport); len(got) != 0 {
		t.Errorf("expected empty group, got %d entries", len(got))
	}
}
