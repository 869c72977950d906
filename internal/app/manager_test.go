package app

import (
	"testing"

	"github.com/renderguard/renderguard/internal/blueprint"
	"github.com/renderguard/renderguard/internal/infrastructure/config"
	"github.com/renderguard/renderguard/internal/view"
)

func testBlueprint(id string) *blueprint.App {
	return &blueprint.App{
		ID:   id,
		Name: "Test App",
		UISpec: map[string]interface{}{
			"type": "app",
			"children": []interface{}{
				map[string]interface{}{
					"type": "text",
					"id":   "greeting",
					"props": map[string]interface{}{
						"content": "hello",
					},
				},
			},
		},
	}
}

func brokenBlueprint(id string) *blueprint.App {
	return &blueprint.App{
		ID:   id,
		Name: "Broken App",
		UISpec: map[string]interface{}{
			"type": "app",
			"children": []interface{}{
				map[string]interface{}{"type": "does-not-exist"},
			},
		},
	}
}

func newTestManager() *Manager {
	return NewManager(view.NewEngine(), config.ModeDevelopment, nil, nil)
}

func TestSpawn(t *testing.T) {
	m := newTestManager()

	inst, err := m.Spawn(testBlueprint("demo"))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if inst.Title != "Test App" {
		t.Errorf("Expected title 'Test App', got '%s'", inst.Title)
	}
	if inst.Boundary != "healthy" {
		t.Errorf("Expected healthy boundary, got %s", inst.Boundary)
	}
	if inst.BlueprintID != "demo" {
		t.Errorf("Expected blueprint id 'demo', got '%s'", inst.BlueprintID)
	}
}

func TestSpawnRequiresUISpec(t *testing.T) {
	m := newTestManager()

	if _, err := m.Spawn(&blueprint.App{ID: "empty", Name: "Empty"}); err == nil {
		t.Fatal("Expected spawn without ui spec to fail")
	}
}

func TestRenderHealthy(t *testing.T) {
	m := newTestManager()
	inst, _ := m.Spawn(testBlueprint("demo"))

	node, err := m.Render(inst.ID)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if node.Find("greeting") == nil {
		t.Error("Expected protected subtree in output")
	}
}

func TestRenderFaultedShowsRecovery(t *testing.T) {
	m := newTestManager()
	inst, _ := m.Spawn(brokenBlueprint("broken"))

	node, err := m.Render(inst.ID)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if node.Find("boundary-recovery") == nil {
		t.Error("Expected recovery surface for faulted app")
	}

	updated, _ := m.Get(inst.ID)
	if updated.Boundary != "faulted" {
		t.Errorf("Expected faulted boundary, got %s", updated.Boundary)
	}
}

func TestResetReArmsBoundary(t *testing.T) {
	m := newTestManager()
	inst, _ := m.Spawn(brokenBlueprint("broken"))

	m.Render(inst.ID)
	if err := m.Reset(inst.ID); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	updated, _ := m.Get(inst.ID)
	if updated.Boundary != "healthy" {
		t.Errorf("Expected healthy boundary after reset, got %s", updated.Boundary)
	}
}

func TestReloadRebuildsInstance(t *testing.T) {
	m := newTestManager()
	inst, _ := m.Spawn(brokenBlueprint("broken"))

	m.Render(inst.ID)
	if err := m.Reload(inst.ID); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	updated, ok := m.Get(inst.ID)
	if !ok {
		t.Fatal("Instance should survive reload")
	}
	if updated.Boundary != "healthy" {
		t.Errorf("Expected fresh healthy boundary after reload, got %s", updated.Boundary)
	}
	if updated.Reloads != 1 {
		t.Errorf("Expected 1 reload, got %d", updated.Reloads)
	}
}

func TestClose(t *testing.T) {
	m := newTestManager()
	inst, _ := m.Spawn(testBlueprint("demo"))

	if !m.Close(inst.ID) {
		t.Fatal("Close failed")
	}
	if _, ok := m.Get(inst.ID); ok {
		t.Error("Instance should be deleted")
	}
	if m.Close(inst.ID) {
		t.Error("Double close should report false")
	}
}

func TestStats(t *testing.T) {
	m := newTestManager()
	m.Spawn(testBlueprint("a"))
	broken, _ := m.Spawn(brokenBlueprint("b"))
	m.Render(broken.ID)

	stats := m.Stats()
	if stats.TotalApps != 2 {
		t.Errorf("Expected 2 apps, got %d", stats.TotalApps)
	}
	if stats.FaultedApps != 1 {
		t.Errorf("Expected 1 faulted app, got %d", stats.FaultedApps)
	}
}

func TestSubscribeReceivesTransitions(t *testing.T) {
	m := newTestManager()
	inst, _ := m.Spawn(brokenBlueprint("broken"))

	events, cancel := m.Subscribe()
	defer cancel()

	m.Render(inst.ID)

	select {
	case ev := <-events:
		if ev.Kind != "transition" {
			t.Errorf("Expected transition event, got %s", ev.Kind)
		}
		if ev.To != "faulted" {
			t.Errorf("Expected transition to faulted, got %s", ev.To)
		}
	default:
		t.Fatal("Expected a buffered transition event")
	}
}
