package template

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	registry := NewRegistry()
	tmpl := New("Habeas Petition")

	if err := registry.Register(tmpl); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	got, ok := registry.Get(tmpl.ID)
	if !ok || got.Name != "Habeas Petition" {
		t.Errorf("Get() = %v, %v", got, ok)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() = %d, want 1", registry.Count())
	}
}

func TestRegistry_RegisterAssignsID(t *testing.T) {
	registry := NewRegistry()
	tmpl := &Template{Name: "No ID Yet"}

	if err := registry.Register(tmpl); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if tmpl.ID == "" {
		t.Error("Register() left the ID empty")
	}
}

func TestRegistry_RegisterValidation(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Register(nil); err == nil {
		t.Error("Register(nil) should error")
	}
	if err := registry.Register(&Template{Name: "   "}); err == nil {
		t.Error("Register() should reject a blank name")
	}
}

func TestRegistry_ListSortedByName(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"Venue Motion", "Bond Motion", "Habeas Petition"} {
		if err := registry.Register(New(name)); err != nil {
			t.Fatalf("Register(%s) error: %v", name, err)
		}
	}

	list := registry.List()
	want := []string{"Bond Motion", "Habeas Petition", "Venue Motion"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("List()[%d] = %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestRegistry_RemoveDefaultRejected(t *testing.T) {
	registry := NewRegistry()
	tmpl := New("Default Petition")
	if err := registry.Register(tmpl); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if err := registry.SetDefault(tmpl.ID); err != nil {
		t.Fatalf("SetDefault() error: %v", err)
	}

	if registry.Remove(tmpl.ID) {
		t.Error("Remove() deleted the default template")
	}
	if _, ok := registry.Get(tmpl.ID); !ok {
		t.Error("default template gone after rejected removal")
	}
}

func TestRegistry_RemoveUnknownID(t *testing.T) {
	registry := NewRegistry()

	if registry.Remove("no-such-id") {
		t.Error("Remove() reported success for an unknown ID")
	}
}

func TestRegistry_SetDefaultMovesFlag(t *testing.T) {
	registry := NewRegistry()
	first := New("First")
	second := New("Second")
	for _, tmpl := range []*Template{first, second} {
		if err := registry.Register(tmpl); err != nil {
			t.Fatalf("Register() error: %v", err)
		}
	}

	if err := registry.SetDefault(first.ID); err != nil {
		t.Fatalf("SetDefault() error: %v", err)
	}
	if err := registry.SetDefault(second.ID); err != nil {
		t.Fatalf("SetDefault() error: %v", err)
	}

	if first.Default {
		t.Error("previous default kept its flag")
	}
	got, ok := registry.DefaultTemplate()
	if !ok || got.ID != second.ID {
		t.Errorf("DefaultTemplate() = %v, %v; want the second template", got, ok)
	}

	if err := registry.SetDefault("no-such-id"); err == nil {
		t.Error("SetDefault() should error for an unknown ID")
	}
}

func TestRegistry_Fork(t *testing.T) {
	registry := NewRegistry()
	src := sampleTemplate()
	if err := registry.Register(src); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	fork, err := registry.Fork(src.ID)
	if err != nil {
		t.Fatalf("Fork() error: %v", err)
	}
	if fork.ParentID != src.ID {
		t.Errorf("ParentID = %q, want %q", fork.ParentID, src.ID)
	}
	if _, ok := registry.Get(fork.ID); !ok {
		t.Error("fork not registered")
	}

	if _, err := registry.Fork("no-such-id"); err == nil {
		t.Error("Fork() should error for an unknown ID")
	}
}

func TestRegistry_SaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	registry := NewRegistry()
	tmpl := sampleTemplate()
	path := filepath.Join(dir, "petition.yaml")

	if err := registry.SaveFile(tmpl, path); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	fresh := NewRegistry()
	if err := fresh.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	got, ok := fresh.Get(tmpl.ID)
	if !ok {
		t.Fatal("loaded template not found by ID")
	}
	if got.Name != tmpl.Name || len(got.Sections) != len(tmpl.Sections) {
		t.Errorf("loaded template = %q with %d sections, want %q with %d",
			got.Name, len(got.Sections), tmpl.Name, len(tmpl.Sections))
	}
}

func TestRegistry_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writer := NewRegistry()
	defaultTemplate := sampleTemplate()
	defaultTemplate.Default = true
	other := New("Bond Motion")
	other.AddSection("RELIEF", "The petitioner requests a bond hearing.")

	if err := writer.SaveFile(defaultTemplate, filepath.Join(dir, "default.yaml")); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	if err := writer.SaveFile(other, filepath.Join(dir, "bond.yml")); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	registry, err := NewRegistryWithDirectory(dir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error: %v", err)
	}
	if registry.Count() != 2 {
		t.Errorf("Count() = %d, want 2", registry.Count())
	}
	got, ok := registry.DefaultTemplate()
	if !ok || got.ID != defaultTemplate.ID {
		t.Errorf("DefaultTemplate() = %v, %v; want the flagged template", got, ok)
	}
}

func TestRegistry_LoadDirectoryMissingIsNotAnError(t *testing.T) {
	registry := NewRegistry()

	if err := registry.LoadDirectory(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Errorf("LoadDirectory() on a missing directory = %v, want nil", err)
	}
	if registry.Count() != 0 {
		t.Errorf("Count() = %d, want 0", registry.Count())
	}
}

func TestRegistry_LoadDirectoryReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("{sections: [unclosed"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	registry := NewRegistry()
	if err := registry.LoadDirectory(dir); err == nil {
		t.Error("LoadDirectory() should report unparseable template files")
	}
}

func TestRegistry_Reload(t *testing.T) {
	dir := t.TempDir()
	writer := NewRegistry()
	tmpl := sampleTemplate()
	if err := writer.SaveFile(tmpl, filepath.Join(dir, "petition.yaml")); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}

	registry, err := NewRegistryWithDirectory(dir)
	if err != nil {
		t.Fatalf("NewRegistryWithDirectory() error: %v", err)
	}
	if err := registry.Register(New("In Memory Only")); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	if err := registry.Reload(); err != nil {
		t.Fatalf("Reload() error: %v", err)
	}
	if registry.Count() != 1 {
		t.Errorf("Count() after reload = %d, want only the on-disk template", registry.Count())
	}

	fresh := NewRegistry()
	if err := fresh.Reload(); err == nil {
		t.Error("Reload() without a configured directory should error")
	}
}

func TestRegistry_WatchRequiresDirectory(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Watch(); err == nil {
		registry.StopWatch()
		t.Error("Watch() without a configured directory should error")
	}
}
