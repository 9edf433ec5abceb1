package template

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// Registry manages a collection of templates, optionally backed by a
// directory of YAML template files that can be watched for changes.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template
	defaultID string
	dir       string
	watcher   *fsnotify.Watcher
	stopChan  chan struct{}
	onChange  func(event string, t *Template)
}

// NewRegistry creates an empty in-memory registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*Template),
	}
}

// NewRegistryWithDirectory creates a registry and loads every template file
// from the directory.
func NewRegistryWithDirectory(dir string) (*Registry, error) {
	r := NewRegistry()
	r.dir = dir
	if err := r.LoadDirectory(dir); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds or updates a template. Templates without an ID are assigned
// one; a template marked Default becomes the registry default.
func (r *Registry) Register(t *Template) error {
	if t == nil {
		return fmt.Errorf("template cannot be nil")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("template name is required")
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates[t.ID] = t
	if t.Default {
		r.defaultID = t.ID
	}
	return nil
}

// Get returns a template by ID.
func (r *Registry) Get(id string) (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.templates[id]
	return t, ok
}

// List returns all templates sorted by name.
func (r *Registry) List() []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// Count returns the number of registered templates.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// Remove deletes a template by ID. The designated default template cannot
// be removed; the attempt returns false so callers can surface the
// rejection. Removing an unknown ID also returns false.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == r.defaultID {
		return false
	}
	if _, ok := r.templates[id]; !ok {
		return false
	}
	delete(r.templates, id)
	return true
}

// SetDefault designates the protected default template.
func (r *Registry) SetDefault(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.templates[id]
	if !ok {
		return fmt.Errorf("template %q not found", id)
	}
	if r.defaultID != "" {
		if previous, ok := r.templates[r.defaultID]; ok {
			previous.Default = false
		}
	}
	t.Default = true
	r.defaultID = id
	return nil
}

// DefaultTemplate returns the designated default template, if any.
func (r *Registry) DefaultTemplate() (*Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.defaultID == "" {
		return nil, false
	}
	t, ok := r.templates[r.defaultID]
	return t, ok
}

// Fork deep-copies a registered template under a new identity and registers
// the copy.
func (r *Registry) Fork(id string) (*Template, error) {
	src, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("template %q not found", id)
	}
	fork := Fork(src)
	if err := r.Register(fork); err != nil {
		return nil, err
	}
	return fork, nil
}

// LoadDirectory loads every YAML template file from dir. A missing
// directory is not an error; there is simply nothing to load.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var loadErrors []string
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			loadErrors = append(loadErrors, fmt.Sprintf("%s: %v", entry.Name(), err))
		}
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("errors loading templates: %s", strings.Join(loadErrors, "; "))
	}
	return nil
}

// LoadFile loads a single YAML template file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	if err := r.Register(&t); err != nil {
		return fmt.Errorf("registering template: %w", err)
	}
	return nil
}

// SaveFile writes a template to a YAML file.
func (r *Registry) SaveFile(t *Template, path string) error {
	data, err := yaml.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// Reload clears the registry and reloads from the configured directory.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for reload")
	}

	r.mu.Lock()
	r.templates = make(map[string]*Template)
	r.defaultID = ""
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// SetOnChange sets a callback invoked when watched template files change.
func (r *Registry) SetOnChange(fn func(event string, t *Template)) {
	r.onChange = fn
}

// Watch starts watching the template directory for changes.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return fmt.Errorf("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})

	go r.watchLoop()

	if err := watcher.Add(r.dir); err != nil {
		r.watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}
	return nil
}

// StopWatch stops watching the template directory.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
	}
	if r.watcher != nil {
		r.watcher.Close()
	}
}

// watchLoop handles file system events until stopped.
func (r *Registry) watchLoop() {
	for {
		select {
		case <-r.stopChan:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if !isTemplateFile(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")
			case event.Op&fsnotify.Remove == fsnotify.Remove:
				r.handleFileRemove()
			case event.Op&fsnotify.Rename == fsnotify.Rename:
				r.handleFileRemove()
			}

		case _, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (r *Registry) handleFileChange(path, eventType string) {
	before := r.idsSnapshot()
	if err := r.LoadFile(path); err != nil {
		return
	}
	if r.onChange != nil {
		if t := r.newlyLoaded(before); t != nil {
			r.onChange(eventType, t)
		} else {
			r.onChange(eventType, nil)
		}
	}
}

// handleFileRemove reloads the whole directory; templates are not tracked
// back to the file they came from.
func (r *Registry) handleFileRemove() {
	if err := r.Reload(); err != nil {
		return
	}
	if r.onChange != nil {
		r.onChange("remove", nil)
	}
}

func (r *Registry) idsSnapshot() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make(map[string]bool, len(r.templates))
	for id := range r.templates {
		ids[id] = true
	}
	return ids
}

func (r *Registry) newlyLoaded(before map[string]bool) *Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for id, t := range r.templates {
		if !before[id] {
			return t
		}
	}
	return nil
}

func isTemplateFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
