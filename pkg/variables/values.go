package variables

// ValueSet layers per-document variable overrides on top of case-level
// values. The two mappings stay separate and are merged at read time with
// the override winning, so merge semantics remain explicit and testable.
type ValueSet struct {
	// Case holds the case-level variable values shared by every document.
	Case map[string]string `json:"case" yaml:"case"`

	// Override holds per-document values that shadow case-level entries.
	Override map[string]string `json:"override,omitempty" yaml:"override,omitempty"`
}

// NewValueSet returns an empty ValueSet with both layers allocated.
func NewValueSet() *ValueSet {
	return &ValueSet{
		Case:     make(map[string]string),
		Override: make(map[string]string),
	}
}

// Get returns the effective value for name, consulting the override layer
// first. The boolean reports whether either layer defines the name.
func (v *ValueSet) Get(name string) (string, bool) {
	if value, ok := v.Override[name]; ok {
		return value, true
	}
	value, ok := v.Case[name]
	return value, ok
}

// Merged flattens both layers into a single mapping with override-wins
// semantics. The result is a fresh map; mutating it does not affect the set.
func (v *ValueSet) Merged() map[string]string {
	merged := make(map[string]string, len(v.Case)+len(v.Override))
	for name, value := range v.Case {
		merged[name] = value
	}
	for name, value := range v.Override {
		merged[name] = value
	}
	return merged
}

// SetCase stores a case-level value.
func (v *ValueSet) SetCase(name, value string) {
	if v.Case == nil {
		v.Case = make(map[string]string)
	}
	v.Case[name] = value
}

// SetOverride stores a per-document override.
func (v *ValueSet) SetOverride(name, value string) {
	if v.Override == nil {
		v.Override = make(map[string]string)
	}
	v.Override[name] = value
}

// ClearOverride removes a per-document override, exposing the case-level
// value again.
func (v *ValueSet) ClearOverride(name string) {
	delete(v.Override, name)
}
