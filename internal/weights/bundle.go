package weights

import "fmt"

// Entry is one named tensor held in memory.
type Entry struct {
	Name   string
	Shape  []int
	Values []float32
}

// Bundle is an ordered collection of named float32 tensors. Order is
// preserved from Add calls so files written from the same bundle are
// byte-identical and positional weight mapping stays stable.
type Bundle struct {
	entries []Entry
	index   map[string]int
}

// NewBundle returns an empty bundle.
func NewBundle() *Bundle {
	return &Bundle{index: make(map[string]int)}
}

// Add appends a tensor. The shape is copied; the value slice is
// retained as-is. Shape dimensions must be positive and multiply out to
// len(values).
func (b *Bundle) Add(name string, shape []int, values []float32) error {
	if name == "" {
		return fmt.Errorf("tensor name must not be empty")
	}
	if _, exists := b.index[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTensor, name)
	}
	elems := 1
	for _, d := range shape {
		if d <= 0 {
			return fmt.Errorf("tensor %q has invalid shape %v", name, shape)
		}
		elems *= d
	}
	if elems != len(values) {
		return fmt.Errorf("tensor %q: shape %v implies %d elements, got %d values", name, shape, elems, len(values))
	}
	b.index[name] = len(b.entries)
	b.entries = append(b.entries, Entry{
		Name:   name,
		Shape:  append([]int(nil), shape...),
		Values: values,
	})
	return nil
}

// Get returns the entry with the given name.
func (b *Bundle) Get(name string) (Entry, bool) {
	i, ok := b.index[name]
	if !ok {
		return Entry{}, false
	}
	return b.entries[i], true
}

// Has reports whether the bundle contains a tensor with the given name.
func (b *Bundle) Has(name string) bool {
	_, ok := b.index[name]
	return ok
}

// Entries returns all tensors in insertion order. The slice is shared;
// callers must not modify it.
func (b *Bundle) Entries() []Entry {
	return b.entries
}

// Names returns tensor names in insertion order.
func (b *Bundle) Names() []string {
	names := make([]string, len(b.entries))
	for i, e := range b.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of tensors.
func (b *Bundle) Len() int {
	return len(b.entries)
}
