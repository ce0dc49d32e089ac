// Package entries implements the case-insensitive multi-valued name
// registry used for declarations of a single kind within one scope.
package entries

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xlab/treeprint"
)

// ErrNotFound is returned by lookups of names which were never added.
var ErrNotFound = errors.New("entry not found")

type bucket[T any] struct {
	name   string
	values []T
}

// Entries maps names to every entry added under them. Names are compared
// case-insensitively. The registry never rejects an addition: enforcing
// uniqueness is up to the caller.
type Entries[T any] struct {
	lookup map[string]*bucket[T]
	order  []*bucket[T]
}

// New returns an empty registry.
func New[T any]() *Entries[T] {
	return &Entries[T]{lookup: map[string]*bucket[T]{}}
}

func key(name string) string {
	return strings.ToUpper(name)
}

// Add appends entry under name.
func (e *Entries[T]) Add(name string, entry T) {
	if e.lookup == nil {
		e.lookup = map[string]*bucket[T]{}
	}
	k := key(name)
	b := e.lookup[k]
	if b == nil {
		b = &bucket[T]{name: name}
		e.lookup[k] = b
		e.order = append(e.order, b)
	}
	b.values = append(b.values, entry)
}

// Exists reports whether at least one entry was added under name.
func (e *Entries[T]) Exists(name string) bool {
	_, ok := e.lookup[key(name)]
	return ok
}

// ExistsAndUnique reports whether name exists and whether it has exactly
// one entry.
func (e *Entries[T]) ExistsAndUnique(name string) (exists, unique bool) {
	b, ok := e.lookup[key(name)]
	if !ok {
		return false, false
	}
	return true, len(b.values) == 1
}

// GetAll returns the entries of name in insertion order.
func (e *Entries[T]) GetAll(name string) ([]T, error) {
	b, ok := e.lookup[key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return b.values, nil
}

// GetUnique returns the first entry of name.
func (e *Entries[T]) GetUnique(name string) (v T, err error) {
	b, ok := e.lookup[key(name)]
	if !ok {
		return v, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return b.values[0], nil
}

// Len returns the number of distinct names.
func (e *Entries[T]) Len() int {
	return len(e.order)
}

// Count returns the number of entries under every name.
func (e *Entries[T]) Count() (n int) {
	for _, b := range e.order {
		n += len(b.values)
	}
	return
}

// Names returns the distinct names, spelled as first added, in insertion
// order.
func (e *Entries[T]) Names() []string {
	names := make([]string, len(e.order))
	for i, b := range e.order {
		names[i] = b.name
	}
	return names
}

// Each calls f for every entry in insertion order of the names.
func (e *Entries[T]) Each(f func(name string, entry T)) {
	for _, b := range e.order {
		for _, v := range b.values {
			f(b.name, v)
		}
	}
}

// AddTo adds a branch titled title to tree with one node per name. Names
// with more than one entry get a child node per entry. Entries are printed
// with %v.
func (e *Entries[T]) AddTo(tree treeprint.Tree, title string) treeprint.Tree {
	branch := tree.AddMetaBranch(len(e.order), title)
	e.addNodes(branch)
	return branch
}

// Tree renders the registry as a tree titled title.
func (e *Entries[T]) Tree(title string) string {
	tree := treeprint.NewWithRoot(title)
	e.addNodes(tree)
	return tree.String()
}

func (e *Entries[T]) addNodes(tree treeprint.Tree) {
	for _, b := range e.order {
		if len(b.values) == 1 {
			tree.AddMetaNode(b.name, fmt.Sprint(b.values[0]))
			continue
		}
		node := tree.AddMetaBranch(b.name, fmt.Sprintf("%d entries", len(b.values)))
		for _, v := range b.values {
			node.AddNode(fmt.Sprint(v))
		}
	}
}
