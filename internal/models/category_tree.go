package models

import "strings"

// PathSeparator joins category names in a path, e.g. "Food -> Groceries".
const PathSeparator = " -> "

// CategoryTree is a read-only index over a category snapshot. Categories are
// kept in an arena in snapshot order and addressed by position, so parent
// walks never chase pointers and always terminate.
type CategoryTree struct {
	items []Category
	index map[uint]int
}

// NewCategoryTree indexes categories. The slice is copied.
func NewCategoryTree(categories []Category) *CategoryTree {
	items := make([]Category, len(categories))
	copy(items, categories)

	index := make(map[uint]int, len(items))
	for i, c := range items {
		index[c.ID] = i
	}
	return &CategoryTree{items: items, index: index}
}

// Len returns the number of categories.
func (t *CategoryTree) Len() int {
	return len(t.items)
}

// Items returns a copy of the categories in snapshot order.
func (t *CategoryTree) Items() []Category {
	out := make([]Category, len(t.items))
	copy(out, t.items)
	return out
}

// Get returns the category with the given id.
func (t *CategoryTree) Get(id uint) (Category, bool) {
	i, ok := t.index[id]
	if !ok {
		return Category{}, false
	}
	return t.items[i], true
}

// Has reports whether id is in the tree.
func (t *CategoryTree) Has(id uint) bool {
	_, ok := t.index[id]
	return ok
}

// ParentName returns the name of id's parent, or NoParent.
func (t *CategoryTree) ParentName(id uint) string {
	c, ok := t.Get(id)
	if !ok || c.ParentID == nil {
		return NoParent
	}
	if p, ok := t.Get(*c.ParentID); ok {
		return p.Name
	}
	return c.DisplayParent()
}

// Ancestors returns the ids above id, nearest first. The walk stops at a
// missing parent or when an id repeats.
func (t *CategoryTree) Ancestors(id uint) []uint {
	var out []uint
	seen := map[uint]bool{id: true}

	i, ok := t.index[id]
	for ok && len(out) < len(t.items) {
		parent := t.items[i].ParentID
		if parent == nil || seen[*parent] {
			break
		}
		seen[*parent] = true
		out = append(out, *parent)
		i, ok = t.index[*parent]
	}
	return out
}

// WouldCycle reports whether making parent the parent of id would close a
// loop, including the self-parent case.
func (t *CategoryTree) WouldCycle(id, parent uint) bool {
	if id == parent {
		return true
	}
	for _, a := range t.Ancestors(parent) {
		if a == id {
			return true
		}
	}
	return false
}

// Root returns the top-level category above id (or id itself).
func (t *CategoryTree) Root(id uint) (Category, bool) {
	c, ok := t.Get(id)
	if !ok {
		return Category{}, false
	}
	ancestors := t.Ancestors(id)
	for i := len(ancestors) - 1; i >= 0; i-- {
		if root, ok := t.Get(ancestors[i]); ok {
			return root, true
		}
	}
	return c, true
}

// Path returns the names from the root down to id joined by PathSeparator.
func (t *CategoryTree) Path(id uint) string {
	c, ok := t.Get(id)
	if !ok {
		return ""
	}
	ancestors := t.Ancestors(id)
	names := make([]string, 0, len(ancestors)+1)
	for i := len(ancestors) - 1; i >= 0; i-- {
		if a, ok := t.Get(ancestors[i]); ok {
			names = append(names, a.Name)
		}
	}
	names = append(names, c.Name)
	return strings.Join(names, PathSeparator)
}

// Children returns the direct children of id in snapshot order.
func (t *CategoryTree) Children(id uint) []Category {
	var out []Category
	for _, c := range t.items {
		if c.ParentID != nil && *c.ParentID == id {
			out = append(out, c)
		}
	}
	return out
}

// Roots returns the categories without a known parent in snapshot order.
func (t *CategoryTree) Roots() []Category {
	var out []Category
	for _, c := range t.items {
		if c.ParentID == nil || !t.Has(*c.ParentID) {
			out = append(out, c)
		}
	}
	return out
}

// FindByName returns the first category with the given name.
func (t *CategoryTree) FindByName(name string) (Category, bool) {
	for _, c := range t.items {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}
