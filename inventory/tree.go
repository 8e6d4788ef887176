package inventory

import (
	"slices"
	"strings"
)

type Category struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	OwnerCategoryID ParentRef `json:"owner_category_id"`
}

type CategoryNode struct {
	Category
	Children   []*CategoryNode `json:"children"`
	IsExpanded bool            `json:"is_expanded,omitempty"`
}

type IssueKind string

const (
	// the owner id does not resolve to any category in the input
	IssueOrphan IssueKind = "orphan"
	// the category is part of an owner chain that loops back onto itself
	IssueCycle IssueKind = "cycle"
	// a category with the same id appeared earlier in the input
	IssueDuplicate IssueKind = "duplicate"
	// the category hangs below an orphaned or cyclic category and is unreachable from any root
	IssueDetached IssueKind = "detached"
)

type Issue struct {
	Kind            IssueKind `json:"kind"`
	CategoryID      int       `json:"category_id"`
	OwnerCategoryID ParentRef `json:"owner_category_id"`
}

type Tree struct {
	Roots  []*CategoryNode `json:"roots"`
	Issues []Issue         `json:"issues"`

	nodes   map[int]*CategoryNode
	parents map[int]int
}

// BuildTree nests a flat category list by owner id. Roots and siblings keep
// their input order. Records that cannot be attached are left out of the tree
// and reported in Tree.Issues instead.
func BuildTree(categories []Category) *Tree {
	tree := &Tree{
		Roots:   make([]*CategoryNode, 0),
		Issues:  make([]Issue, 0),
		nodes:   make(map[int]*CategoryNode, len(categories)),
		parents: make(map[int]int, len(categories)),
	}
	records := make([]Category, 0, len(categories))
	for _, category := range categories {
		if _, ok := tree.nodes[category.ID]; ok {
			tree.report(IssueDuplicate, category)
			continue
		}
		tree.nodes[category.ID] = &CategoryNode{Category: category, Children: make([]*CategoryNode, 0)}
		records = append(records, category)
	}

	cyclic := findCycles(records, tree.nodes)
	for _, category := range records {
		node := tree.nodes[category.ID]
		if !category.OwnerCategoryID.Valid {
			tree.Roots = append(tree.Roots, node)
			continue
		}
		if cyclic[category.ID] {
			tree.report(IssueCycle, category)
			continue
		}
		parent, ok := category.OwnerCategoryID.resolve(tree.nodes)
		if !ok {
			tree.report(IssueOrphan, category)
			continue
		}
		parent.Children = append(parent.Children, node)
		tree.parents[node.ID] = parent.ID
	}

	if len(tree.Issues) > 0 {
		reachable := make(map[int]bool, len(records))
		tree.Walk(func(node *CategoryNode, _ int) bool {
			reachable[node.ID] = true
			return true
		})
		for _, category := range records {
			if reachable[category.ID] || !category.OwnerCategoryID.Valid {
				continue
			}
			if _, ok := category.OwnerCategoryID.resolve(tree.nodes); cyclic[category.ID] || !ok {
				continue
			}
			tree.report(IssueDetached, category)
		}
	}
	return tree
}

func (t *Tree) report(kind IssueKind, category Category) {
	t.Issues = append(t.Issues, Issue{Kind: kind, CategoryID: category.ID, OwnerCategoryID: category.OwnerCategoryID})
}

// findCycles returns the ids of every record that sits on an owner loop.
// Records that merely hang below a loop are not part of it.
func findCycles(records []Category, nodes map[int]*CategoryNode) map[int]bool {
	const (
		unvisited = iota
		visiting
		visited
	)
	state := make(map[int]int, len(records))
	cyclic := make(map[int]bool)
	for _, record := range records {
		path := make([]int, 0)
		id := record.ID
		for state[id] != visited {
			if state[id] == visiting {
				for i := len(path) - 1; i >= 0; i-- {
					cyclic[path[i]] = true
					if path[i] == id {
						break
					}
				}
				break
			}
			state[id] = visiting
			path = append(path, id)
			owner := nodes[id].OwnerCategoryID
			parent, ok := owner.resolve(nodes)
			if !ok {
				break
			}
			id = parent.ID
		}
		for _, p := range path {
			state[p] = visited
		}
	}
	return cyclic
}

// Walk visits reachable nodes depth first. Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(node *CategoryNode, depth int) bool) {
	visited := make(map[*CategoryNode]bool)
	var walk func(nodes []*CategoryNode, depth int) bool
	walk = func(nodes []*CategoryNode, depth int) bool {
		for _, node := range nodes {
			if visited[node] {
				continue
			}
			visited[node] = true
			if !fn(node, depth) {
				return false
			}
			if !walk(node.Children, depth+1) {
				return false
			}
		}
		return true
	}
	walk(t.Roots, 0)
}

func (t *Tree) Count() int {
	count := 0
	t.Walk(func(*CategoryNode, int) bool {
		count++
		return true
	})
	return count
}

// Path returns the chain of nodes from a root down to the category with the given id,
// or nil if that category is not reachable from any root.
func (t *Tree) Path(id int) []*CategoryNode {
	node, ok := t.nodes[id]
	if !ok {
		return nil
	}
	path := []*CategoryNode{node}
	for {
		parentID, ok := t.parents[node.ID]
		if !ok {
			break
		}
		node = t.nodes[parentID]
		path = append(path, node)
	}
	if node.OwnerCategoryID.Valid {
		return nil
	}
	slices.Reverse(path)
	return path
}

func (t *Tree) Find(id int) *CategoryNode {
	path := t.Path(id)
	if len(path) == 0 {
		return nil
	}
	return path[len(path)-1]
}

// ExpandTo marks every ancestor of the given categories as expanded.
func (t *Tree) ExpandTo(ids ...int) {
	for _, id := range ids {
		path := t.Path(id)
		for i := 0; i < len(path)-1; i++ {
			path[i].IsExpanded = true
		}
	}
}

// HasIssue reports whether the category with the given id was reported with the given kind.
func (t *Tree) HasIssue(kind IssueKind, id int) bool {
	for _, issue := range t.Issues {
		if issue.Kind == kind && issue.CategoryID == id {
			return true
		}
	}
	return false
}

// Filter keeps the categories whose name or description contains query, together
// with their ancestors. Ancestors of a match are expanded. The receiver is not modified.
func (t *Tree) Filter(query string) *Tree {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return t
	}
	filtered := &Tree{
		Roots:   make([]*CategoryNode, 0),
		Issues:  t.Issues,
		nodes:   make(map[int]*CategoryNode),
		parents: make(map[int]int),
	}
	var filter func(node *CategoryNode) *CategoryNode
	filter = func(node *CategoryNode) *CategoryNode {
		children := make([]*CategoryNode, 0)
		for _, child := range node.Children {
			if kept := filter(child); kept != nil {
				children = append(children, kept)
			}
		}
		if len(children) == 0 && !matches(node.Category, query) {
			return nil
		}
		kept := &CategoryNode{Category: node.Category, Children: children, IsExpanded: len(children) > 0}
		filtered.nodes[kept.ID] = kept
		for _, child := range children {
			filtered.parents[child.ID] = kept.ID
		}
		return kept
	}
	for _, root := range t.Roots {
		if kept := filter(root); kept != nil {
			filtered.Roots = append(filtered.Roots, kept)
		}
	}
	return filtered
}

func matches(category Category, query string) bool {
	if strings.Contains(strings.ToLower(category.Name), query) {
		return true
	}
	return category.Description != nil && strings.Contains(strings.ToLower(*category.Description), query)
}
