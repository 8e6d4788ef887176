package inventory

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func category(id int, name string, owner ...int) Category {
	c := Category{ID: id, Name: name}
	if len(owner) > 0 {
		c.OwnerCategoryID = Owner(owner[0])
	}
	return c
}

func names(nodes []*CategoryNode) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Name)
	}
	return out
}

func TestBuildTreeEmpty(t *testing.T) {
	tree := BuildTree(nil)
	assert.Empty(t, tree.Roots)
	assert.Empty(t, tree.Issues)
	assert.Equal(t, 0, tree.Count())

	serialized, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `{"roots": [], "issues": []}`, string(serialized))
}

func TestBuildTreeNestsByOwner(t *testing.T) {
	tree := BuildTree([]Category{
		category(3, "Brushes", 1),
		category(1, "Chemicals"),
		category(4, "Wax", 1),
		category(2, "Spare parts"),
		category(5, "Hard wax", 4),
	})

	assert.Equal(t, []string{"Chemicals", "Spare parts"}, names(tree.Roots))
	assert.Equal(t, []string{"Brushes", "Wax"}, names(tree.Roots[0].Children))
	assert.Equal(t, []string{"Hard wax"}, names(tree.Roots[0].Children[1].Children))
	assert.Empty(t, tree.Roots[1].Children)
	assert.NotNil(t, tree.Roots[1].Children)
	assert.Empty(t, tree.Issues)
	assert.Equal(t, 5, tree.Count())
}

func TestBuildTreeKeepsRecordFields(t *testing.T) {
	description := "Consumables for the tunnel"
	tree := BuildTree([]Category{{ID: 7, Name: "Tunnel", Description: &description}})

	require.Len(t, tree.Roots, 1)
	assert.Equal(t, 7, tree.Roots[0].ID)
	assert.Equal(t, "Tunnel", tree.Roots[0].Name)
	assert.Equal(t, &description, tree.Roots[0].Description)
	assert.False(t, tree.Roots[0].OwnerCategoryID.Valid)
}

func TestBuildTreeSiblingOrderFollowsInput(t *testing.T) {
	input := []Category{category(1, "root")}
	expected := make([]string, 0)
	for i, name := range []string{"e", "b", "d", "a", "c"} {
		input = append(input, category(10+i, name, 1))
		expected = append(expected, name)
	}
	tree := BuildTree(input)
	require.Len(t, tree.Roots, 1)
	assert.Equal(t, expected, names(tree.Roots[0].Children))
}

func TestBuildTreeChildBeforeParent(t *testing.T) {
	tree := BuildTree([]Category{
		category(2, "child", 1),
		category(3, "grandchild", 2),
		category(1, "root"),
	})
	require.Len(t, tree.Roots, 1)
	assert.Equal(t, 3, tree.Count())
	assert.Equal(t, []string{"root", "child", "grandchild"}, names(tree.Path(3)))
}

func TestBuildTreeReportsOrphans(t *testing.T) {
	tree := BuildTree([]Category{
		category(1, "root"),
		category(2, "lost", 99),
		category(3, "below lost", 2),
	})

	assert.Equal(t, []string{"root"}, names(tree.Roots))
	assert.Empty(t, tree.Roots[0].Children)
	assert.Equal(t, 1, tree.Count())
	assert.Nil(t, tree.Find(2))
	assert.Nil(t, tree.Find(3))
	assert.Equal(t, []Issue{
		{Kind: IssueOrphan, CategoryID: 2, OwnerCategoryID: Owner(99)},
		{Kind: IssueDetached, CategoryID: 3, OwnerCategoryID: Owner(2)},
	}, tree.Issues)
}

func TestBuildTreeSelfOwnedCategory(t *testing.T) {
	tree := BuildTree([]Category{
		category(1, "root"),
		category(2, "self", 2),
	})

	assert.Equal(t, 1, tree.Count())
	assert.Empty(t, tree.Roots[0].Children)
	assert.True(t, tree.HasIssue(IssueCycle, 2))
	assert.Nil(t, tree.Find(2))
}

func TestBuildTreeMultiNodeCycle(t *testing.T) {
	tree := BuildTree([]Category{
		category(1, "a", 2),
		category(2, "b", 1),
		category(3, "hangs below a", 1),
		category(4, "root"),
	})

	assert.Equal(t, []string{"root"}, names(tree.Roots))
	assert.Equal(t, 1, tree.Count())
	assert.True(t, tree.HasIssue(IssueCycle, 1))
	assert.True(t, tree.HasIssue(IssueCycle, 2))
	assert.False(t, tree.HasIssue(IssueCycle, 3))
	assert.True(t, tree.HasIssue(IssueDetached, 3))

	// encoding must terminate because cycle members are never linked
	_, err := json.Marshal(tree)
	assert.NoError(t, err)
}

func TestBuildTreeDuplicateIds(t *testing.T) {
	tree := BuildTree([]Category{
		category(1, "first"),
		category(1, "second"),
	})

	assert.Equal(t, []string{"first"}, names(tree.Roots))
	assert.Equal(t, []Issue{{Kind: IssueDuplicate, CategoryID: 1}}, tree.Issues)
}

func TestBuildTreeCountMatchesInputWithoutIssues(t *testing.T) {
	input := []Category{category(1, "root")}
	for id := 2; id <= 50; id++ {
		input = append(input, category(id, "node", id/2))
	}
	tree := BuildTree(input)
	assert.Empty(t, tree.Issues)
	assert.Equal(t, len(input), tree.Count())
}

func TestBuildTreeIsIdempotent(t *testing.T) {
	input := []Category{
		category(1, "root"),
		category(2, "child", 1),
		category(3, "orphan", 42),
		category(4, "other root"),
	}
	first := BuildTree(input)
	second := BuildTree(input)
	if diff := cmp.Diff(first, second, cmpopts.IgnoreUnexported(Tree{})); diff != "" {
		t.Errorf("trees differ (-first +second):\n%s", diff)
	}
}

func TestBuildTreeFromJSONOwners(t *testing.T) {
	var categories []Category
	err := json.Unmarshal([]byte(`[
		{"id": 1, "name": "no owner field"},
		{"id": 2, "name": "null owner", "owner_category_id": null},
		{"id": 3, "name": "string owner", "owner_category_id": "abc"},
		{"id": 4, "name": "numeric owner", "owner_category_id": 1},
		{"id": 5, "name": "bool owner", "owner_category_id": true},
		{"id": 6, "name": "float owner", "owner_category_id": 1.0},
		{"id": 7, "name": "exponent owner", "owner_category_id": 1e0},
		{"id": 8, "name": "fractional owner", "owner_category_id": 1.5}
	]`), &categories)
	require.NoError(t, err)

	tree := BuildTree(categories)
	assert.Equal(t, []string{"no owner field", "null owner", "string owner", "bool owner"}, names(tree.Roots))
	assert.Equal(t, []string{"numeric owner", "float owner", "exponent owner"}, names(tree.Roots[0].Children))
	require.Len(t, tree.Issues, 1)
	assert.Equal(t, IssueOrphan, tree.Issues[0].Kind)
	assert.Equal(t, 8, tree.Issues[0].CategoryID)
	assert.Nil(t, tree.Find(8))
}

func TestWalkDepthAndStop(t *testing.T) {
	tree := BuildTree([]Category{
		category(1, "root"),
		category(2, "child", 1),
		category(3, "grandchild", 2),
		category(4, "second root"),
	})

	depths := make(map[int]int)
	tree.Walk(func(node *CategoryNode, depth int) bool {
		depths[node.ID] = depth
		return true
	})
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 2, 4: 0}, depths)

	visited := 0
	tree.Walk(func(node *CategoryNode, depth int) bool {
		visited++
		return node.ID != 2
	})
	assert.Equal(t, 2, visited)
}

func TestExpandTo(t *testing.T) {
	tree := BuildTree([]Category{
		category(1, "root"),
		category(2, "child", 1),
		category(3, "grandchild", 2),
		category(4, "sibling", 1),
	})
	tree.ExpandTo(3, 404)

	assert.True(t, tree.Find(1).IsExpanded)
	assert.True(t, tree.Find(2).IsExpanded)
	assert.False(t, tree.Find(3).IsExpanded)
	assert.False(t, tree.Find(4).IsExpanded)
}

func TestFilter(t *testing.T) {
	description := "foam for pre-wash"
	tree := BuildTree([]Category{
		category(1, "Chemicals"),
		{ID: 2, Name: "Active", Description: &description, OwnerCategoryID: Owner(1)},
		category(3, "Wax", 1),
		category(4, "Spare parts"),
		category(5, "Foam nozzles", 4),
		category(6, "Hoses", 4),
	})

	filtered := tree.Filter("  FOAM ")
	assert.Equal(t, []string{"Chemicals", "Spare parts"}, names(filtered.Roots))
	assert.Equal(t, []string{"Active"}, names(filtered.Roots[0].Children))
	assert.Equal(t, []string{"Foam nozzles"}, names(filtered.Roots[1].Children))
	assert.True(t, filtered.Roots[0].IsExpanded)
	assert.False(t, filtered.Find(5).IsExpanded)
	assert.Equal(t, 4, filtered.Count())

	// the source tree is untouched
	assert.Equal(t, 6, tree.Count())
	assert.False(t, tree.Find(1).IsExpanded)

	assert.Same(t, tree, tree.Filter(""))
	assert.Empty(t, tree.Filter("nothing matches").Roots)
}
