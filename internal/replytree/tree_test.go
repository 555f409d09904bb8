package replytree

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uideverse/hub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testBase = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newReply creates a reply n seconds after the test base time.
func newReply(n int, parentID *string) models.ForumReply {
	return models.ForumReply{
		ID:        primitive.NewObjectID(),
		TopicID:   "topic-1",
		Content:   "reply",
		AuthorID:  "user-1",
		ParentID:  parentID,
		CreatedAt: testBase.Add(time.Duration(n) * time.Second),
	}
}

func hex(r models.ForumReply) string { return r.ID.Hex() }

func strptr(s string) *string { return &s }

func TestBuild_PartitionsRootsAndChildren(t *testing.T) {
	root1 := newReply(0, nil)
	root2 := newReply(1, nil)
	child := newReply(2, strptr(hex(root1)))
	grandchild := newReply(3, strptr(hex(child)))

	tree := Build([]models.ForumReply{grandchild, child, root2, root1})

	roots := tree.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, hex(root1), roots[0].ID.Hex())
	assert.Equal(t, hex(root2), roots[1].ID.Hex())

	children := tree.Children(hex(root1))
	require.Len(t, children, 1)
	assert.Equal(t, hex(child), children[0].ID.Hex())

	require.Len(t, tree.Children(hex(child)), 1)
	assert.Empty(t, tree.Children(hex(grandchild)))
}

func TestBuild_ChildrenOrderedByCreationTime(t *testing.T) {
	root := newReply(0, nil)
	late := newReply(10, strptr(hex(root)))
	early := newReply(5, strptr(hex(root)))

	tree := Build([]models.ForumReply{late, early, root})

	children := tree.Children(hex(root))
	require.Len(t, children, 2)
	assert.Equal(t, hex(early), children[0].ID.Hex())
	assert.Equal(t, hex(late), children[1].ID.Hex())
}

func TestBuild_OrphanPromotedToRoot(t *testing.T) {
	orphan := newReply(0, strptr(primitive.NewObjectID().Hex()))

	tree := Build([]models.ForumReply{orphan})

	roots := tree.Roots()
	require.Len(t, roots, 1)
	assert.Equal(t, hex(orphan), roots[0].ID.Hex())
}

func TestDeletionOrder_ChildrenBeforeParents(t *testing.T) {
	root := newReply(0, nil)
	child1 := newReply(1, strptr(hex(root)))
	child2 := newReply(2, strptr(hex(root)))
	grandchild := newReply(3, strptr(hex(child1)))
	other := newReply(4, nil)

	tree := Build([]models.ForumReply{root, child1, child2, grandchild, other})

	order := tree.DeletionOrder(hex(root))
	require.Len(t, order, 4)
	assert.Equal(t, hex(root), order[len(order)-1], "target deleted last")
	assert.NotContains(t, order, hex(other))

	// Every reply must appear after all of its descendants.
	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	assert.Less(t, pos[hex(grandchild)], pos[hex(child1)])
	assert.Less(t, pos[hex(child1)], pos[hex(root)])
	assert.Less(t, pos[hex(child2)], pos[hex(root)])
}

func TestDeletionOrder_LeavesNoDanglingParent(t *testing.T) {
	root := newReply(0, nil)
	child := newReply(1, strptr(hex(root)))
	sibling := newReply(2, nil)
	nephew := newReply(3, strptr(hex(sibling)))

	replies := []models.ForumReply{root, child, sibling, nephew}
	tree := Build(replies)

	deleted := make(map[string]bool)
	for _, id := range tree.DeletionOrder(hex(root)) {
		deleted[id] = true
	}

	for _, r := range replies {
		if deleted[hex(r)] {
			continue
		}
		if r.ParentID != nil {
			assert.False(t, deleted[*r.ParentID], "survivor %s references deleted parent", hex(r))
		}
	}
}

func TestDeletionOrder_UnknownID(t *testing.T) {
	tree := Build([]models.ForumReply{newReply(0, nil)})
	assert.Nil(t, tree.DeletionOrder(primitive.NewObjectID().Hex()))
}

func TestDeletionOrder_SurvivesCycle(t *testing.T) {
	// A corrupted parent graph must not hang the walk.
	a := newReply(0, nil)
	b := newReply(1, strptr(hex(a)))
	a.ParentID = strptr(hex(b))

	tree := Build([]models.ForumReply{a, b})

	order := tree.DeletionOrder(hex(a))
	assert.NotEmpty(t, order)
	assert.Contains(t, order, hex(a))
}

func TestNested_MaterializesFullTree(t *testing.T) {
	root := newReply(0, nil)
	child := newReply(1, strptr(hex(root)))
	grandchild := newReply(2, strptr(hex(child)))

	tree := Build([]models.ForumReply{root, child, grandchild})

	nodes := tree.Nested()
	require.Len(t, nodes, 1)
	require.Len(t, nodes[0].Children, 1)
	require.Len(t, nodes[0].Children[0].Children, 1)
	assert.Equal(t, hex(grandchild), nodes[0].Children[0].Children[0].Reply.ID.Hex())
}
