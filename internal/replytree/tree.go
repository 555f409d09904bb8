// Package replytree builds an in-memory index over the flat reply set of one
// forum topic. All replies are loaded wholesale from the store; the tree is
// materialized once per fetch as an adjacency map instead of re-filtering
// the flat list per node.
package replytree

import (
	"sort"

	"github.com/uideverse/hub/backend/internal/models"
)

// Node is one reply with its resolved children, for nested JSON rendering.
type Node struct {
	Reply    models.ForumReply `json:"reply"`
	Children []*Node           `json:"children"`
}

// Tree indexes a topic's replies by id and parent id. The reply slice is the
// arena; the maps are the index.
type Tree struct {
	byID     map[string]models.ForumReply
	children map[string][]string // parent id -> child ids, oldest first
	roots    []string            // top-level reply ids, oldest first
}

// Build constructs the index from a topic's full flat reply list. Children
// are ordered by creation time. A reply whose parent id is unknown is
// treated as top-level rather than dropped, so a partially failed cascade
// still renders everything that survived.
func Build(replies []models.ForumReply) *Tree {
	t := &Tree{
		byID:     make(map[string]models.ForumReply, len(replies)),
		children: make(map[string][]string),
	}
	for _, r := range replies {
		t.byID[r.ID.Hex()] = r
	}
	sorted := make([]models.ForumReply, len(replies))
	copy(sorted, replies)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	for _, r := range sorted {
		id := r.ID.Hex()
		if r.IsTopLevel() {
			t.roots = append(t.roots, id)
			continue
		}
		parent := *r.ParentID
		if _, ok := t.byID[parent]; !ok {
			t.roots = append(t.roots, id)
			continue
		}
		t.children[parent] = append(t.children[parent], id)
	}
	return t
}

// Contains reports whether the tree holds the given reply id.
func (t *Tree) Contains(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Roots returns the top-level replies, oldest first.
func (t *Tree) Roots() []models.ForumReply {
	return t.lookup(t.roots)
}

// Children returns the direct children of the given reply, oldest first.
func (t *Tree) Children(id string) []models.ForumReply {
	return t.lookup(t.children[id])
}

func (t *Tree) lookup(ids []string) []models.ForumReply {
	replies := make([]models.ForumReply, 0, len(ids))
	for _, id := range ids {
		if r, ok := t.byID[id]; ok {
			replies = append(replies, r)
		}
	}
	return replies
}

// DeletionOrder returns the given reply and every transitive descendant,
// children before parents, so deleting in this order never leaves a reply
// whose parent is already gone. The visited set guards against a corrupted
// parent graph containing a cycle.
func (t *Tree) DeletionOrder(id string) []string {
	if _, ok := t.byID[id]; !ok {
		return nil
	}
	visited := make(map[string]bool)
	var order []string
	var walk func(string)
	walk = func(cur string) {
		if visited[cur] {
			return
		}
		visited[cur] = true
		for _, child := range t.children[cur] {
			walk(child)
		}
		order = append(order, cur)
	}
	walk(id)
	return order
}

// Nested materializes the full tree as linked nodes for the API response.
func (t *Tree) Nested() []*Node {
	var build func(id string) *Node
	build = func(id string) *Node {
		n := &Node{Reply: t.byID[id], Children: []*Node{}}
		for _, child := range t.children[id] {
			n.Children = append(n.Children, build(child))
		}
		return n
	}
	nodes := make([]*Node, 0, len(t.roots))
	for _, id := range t.roots {
		nodes = append(nodes, build(id))
	}
	return nodes
}
