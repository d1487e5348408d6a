package sfft

import (
	"errors"
	"testing"
)

func mustSplit(t *testing.T, tree *Tree, id NodeID) (NodeID, NodeID) {
	t.Helper()
	left, right, err := tree.Split(id)
	if err != nil {
		t.Fatalf("Split(%d): %v", id, err)
	}
	return left, right
}

func mustRemove(t *testing.T, tree *Tree, id NodeID) {
	t.Helper()
	if err := tree.Remove(id); err != nil {
		t.Fatalf("Remove(%d): %v", id, err)
	}
}

func TestTreeRemove(t *testing.T) {
	tree := NewTree(MustDomain(1, 8))
	root := tree.Root()
	a, b := mustSplit(t, tree, root)

	if tree.Left(root) != a || tree.Right(root) != b {
		t.Fatal("children not linked to root")
	}
	if tree.Parent(a) != root || tree.Parent(b) != root || tree.Parent(root) != NoNode {
		t.Fatal("parent links wrong")
	}
	if tree.IsLeaf(root) || !tree.IsLeaf(a) || !tree.IsLeaf(b) {
		t.Fatal("leaf flags wrong after split")
	}

	mustRemove(t, tree, a)
	if tree.Left(root) != NoNode || tree.Right(root) != b {
		t.Fatal("left child still linked after removal")
	}
	if tree.Root() != root || tree.Empty() {
		t.Fatal("tree emptied too early")
	}

	mustRemove(t, tree, b)
	if !tree.Empty() {
		t.Fatal("tree not empty after removing every leaf")
	}
	if tree.Root() != NoNode {
		t.Fatalf("Root = %d, want NoNode", tree.Root())
	}
	if tree.Lightest() != NoNode {
		t.Fatal("Lightest on empty tree returned a node")
	}
}

func TestTreeRemoveRoot(t *testing.T) {
	tree := NewTree(MustDomain(1, 4))
	mustRemove(t, tree, tree.Root())
	if !tree.Empty() || tree.Root() != NoNode {
		t.Fatal("removing the root did not empty the tree")
	}
}

func TestTreeRemoveInnerNodeFails(t *testing.T) {
	tree := NewTree(MustDomain(1, 4))
	root := tree.Root()
	mustSplit(t, tree, root)
	if err := tree.Remove(root); !errors.Is(err, ErrNotLeaf) {
		t.Fatalf("Remove(inner) err = %v, want ErrNotLeaf", err)
	}
	if _, _, err := tree.Split(root); !errors.Is(err, ErrNotLeaf) {
		t.Fatalf("Split(inner) err = %v, want ErrNotLeaf", err)
	}
}

func TestTreeSplitSingletonFails(t *testing.T) {
	tree := NewTree(MustDomain(1, 2))
	left, _ := mustSplit(t, tree, tree.Root())
	if !tree.IsSingleton(left) {
		t.Fatal("depth-1 node of a size-2 tree is not a singleton")
	}
	if _, _, err := tree.Split(left); !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("Split(singleton) err = %v, want ErrMaxDepth", err)
	}
}

func TestTreeLabels(t *testing.T) {
	tree := NewTree(MustDomain(1, 8))
	a, b := mustSplit(t, tree, tree.Root())
	a1, a2 := mustSplit(t, tree, a)
	c1, c2 := mustSplit(t, tree, a2)

	if tree.Label(a) != 0b1 || tree.Label(b) != 0b0 {
		t.Fatalf("level 1 labels = %b, %b", tree.Label(a), tree.Label(b))
	}
	if tree.Label(a1) != 0b11 || tree.Label(a2) != 0b01 {
		t.Fatalf("level 2 labels = %b, %b", tree.Label(a1), tree.Label(a2))
	}
	if got := tree.Frequency(c1).Flat(); got != 5 {
		t.Fatalf("Frequency(c1) = %d, want 5", got)
	}
	if got := tree.Frequency(c2).Flat(); got != 1 {
		t.Fatalf("Frequency(c2) = %d, want 1", got)
	}
	if tree.Level(c1) != 3 || tree.Leaves() != 4 {
		t.Fatalf("level = %d, leaves = %d", tree.Level(c1), tree.Leaves())
	}
}

func TestTreeLightestPrefersNewestLeaf(t *testing.T) {
	tree := NewTree(MustDomain(1, 8))
	root := tree.Root()
	if tree.Lightest() != root {
		t.Fatal("Lightest of a fresh tree is not the root")
	}

	a, b := mustSplit(t, tree, root)
	if got := tree.Lightest(); got != b {
		t.Fatalf("Lightest = %d, want right child %d", got, b)
	}
	mustRemove(t, tree, b)
	if got := tree.Lightest(); got != a {
		t.Fatalf("Lightest = %d, want left child %d", got, a)
	}
}

func TestTreeLightestByLevel(t *testing.T) {
	tree := NewTree(MustDomain(1, 8))
	a1, a2 := mustSplit(t, tree, tree.Root())
	b1, b2 := mustSplit(t, tree, a1)
	c1, c2 := mustSplit(t, tree, b2)

	for _, want := range []NodeID{a2, b1, c2, c1} {
		got := tree.Lightest()
		if got != want {
			t.Fatalf("Lightest = %d, want %d", got, want)
		}
		mustRemove(t, tree, got)
	}
	if !tree.Empty() {
		t.Fatal("tree not empty")
	}
}

func TestTreeConeWidensAfterSiblingRemoval(t *testing.T) {
	d := MustDomain(1, 8)
	tree := NewTree(d)
	b1, a := mustSplit(t, tree, tree.Root())
	b2, gone := mustSplit(t, tree, b1)
	mustRemove(t, tree, gone)
	gone, b3 := mustSplit(t, tree, b2)
	mustRemove(t, tree, gone)

	ca := tree.Cone(a)
	if ca.Mask != 0b1 || ca.Label&ca.Mask != 0 {
		t.Fatalf("cone(a) = %+v, want even frequencies", ca)
	}

	cb := tree.Cone(b3)
	if cb.Level != 3 || cb.Label != 0b011 {
		t.Fatalf("cone(b3) = %+v, want level 3 label 011", cb)
	}
	if cb.Mask != 0b1 {
		t.Fatalf("cone(b3).Mask = %b, want 1", cb.Mask)
	}
	for f := range d.Size() {
		if got, want := cb.Contains(d.Index(f)), f%2 == 1; got != want {
			t.Fatalf("cone(b3).Contains(%d) = %v, want %v", f, got, want)
		}
	}
}

func TestSubtreeKeepsBaseConstraints(t *testing.T) {
	d := MustDomain(1, 16)
	base := Cone{Level: 2, Label: 0b10, Mask: 0b11}
	tree := newSubtree(d, base)
	if tree.Level(tree.Root()) != 2 || tree.Label(tree.Root()) != 0b10 {
		t.Fatal("subtree root does not keep the outer level and label")
	}

	left, right := mustSplit(t, tree, tree.Root())
	mustRemove(t, tree, right)
	c := tree.Cone(left)
	if c.Mask != 0b11 {
		t.Fatalf("Mask = %b, want base mask 11", c.Mask)
	}
	for f := range d.Size() {
		if got, want := c.Contains(d.Index(f)), f%4 == 2; got != want {
			t.Fatalf("Contains(%d) = %v, want %v", f, got, want)
		}
	}
}
