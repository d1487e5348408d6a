package sfft

import "fmt"

// NodeID addresses a node inside a Tree's arena.
type NodeID int32

// NoNode is the null NodeID.
const NoNode NodeID = -1

type treeNode struct {
	level       int
	label       uint64
	parent      NodeID
	left, right NodeID

	// leaf frontier links within the node's level
	prev, next NodeID
	leaf       bool
}

type levelList struct {
	head, tail NodeID
}

// Tree is a binary splitting tree over the frequency domain. Every node
// stands for a Cone; splitting a node halves its cone by one more bit.
//
// The tree owns its nodes in an arena. Live leaves are kept in one list
// per level so that the shallowest leaf is found without scanning nodes.
type Tree struct {
	dom    Domain
	base   Cone
	nodes  []treeNode
	root   NodeID
	levels []levelList
	leaves int
}

// NewTree returns a tree whose root covers the whole domain.
func NewTree(dom Domain) *Tree {
	return newSubtree(dom, Whole())
}

// newSubtree returns a tree grafted below an outer node with cone base.
// The root keeps the outer node's level and label, and the constraints
// of base apply to every node of the new tree.
func newSubtree(dom Domain, base Cone) *Tree {
	t := &Tree{
		dom:    dom,
		base:   base,
		levels: make([]levelList, dom.Depth()+1),
	}
	for i := range t.levels {
		t.levels[i] = levelList{head: NoNode, tail: NoNode}
	}
	t.root = t.newNode(base.Level, base.Label, NoNode)
	t.pushLeaf(t.root)
	return t
}

// Root returns the root node, or NoNode once the tree is empty.
func (t *Tree) Root() NodeID { return t.root }

// Empty reports whether no live leaf remains.
func (t *Tree) Empty() bool { return t.leaves == 0 }

// Leaves returns the number of live leaves.
func (t *Tree) Leaves() int { return t.leaves }

// Level returns the depth of id.
func (t *Tree) Level(id NodeID) int { return t.nodes[id].level }

// Label returns the path bits of id.
func (t *Tree) Label(id NodeID) uint64 { return t.nodes[id].label }

// Parent returns the parent of id, or NoNode for the root.
func (t *Tree) Parent(id NodeID) NodeID { return t.nodes[id].parent }

// Left returns the bit-1 child of id, or NoNode.
func (t *Tree) Left(id NodeID) NodeID { return t.nodes[id].left }

// Right returns the bit-0 child of id, or NoNode.
func (t *Tree) Right(id NodeID) NodeID { return t.nodes[id].right }

// IsLeaf reports whether id is a live leaf.
func (t *Tree) IsLeaf(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].leaf
}

// IsSingleton reports whether id is at maximum depth, so that its cone
// holds exactly one frequency.
func (t *Tree) IsSingleton(id NodeID) bool {
	return t.nodes[id].level == t.dom.Depth()
}

// Frequency returns the frequency of a singleton node.
func (t *Tree) Frequency(id NodeID) Index {
	return t.dom.deinterleave(t.nodes[id].label)
}

// Split gives the live leaf id two children. The left child extends the
// label with bit 1 and the right child with bit 0.
func (t *Tree) Split(id NodeID) (left, right NodeID, err error) {
	if !t.IsLeaf(id) {
		return NoNode, NoNode, fmt.Errorf("%w: split %d", ErrNotLeaf, id)
	}
	n := t.nodes[id]
	if n.level >= t.dom.Depth() {
		return NoNode, NoNode, fmt.Errorf("%w: split %d at level %d", ErrMaxDepth, id, n.level)
	}
	t.unlinkLeaf(id)

	left = t.newNode(n.level+1, n.label|uint64(1)<<n.level, id)
	right = t.newNode(n.level+1, n.label, id)
	t.nodes[id].left = left
	t.nodes[id].right = right
	t.pushLeaf(left)
	t.pushLeaf(right)
	return left, right, nil
}

// Remove discards the live leaf id, either because its cone was proven
// empty or because it is fully explained. A parent left without children
// is discarded as well; it never becomes a leaf again.
func (t *Tree) Remove(id NodeID) error {
	if !t.IsLeaf(id) {
		return fmt.Errorf("%w: remove %d", ErrNotLeaf, id)
	}
	t.unlinkLeaf(id)
	for id != NoNode {
		parent := t.nodes[id].parent
		if parent == NoNode {
			t.root = NoNode
			return nil
		}
		p := &t.nodes[parent]
		if p.left == id {
			p.left = NoNode
		} else {
			p.right = NoNode
		}
		if p.left != NoNode || p.right != NoNode {
			return nil
		}
		id = parent
	}
	return nil
}

// Lightest returns a live leaf of minimum level, or NoNode if the tree is
// empty. Among leaves of equal level the most recently created one wins,
// so a right child is returned before its left sibling.
func (t *Tree) Lightest() NodeID {
	if t.leaves == 0 {
		return NoNode
	}
	for lvl := range t.levels {
		if tail := t.levels[lvl].tail; tail != NoNode {
			return tail
		}
	}
	return NoNode
}

// Cone returns the effective cone of id. A level constrains the cone only
// while the path node at that level still has its sibling; a discarded
// sibling is either empty or already known, so the filter may span it.
func (t *Tree) Cone(id NodeID) Cone {
	n := t.nodes[id]
	c := Cone{Level: n.level, Label: n.label, Mask: t.base.Mask}
	for cur := id; t.nodes[cur].parent != NoNode; {
		node := t.nodes[cur]
		p := t.nodes[node.parent]
		sibling := p.left
		if sibling == cur {
			sibling = p.right
		}
		if sibling != NoNode {
			c.Mask |= uint64(1) << (node.level - 1)
		}
		cur = node.parent
	}
	return c
}

func (t *Tree) newNode(level int, label uint64, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, treeNode{
		level:  level,
		label:  label,
		parent: parent,
		left:   NoNode,
		right:  NoNode,
		prev:   NoNode,
		next:   NoNode,
	})
	return id
}

func (t *Tree) pushLeaf(id NodeID) {
	n := &t.nodes[id]
	l := &t.levels[n.level]
	n.leaf = true
	n.prev = l.tail
	n.next = NoNode
	if l.tail != NoNode {
		t.nodes[l.tail].next = id
	} else {
		l.head = id
	}
	l.tail = id
	t.leaves++
}

func (t *Tree) unlinkLeaf(id NodeID) {
	n := &t.nodes[id]
	l := &t.levels[n.level]
	if n.prev != NoNode {
		t.nodes[n.prev].next = n.next
	} else {
		l.head = n.next
	}
	if n.next != NoNode {
		t.nodes[n.next].prev = n.prev
	} else {
		l.tail = n.prev
	}
	n.prev, n.next = NoNode, NoNode
	n.leaf = false
	t.leaves--
}
