package engine

import (
	"math"
	"sync"
)

// NodeID addresses a node in a Tree. The root is always RootID.
type NodeID int32

const (
	RootID NodeID = 0
	// NoNode is the parent of the root.
	NoNode NodeID = -1
)

// Node is één knoop van de ISMCTS-boom. Statistieken worden beschermd door
// de mutex van de knoop zelf.
type Node[M comparable] struct {
	mu sync.Mutex

	move     M
	parent   NodeID
	children []NodeID
	// playerJustMoved is the player that made move; -1 at the root.
	playerJustMoved int

	visits    int
	score     float64
	available int
}

// Tree is a node arena. Nodes are never removed, so a NodeID stays valid for
// the lifetime of the tree and parents are plain indices.
type Tree[M comparable] struct {
	mu    sync.RWMutex
	nodes []*Node[M]
}

func NewTree[M comparable]() *Tree[M] {
	return &Tree[M]{
		nodes: []*Node[M]{{parent: NoNode, playerJustMoved: -1, available: 1}},
	}
}

func (t *Tree[M]) node(id NodeID) *Node[M] {
	t.mu.RLock()
	n := t.nodes[id]
	t.mu.RUnlock()
	return n
}

// Len is the number of nodes in the tree.
func (t *Tree[M]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.nodes)
}

// AddChild adds a child for move made by player. If parent already has a
// child for move (another worker was faster) that child is returned.
func (t *Tree[M]) AddChild(parent NodeID, move M, player int) NodeID {
	p := t.node(parent)
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range p.children {
		if t.node(id).move == move {
			return id
		}
	}

	t.mu.Lock()
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node[M]{
		move:            move,
		parent:          parent,
		playerJustMoved: player,
		available:       1,
	})
	t.mu.Unlock()

	p.children = append(p.children, id)
	return id
}

// Update adds one visit and, except at the root, the result of the finished
// game for the player that made the move into this node.
func (t *Tree[M]) Update(id NodeID, terminal Game[M]) {
	n := t.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.visits++
	if n.playerJustMoved >= 0 {
		n.score += terminal.Result(n.playerJustMoved)
	}
}

// UntriedMoves returns the legal moves without a child yet, in legal order.
func (t *Tree[M]) UntriedMoves(id NodeID, legal []M) []M {
	n := t.node(id)
	n.mu.Lock()
	tried := make(map[M]bool, len(n.children))
	for _, c := range n.children {
		tried[t.node(c).move] = true
	}
	n.mu.Unlock()

	var out []M
	for _, m := range legal {
		if !tried[m] {
			out = append(out, m)
		}
	}
	return out
}

// UCBScore is score/visits + c*sqrt(ln(available)/visits). An unvisited node
// scores +Inf so it is tried first.
func (t *Tree[M]) UCBScore(id NodeID, c float64) float64 {
	n := t.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.ucb(c)
}

func (n *Node[M]) ucb(c float64) float64 {
	if n.visits == 0 {
		return math.Inf(1)
	}
	v := float64(n.visits)
	return n.score/v + c*math.Sqrt(math.Log(float64(n.available))/v)
}

// UCBSelectChild kiest onder de kinderen waarvan de zet nu legaal is het kind
// met de hoogste UCB-score. Elk legaal kind telt één keer extra als
// "beschikbaar". Geeft NoNode als geen enkel kind legaal is.
func (t *Tree[M]) UCBSelectChild(id NodeID, legal []M, c float64) NodeID {
	isLegal := make(map[M]bool, len(legal))
	for _, m := range legal {
		isLegal[m] = true
	}

	p := t.node(id)
	p.mu.Lock()
	defer p.mu.Unlock()

	best := NoNode
	bestScore := math.Inf(-1)
	for _, cid := range p.children {
		ch := t.node(cid)
		ch.mu.Lock()
		if isLegal[ch.move] {
			ch.available++
			if s := ch.ucb(c); best == NoNode || s > bestScore {
				best, bestScore = cid, s
			}
		}
		ch.mu.Unlock()
	}
	return best
}

// AddVirtualLoss counts a visit without a result, steering concurrent
// workers away from a node that is being explored.
func (t *Tree[M]) AddVirtualLoss(id NodeID) {
	n := t.node(id)
	n.mu.Lock()
	n.visits++
	n.mu.Unlock()
}

// RemoveVirtualLoss undoes AddVirtualLoss.
func (t *Tree[M]) RemoveVirtualLoss(id NodeID) {
	n := t.node(id)
	n.mu.Lock()
	n.visits--
	n.mu.Unlock()
}

func (t *Tree[M]) Move(id NodeID) M { return t.node(id).move }

func (t *Tree[M]) Parent(id NodeID) NodeID { return t.node(id).parent }

// PlayerJustMoved is the player whose move led to id; -1 for the root.
func (t *Tree[M]) PlayerJustMoved(id NodeID) int { return t.node(id).playerJustMoved }

func (t *Tree[M]) Children(id NodeID) []NodeID {
	n := t.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// Stats returns visits, accumulated score and availability of id.
func (t *Tree[M]) Stats(id NodeID) (visits int, score float64, available int) {
	n := t.node(id)
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.visits, n.score, n.available
}

func (t *Tree[M]) Visits(id NodeID) int {
	v, _, _ := t.Stats(id)
	return v
}
