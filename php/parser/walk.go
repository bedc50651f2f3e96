package parser

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(n *Node) bool

// Walk traverses the tree in depth-first, source order. It keeps its own
// stack, so deeply nested input does not grow the goroutine stack.
func Walk(root *Node, v Visitor) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !v(n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Inspect returns the nodes of the given kinds in source order.
func Inspect(root *Node, kinds ...Kind) []*Node {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	var found []*Node
	Walk(root, func(n *Node) bool {
		if want[n.Kind] {
			found = append(found, n)
		}
		return true
	})
	return found
}

// Dispatcher calls one registered callback per Kind while walking a tree.
// Passes that only care about a few constructs register for those and
// ignore the rest.
type Dispatcher struct {
	callbacks map[Kind][]func(*Node)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{callbacks: make(map[Kind][]func(*Node))}
}

// On registers fn for nodes of kind. Callbacks for the same kind run in
// registration order.
func (d *Dispatcher) On(kind Kind, fn func(*Node)) *Dispatcher {
	d.callbacks[kind] = append(d.callbacks[kind], fn)
	return d
}

func (d *Dispatcher) Dispatch(root *Node) {
	Walk(root, func(n *Node) bool {
		for _, fn := range d.callbacks[n.Kind] {
			fn(n)
		}
		return true
	})
}
