package ir

// listElem is the intrusive link embedded in a List; kept as a separate
// struct (rather than fields on Node) so a node can only ever belong to one
// list at a time and unlinking is O(1).
type listElem struct {
	node       *Node
	prev, next *listElem
}

// List is an ordered sequence of IR nodes which it exclusively owns:
// destroying the list destroys its nodes, recursively through the child
// lists of any If/Loop nodes it contains (§3 "Ownership").
type List struct {
	head, tail *listElem
	length     int
}

// NewList constructs an empty instruction list.
func NewList() *List {
	return &List{}
}

// Len returns the number of nodes in this list.
func (l *List) Len() int {
	return l.length
}

// Front returns the first node in the list, or nil if empty.
func (l *List) Front() *Node {
	if l.head == nil {
		return nil
	}
	//
	return l.head.node
}

// Back returns the last node in the list, or nil if empty.
func (l *List) Back() *Node {
	if l.tail == nil {
		return nil
	}
	//
	return l.tail.node
}

// Nodes returns every node in this list, in order. The returned slice is a
// fresh copy safe to mutate.
func (l *List) Nodes() []*Node {
	out := make([]*Node, 0, l.length)
	//
	for e := l.head; e != nil; e = e.next {
		out = append(out, e.node)
	}
	//
	return out
}

// PushBack appends n to the end of the list.
func (l *List) PushBack(n *Node) {
	e := &listElem{node: n}
	n.list, n.elem = l, e
	//
	if l.tail == nil {
		l.head, l.tail = e, e
	} else {
		e.prev = l.tail
		l.tail.next = e
		l.tail = e
	}
	//
	l.length++
}

// PushFront prepends n to the start of the list.
func (l *List) PushFront(n *Node) {
	e := &listElem{node: n}
	n.list, n.elem = l, e
	//
	if l.head == nil {
		l.head, l.tail = e, e
	} else {
		e.next = l.head
		l.head.prev = e
		l.head = e
	}
	//
	l.length++
}

// InsertBefore inserts n immediately before mark, which must currently belong
// to this list.
func (l *List) InsertBefore(n *Node, mark *Node) {
	if mark.list != l {
		panic("ir: InsertBefore mark does not belong to this list")
	}
	//
	at := mark.elem
	e := &listElem{node: n, prev: at.prev, next: at}
	n.list, n.elem = l, e
	//
	if at.prev != nil {
		at.prev.next = e
	} else {
		l.head = e
	}
	//
	at.prev = e
	l.length++
}

// InsertAfter inserts n immediately after mark, which must currently belong
// to this list.
func (l *List) InsertAfter(n *Node, mark *Node) {
	if mark.list != l {
		panic("ir: InsertAfter mark does not belong to this list")
	}
	//
	at := mark.elem
	e := &listElem{node: n, prev: at, next: at.next}
	n.list, n.elem = l, e
	//
	if at.next != nil {
		at.next.prev = e
	} else {
		l.tail = e
	}
	//
	at.next = e
	l.length++
}

// PrependList splices the entire contents of other onto the front of l,
// leaving other empty. Used by entry-point lowering to splice static
// initializers ahead of the entry body.
func (l *List) PrependList(other *List) {
	if other.length == 0 {
		return
	}
	//
	for e := other.head; e != nil; e = e.next {
		e.node.list = l
	}
	//
	if l.head == nil {
		l.head, l.tail = other.head, other.tail
	} else {
		other.tail.next = l.head
		l.head.prev = other.tail
		l.head = other.head
	}
	//
	l.length += other.length
	other.head, other.tail, other.length = nil, nil, 0
}

// Remove unlinks n from the list in O(1); n is not destroyed and its outbound
// slots are left intact, so the caller remains free to re-insert it
// elsewhere.
func (l *List) Remove(n *Node) {
	if n.list != l {
		panic("ir: Remove node does not belong to this list")
	}
	//
	e := n.elem
	//
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	//
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	//
	n.list, n.elem = nil, nil
	l.length--
}

// Destroy tears down this list and every node it owns, recursively through
// the child lists of any If/Loop nodes. The walk is performed iteratively
// over an explicit work stack (rather than via Go call recursion) so that
// pathologically deep nesting cannot overflow the native stack (§9 "Recursive
// tree destruction").
func (l *List) Destroy() {
	stack := []*List{l}
	//
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		//
		for e := cur.head; e != nil; e = e.next {
			n := e.node
			//
			switch n.Kind {
			case KindIf:
				stack = append(stack, n.If.Then, n.If.Else)
			case KindLoop:
				stack = append(stack, n.Loop.Body)
			}
			//
			for _, s := range n.Operands() {
				s.Set(nil)
			}
			//
			n.list, n.elem = nil, nil
		}
		//
		cur.head, cur.tail, cur.length = nil, nil, 0
	}
}
