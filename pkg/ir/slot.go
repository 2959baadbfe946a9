package ir

// Slot is a single source position inside a node: a back-edge which both
// holds a pointer to its current referent and is threaded onto that
// referent's uses list. Rewiring a slot updates both sides atomically, which
// is the foundation the Use/Def invariant in §3 rests on.
type Slot struct {
	referent *Node
}

// Get returns the node this slot currently references, or nil if the slot is
// empty (e.g. an absent optional offset expression).
func (s *Slot) Get() *Node {
	if s == nil {
		return nil
	}
	//
	return s.referent
}

// Set rewires this slot to reference n, unlinking it from its previous
// referent's uses list (if any) and linking it onto n's uses list (if n is
// non-nil).
func (s *Slot) Set(n *Node) {
	if s.referent == n {
		return
	}
	//
	if s.referent != nil {
		s.referent.removeUse(s)
	}
	//
	s.referent = n
	//
	if n != nil {
		n.uses = append(n.uses, s)
	}
}

func (n *Node) removeUse(s *Slot) {
	for i, u := range n.uses {
		if u == s {
			n.uses = append(n.uses[:i], n.uses[i+1:]...)
			return
		}
	}
}
