package core

// Ledger is the ordered sequence of transactions, newest first. Operations
// never modify the receiver; they return the updated sequence.
type Ledger []Transaction

// Add returns a ledger with t in front of l.
func (l Ledger) Add(t Transaction) Ledger {
	out := make(Ledger, 0, len(l)+1)
	out = append(out, t)
	return append(out, l...)
}

// Remove returns l without the transaction whose identifier is id. When no
// transaction matches, the result equals l.
func (l Ledger) Remove(id string) Ledger {
	out := make(Ledger, 0, len(l))
	for _, t := range l {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Contains reports whether a transaction with the identifier exists.
func (l Ledger) Contains(id string) bool {
	for _, t := range l {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares nothing with l.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	out := make(Ledger, len(l))
	copy(out, l)
	return out
}
