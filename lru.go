package geocache

// recencyList is the eviction tracker: an intrusive doubly linked list
// ordered by recency, oldest first, plus the monotonic token clock.
//
// Invariants between the fake sentinels:
//   - {head, all owned entries, tail} form a correct doubly linked list.
//   - entry order matches recency token order ascending, and tokens are
//     unique (the clock is advanced only under the controller mutex),
//     so the front entry is always the global least-recently-used.
//   - n equals the number of owned entries.
//
// Fake head/tail sentinels avoid nil checks in link manipulation.
// nil <- head <-> e_0 <-> ... <-> e_(n-1) <-> tail -> nil
type recencyList[V any] struct {
	clock uint64
	n     int

	head *entry[V] // head.next is the least recently used entry
	tail *entry[V] // tail.prev is the most recently used entry
}

func newRecencyList[V any]() *recencyList[V] {
	l := &recencyList[V]{head: &entry[V]{}, tail: &entry[V]{}}
	link(l.head, l.tail)
	return l
}

func link[V any](a, b *entry[V]) { a.next, b.prev = b, a }

// push stamps a fresh recency token on e and attaches it at the most
// recently used end. e must not already be owned by the list.
func (l *recencyList[V]) push(e *entry[V]) {
	l.clock++
	e.recency = l.clock
	link(l.tail.prev, e)
	link(e, l.tail)
	l.n++
}

// touch restamps e's recency token and moves it to the most recently
// used end.
func (l *recencyList[V]) touch(e *entry[V]) {
	l.remove(e)
	l.push(e)
}

// remove unlinks e from the list.
func (l *recencyList[V]) remove(e *entry[V]) {
	link(e.prev, e.next)
	e.prev, e.next = nil, nil
	l.n--
}

// victim returns the entry with the smallest recency token, or nil for
// an empty list. Tokens are unique, so list order already encodes the
// smallest-insertion-seq tie-break.
func (l *recencyList[V]) victim() *entry[V] {
	if l.n == 0 {
		return nil
	}
	return l.head.next
}

func (l *recencyList[V]) len() int { return l.n }
