package cache

// lruNode is one key in a recency ring.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList orders keys by recency around a sentinel: root.next is the most
// recently used key and root.prev the least. Not safe for concurrent use.
type lruList[K comparable] struct {
	root lruNode[K]
	n    int
}

func newLRUList[K comparable]() *lruList[K] {
	l := &lruList[K]{}
	l.root.prev, l.root.next = &l.root, &l.root
	return l
}

func (l *lruList[K]) Len() int { return l.n }

// PushFront adds key as the most recently used entry.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	nd := &lruNode[K]{key: key}
	l.insertAfter(nd, &l.root)
	l.n++
	return nd
}

// MoveToFront marks nd as just used.
func (l *lruList[K]) MoveToFront(nd *lruNode[K]) {
	if nd == nil || nd.prev == nil || l.root.next == nd {
		return
	}
	l.detach(nd)
	l.insertAfter(nd, &l.root)
}

// Remove drops nd. Removing a node twice is a no-op.
func (l *lruList[K]) Remove(nd *lruNode[K]) {
	if nd == nil || nd.prev == nil {
		return
	}
	l.detach(nd)
	nd.prev, nd.next = nil, nil
	l.n--
}

// Oldest returns the least recently used key.
func (l *lruList[K]) Oldest() (key K, ok bool) {
	if l.n == 0 {
		return key, false
	}
	return l.root.prev.key, true
}

// RemoveOldest drops and returns the least recently used key.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	key, ok := l.Oldest()
	if ok {
		l.Remove(l.root.prev)
	}
	return key, ok
}

func (l *lruList[K]) Clear() {
	l.root.prev, l.root.next = &l.root, &l.root
	l.n = 0
}

func (l *lruList[K]) insertAfter(nd, at *lruNode[K]) {
	nd.prev, nd.next = at, at.next
	at.next.prev = nd
	at.next = nd
}

func (l *lruList[K]) detach(nd *lruNode[K]) {
	nd.prev.next = nd.next
	nd.next.prev = nd.prev
}
