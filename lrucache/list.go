package lrucache

// null marks an absent link in the arena.
const null = -1

// entry is one arena slot. While the slot sits on the free-list only next is meaningful.
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  int
	next  int
}

// recencyList is a doubly-linked list over an arena of slots addressed by index.
// head is the most recently used entry, tail the least recently used one.
type recencyList[K comparable, V any] struct {
	slots []entry[K, V]
	head  int
	tail  int
	free  int // голова списка свободных слотов, связанных через next
	len   int
}

func newRecencyList[K comparable, V any](capacity int) recencyList[K, V] {
	return recencyList[K, V]{
		slots: make([]entry[K, V], 0, capacity),
		head:  null,
		tail:  null,
		free:  null,
	}
}

// pushFront stores key/value in a free slot (or a new one) and links it as head.
func (l *recencyList[K, V]) pushFront(key K, value V) int {
	var i int
	if l.free != null {
		i = l.free
		l.free = l.slots[i].next
		l.slots[i] = entry[K, V]{key: key, value: value}
	} else {
		i = len(l.slots)
		l.slots = append(l.slots, entry[K, V]{key: key, value: value})
	}

	l.linkFront(i)
	l.len++
	return i
}

// moveToFront marks slot i as the most recently used one.
func (l *recencyList[K, V]) moveToFront(i int) {
	if l.head == i {
		return
	}
	l.unlink(i)
	l.linkFront(i)
}

// remove unlinks slot i, puts it on the free-list and returns what it held.
func (l *recencyList[K, V]) remove(i int) (K, V) {
	l.unlink(i)

	e := &l.slots[i]
	key, value := e.key, e.value

	// Обнуляем слот, чтобы не держать ссылки на ключ и значение.
	*e = entry[K, V]{prev: null, next: l.free}
	l.free = i
	l.len--
	return key, value
}

func (l *recencyList[K, V]) reset() {
	clear(l.slots)
	l.slots = l.slots[:0]
	l.head, l.tail, l.free = null, null, null
	l.len = 0
}

func (l *recencyList[K, V]) linkFront(i int) {
	e := &l.slots[i]
	e.prev = null
	e.next = l.head
	if l.head != null {
		l.slots[l.head].prev = i
	} else {
		l.tail = i
	}
	l.head = i
}

func (l *recencyList[K, V]) unlink(i int) {
	e := &l.slots[i]
	if e.prev != null {
		l.slots[e.prev].next = e.next
	} else {
		l.head = e.next
	}
	if e.next != null {
		l.slots[e.next].prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.prev, e.next = null, null
}
