package list

import "iter"

// Node is an element of a [List].
type Node[T any] struct {
	// Value is the caller's payload. Sentinel nodes hold the zero value.
	Value T

	prev, next *Node[T]
}

// Linked reports whether n is currently spliced into a list.
func (n *Node[T]) Linked() bool { return n.prev != nil || n.next != nil }

// List is a doubly linked list with head and tail sentinels.
//
// The zero value is an empty list ready to use.
type List[T any] struct {
	head, tail Node[T]
}

// New returns an initialized empty list.
func New[T any]() *List[T] { return new(List[T]).Init() }

// Init links the sentinels directly to each other, discarding any nodes
// previously in l. Discarded nodes keep their stale links and must not be
// passed to [Remove].
func (l *List[T]) Init() *List[T] {
	l.head.prev = nil
	l.head.next = &l.tail
	l.tail.prev = &l.head
	l.tail.next = nil

	return l
}

func (l *List[T]) lazyInit() {
	if l.head.next == nil {
		l.Init()
	}
}

// Head returns the head sentinel. Its successor is the first element.
func (l *List[T]) Head() *Node[T] {
	l.lazyInit()

	return &l.head
}

// Tail returns the tail sentinel. Its predecessor is the last element.
func (l *List[T]) Tail() *Node[T] {
	l.lazyInit()

	return &l.tail
}

// Front returns the first element of l or nil if l is empty.
func (l *List[T]) Front() *Node[T] {
	l.lazyInit()

	if l.head.next == &l.tail {
		return nil
	}

	return l.head.next
}

// Back returns the last element of l or nil if l is empty.
func (l *List[T]) Back() *Node[T] {
	l.lazyInit()

	if l.tail.prev == &l.head {
		return nil
	}

	return l.tail.prev
}

// IsFront reports whether n is the first element of l.
func (l *List[T]) IsFront(n *Node[T]) bool {
	l.lazyInit()

	return l.head.next == n
}

// PushFront links n immediately after the head sentinel.
func (l *List[T]) PushFront(n *Node[T]) { InsertAfter(l.Head(), n) }

// MoveToFront relinks an element of l immediately after the head sentinel.
// It is a no-op if n is already first.
func (l *List[T]) MoveToFront(n *Node[T]) {
	if l.IsFront(n) {
		return
	}

	Remove(n)
	InsertAfter(&l.head, n)
}

// All returns an iterator over the elements of l from front to back.
// The iterator tolerates removal of the element it just yielded.
func (l *List[T]) All() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		l.lazyInit()

		for n := l.head.next; n != &l.tail; {
			next := n.next
			if !yield(n) {
				return
			}

			n = next
		}
	}
}

// Backward returns an iterator over the elements of l from back to front.
func (l *List[T]) Backward() iter.Seq[*Node[T]] {
	return func(yield func(*Node[T]) bool) {
		l.lazyInit()

		for n := l.tail.prev; n != &l.head; {
			prev := n.prev
			if !yield(n) {
				return
			}

			n = prev
		}
	}
}

// Len walks l and returns the number of elements. It is O(n).
func (l *List[T]) Len() int {
	count := 0
	for range l.All() {
		count++
	}

	return count
}

// Remove splices n out of its list and clears its links.
//
// Remove panics if n is a sentinel or is not linked.
func Remove[T any](n *Node[T]) {
	if n.prev == nil || n.next == nil {
		panic("list: remove of unlinked or sentinel node")
	}

	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
}

// InsertAfter links n immediately after dest.
//
// InsertAfter panics if n is already linked or if dest is a tail sentinel or
// unlinked.
func InsertAfter[T any](dest, n *Node[T]) {
	if n.Linked() {
		panic("list: insert of linked node")
	}

	if dest.next == nil {
		panic("list: insert after tail sentinel or unlinked node")
	}

	n.next = dest.next
	n.prev = dest
	dest.next.prev = n
	dest.next = n
}
