// Package list implements an intrusive doubly linked list bounded by two
// sentinel nodes.
//
// Unlike [container/list], a [Node] is owned by the caller: it is allocated
// once, embedded in or pointing at caller data, and spliced in and out of a
// [List] without further allocation. The list itself never owns keys or
// values. [Remove] and [InsertAfter] are purely structural and run in O(1).
//
// The sentinels live inside the [List] value, so a List must not be copied
// once it has been used.
package list
