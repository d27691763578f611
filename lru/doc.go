// Package lru implements a fixed-capacity least-recently-used cache keyed by
// string.
//
// A Go map indexes [list.Node] entries for O(1) lookup while an intrusive
// [list.List] tracks recency: the element after the head sentinel is the
// most recently used entry and the element before the tail sentinel is the
// least recently used. Get, Put and Remove are O(1).
//
// A [Cache] is not safe for concurrent use. Callers that share one between
// goroutines must guard every method, including Get, which reorders the
// recency list.
package lru
