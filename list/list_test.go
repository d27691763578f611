package list

import (
	"slices"
	"testing"
)

func values[T any](l *List[T]) []T {
	var out []T
	for n := range l.All() {
		out = append(out, n.Value)
	}

	return out
}

func TestList_New_Empty(t *testing.T) {
	l := New[int]()

	if l.Head().next != l.Tail() || l.Tail().prev != l.Head() {
		t.Fatal("expected sentinels linked to each other")
	}

	if l.Front() != nil || l.Back() != nil {
		t.Error("expected Front and Back to be nil for empty list")
	}

	if l.Len() != 0 {
		t.Errorf("expected length 0, got %d", l.Len())
	}
}

func TestList_ZeroValue(t *testing.T) {
	var l List[string]

	l.PushFront(&Node[string]{Value: "a"})

	if got := values(&l); !slices.Equal(got, []string{"a"}) {
		t.Errorf("expected [a], got %v", got)
	}
}

func TestList_InsertAfter(t *testing.T) {
	l := New[int]()
	a, b, c := &Node[int]{Value: 1}, &Node[int]{Value: 2}, &Node[int]{Value: 3}

	InsertAfter(l.Head(), a)
	InsertAfter(a, c)
	InsertAfter(a, b)

	if got := values(l); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("expected [1 2 3], got %v", got)
	}

	if l.Front() != a || l.Back() != c {
		t.Error("unexpected front/back")
	}

	var back []int
	for n := range l.Backward() {
		back = append(back, n.Value)
	}

	if !slices.Equal(back, []int{3, 2, 1}) {
		t.Errorf("expected backward [3 2 1], got %v", back)
	}
}

func TestList_Remove(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		want   []int
	}{
		{name: "first", remove: 0, want: []int{2, 3}},
		{name: "middle", remove: 1, want: []int{1, 3}},
		{name: "last", remove: 2, want: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New[int]()
			nodes := []*Node[int]{{Value: 3}, {Value: 2}, {Value: 1}}

			for _, n := range nodes {
				l.PushFront(n)
			}

			slices.Reverse(nodes)

			victim := nodes[tt.remove]
			Remove(victim)

			if victim.Linked() {
				t.Error("expected removed node links to be cleared")
			}

			if got := values(l); !slices.Equal(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestList_RemoveDuringIteration(t *testing.T) {
	l := New[int]()
	for i := range 5 {
		l.PushFront(&Node[int]{Value: i})
	}

	for n := range l.All() {
		if n.Value%2 == 0 {
			Remove(n)
		}
	}

	if got := values(l); !slices.Equal(got, []int{3, 1}) {
		t.Errorf("expected [3 1], got %v", got)
	}
}

func TestList_MoveToFront(t *testing.T) {
	l := New[string]()
	a, b := &Node[string]{Value: "a"}, &Node[string]{Value: "b"}

	l.PushFront(a)
	l.PushFront(b)
	l.MoveToFront(a)

	if got := values(l); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}

	l.MoveToFront(a)

	if !l.IsFront(a) || l.Len() != 2 {
		t.Error("moving the front node must be a no-op")
	}
}

func TestList_Init_Clears(t *testing.T) {
	l := New[int]()
	l.PushFront(&Node[int]{Value: 1})
	l.Init()

	if l.Front() != nil {
		t.Error("expected empty list after Init")
	}
}

func TestList_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{
			name: "remove unlinked",
			fn:   func() { Remove(&Node[int]{}) },
		},
		{
			name: "remove head sentinel",
			fn:   func() { Remove(New[int]().Head()) },
		},
		{
			name: "insert after tail",
			fn: func() {
				l := New[int]()
				InsertAfter(l.Tail(), &Node[int]{})
			},
		},
		{
			name: "insert linked node",
			fn: func() {
				l := New[int]()
				n := &Node[int]{}
				l.PushFront(n)
				l.PushFront(n)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()

			tt.fn()
		})
	}
}
