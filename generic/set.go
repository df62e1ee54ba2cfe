package generic

// Void is a zero-size placeholder for map values that only exist for their keys.
type Void = struct{}

type Set[T comparable] interface {
	// Add inserts the item, returning false if it was already present.
	Add(item T) bool
	Clear()
	// Contains returns true only if every item is present.
	Contains(items ...T) bool
	Count() int
	// Remove deletes the item, returning false if it was not present.
	Remove(item T) bool
	ToSlice() []T
	Clone() Set[T]
}

func NewSet[T comparable](items ...T) Set[T] {
	s := make(set[T], len(items))
	for _, item := range items {
		s.Add(item)
	}
	return &s
}

type set[T comparable] map[T]Void

func (s *set[T]) Add(item T) bool {
	if _, found := (*s)[item]; found {
		return false
	}
	(*s)[item] = Void{}
	return true
}

func (s *set[T]) Clear() {
	*s = make(set[T])
}

func (s *set[T]) Contains(items ...T) bool {
	for _, item := range items {
		if _, found := (*s)[item]; !found {
			return false
		}
	}
	return true
}

func (s *set[T]) Count() int {
	return len(*s)
}

func (s *set[T]) Remove(item T) bool {
	if _, found := (*s)[item]; !found {
		return false
	}
	delete(*s, item)
	return true
}

func (s *set[T]) ToSlice() []T {
	slice := make([]T, 0, len(*s))
	for item := range *s {
		slice = append(slice, item)
	}
	return slice
}

func (s *set[T]) Clone() Set[T] {
	clone := make(set[T], len(*s))
	for item := range *s {
		clone[item] = Void{}
	}
	return &clone
}
