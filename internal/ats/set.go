package ats

import "sort"

// Set is an unordered collection of lower-cased terms.
type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s Set) Add(item string) { s[item] = struct{}{} }

func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s Set) Len() int { return len(s) }

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	items := make([]string, 0, len(s))
	for item := range s {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// IsSubsetOf reports whether every member of s is in other.
func (s Set) IsSubsetOf(other Set) bool {
	for item := range s {
		if !other.Has(item) {
			return false
		}
	}
	return true
}
