package models

import (
	"slices"
	"strings"
)

// TagRef is the wire form of a tag.
type TagRef struct {
	TagName string `json:"tag_name"`
}

// TagSet is an insertion-ordered set of trimmed, non-empty labels. Equality
// is exact and case-sensitive. The zero value is an empty set.
type TagSet struct {
	tags []string
}

func NewTagSet(tags ...string) *TagSet {
	s := &TagSet{}
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add trims tag and appends it unless it is empty or already present.
// It reports whether the set changed.
func (s *TagSet) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.tags = append(s.tags, tag)
	return true
}

// Remove deletes the exact match of tag, reporting whether it was present.
func (s *TagSet) Remove(tag string) bool {
	i := slices.Index(s.tags, tag)
	if i < 0 {
		return false
	}
	s.tags = slices.Delete(s.tags, i, i+1)
	return true
}

func (s *TagSet) Contains(tag string) bool {
	return slices.Contains(s.tags, tag)
}

func (s *TagSet) Len() int {
	return len(s.tags)
}

// Items returns a copy of the tags in insertion order.
func (s *TagSet) Items() []string {
	return slices.Clone(s.tags)
}

func (s *TagSet) Clear() {
	s.tags = nil
}

// Refs returns the wire form of the set; nil for an empty set.
func (s *TagSet) Refs() []TagRef {
	if len(s.tags) == 0 {
		return nil
	}
	refs := make([]TagRef, len(s.tags))
	for i, t := range s.tags {
		refs[i] = TagRef{TagName: t}
	}
	return refs
}
