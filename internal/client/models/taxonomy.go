package models

import "slices"

// Category is the top level ("major head") of the document taxonomy.
type Category string

const (
	CategoryPersonal     Category = "Personal"
	CategoryProfessional Category = "Professional"
)

var categories = []Category{CategoryPersonal, CategoryProfessional}

var subCategories = map[Category][]string{
	CategoryPersonal:     {"John", "Tom", "Emily", "Sarah", "Michael", "Jessica"},
	CategoryProfessional: {"Accounts", "HR", "IT", "Finance", "Marketing", "Sales"},
}

// Categories lists the major heads in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory matches s exactly against the known major heads.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := subCategories[c]; !ok {
		return "", newValidationError("major_head", "unknown category "+s)
	}
	return c, nil
}

// SubCategoriesFor returns the minor heads allowed under c, in display order.
// The returned slice is a copy and may be modified by the caller.
func SubCategoriesFor(c Category) ([]string, error) {
	subs, ok := subCategories[c]
	if !ok {
		return nil, newValidationError("major_head", "unknown category "+string(c))
	}
	return slices.Clone(subs), nil
}

// Heads holds a (major, minor) classification. The minor head is always a
// member of the set for the current major head: switching the major head
// clears it.
type Heads struct {
	major Category
	minor string
}

func (h Heads) Major() Category { return h.major }
func (h Heads) Minor() string   { return h.minor }

// SetMajor selects a category. An empty value clears both heads.
func (h *Heads) SetMajor(c Category) error {
	if c == "" {
		h.Clear()
		return nil
	}
	if _, err := SubCategoriesFor(c); err != nil {
		return err
	}
	if c != h.major {
		h.minor = ""
	}
	h.major = c
	return nil
}

// SetMinor selects a sub-category of the current major head. An empty value
// clears the minor head only.
func (h *Heads) SetMinor(minor string) error {
	if minor == "" {
		h.minor = ""
		return nil
	}
	if h.major == "" {
		return newValidationError("minor_head", "select a category first")
	}
	subs, _ := SubCategoriesFor(h.major)
	if !slices.Contains(subs, minor) {
		return newValidationError("minor_head", minor+" is not a "+string(h.major)+" sub-category")
	}
	h.minor = minor
	return nil
}

func (h *Heads) Clear() {
	h.major, h.minor = "", ""
}
