// Package policy holds the board's category partition and access rules.
package policy

import (
	"strings"

	apperrors "noticeboard/internal/errors"
)

// Category labels as stored and displayed.
const (
	CategoryInquiry    = "문의사항"
	CategorySuggestion = "건의사항"
	CategoryOther      = "기타"
	CategoryNotice     = "공지사항"
	CategoryEvent      = "이벤트"

	// CategoryAll is the list filter value meaning "no category filter".
	CategoryAll = "전체"
)

// Class is how a category is treated by listing and detail views.
type Class int

const (
	ClassInvalid Class = iota
	// ClassListed categories appear in the board list and accept member posts.
	ClassListed
	// ClassDetailOnly categories never appear in the list but anyone may open them.
	ClassDetailOnly
)

var (
	listedCategories     = []string{CategoryInquiry, CategorySuggestion, CategoryOther}
	detailOnlyCategories = []string{CategoryNotice, CategoryEvent}
)

// ListedCategories returns the categories shown in the board list, in display order.
func ListedCategories() []string {
	return append([]string(nil), listedCategories...)
}

// DetailOnlyCategories returns the categories hidden from the list.
func DetailOnlyCategories() []string {
	return append([]string(nil), detailOnlyCategories...)
}

// DefaultCategory is used when a new post does not name one.
func DefaultCategory() string {
	return listedCategories[0]
}

// Classify reports how label is treated.
func Classify(label string) Class {
	for _, c := range listedCategories {
		if c == label {
			return ClassListed
		}
	}
	for _, c := range detailOnlyCategories {
		if c == label {
			return ClassDetailOnly
		}
	}
	return ClassInvalid
}

// IsAll reports whether a list filter value means "every listed category".
func IsAll(filter string) bool {
	filter = strings.TrimSpace(filter)
	return filter == "" || filter == CategoryAll || strings.EqualFold(filter, "ALL")
}

// CategoryForCreate checks a category chosen for a new member post. Only
// listed categories are accepted; an explicitly empty label is not.
func CategoryForCreate(label string) (string, error) {
	if Classify(label) != ClassListed {
		return "", apperrors.ErrCategoryNotAllowed
	}
	return label, nil
}
