package enums

import "fmt"

// SortKey names a catalog sort column accepted by the product list endpoint.
type SortKey string

const (
	SortKeyCreatedAt SortKey = "create_at"
	SortKeyPrice     SortKey = "price"
	SortKeyName      SortKey = "name"
)

var validSortKeys = []SortKey{SortKeyCreatedAt, SortKeyPrice, SortKeyName}

func (s SortKey) String() string {
	return string(s)
}

func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey.
func ParseSortKey(value string) (SortKey, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortOrder is the catalog sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

func (s SortOrder) String() string {
	return string(s)
}

func (s SortOrder) IsValid() bool {
	return s == SortOrderAsc || s == SortOrderDesc
}

// ParseSortOrder converts raw input into a SortOrder.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(value) {
	case SortOrderAsc:
		return SortOrderAsc, nil
	case SortOrderDesc:
		return SortOrderDesc, nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}
