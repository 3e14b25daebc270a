package poll

import (
	"slices"
	"strconv"
	"strings"
)

// ResponseCodes is a sorted set of HTTP status codes accepted as healthy.
type ResponseCodes []int

// NewResponseCodes builds a set from codes, dropping duplicates.
func NewResponseCodes(codes ...int) ResponseCodes {
	set := slices.Clone(codes)
	slices.Sort(set)
	return ResponseCodes(slices.Compact(set))
}

// Contains reports whether code is in the set.
func (r ResponseCodes) Contains(code int) bool {
	return slices.Contains(r, code)
}

// String renders the set as "[200, 302]".
func (r ResponseCodes) String() string {
	parts := make([]string, len(r))
	for i, code := range r {
		parts[i] = strconv.Itoa(code)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
