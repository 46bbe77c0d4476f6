package validation

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	MaxOffset    = 1_000_000
)

// Pagination never fails: unusable input falls back to the defaults. Values must be whole integers; trailing
// characters ("10abc", "2.5") make the value unusable instead of keeping the leading digits.
func Pagination(limitRaw, offsetRaw string) (limit, offset int) {
	limit, err := strconv.Atoi(strings.TrimSpace(limitRaw))
	if err != nil || limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	offsetRaw = strings.TrimSpace(offsetRaw)
	offset, err = strconv.Atoi(offsetRaw)
	switch {
	case errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(offsetRaw, "-"):
		offset = MaxOffset
	case err != nil || offset < 0:
		offset = 0
	case offset > MaxOffset:
		offset = MaxOffset
	}

	return limit, offset
}
