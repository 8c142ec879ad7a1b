package accounting

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
)

// CodeRange is an inclusive numeric account code range with a preferred code.
type CodeRange struct {
	Preferred int
	Min       int
	Max       int
}

// Width is the number of digits codes in the range are rendered with.
func (r CodeRange) Width() int {
	return len(strconv.Itoa(r.Max))
}

// FormatCode renders code zero-padded to the range width.
func (r CodeRange) FormatCode(code int) string {
	return fmt.Sprintf("%0*d", r.Width(), code)
}

// UsedNumericCodes parses account codes into a set, skipping non-numeric ones.
func UsedNumericCodes(codes []string) map[int]struct{} {
	used := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		n, err := strconv.Atoi(c)
		if err != nil {
			continue
		}
		used[n] = struct{}{}
	}
	return used
}

// PickFirstUnusedNumericCode returns the lowest code in [from, to] not present
// in used, formatted to the width of to.
func PickFirstUnusedNumericCode(used map[int]struct{}, from, to int) (string, error) {
	r := CodeRange{Preferred: from, Min: from, Max: to}
	return r.Pick(used)
}

// Pick tries the preferred code first, then scans the range ascending.
func (r CodeRange) Pick(used map[int]struct{}) (string, error) {
	if r.Min > r.Max {
		return "", fmt.Errorf("%w: empty range %d-%d", apperrors.ErrExhaustedCodeRange, r.Min, r.Max)
	}
	if r.Preferred >= r.Min && r.Preferred <= r.Max {
		if _, taken := used[r.Preferred]; !taken {
			return r.FormatCode(r.Preferred), nil
		}
	}
	for code := r.Min; code <= r.Max; code++ {
		if _, taken := used[code]; !taken {
			return r.FormatCode(code), nil
		}
	}
	return "", fmt.Errorf("%w: %d-%d", apperrors.ErrExhaustedCodeRange, r.Min, r.Max)
}
