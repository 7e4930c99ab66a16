package correlogram

import (
	"fmt"
	"strings"
)

// Method selects the pair-histogram kernel.
type Method int

const (
	// MethodAuto resolves to MethodCompiled when available, else MethodVectorized.
	MethodAuto Method = iota
	// MethodVectorized is the batch shift-scan kernel.
	MethodVectorized
	// MethodCompiled is the windowed nested-loop kernel.
	MethodCompiled
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodVectorized:
		return "vectorized"
	case MethodCompiled:
		return "compiled"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

func (m Method) valid() bool {
	return m >= MethodAuto && m <= MethodCompiled
}

// ParseMethod parses a method name. "numpy" and "numba" are accepted as
// aliases of "vectorized" and "compiled".
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto", "":
		return MethodAuto, nil
	case "vectorized", "numpy":
		return MethodVectorized, nil
	case "compiled", "numba":
		return MethodCompiled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, name)
	}
}
