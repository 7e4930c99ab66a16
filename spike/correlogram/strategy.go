package correlogram

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-spike/spike/correlogram/internal/arch/registry"
	"github.com/cwbudde/algo-spike/spike/train"
)

// Strategy computes the correlogram of one pair of trains in one segment.
//
// Histogram returns g.NumBins counts of the lags b[j]-a[i] inside the
// window. With autoPair set, a and b are the same train and a spike is
// never paired with itself; duplicate timestamps still pair with each other.
type Strategy interface {
	Method() Method
	Name() string
	Histogram(a, b train.Train, g Geometry, autoPair bool) []int64
}

type kernelStrategy struct {
	method Method
	name   string
	fn     registry.HistogramFn
}

func (s kernelStrategy) Method() Method { return s.method }

func (s kernelStrategy) Name() string { return s.name }

func (s kernelStrategy) Histogram(a, b train.Train, g Geometry, autoPair bool) []int64 {
	return s.fn(a, b, g.kernelBins(), autoPair)
}

// StrategyFor returns the kernel implementing a concrete method.
// MethodAuto must be resolved with ResolveMethod first. Requesting
// MethodCompiled when it is not available returns ErrBackendUnavailable.
func StrategyFor(m Method) (Strategy, error) {
	var kind registry.Kind
	switch m {
	case MethodVectorized:
		kind = registry.KindBatch
	case MethodCompiled:
		kind = registry.KindLoop
	case MethodAuto:
		return nil, fmt.Errorf("%w: %s must be resolved to a concrete method", ErrUnsupportedMethod, m)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}

	entry := registry.Global.Lookup(kind, cpu.DetectFeatures())
	if entry == nil {
		if m == MethodCompiled {
			return nil, ErrBackendUnavailable
		}
		return nil, fmt.Errorf("correlogram: no %s kernel registered", kind)
	}

	return kernelStrategy{method: m, name: entry.Name, fn: entry.Histogram}, nil
}

// CompiledAvailable reports whether the compiled kernel can run: it is part
// of the build and the CPU features do not force the generic path.
func CompiledAvailable() bool {
	return registry.Global.Lookup(registry.KindLoop, cpu.DetectFeatures()) != nil
}

// ResolveMethod maps a requested method to the one that will run.
// MethodAuto and MethodCompiled fall back to MethodVectorized when the
// compiled kernel is unavailable; the fallback is logged as a warning and
// is not an error.
func ResolveMethod(m Method, logger *slog.Logger) (Method, error) {
	switch m {
	case MethodVectorized:
		return m, nil
	case MethodAuto, MethodCompiled:
		if CompiledAvailable() {
			return MethodCompiled, nil
		}
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("falling back to vectorized correlogram method",
			slog.String("requested", m.String()),
			slog.String("reason", ErrBackendUnavailable.Error()),
		)
		return MethodVectorized, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedMethod, m)
	}
}
