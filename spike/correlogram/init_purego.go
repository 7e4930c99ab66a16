//go:build purego

package correlogram

import (
	_ "github.com/cwbudde/algo-spike/spike/correlogram/internal/arch/batch"
)
