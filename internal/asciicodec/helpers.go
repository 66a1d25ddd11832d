package asciicodec

import (
	"math"

	"github.com/scigolib/irap/internal/utils"
)

func float32NaN() float32 {
	return float32(math.NaN())
}

func isNaN32(v float32) bool {
	return v != v
}

// safeGridCount computes ncol*nrow, guarding against overflow and against a
// header that would demand an unreasonably large allocation.
func safeGridCount(ncol, nrow uint64) (uint64, error) {
	total, err := utils.SafeMultiply(ncol, nrow)
	if err != nil {
		return 0, err
	}
	if err := utils.ValidateBufferSize(total, utils.MaxGridElements, "grid sample count"); err != nil {
		return 0, err
	}
	return total, nil
}
