package inscription

import (
	"math"

	"github.com/inscription-c/pins/constants"
)

// EstimateFee returns the fee for a transaction of the given shape using the
// fixed linear size estimate, rounded up to a whole unit.
func EstimateFee(inputs, outputs int, feeRate float64) int64 {
	size := constants.FeeBaseSize + inputs*constants.FeeInputSize + outputs*constants.FeeOutputSize
	return int64(math.Ceil(float64(size) * feeRate))
}
