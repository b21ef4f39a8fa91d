package signal

import (
	"fmt"

	"github.com/nfvri/ris-simulator/pkg/model"
)

// Shape is the trial-array shape of a link: reflecting elements x antennas x
// Monte-Carlo trials. Point-to-point links use Elements == 1.
type Shape struct {
	Elements int
	Antennas int
	Trials   int
}

// Len returns the number of samples in an array of this shape.
func (s Shape) Len() int {
	return s.Elements * s.Antennas * s.Trials
}

// Index flattens (element, antenna, trial) into the backing array offset.
func (s Shape) Index(k, m, n int) int {
	return (k*s.Antennas+m)*s.Trials + n
}

// Validate rejects non-positive dimensions.
func (s Shape) Validate() error {
	if s.Elements <= 0 || s.Antennas <= 0 || s.Trials <= 0 {
		return model.NewInvalidParameter("shape dimensions must be positive, got %v", s)
	}
	return nil
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%d", s.Elements, s.Antennas, s.Trials)
}
