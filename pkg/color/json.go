package color

import (
	"encoding/json"
	"fmt"
)

func encodePair(x, y float64) []byte {
	b, _ := json.Marshal([2]float64{x, y})
	return b
}

func decodePair(data []byte, x, y *float64) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("xy must be a [x, y] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("xy must have exactly 2 elements, got %d", len(pair))
	}
	*x, *y = pair[0], pair[1]
	return nil
}
