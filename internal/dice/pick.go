package dice

import "fmt"

// Pick returns a uniformly random index in [0, n) by rolling a single d(n)
func Pick(roller Roller, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("cannot pick from %d options", n)
	}

	result, err := roller.Roll(1, n, 0)
	if err != nil {
		return 0, err
	}

	return result.Total - 1, nil
}
