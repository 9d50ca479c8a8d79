// Package prime finds the modulus used by the modular hash family.
package prime

import (
	"errors"
	"fmt"
)

// ErrNoPrime is returned when no odd prime lies below the requested bound.
var ErrNoPrime = errors.New("no odd prime below bound")

// SmallerPrime returns the largest odd prime that is <= x-1 when x is even,
// or <= x-2 when x is odd. x must be at least 5.
func SmallerPrime(x uint64) (uint64, error) {
	if x < 5 {
		return 0, fmt.Errorf("%w %d", ErrNoPrime, x)
	}
	n := x - 2
	if x%2 == 0 {
		n = x - 1
	}
	for ; n >= 3; n -= 2 {
		if IsPrime(n) {
			return n, nil
		}
	}
	// unreachable: 3 is prime
	return 0, fmt.Errorf("%w %d", ErrNoPrime, x)
}

// IsPrime tests n by trial division up to √n.
func IsPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := uint64(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
