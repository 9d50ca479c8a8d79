package nucleotide

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	cases := []struct {
		in   byte
		want uint64
	}{
		{'A', 0}, {'C', 1}, {'G', 2}, {'T', 3},
		// unknown symbols alias to T
		{'N', 3}, {'R', 3}, {'-', 3}, {'a', 3},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, Code(c.in), "Code(%q)", c.in)
	}
}

func TestComplementCode(t *testing.T) {
	require.Equal(t, T, ComplementCode(A))
	require.Equal(t, G, ComplementCode(C))
	require.Equal(t, C, ComplementCode(G))
	require.Equal(t, A, ComplementCode(T))
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]byte("ACGTTGCA")))
	require.NoError(t, Validate(nil))

	err := Validate([]byte("ACGNT"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidSymbol))

	var se *SymbolError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 3, se.Offset)
	require.Equal(t, byte('N'), se.Symbol)
	require.Contains(t, err.Error(), "offset 3")
}
