package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yyyoichi/lowrank"
)

func TestDecodeFactors(t *testing.T) {
	// 3x2 image, full rank 2, service returned only one singular value.
	const body = `{
		"red":   {"U": [[1], [1]], "S": [2], "Vt": [[3, 4, 5]]},
		"green": {"U": [[0.5], [0.5]], "S": [2], "Vt": [[1, 1, 1]]},
		"blue":  {"U": [[1], [0]], "S": [1], "Vt": [[7, 8, 9]]}
	}`
	factors, err := decodeFactors(strings.NewReader(body), 3, 2)
	require.NoError(t, err)

	red := factors[0]
	assert.Equal(t, []float32{1, 0, 1, 0}, red.U)
	assert.Equal(t, []float32{3, 4, 5}, red.Vt)
	assert.Equal(t, []float32{6, 8, 10, 6, 8, 10}, red.Reconstruct(1))
	assert.Equal(t, []float32{7, 8, 9, 0, 0, 0}, factors[2].Reconstruct(1))

	batch, err := lowrank.NewBatchFromFactors(factors[0], factors[1], factors[2])
	require.NoError(t, err)
	assert.Equal(t, 1, batch.FullRank())
}

func TestDecodeFactors_Invalid(t *testing.T) {
	test := []struct {
		name string
		body string
	}{
		{name: "not_json", body: `{`},
		{name: "missing_channel", body: `{"red": {"U": [[1]], "S": [1], "Vt": [[1]]}}`},
		{name: "ragged_u", body: `{
			"red":   {"U": [[1], [1, 2]], "S": [1], "Vt": [[1, 1]]},
			"green": {"U": [[1], [1]], "S": [1], "Vt": [[1, 1]]},
			"blue":  {"U": [[1], [1]], "S": [1], "Vt": [[1, 1]]}}`},
		{name: "ragged_vt", body: `{
			"red":   {"U": [[1], [1]], "S": [1], "Vt": [[1]]},
			"green": {"U": [[1], [1]], "S": [1], "Vt": [[1, 1]]},
			"blue":  {"U": [[1], [1]], "S": [1], "Vt": [[1, 1]]}}`},
		{name: "wrong_height", body: `{
			"red":   {"U": [[1]], "S": [1], "Vt": [[1, 1]]},
			"green": {"U": [[1], [1]], "S": [1], "Vt": [[1, 1]]},
			"blue":  {"U": [[1], [1]], "S": [1], "Vt": [[1, 1]]}}`},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeFactors(strings.NewReader(tt.body), 2, 2)
			assert.Error(t, err)
		})
	}
}

func TestParseRanks(t *testing.T) {
	ranks, err := parseRanks("1, 5,,20")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 20}, ranks)

	_, err = parseRanks("1,x")
	assert.Error(t, err)
	_, err = parseRanks("-1")
	assert.Error(t, err)
}
