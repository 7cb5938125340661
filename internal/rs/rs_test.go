package rs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleData(n int, seed byte) []byte {
	data := make([]byte, n)
	x := seed
	for i := range data {
		x = x*37 + 11
		data[i] = x
	}
	return data
}

func TestEncodeDecodeClean(t *testing.T) {
	data := sampleData(19, 7)
	ecc := Encode(data, 7)
	received := append(append([]byte{}, data...), ecc...)

	corrected, numErrors, err := Decode(received, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, numErrors)
	assert.Equal(t, data, corrected)
}

func TestEncodeDecodeCorrectsErrors(t *testing.T) {
	data := sampleData(19, 3)
	eccLen := 10
	ecc := Encode(data, eccLen)
	received := append(append([]byte{}, data...), ecc...)

	maxErrors := eccLen / 2
	corrupted := append([]byte{}, received...)
	for i := 0; i < maxErrors; i++ {
		corrupted[i*2] ^= byte(0x55 + i)
	}

	corrected, numErrors, err := Decode(corrupted, eccLen)
	require.NoError(t, err)
	assert.Equal(t, maxErrors, numErrors)
	assert.Equal(t, data, corrected)
}

func TestDecodeUncorrectableBeyondCapacity(t *testing.T) {
	data := sampleData(19, 9)
	eccLen := 6
	ecc := Encode(data, eccLen)
	received := append(append([]byte{}, data...), ecc...)

	corrupted := append([]byte{}, received...)
	for i := 0; i < eccLen; i++ { // far more flips than eccLen/2 can fix
		corrupted[i] ^= 0xFF
	}

	_, _, err := Decode(corrupted, eccLen)
	assert.Error(t, err)
}

func TestAllEccLengths(t *testing.T) {
	lengths := []int{7, 10, 13, 15, 16, 17, 18, 20, 22, 24, 26, 28, 30, 32, 34, 36, 40, 42, 44, 46, 48, 50, 52, 54, 56, 58, 60, 62, 64, 66, 68}
	for _, e := range lengths {
		data := sampleData(30, byte(e))
		ecc := Encode(data, e)
		received := append(append([]byte{}, data...), ecc...)
		corrected, numErrors, err := Decode(received, e)
		require.NoError(t, err, "eccLen=%d", e)
		assert.Equal(t, 0, numErrors)
		assert.Equal(t, data, corrected)
	}
}
