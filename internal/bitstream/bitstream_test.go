package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	w := &Writer{}
	w.Push(0b101, 3)
	w.Push(0xAB, 8)
	w.Push(0, 1)
	w.PadToByte()

	r := NewReader(w.Bytes())
	assert.Equal(t, 0b101, r.Read(3))
	assert.Equal(t, 0xAB, r.Read(8))
	assert.Equal(t, 0, r.Read(1))
}

func TestReaderUnderflow(t *testing.T) {
	r := NewReader([]byte{0xFF})
	assert.Equal(t, -1, r.Read(9))
	assert.Equal(t, 8, r.Available())
}

func TestModeBitsRoundTrip(t *testing.T) {
	for _, m := range []Mode{Numeric, Alphanumeric, Byte, ECI} {
		got, terminator, ok := modeFromBits(int(m.Bits()))
		require.True(t, ok)
		assert.False(t, terminator)
		assert.Equal(t, m, got)
	}
}

func TestModeFromBitsTerminatorAndUnsupported(t *testing.T) {
	_, terminator, ok := modeFromBits(0b0000)
	require.True(t, ok)
	assert.True(t, terminator)

	_, _, ok = modeFromBits(0b1000) // Kanji, unsupported
	assert.False(t, ok)
}

func TestCharCountBitsTable(t *testing.T) {
	assert.Equal(t, 10, Numeric.CharCountBits(1))
	assert.Equal(t, 12, Numeric.CharCountBits(10))
	assert.Equal(t, 14, Numeric.CharCountBits(27))
	assert.Equal(t, 9, Alphanumeric.CharCountBits(9))
	assert.Equal(t, 11, Alphanumeric.CharCountBits(10))
	assert.Equal(t, 8, Byte.CharCountBits(1))
	assert.Equal(t, 16, Byte.CharCountBits(27))
	assert.Equal(t, 0, ECI.CharCountBits(1))
}

func TestSegmentWriteBitLengthAgreement(t *testing.T) {
	segs := []Segment{
		NumericSegment("0123456"),
		AlphanumericSegment("AC-42"),
		ByteSegment([]byte("hello")),
	}
	for _, s := range segs {
		w := &Writer{}
		require.NoError(t, s.Write(w, 5))
		assert.Equal(t, s.BitLength(5), w.Len())
	}
}

func TestSegmentTextClassification(t *testing.T) {
	segs := SegmentText("123ABC-9hello")
	require.Len(t, segs, 4)
	assert.Equal(t, Numeric, segs[0].Mode)
	assert.Equal(t, "123", segs[0].Text)
	assert.Equal(t, Alphanumeric, segs[1].Mode)
	assert.Equal(t, "ABC-", segs[1].Text)
	assert.Equal(t, Numeric, segs[2].Mode)
	assert.Equal(t, "9", segs[2].Text)
	assert.Equal(t, Byte, segs[3].Mode)
	assert.Equal(t, []byte("hello"), segs[3].Data)
}

func TestNumericEncodingGrouping(t *testing.T) {
	w := &Writer{}
	require.NoError(t, writeNumeric(w, "12345"))
	r := NewReader(w.Bytes())
	assert.Equal(t, 123, r.Read(10))
	assert.Equal(t, 45, r.Read(7))
}

func TestAlphanumericEncodingPair(t *testing.T) {
	w := &Writer{}
	require.NoError(t, writeAlphanumeric(w, "AC"))
	r := NewReader(w.Bytes())
	a, _ := alphanumericValue('A')
	c, _ := alphanumericValue('C')
	assert.Equal(t, a*45+c, r.Read(11))
}

func TestECIValueWidths(t *testing.T) {
	cases := []struct {
		value int
		bits  int
	}{
		{3, 8},
		{200, 16},
		{70000, 24},
	}
	for _, c := range cases {
		w := &Writer{}
		require.NoError(t, writeECIValue(w, c.value))
		assert.Equal(t, c.bits, w.Len())
	}
}

func TestIsAlphanumericAndDigit(t *testing.T) {
	assert.True(t, IsDigit('5'))
	assert.False(t, IsDigit('A'))
	assert.True(t, IsAlphanumeric('$'))
	assert.False(t, IsAlphanumeric('a'))
}
