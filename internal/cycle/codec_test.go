package cycle

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thruflo/lightcycle/internal/lights"
	"github.com/thruflo/lightcycle/internal/testutil"
)

func TestDecodeWord_RoundTrip(t *testing.T) {
	t.Parallel()

	for w := uint32(1 << durationShift); w <= 0xFFFF; w++ {
		word := uint16(w)
		out := DecodeWord(word)
		require.Equal(t, KindStep, out.Kind, "word %#06x", word)
		require.Equal(t, word, out.Step.Word(), "word %#06x", word)
		require.Equal(t, word, out.Word)
	}
}

func TestDecodeWord_Terminators(t *testing.T) {
	t.Parallel()

	out := DecodeWord(0x0000)
	assert.Equal(t, KindTerminator, out.Kind)
	assert.False(t, out.Degenerate)
	assert.True(t, out.Terminates())

	for w := uint16(1); w < 1<<durationShift; w++ {
		out := DecodeWord(w)
		require.Equal(t, KindTerminator, out.Kind, "word %#06x", w)
		require.True(t, out.Degenerate, "word %#06x", w)
		require.Equal(t, w, out.Word)
	}
}

func TestDecodeBytes_BitLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hi, lo   byte
		duration int
		on       [][2]int // (position, color)
	}{
		{
			name: "all red", hi: 0x12, lo: 0x49, duration: 1,
			on: [][2]int{{int(lights.Top), int(lights.Red)}, {int(lights.Right), int(lights.Red)}, {int(lights.Left), int(lights.Red)}, {int(lights.Bottom), int(lights.Red)}},
		},
		{
			name: "three reds, bottom dark", hi: 0x10, lo: 0x49, duration: 1,
			on: [][2]int{{int(lights.Top), int(lights.Red)}, {int(lights.Right), int(lights.Red)}, {int(lights.Left), int(lights.Red)}},
		},
		{
			name: "bottom green only", hi: 0xF8, lo: 0x00, duration: 15,
			on: [][2]int{{int(lights.Bottom), int(lights.Green)}},
		},
		{
			name: "top green and left yellow", hi: 0x30, lo: 0x84, duration: 3,
			on: [][2]int{{int(lights.Top), int(lights.Green)}, {int(lights.Left), int(lights.Yellow)}},
		},
		{
			name: "duration only", hi: 0x70, lo: 0x00, duration: 7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := DecodeBytes(tt.hi, tt.lo)
			require.Equal(t, KindStep, out.Kind)
			assert.Equal(t, tt.duration, out.Step.Duration)

			want := lights.BulbSet{}
			for _, pc := range tt.on {
				want = want.With(lights.Position(pc[0]), lights.Color(pc[1]))
			}
			assert.Equal(t, want, out.Step.Bulbs, "got %s", out.Step.Bulbs)
		})
	}
}

func TestDecoder_Next(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(bytes.NewReader(testutil.Words(testutil.AllRedWord, testutil.Terminator)))

	out, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, KindStep, out.Kind)

	out, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, KindTerminator, out.Kind)

	out, err = dec.Next()
	require.NoError(t, err)
	assert.Equal(t, KindEndOfInput, out.Kind)
}

func TestDecoder_TruncatedWord(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(bytes.NewReader([]byte{0x12}))
	out, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, KindEndOfInput, out.Kind)
}

func TestDecoder_OneByteReads(t *testing.T) {
	t.Parallel()

	dec := NewDecoder(iotest.OneByteReader(bytes.NewReader(testutil.Words(0x3084))))
	out, err := dec.Next()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x3084), out.Word)
}

func TestDecoder_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	dec := NewDecoder(iotest.ErrReader(boom))
	_, err := dec.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestEncodeSteps(t *testing.T) {
	t.Parallel()

	red := lights.BulbSetFromBits(0x249)
	steps := []Step{{Duration: 1, Bulbs: red}, {Duration: 15}}

	got, err := EncodeSteps(steps)
	require.NoError(t, err)
	assert.Equal(t, testutil.Words(0x1249, 0xF000, testutil.Terminator), got)

	_, err = EncodeSteps([]Step{{Duration: 0, Bulbs: red}})
	assert.Error(t, err)
	_, err = EncodeSteps([]Step{{Duration: 16}})
	assert.Error(t, err)
}

func TestNewStep(t *testing.T) {
	t.Parallel()

	s, err := NewStep(4, lights.BulbSet{}.With(lights.Top, lights.Green))
	require.NoError(t, err)
	assert.Equal(t, 4, s.Duration)
	assert.Equal(t, "4s top=G.. right=... left=... bottom=...", s.String())

	_, err = NewStep(0, lights.BulbSet{})
	assert.Error(t, err)
	_, err = NewStep(16, lights.BulbSet{})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "step", KindStep.String())
	assert.Equal(t, "terminator", KindTerminator.String())
	assert.Equal(t, "end_of_input", KindEndOfInput.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
