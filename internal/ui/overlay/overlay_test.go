package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grid = "AAAAA\nAAAAA\nAAAAA\nAAAAA\nAAAAA"

func TestPlace_Positions(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantRow int
		want    string
	}{
		{"center", Config{Width: 5, Height: 5, Position: Center}, 2, "AXXAA"},
		{"top", Config{Width: 5, Height: 5, Position: Top}, 0, "AXXAA"},
		{"top padded", Config{Width: 5, Height: 5, Position: Top, PadY: 1}, 1, "AXXAA"},
		{"bottom", Config{Width: 5, Height: 5, Position: Bottom}, 4, "AXXAA"},
		{"bottom padded", Config{Width: 5, Height: 5, Position: Bottom, PadY: 1}, 3, "AXXAA"},
		{"top right", Config{Width: 5, Height: 5, Position: TopRight}, 0, "AAAXX"},
		{"top right padded", Config{Width: 5, Height: 5, Position: TopRight, PadX: 1, PadY: 1}, 1, "AAXXA"},
		{"bottom right", Config{Width: 5, Height: 5, Position: BottomRight}, 4, "AAAXX"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lines := strings.Split(Place(tc.cfg, "XX", grid), "\n")
			require.Len(t, lines, 5)
			for i, line := range lines {
				if i == tc.wantRow {
					assert.Equal(t, tc.want, line)
				} else {
					assert.Equal(t, "AAAAA", line)
				}
			}
		})
	}
}

func TestPlace_LargeForegroundClampsToOrigin(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 3, Height: 3}, "XXXXX\nXXXXX", "AAA\nAAA\nAAA"), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "XXXXX", lines[0])
	assert.Equal(t, "XXXXX", lines[1])
	assert.Equal(t, "AAA", lines[2])
}

func TestPlace_EmptyBackgroundIsPadded(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 3}, "XX\nXX", ""), "\n")

	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "XX")
}

func TestPlace_ShortBackgroundLineIsPadded(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 6, Height: 1, Position: TopRight}, "X", "AB"), "\n")

	assert.Equal(t, "AB   X", lines[0])
}

func TestPlace_PreservesBackgroundOnSides(t *testing.T) {
	lines := strings.Split(Place(Config{Width: 5, Height: 3}, "X", "ABCDE\nFGHIJ\nKLMNO"), "\n")

	assert.Equal(t, "FGXIJ", lines[1])
}

func TestPlace_PreservesANSI(t *testing.T) {
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"

	result := Place(Config{Width: 3, Height: 3}, "X", bg)

	assert.Contains(t, result, "\x1b[31m")
}

func TestCalculatePosition_NegativeClamping(t *testing.T) {
	x, y := calculatePosition(Config{Width: 2, Height: 2, Position: BottomRight, PadX: 3, PadY: 3}, 4, 4)

	assert.Zero(t, x)
	assert.Zero(t, y)
}
