package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable(t *testing.T) {
	t.Run("sequence", func(t *testing.T) {
		tbl := BuildTable([]int{1, 2, 3})

		assert.Equal(t, []string{IndexHeader, ValuesHeader}, tbl.Headers)
		assert.Equal(t, [][]string{{"0", "1"}, {"1", "2"}, {"2", "3"}}, tbl.Rows)
	})

	t.Run("mapping of objects", func(t *testing.T) {
		data := map[string]map[string]any{
			"cat": {"frames": 8, "speed": 1.5},
			"dog": {"frames": 6},
		}
		tbl := BuildTable(data)

		assert.Equal(t, []string{IndexHeader, "frames", "speed"}, tbl.Headers)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, []string{"cat", "8", "1.5"}, tbl.Rows[0])
		assert.Equal(t, []string{"dog", "6", ""}, tbl.Rows[1])
	})

	t.Run("selected columns", func(t *testing.T) {
		type sprite struct {
			Name   string
			Frames int
			Loop   bool
		}
		data := map[string]sprite{
			"idle": {Name: "idle", Frames: 4, Loop: true},
			"walk": {Name: "walk", Frames: 8},
		}
		tbl := BuildTable(data, "Loop", "Frames")

		assert.Equal(t, []string{IndexHeader, "Loop", "Frames"}, tbl.Headers)
		assert.Equal(t, []string{"idle", "true", "4"}, tbl.Rows[0])
		assert.Equal(t, []string{"walk", "false", "8"}, tbl.Rows[1])
	})

	t.Run("mixed rows", func(t *testing.T) {
		tbl := BuildTable([]any{map[string]int{"a": 1}, "plain"})

		assert.Equal(t, []string{IndexHeader, "a", ValuesHeader}, tbl.Headers)
		assert.Equal(t, []string{"0", "1", ""}, tbl.Rows[0])
		assert.Equal(t, []string{"1", "", "plain"}, tbl.Rows[1])
	})

	t.Run("scalar", func(t *testing.T) {
		tbl := BuildTable("solo")

		assert.Equal(t, []string{IndexHeader, ValueHeader}, tbl.Headers)
		assert.Equal(t, [][]string{{"0", "solo"}}, tbl.Rows)
	})
}

func TestTableRender(t *testing.T) {
	out := BuildTable([]int{1, 2, 3}).Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], IndexHeader)
	assert.Contains(t, lines[0], ValuesHeader)
	assert.True(t, strings.HasPrefix(lines[0], "|"))

	// Every line shares the same width once aligned
	width := len(lines[0])
	for _, line := range lines {
		assert.Len(t, line, width)
	}
}
