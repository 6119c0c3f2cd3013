package shapes

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := All()
	require.Len(t, all, 32)
	assert.Equal(t, len(all), Len())

	counts := make(map[int]int)
	for i, s := range all {
		assert.GreaterOrEqual(t, s.Rows(), 1, "shape %d rows", i)
		assert.GreaterOrEqual(t, s.Cols(), 1, "shape %d cols", i)
		assert.GreaterOrEqual(t, s.CellCount(), 1, "shape %d cells", i)
		assert.LessOrEqual(t, s.CellCount(), 5, "shape %d cells", i)
		counts[s.CellCount()]++
	}
	assert.Equal(t, map[int]int{1: 1, 2: 2, 3: 6, 4: 11, 5: 12}, counts)

	// mutating the returned slice leaves the catalog alone
	all[0] = mustRows("##")
	assert.Equal(t, 1, At(0).CellCount())
}

func TestNewShape(t *testing.T) {
	tests := []struct {
		name    string
		mask    [][]bool
		wantErr bool
	}{
		{
			name: "single cell",
			mask: [][]bool{{true}},
		},
		{
			name: "L shape",
			mask: [][]bool{{true, false}, {true, true}},
		},
		{
			name:    "empty",
			mask:    [][]bool{},
			wantErr: true,
		},
		{
			name:    "empty row",
			mask:    [][]bool{{}},
			wantErr: true,
		},
		{
			name:    "ragged",
			mask:    [][]bool{{true, true}, {true}},
			wantErr: true,
		},
		{
			name:    "no filled cells",
			mask:    [][]bool{{false, false}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewShape(tt.mask)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestShapeIsImmutable(t *testing.T) {
	mask := [][]bool{{true, true}}
	s := MustShape(mask)
	mask[0][1] = false
	assert.True(t, s.Filled(0, 1))

	copied := s.Mask()
	copied[0][0] = false
	assert.True(t, s.Filled(0, 0))
}

func TestShapeAccessors(t *testing.T) {
	s, err := FromRows("##.", ".##")
	require.NoError(t, err)
	assert.Equal(t, 2, s.Rows())
	assert.Equal(t, 3, s.Cols())
	assert.Equal(t, 4, s.CellCount())
	assert.True(t, s.Filled(1, 2))
	assert.False(t, s.Filled(1, 0))
	assert.False(t, s.Filled(5, 5))
	assert.False(t, s.Filled(-1, 0))
	assert.Equal(t, "##./.##", s.String())
	assert.False(t, s.IsZero())
	assert.True(t, Shape{}.IsZero())
}

func TestShapeJSON(t *testing.T) {
	s := mustRows("#.", "##")
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[[1,0],[1,1]]`, string(b))

	var decoded Shape
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.True(t, s.Equal(decoded))

	assert.Error(t, json.Unmarshal([]byte(`[[0,0]]`), &decoded))
}

func TestRandomSourceIsDeterministic(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)
	for i := 0; i < 50; i++ {
		assert.True(t, a.Draw().Equal(b.Draw()), "draw %d", i)
	}
}

func TestRandomSourceCoversCatalog(t *testing.T) {
	src := NewRandomSource(7)
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		seen[src.Draw().String()] = true
	}
	assert.Len(t, seen, Len())
}

func TestRandomMatchesRandomSource(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src := NewRandomSource(3)
	for i := 0; i < 20; i++ {
		assert.True(t, Random(rng).Equal(src.Draw()), "draw %d", i)
	}
}

func TestSequenceSource(t *testing.T) {
	one := mustRows("#")
	two := mustRows("##")
	src := NewSequenceSource(one, two)
	assert.True(t, src.Draw().Equal(one))
	assert.True(t, src.Draw().Equal(two))
	assert.True(t, src.Draw().Equal(one))

	assert.Panics(t, func() { NewSequenceSource() })
}
