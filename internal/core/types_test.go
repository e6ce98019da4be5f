// AngelaMos | 2026
// types_test.go

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringListIntersectsWith(t *testing.T) {
	tests := []struct {
		name  string
		list  StringList
		other StringList
		want  bool
	}{
		{
			name:  "shared element",
			list:  StringList{"Action", "Drama"},
			other: StringList{"Drama", "Thriller"},
			want:  true,
		},
		{
			name:  "no shared element",
			list:  StringList{"Action", "Drama"},
			other: StringList{"Sci-Fi", "Thriller"},
			want:  false,
		},
		{
			name:  "empty left side",
			list:  StringList{},
			other: StringList{"Action"},
			want:  false,
		},
		{
			name:  "empty right side",
			list:  StringList{"Action"},
			other: StringList{},
			want:  false,
		},
		{
			name:  "both empty",
			list:  StringList{},
			other: StringList{},
			want:  false,
		},
		{
			name:  "nil sides",
			list:  nil,
			other: nil,
			want:  false,
		},
		{
			name:  "exact match only, no case folding",
			list:  StringList{"action"},
			other: StringList{"Action"},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.list.IntersectsWith(tt.other))
		})
	}
}

func TestStringListContains(t *testing.T) {
	list := StringList{"Action", "Drama"}

	assert.True(t, list.Contains("Action"))
	assert.False(t, list.Contains("action"))
	assert.False(t, list.Contains("Thriller"))
	assert.False(t, StringList(nil).Contains("Action"))
}

func TestStringListScanRoundTrip(t *testing.T) {
	original := StringList{"Action", "Sci-Fi"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned StringList
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestStringListScanNil(t *testing.T) {
	var list StringList
	require.NoError(t, list.Scan(nil))
	assert.Empty(t, list)
}
