// AngelaMos | 2026
// parser_test.go

package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVDropsBlankTitles(t *testing.T) {
	csv := `title,description
First Movie,Great
,no title here
   ,whitespace title
Second Movie,Also great
`

	candidates, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "First Movie", candidates[0].Title)
	assert.Equal(t, "Second Movie", candidates[1].Title)
}

func TestParseCSVBooleanFlags(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"0", false},
		{"True", false},
		{"tRuE", false},
		{"yes", false},
		{"", false},
		{"2", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.raw, func(t *testing.T) {
			csv := "title,featured,isPremium\nMovie," + tt.raw + "," + tt.raw + "\n"

			candidates, err := ParseCSV(strings.NewReader(csv))
			require.NoError(t, err)
			require.Len(t, candidates, 1)
			assert.Equal(t, tt.want, candidates[0].Featured)
			assert.Equal(t, tt.want, candidates[0].IsPremium)
		})
	}
}

func TestParseCSVCategorySplit(t *testing.T) {
	csv := `title,category
One,"Action, Drama ,Thriller"
Two,
Three,"Action,,Drama"
`

	candidates, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, []string{"Action", "Drama", "Thriller"}, candidates[0].Categories)
	assert.Nil(t, candidates[1].Categories)
	// Empty pieces survive the split untouched.
	assert.Equal(t, []string{"Action", "", "Drama"}, candidates[2].Categories)
}

func TestParseCSVDefaultsAndTrimming(t *testing.T) {
	csv := ` title , videoType ,description,batchNo
  Spaced Out  ,,  a description  , BATCH-1
Typed,youtube,,
`

	candidates, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Spaced Out", candidates[0].Title)
	assert.Equal(t, "direct", candidates[0].VideoType)
	assert.Equal(t, "a description", candidates[0].Description)
	assert.Equal(t, "BATCH-1", candidates[0].BatchNo)

	assert.Equal(t, "youtube", candidates[1].VideoType)
	assert.Equal(t, "", candidates[1].Description)
}

func TestParseCSVMissingColumnsYieldEmpty(t *testing.T) {
	csv := "title\nBare Minimum\n"

	candidates, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "Bare Minimum", c.Title)
	assert.Equal(t, "", c.Description)
	assert.Equal(t, "", c.Poster)
	assert.Equal(t, "", c.VideoURL)
	assert.Equal(t, "direct", c.VideoType)
	assert.Nil(t, c.Categories)
	assert.False(t, c.Featured)
	assert.False(t, c.IsPremium)
}

func TestParseCSVEmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseCSVMalformedStream(t *testing.T) {
	csv := "title,description\n\"unterminated quote,oops\n"

	_, err := ParseCSV(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestParseCSVKeepsIntraFileDuplicates(t *testing.T) {
	csv := "title\nDark\nDark\n"

	candidates, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}
