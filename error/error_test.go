package error

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTest = errors.New("test error")

func TestSpecError_Error(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.ll1")
	require.NoError(t, os.WriteFile(filePath, []byte("#name test;\ns: a b;\n"), 0644))

	tests := []struct {
		caption  string
		err      *SpecError
		expected string
	}{
		{
			caption: "a cause only",
			err: &SpecError{
				Cause: errTest,
			},
			expected: "error: test error",
		},
		{
			caption: "a detail",
			err: &SpecError{
				Cause:  errTest,
				Detail: "foo",
			},
			expected: "error: test error: foo",
		},
		{
			caption: "a position",
			err: &SpecError{
				Cause: errTest,
				Row:   2,
				Col:   4,
			},
			expected: "2:4: error: test error",
		},
		{
			caption: "a row only",
			err: &SpecError{
				Cause: errTest,
				Row:   2,
			},
			expected: "2: error: test error",
		},
		{
			caption: "a source with its line",
			err: &SpecError{
				Cause:      errTest,
				Detail:     "b",
				FilePath:   filePath,
				SourceName: "test.ll1",
				Row:        2,
				Col:        6,
			},
			expected: "test.ll1: 2:6: error: test error: b\n    s: a b;",
		},
		{
			caption: "a row beyond the file",
			err: &SpecError{
				Cause:      errTest,
				FilePath:   filePath,
				SourceName: "test.ll1",
				Row:        10,
				Col:        1,
			},
			expected: "test.ll1: 10:1: error: test error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, errTest))
		})
	}
}

func TestSpecErrors(t *testing.T) {
	errs := SpecErrors{
		{Cause: errTest, Detail: "c", Row: 3, Col: 1},
		{Cause: errTest, Detail: "b", Row: 1, Col: 5},
		{Cause: errTest, Detail: "none"},
		{Cause: errTest, Detail: "a", Row: 1, Col: 2},
	}
	errs.Sort()

	var details []string
	for _, err := range errs {
		details = append(details, err.Detail)
	}
	assert.Equal(t, []string{"none", "a", "b", "c"}, details)
	assert.Equal(t, "error: test error: none\n1:2: error: test error: a\n1:5: error: test error: b\n3:1: error: test error: c", errs.Error())
	assert.Equal(t, "", SpecErrors{}.Error())
}

func TestWithSource(t *testing.T) {
	errs := SpecErrors{
		{Cause: errTest, Row: 1, Col: 1},
	}
	res := WithSource(errs, "path/to/test.ll1", "test.ll1")
	require.Len(t, res, 1)
	assert.Equal(t, "path/to/test.ll1", res[0].FilePath)
	assert.Equal(t, "test.ll1", res[0].SourceName)
	assert.Equal(t, "", errs[0].SourceName)
}
