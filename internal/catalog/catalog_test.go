package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	idx := Parse([]string{
		"CPS 2232: Data Structure",
		"MATH 2110: Discrete Structure",
		"",
		"   ",
	})

	assert.Equal(t, 2, idx.Len())

	c, ok := idx.Resolve("CPS 2232")
	require.True(t, ok)
	assert.Equal(t, "CPS 2232: Data Structure", c.Canonical)
	assert.Equal(t, "Data Structure", c.Title())

	_, ok = idx.Resolve("CPS 9999")
	assert.False(t, ok)
}

func TestParse_SkipsLinesWithoutColon(t *testing.T) {
	idx := Parse([]string{
		"CPS 2232: Data Structure",
		"this is not a course",
	})
	assert.Equal(t, 1, idx.Len())
}

func TestParse_DuplicateCodeLastWriteWins(t *testing.T) {
	idx := Parse([]string{
		"CPS 2232: Data Structure",
		"CPS 2232: Data Structures and Algorithms",
	})

	assert.Equal(t, 1, idx.Len())
	c, ok := idx.Resolve("CPS 2232")
	require.True(t, ok)
	assert.Equal(t, "CPS 2232: Data Structures and Algorithms", c.Canonical)

	// catalog order is preserved, not duplicated
	all := idx.All()
	require.Len(t, all, 1)
	assert.Equal(t, "CPS 2232: Data Structures and Algorithms", all[0].Canonical)
}

func TestResolve_TrimsCode(t *testing.T) {
	idx := Parse([]string{"CPS 2232: Data Structure"})
	_, ok := idx.Resolve("  CPS 2232 ")
	assert.True(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestLoad_EmptyCatalogIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course_list.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadPlan_SkipsMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cps_plan.txt")
	content := `Freshman Year
CPS 2232: Data Structure
MATH 2110: Discrete Structure
Electives: pick any two
cps 1231: lowercase is rejected
CPS2231: Computer Programming
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)

	var canonical []string
	for _, c := range plan {
		canonical = append(canonical, c.Canonical)
	}
	assert.Equal(t, []string{
		"CPS 2232: Data Structure",
		"MATH 2110: Discrete Structure",
		"CPS2231: Computer Programming",
	}, canonical)
}

func TestLoadPlan_DeduplicatesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cps_plan.txt")
	content := "CPS 2232: Data Structure\nCPS 2232: Data Structure\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	plan, err := LoadPlan(path)
	require.NoError(t, err)
	assert.Len(t, plan, 1)
}

func TestLoadPlan_NoPlanCoursesIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cps_plan.txt")
	require.NoError(t, os.WriteFile(path, []byte("just notes\n"), 0644))

	_, err := LoadPlan(path)
	assert.Error(t, err)
}
