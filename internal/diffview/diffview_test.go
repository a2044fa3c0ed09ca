package diffview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/hello.go b/hello.go
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/hello.go
@@ -0,0 +1,5 @@
+package main
+
+import "fmt"
+
+func main() { fmt.Println("hello") }
diff --git a/readme.md b/readme.md
index abc1234..def5678 100644
--- a/readme.md
+++ b/readme.md
@@ -1,3 +1,4 @@
 # Project

-Old description
+New description
+Added line
`

func TestParse(t *testing.T) {
	set, err := Parse(sampleDiff)
	require.NoError(t, err)
	require.Len(t, set.Files, 2)

	f0 := set.Files[0]
	assert.True(t, f0.IsNew)
	assert.Equal(t, "hello.go", f0.Name())
	assert.Equal(t, 5, f0.Added)
	assert.Equal(t, 0, f0.Deleted)

	f1 := set.Files[1]
	assert.Equal(t, "readme.md", f1.Name())
	assert.Equal(t, 2, f1.Added)
	assert.Equal(t, 1, f1.Deleted)

	files, added, deleted := set.Stats()
	assert.Equal(t, 2, files)
	assert.Equal(t, 7, added)
	assert.Equal(t, 1, deleted)
}

func TestParse_Empty(t *testing.T) {
	set, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, set.Files)
}

func TestFileName_Renamed(t *testing.T) {
	f := &File{OldName: "old.go", NewName: "new.go", IsRenamed: true}
	assert.Equal(t, "old.go -> new.go", f.Name())
}

func TestFileName_Deleted(t *testing.T) {
	f := &File{OldName: "gone.go", IsDeleted: true}
	assert.Equal(t, "gone.go", f.Name())
}
