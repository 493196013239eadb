package progress_test

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/progress/progresstest"
)

func TestFileStore(t *testing.T) {
	progresstest.Run(t, progress.NewFileStore(filepath.Join(t.TempDir(), "user", "progress.json")))
}
