package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/questgraph/pkg/progress/progresstest"
)

func TestStore(t *testing.T) {
	uri := os.Getenv("QUESTGRAPH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("QUESTGRAPH_TEST_MONGO_URI not set")
	}
	ctx := context.Background()

	s, err := Open(ctx, uri, "questgraph_test")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Drop(ctx); err != nil {
		t.Fatalf("Drop: %v", err)
	}
	t.Cleanup(func() { _ = s.Drop(ctx) })

	progresstest.Run(t, s)
}
