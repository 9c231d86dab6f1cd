package idgen_test

import (
	"testing"

	"github.com/oklog/ulid/v2"

	"github.com/lftbrito/bip-teste-integrado/internal/adapter/idgen"
)

func TestULIDGenerator_Generate(t *testing.T) {
	gen := idgen.NewULIDGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()

		if _, err := ulid.Parse(id); err != nil {
			t.Fatalf("generated id %q is not a valid ULID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}
