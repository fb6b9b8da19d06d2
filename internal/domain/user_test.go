package domain_test

import (
	"testing"

	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func TestParseRecordID(t *testing.T) {
	t.Run("parses a plain table:id", func(t *testing.T) {
		rid, err := domain.ParseRecordID("user:abc123")
		require.NoError(t, err)
		assert.Equal(t, "user", rid.Table)
		assert.Equal(t, "abc123", rid.ID)
	})

	t.Run("round-trips IDs the API handed out", func(t *testing.T) {
		// String() escapes anything non-alphanumeric, so these cover the
		// plain form, the bracketed form (ULIDs and UUIDs contain
		// hyphens), and escape characters inside the brackets.
		for _, id := range []string{
			"abc123",
			"0b60c446-37fa-4f05-bd39-c3c85c5062d1",
			"01J9YV7PLAINULID00000000",
			"id with spaces",
			`back\slash`,
			"angle⟩bracket",
		} {
			original := surrealmodels.NewRecordID("conversation", id)
			parsed, err := domain.ParseRecordID(original.String())
			require.NoError(t, err, "id: %s", id)
			assert.Equal(t, "conversation", parsed.Table, "id: %s", id)
			assert.Equal(t, id, parsed.ID, "id: %s", id)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "user", ":abc", "user:"} {
			_, err := domain.ParseRecordID(s)
			assert.Error(t, err, "input: %q", s)
		}
	})
}
