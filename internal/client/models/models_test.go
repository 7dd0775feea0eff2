package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_DecodesServiceFormat(t *testing.T) {
	raw := `{"_id":"r1","bookId":"b1","username":"alice","reviewText":"Loved it","rating":4,"createdAt":"2025-03-01T10:00:00Z"}`

	var r Review
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, Review{
		ID:        "r1",
		BookID:    "b1",
		Author:    "alice",
		Text:      "Loved it",
		Rating:    4,
		CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}, r)
}

func TestBook_AuthorLine(t *testing.T) {
	assert.Equal(t, "Unknown", Book{}.AuthorLine())
	assert.Equal(t, "A, B", Book{Authors: []string{"A", "B"}}.AuthorLine())
}
