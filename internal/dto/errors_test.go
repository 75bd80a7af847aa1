package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorEnvelopeShape(t *testing.T) {
	raw, err := json.Marshal(NewError(404, "Content not found", ""))
	require.NoError(t, err)

	assert.JSONEq(t, `{"error":{"status":404,"message":"Content not found"}}`, string(raw))

	raw, err = json.Marshal(NewError(400, "Validation failed", "text is required"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"status":400,"message":"Validation failed","details":"text is required"}}`, string(raw))
}

func TestPaginationPages(t *testing.T) {
	assert.Equal(t, 0, NewPagination(1, 20, 0).Pages)
	assert.Equal(t, 1, NewPagination(1, 20, 1).Pages)
	assert.Equal(t, 1, NewPagination(1, 20, 20).Pages)
	assert.Equal(t, 2, NewPagination(1, 20, 21).Pages)
	assert.Equal(t, 5, NewPagination(3, 10, 47).Pages)
}
