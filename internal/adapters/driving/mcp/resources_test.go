package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractPlaceID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{name: "valid place URI", uri: "placemap://places/abc123", expected: "abc123"},
		{name: "invalid prefix", uri: "file://places/abc123", expected: ""},
		{name: "nested path", uri: "placemap://places/abc/reviews", expected: ""},
		{name: "empty URI", uri: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPlaceID(tt.uri))
		})
	}
}

func TestServer_handleDatasetResource(t *testing.T) {
	ctx := context.Background()
	mock := &mockDatasetService{dataset: testDataset()}
	server, err := NewServer(&Ports{Dataset: mock})
	require.NoError(t, err)

	result, err := server.handleDatasetResource(ctx, readRequest("placemap://dataset"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.False(t, mock.lastForce)

	var got domain.Dataset
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
	assert.Len(t, got.Places, 2)
	assert.Len(t, got.Errors, 1)
}

func TestServer_handleUniquesResource(t *testing.T) {
	server, err := NewServer(&Ports{Dataset: &mockDatasetService{dataset: testDataset()}})
	require.NoError(t, err)

	result, err := server.handleUniquesResource(context.Background(), readRequest("placemap://uniques"))

	require.NoError(t, err)
	assert.JSONEq(t,
		`{"types":["Bar","Café"],"users":["ana","bia"],"cities":["Rio de Janeiro","São Paulo"]}`,
		result.Contents[0].Text)
}

func TestServer_handleErrorsResource(t *testing.T) {
	server, err := NewServer(&Ports{Dataset: &mockDatasetService{dataset: testDataset()}})
	require.NoError(t, err)

	result, err := server.handleErrorsResource(context.Background(), readRequest("placemap://errors"))

	require.NoError(t, err)
	assert.JSONEq(t, `[{"error":"missing place link","meta":{"row":3}}]`, result.Contents[0].Text)
}

func TestServer_handlePlaceResource(t *testing.T) {
	ctx := context.Background()
	server, err := NewServer(&Ports{Dataset: &mockDatasetService{dataset: testDataset()}})
	require.NoError(t, err)

	t.Run("known place", func(t *testing.T) {
		result, err := server.handlePlaceResource(ctx, readRequest("placemap://places/def456"))

		require.NoError(t, err)
		var got PlaceOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, "Café Rio", got.Name)
		assert.Equal(t, []string{"Café"}, got.Types)
	})

	t.Run("unknown place", func(t *testing.T) {
		_, err := server.handlePlaceResource(ctx, readRequest("placemap://places/nope"))
		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		_, err := server.handlePlaceResource(ctx, readRequest("placemap://places/"))
		assert.Error(t, err)
	})
}

func TestServer_ResourcesPropagateErrors(t *testing.T) {
	server, err := NewServer(&Ports{Dataset: &mockDatasetService{err: errors.New("boom")}})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = server.handleDatasetResource(ctx, readRequest("placemap://dataset"))
	assert.ErrorContains(t, err, "boom")
	_, err = server.handleUniquesResource(ctx, readRequest("placemap://uniques"))
	assert.ErrorContains(t, err, "boom")
	_, err = server.handleErrorsResource(ctx, readRequest("placemap://errors"))
	assert.ErrorContains(t, err, "boom")
}
