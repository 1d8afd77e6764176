package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNChar(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"Generate 5 characters", 5, false},
		{"Generate 10 characters", 10, false},
		{"Generate 0 characters", 0, false},
		{"Generate negative characters", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateNChar(tt.n)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateNChar() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && len(got) != tt.n {
				t.Errorf("GenerateNChar() got = %v, want length %v", got, tt.n)
			}
		})
	}
}

func TestGenerateDocumentID(t *testing.T) {
	id, err := GenerateDocumentID()
	require.NoError(t, err)
	assert.True(t, IsDocumentID(id), "generated id %q", id)

	other, err := GenerateDocumentID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestIsDocumentID(t *testing.T) {
	assert.True(t, IsDocumentID("1700000000_a1B2c3D4"))

	for _, id := range []string{"", "1700000000", "abc_a1B2c3D4", "1700000000_a1B2c3D", "../1700000000_a1B2c3D4", "1700000000_a1B2-3D4"} {
		assert.False(t, IsDocumentID(id), "id %q", id)
	}
}
