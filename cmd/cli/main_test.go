package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSequence(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{
			name:    "raw sequence",
			content: "ACGTACGT\n",
			want:    "ACGTACGT",
		},
		{
			name:    "fasta",
			content: ">query some description\nACGT\nACGT\n",
			want:    "ACGTACGT",
		},
		{
			name:    "header only",
			content: ">query\n",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := readSequence(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSequenceMissingFile(t *testing.T) {
	_, err := readSequence(filepath.Join(t.TempDir(), "nope.fasta"))
	assert.Error(t, err)
}
