package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty file", "", nil},
		{"one record", `{"a":1}` + "\n", []string{`{"a":1}`}},
		{"no trailing newline", `{"a":1}` + "\n" + `{"b":2}`, []string{`{"a":1}`, `{"b":2}`}},
		{"blank lines skipped", "\n" + `{"a":1}` + "\n\n", []string{`{"a":1}`}},
		{"malformed skipped", `{"a":1}` + "\n{broken\n" + `{"c":3}` + "\n", []string{`{"a":1}`, `{"c":3}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "x.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			records, err := readJSONL(path)
			require.NoError(t, err)
			var got []string
			for _, r := range records {
				got = append(got, string(r))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadJSONLMissingFile(t *testing.T) {
	records, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriteJSONLReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(`{"old":true}`+"\n"), 0o644))

	records := []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"b":2}`)}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", string(data))

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteJSONLMissingDir(t *testing.T) {
	err := writeJSONL(filepath.Join(t.TempDir(), "nope", "runs.jsonl"), nil)
	assert.Error(t, err)
}

func TestEnsureJSONLKeepsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.jsonl")
	require.NoError(t, ensureJSONL(path))
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`+"\n"), 0o644))
	require.NoError(t, ensureJSONL(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`+"\n", string(data))
}
