package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "payload.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(f.Hash, "sha256:") {
		t.Errorf("unexpected hash format: %s", f.Hash)
	}
	if len(f.Hash) != len("sha256:")+64 {
		t.Errorf("unexpected hash length: %d", len(f.Hash))
	}

	v, err := f.Decode()
	if err != nil {
		t.Fatal(err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object, got %T", v)
	}
	if m["a"] != json.Number("1") {
		t.Errorf("expected json.Number 1, got %#v", m["a"])
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "document.Load") {
		t.Errorf("error should name the operation, got: %s", err)
	}
}

func TestDecodeBytesJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"object", `{"a": [1, 2.5, "x", null, true]}`, false},
		{"scalar", `42`, false},
		{"empty", "   \n", true},
		{"truncated", `{"a":`, true},
		{"trailing value", `{} {}`, true},
		{"trailing garbage", `[1] x`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBytes("doc.json", []byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("DecodeBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestDecodeBytesKeepsNumberText(t *testing.T) {
	v, err := DecodeBytes("doc.json", []byte(`12345678901234567890.50`))
	if err != nil {
		t.Fatal(err)
	}
	if v != json.Number("12345678901234567890.50") {
		t.Errorf("number text changed: %#v", v)
	}
}

func TestDecodeBytesYAML(t *testing.T) {
	src := "name: widget\ncount: 3\nratio: 0.5\ntags: [a, b]\nnested:\n  ok: true\n"
	v, err := DecodeBytes("payload.YAML", []byte(src))
	if err != nil {
		t.Fatal(err)
	}
	got, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"count":3,"name":"widget","nested":{"ok":true},"ratio":0.5,"tags":["a","b"]}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestDecodeBytesYAMLRejectsNaN(t *testing.T) {
	_, err := DecodeBytes("payload.yml", []byte("x: .nan\n"))
	if err == nil {
		t.Fatal("expected error for NaN")
	}
}

func TestDecodeBytesUnknownExtensionIsJSON(t *testing.T) {
	_, err := DecodeBytes("payload.txt", []byte("a: 1\n"))
	if err == nil {
		t.Fatal("expected YAML text to be rejected as JSON")
	}
}
