package util

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type record struct {
	Name    string             `json:"name" msgpack:"name" yaml:"name"`
	Count   int                `json:"count" msgpack:"count" yaml:"count"`
	Weights []float64          `json:"weights" msgpack:"weights" yaml:"weights"`
	Labels  map[string]string  `json:"labels" msgpack:"labels" yaml:"labels"`
	Nested  map[string][]int64 `json:"nested" msgpack:"nested" yaml:"nested"`
}

func sampleRecord() record {
	return record{
		Name:    "rows",
		Count:   3,
		Weights: []float64{0.5, 1, 2.25},
		Labels:  map[string]string{"kind": "csr"},
		Nested:  map[string][]int64{"indptr": {0, 1, 3}},
	}
}

func TestExportToJSON_Indented(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportToJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatalf("ExportToJSON failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n    \"a\": 1\n}\n"; string(got) != want {
		t.Errorf("ExportToJSON wrote %q, want %q", got, want)
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		export func(string, any) error
		load   func(string, any) error
	}{
		{"json", "r.json", ExportToJSON, ImportFromJSON},
		{"msgpack", "r.msgpack", ExportToMsgpack, ImportFromMsgpack},
		{"yaml", "r.yaml", ExportToYAML, ImportFromYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			want := sampleRecord()
			if err := tt.export(path, want); err != nil {
				t.Fatalf("export failed: %v", err)
			}
			var got record
			if err := tt.load(path, &got); err != nil {
				t.Fatalf("import failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("round trip = %+v, want %+v", got, want)
			}
		})
	}
}

func TestImport_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	var v any
	for name, load := range map[string]func(string, any) error{
		"json":    ImportFromJSON,
		"msgpack": ImportFromMsgpack,
		"yaml":    ImportFromYAML,
	} {
		if err := load(missing, &v); err == nil {
			t.Errorf("%s: expected an error for a missing file", name)
		}
	}
}

func TestImportFromJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(path, []byte("{not json"), 0644)
	var v map[string]any
	if err := ImportFromJSON(path, &v); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}
