package util

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// ExportToJSON writes v as indented JSON to path, replacing any existing file.
func ExportToJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	return errors.Join(enc.Encode(v), f.Close())
}

// ImportFromJSON decodes the JSON file at path into v.
func ImportFromJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(v)
}

// ExportToMsgpack writes v to path in MessagePack form. It is the binary
// object dump of the library: any value msgpack can encode round-trips
// through ImportFromMsgpack.
func ExportToMsgpack(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return errors.Join(msgpack.NewEncoder(f).Encode(v), f.Close())
}

// ImportFromMsgpack decodes the MessagePack file at path into v.
func ImportFromMsgpack(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return msgpack.NewDecoder(f).Decode(v)
}

// ExportToYAML writes v as YAML to path.
func ExportToYAML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(4)
	return errors.Join(enc.Encode(v), enc.Close(), f.Close())
}

// ImportFromYAML decodes the YAML file at path into v.
func ImportFromYAML(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return yaml.NewDecoder(f).Decode(v)
}
