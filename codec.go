package formz

import (
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Codec defines the serialization contract for persisted field values.
// Values are stored as serialized text so that an absent or corrupt entry is
// distinguishable from an empty string.
type Codec interface {
	// Marshal serializes a value.
	Marshal(v any) ([]byte, error)

	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using goccy/go-json. A stored value is quoted
// JSON text, e.g. "hello" is stored as `"hello"`.
type JSONCodec struct{}

// Marshal serializes v as JSON.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Marshal serializes v as YAML.
func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

// encodeValue serializes a field value with the codec.
func encodeValue(c Codec, value string) ([]byte, error) {
	return c.Marshal(value)
}

// decodeValue deserializes a stored field value. Empty input is corrupt:
// an empty string is stored as quoted text, never as zero bytes.
func decodeValue(c Codec, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errEmptyEntry
	}
	var v string
	if err := c.Unmarshal(data, &v); err != nil {
		return "", err
	}
	return v, nil
}
