package binder

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Codec turns nested values into opaque string tokens and back.
type Codec interface {
	Encode(v any) (string, error)
	Decode(token string, dst any) error
}

// Base64JSON encodes values as URL-safe, unpadded base64 of their JSON form.
type Base64JSON struct{}

func (Base64JSON) Encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode nested value: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (Base64JSON) Decode(token string, dst any) error {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return fmt.Errorf("decode nested token: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode nested value: %w", err)
	}
	return nil
}

// YAML encodes values as plain YAML documents, for inputs written by hand.
type YAML struct{}

func (YAML) Encode(v any) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode nested value: %w", err)
	}
	return string(b), nil
}

func (YAML) Decode(token string, dst any) error {
	if err := yaml.Unmarshal([]byte(token), dst); err != nil {
		return fmt.Errorf("decode nested value: %w", err)
	}
	return nil
}
