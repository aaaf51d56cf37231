package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// Format is a wire encoding of a profile.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatProtobuf Format = "protobuf"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported profile format")
	ErrMissingField      = errors.New("field is required")
)

// ParseFormat maps user input onto a Format. Empty input means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "protobuf", "proto", "pb":
		return FormatProtobuf, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatProtobuf:
		return "application/x-protobuf"
	default:
		return "application/json"
	}
}

// Extension returns the file extension used when the format is written to storage.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatProtobuf:
		return "pb"
	default:
		return "json"
	}
}

// Encode serializes p in the given format. Protobuf output is a
// google.protobuf.Struct with the same keys as the JSON form.
func Encode(p EnvironmentProfile, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(p, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatProtobuf:
		s, err := structpb.NewStruct(map[string]any{
			"production":   p.Production,
			"apiServerUrl": p.APIServerURL,
			"auth0": map[string]any{
				"url":         p.Auth0.Domain,
				"audience":    p.Auth0.Audience,
				"clientId":    p.Auth0.ClientID,
				"callbackURL": p.Auth0.CallbackURL,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("build struct: %w", err)
		}
		return proto.MarshalOptions{Deterministic: true}.Marshal(s)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
}

// Decode parses data in the given format. Unknown keys are rejected and all
// six profile fields must be present.
func Decode(data []byte, f Format) (EnvironmentProfile, error) {
	var w wireProfile
	switch f {
	case FormatJSON:
		if err := decodeJSON(data, &w); err != nil {
			return EnvironmentProfile{}, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&w); err != nil {
			if errors.Is(err, io.EOF) {
				return EnvironmentProfile{}, errors.New("decode yaml: empty document")
			}
			return EnvironmentProfile{}, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatProtobuf:
		var s structpb.Struct
		if err := proto.Unmarshal(data, &s); err != nil {
			return EnvironmentProfile{}, fmt.Errorf("decode protobuf: %w", err)
		}
		raw, err := protojson.Marshal(&s)
		if err != nil {
			return EnvironmentProfile{}, fmt.Errorf("decode protobuf: %w", err)
		}
		if err := decodeJSON(raw, &w); err != nil {
			return EnvironmentProfile{}, err
		}
	default:
		return EnvironmentProfile{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return w.profile()
}

func decodeJSON(data []byte, w *wireProfile) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(w); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return errors.New("decode json: trailing data after profile")
	}
	return nil
}

// wireProfile mirrors EnvironmentProfile with pointers so absent keys can be
// told apart from zero values.
type wireProfile struct {
	Production   *bool      `json:"production" yaml:"production"`
	APIServerURL *string    `json:"apiServerUrl" yaml:"apiServerUrl"`
	Auth0        *wireAuth0 `json:"auth0" yaml:"auth0"`
}

type wireAuth0 struct {
	Domain      *string `json:"url" yaml:"url"`
	Audience    *string `json:"audience" yaml:"audience"`
	ClientID    *string `json:"clientId" yaml:"clientId"`
	CallbackURL *string `json:"callbackURL" yaml:"callbackURL"`
}

func (w wireProfile) profile() (EnvironmentProfile, error) {
	var errs []error
	missing := func(field string) {
		errs = append(errs, &FieldError{Field: field, Err: ErrMissingField})
	}
	str := func(field string, v *string) string {
		if v == nil {
			missing(field)
			return ""
		}
		return *v
	}

	var p EnvironmentProfile
	if w.Production == nil {
		missing("production")
	} else {
		p.Production = *w.Production
	}
	p.APIServerURL = str("apiServerUrl", w.APIServerURL)
	if w.Auth0 == nil {
		missing("auth0")
	} else {
		p.Auth0.Domain = str("auth0.url", w.Auth0.Domain)
		p.Auth0.Audience = str("auth0.audience", w.Auth0.Audience)
		p.Auth0.ClientID = str("auth0.clientId", w.Auth0.ClientID)
		p.Auth0.CallbackURL = str("auth0.callbackURL", w.Auth0.CallbackURL)
	}
	if err := errors.Join(errs...); err != nil {
		return EnvironmentProfile{}, err
	}
	return p, nil
}
