package profile

import (
	"errors"
	"strings"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	staging := Local()
	staging.Production = true
	staging.APIServerURL = "https://api.example.com/v2?region=eu"

	profiles := map[string]EnvironmentProfile{
		NameDocker: Docker(),
		NameLocal:  Local(),
		"staging":  staging,
	}
	for _, f := range []Format{FormatJSON, FormatYAML, FormatProtobuf} {
		for name, p := range profiles {
			t.Run(string(f)+"/"+name, func(t *testing.T) {
				data, err := Encode(p, f)
				if err != nil {
					t.Fatalf("Encode: %v", err)
				}
				got, err := Decode(data, f)
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				if got != p {
					t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", p, got)
				}
			})
		}
	}
}

func TestEncodeJSONShape(t *testing.T) {
	data, err := Encode(Docker(), FormatJSON)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, key := range []string{`"production"`, `"apiServerUrl"`, `"auth0"`, `"url"`, `"audience"`, `"clientId"`, `"callbackURL"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected key %s in %s", key, data)
		}
	}
}

func TestDecodeStrict(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		wantErr error
	}{
		{
			name:    "JSONMissingClientID",
			format:  FormatJSON,
			input:   `{"production":false,"apiServerUrl":"http://x/","auth0":{"url":"","audience":"","callbackURL":"http://x"}}`,
			wantErr: ErrMissingField,
		},
		{
			name:    "JSONMissingAuth0",
			format:  FormatJSON,
			input:   `{"production":false,"apiServerUrl":"http://x/"}`,
			wantErr: ErrMissingField,
		},
		{
			name:   "JSONExtraKey",
			format: FormatJSON,
			input:  `{"production":false,"apiServerUrl":"http://x/","debug":true,"auth0":{"url":"","audience":"","clientId":"","callbackURL":"http://x"}}`,
		},
		{
			name:   "JSONWrongType",
			format: FormatJSON,
			input:  `{"production":"no","apiServerUrl":"http://x/","auth0":{"url":"","audience":"","clientId":"","callbackURL":"http://x"}}`,
		},
		{
			name:   "YAMLExtraKey",
			format: FormatYAML,
			input:  "production: false\napiServerUrl: http://x/\nauth0:\n  url: ''\n  audience: ''\n  clientId: ''\n  callbackURL: http://x\n  secret: s\n",
		},
		{
			name:    "YAMLMissingProduction",
			format:  FormatYAML,
			input:   "apiServerUrl: http://x/\nauth0:\n  url: ''\n  audience: ''\n  clientId: ''\n  callbackURL: http://x\n",
			wantErr: ErrMissingField,
		},
		{
			name:   "YAMLEmpty",
			format: FormatYAML,
			input:  "",
		},
		{
			name:   "ProtobufGarbage",
			format: FormatProtobuf,
			input:  "\xff\xff\xff",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.format)
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"", FormatJSON, true},
		{"JSON", FormatJSON, true},
		{"yml", FormatYAML, true},
		{" yaml ", FormatYAML, true},
		{"pb", FormatProtobuf, true},
		{"proto", FormatProtobuf, true},
		{"toml", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if !tt.ok {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}
