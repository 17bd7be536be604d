package wire

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello"},
		{"nil", nil, ""},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"int64", int64(1700000000000), "1700000000000"},
		{"float", 12.5, "12.5"},
		{"whole float", float64(3), "3"},
		{"json number", json.Number("7"), "7"},
		{"map", map[string]any{"foo": "bar"}, `{"foo":"bar"}`},
		{"slice", []any{"a", 1}, `["a",1]`},
		{"raw message", json.RawMessage(`{"a":1}`), `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.value)
			if err != nil {
				t.Fatalf("Stringify() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Stringify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStringify_Unmarshalable(t *testing.T) {
	if _, err := Stringify(map[string]any{"ch": make(chan int)}); err == nil {
		t.Error("expected error for a channel value")
	}
}

func TestEncodeForm_PreservesOrder(t *testing.T) {
	body, err := EncodeForm(
		Param{Key: "api_key", Value: "token"},
		Param{Key: "event", Value: []map[string]any{{"event_type": "signup"}}},
	)
	if err != nil {
		t.Fatalf("EncodeForm() error = %v", err)
	}

	want := "api_key=token&event=" + url.QueryEscape(`[{"event_type":"signup"}]`)
	if body != want {
		t.Errorf("EncodeForm() = %q, want %q", body, want)
	}
}

func TestEncodeForm_RoundTrip(t *testing.T) {
	body, err := EncodeForm(
		Param{Key: "api_key", Value: "to ken&="},
		Param{Key: "identification", Value: map[string]any{"user_id": "u1"}},
		Param{Key: "empty", Value: nil},
	)
	if err != nil {
		t.Fatalf("EncodeForm() error = %v", err)
	}

	values, err := url.ParseQuery(body)
	if err != nil {
		t.Fatalf("ParseQuery() error = %v", err)
	}
	if got := values.Get("api_key"); got != "to ken&=" {
		t.Errorf("api_key = %q", got)
	}
	if got := values.Get("identification"); got != `{"user_id":"u1"}` {
		t.Errorf("identification = %q", got)
	}
	if !values.Has("empty") || values.Get("empty") != "" {
		t.Errorf("empty = %q, present %v", values.Get("empty"), values.Has("empty"))
	}
}

func TestEncodeForm_Error(t *testing.T) {
	_, err := EncodeForm(Param{Key: "bad", Value: func() {}})
	if err == nil {
		t.Fatal("expected error for a func value")
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestStringOrJSON(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "signup", "signup"},
		{"object", map[string]string{"foo": "bar"}, `{"foo":"bar"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StringOrJSON(tt.value)
			if err != nil {
				t.Fatalf("StringOrJSON() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("StringOrJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}
