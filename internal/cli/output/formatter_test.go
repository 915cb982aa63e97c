package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sandertv/gophertunnel/minecraft/nbt"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"nbt", FormatNBT, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON, false).(*JSONFormatter); !ok {
		t.Error("json: want *JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML, false).(*YAMLFormatter); !ok {
		t.Error("yaml: want *YAMLFormatter")
	}
	if _, ok := NewFormatter(FormatNBT, false).(*NBTFormatter); !ok {
		t.Error("nbt: want *NBTFormatter")
	}
	tf, ok := NewFormatter("unknown", true).(*TableFormatter)
	if !ok || !tf.Wide {
		t.Errorf("unknown: got %#v, want wide *TableFormatter", tf)
	}
}

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sample{"test", 42}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"name": "test"`, `"value": 42`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Format() = %s, missing %s", buf.String(), want)
		}
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLFormatter{}).Format(&buf, []sample{{"a", 1}, {"b", 2}}); err != nil {
		t.Fatal(err)
	}
	want := "- name: a\n  value: 1\n- name: b\n  value: 2\n"
	if buf.String() != want {
		t.Errorf("Format() = %q, want %q", buf.String(), want)
	}
}

func TestNBTFormatter_Format(t *testing.T) {
	type doc struct {
		Version string           `nbt:"Version"`
		Palette map[string]int32 `nbt:"Palette"`
	}
	var buf bytes.Buffer
	in := doc{Version: "1.8.9", Palette: map[string]int32{"minecraft:stone": 0, "minecraft:dirt": 1}}
	if err := (&NBTFormatter{}).Format(&buf, in); err != nil {
		t.Fatal(err)
	}
	if buf.Bytes()[0] != 10 {
		t.Fatalf("first byte = %d, want TAG_Compound (10)", buf.Bytes()[0])
	}

	var out map[string]any
	if err := nbt.UnmarshalEncoding(buf.Bytes(), &out, nbt.BigEndian); err != nil {
		t.Fatal(err)
	}
	palette, _ := out["Palette"].(map[string]any)
	if out["Version"] != "1.8.9" || palette["minecraft:dirt"] != int32(1) {
		t.Errorf("round trip = %+v", out)
	}

	if err := (&NBTFormatter{}).Format(&buf, make(chan int)); err == nil {
		t.Error("Format(chan) error = nil, want error")
	}
}
