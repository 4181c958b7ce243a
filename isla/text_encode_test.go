package isla

import (
	"errors"
	"strings"
	"testing"
)

func TestEncodeText_NotEncodable(t *testing.T) {
	tests := []struct {
		name   string
		value  TextValue
		reason string
	}{
		{"leaf at top", NewTextLeaf("x"), "leaf at top"},
		{"none at top", TextNone(), "none at top"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeText(tt.value)
			var ne *NotEncodableError
			if !errors.As(err, &ne) {
				t.Fatalf("expected NotEncodableError, got %v", err)
			}
			if ne.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", ne.Reason, tt.reason)
			}
		})
	}
}

func TestEncodeText_SimpleMap(t *testing.T) {
	v := TextLeafMap(map[string]string{
		"name":    "Arsenal",
		"founded": "1886",
	})
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	// Keys are emitted sorted.
	want := "ISLA1\nfounded=1886\nname=Arsenal\n"
	if got != want {
		t.Errorf("encoded %q, want %q", got, want)
	}
}

func TestEncodeText_OddKeys(t *testing.T) {
	v := TextLeafMap(map[string]string{
		"-5 - 3": "negative five minus three",
		"=":      "equals",
		":)":     "smiley",
	})
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	for _, line := range []string{
		`\-5 - 3=negative five minus three`,
		`\==equals`,
		`\:)=smiley`,
	} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("output missing line %q:\n%s", line, got)
		}
	}
}

func TestEncodeText_List(t *testing.T) {
	v := NewTextList(
		NewTextLeaf("plain"),
		NewTextLeaf(":"),
		NewTextLeaf(`"`),
		NewTextLeaf(""),
		TextLeaves("nested"),
	)
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := "ISLA1\n" +
		"-plain\n" +
		"-\\:\n" +
		"-\\\"\n" +
		"-\n" +
		"-:\n" +
		"\t-nested\n"
	if got != want {
		t.Errorf("encoded %q, want %q", got, want)
	}
}

func TestEncodeText_NestedMap(t *testing.T) {
	v := NewTextMap(
		TextEntry{Key: "ground", Value: TextLeafMap(map[string]string{
			"city": "London",
			"name": "Emirates Stadium",
		})},
		TextEntry{Key: "club", Value: NewTextLeaf("Arsenal")},
	)
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := "ISLA1\n" +
		"club=Arsenal\n" +
		"ground:\n" +
		"\tcity=London\n" +
		"\tname=Emirates Stadium\n"
	if got != want {
		t.Errorf("encoded %q, want %q", got, want)
	}
}

func TestEncodeText_MultiLine(t *testing.T) {
	v := NewTextMap(TextEntry{
		Key:   "Quote",
		Value: NewTextLeaf("He engraved on it the words:\n\"And this, too, shall pass away.\n\""),
	})
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := "ISLA1\n" +
		"Quote=\"\n" +
		"He engraved on it the words:\n" +
		"\"And this, too, shall pass away.\n" +
		"\\\"\n" +
		"\"\n"
	if got != want {
		t.Errorf("encoded %q, want %q", got, want)
	}
}

func TestEncodeText_MultiLineBodyNotIndented(t *testing.T) {
	v := NewTextMap(TextEntry{
		Key:   "outer",
		Value: NewTextMap(TextEntry{Key: "k", Value: NewTextLeaf("a\nb")}),
	})
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	want := "ISLA1\n" +
		"outer:\n" +
		"\tk=\"\n" +
		"a\n" +
		"b\n" +
		"\"\n"
	if got != want {
		t.Errorf("encoded %q, want %q", got, want)
	}
}

func TestEncodeText_NestedNone(t *testing.T) {
	v := NewTextMap(TextEntry{Key: "empty", Value: TextNone()})
	got, err := EncodeText(v)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if got != "ISLA1\nempty:\n" {
		t.Errorf("encoded %q", got)
	}

	back, err := DecodeText(got)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	e, err := back.IndexKey("empty")
	if err != nil {
		t.Fatalf("key empty: %v", err)
	}
	if e.Type() != KindNone {
		t.Errorf("round-tripped to %s, want none", e.Type())
	}
}
