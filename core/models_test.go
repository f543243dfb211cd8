package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestTextRun_Signature(t *testing.T) {
	run := TextRun{
		Text:       "Executive Summary",
		FontFamily: "Helvetica-Bold",
		FontSizePt: 18,
		Bold:       true,
	}

	sig := run.Signature()
	want := FontSignature{Family: "Helvetica-Bold", SizePt: 18, Bold: true}
	if sig != want {
		t.Errorf("Signature() = %+v, want %+v", sig, want)
	}
}

func TestFontSignature_MapKey(t *testing.T) {
	// Signatures with identical fields must collide as map keys even when
	// the font family contains characters a string-joined key would split on.
	fs := FontStats{}
	fs.Add(TextRun{Text: "ab", FontFamily: "Weird_Font_1.5", FontSizePt: 10})
	fs.Add(TextRun{Text: "cd", FontFamily: "Weird_Font_1.5", FontSizePt: 10})

	if len(fs) != 1 {
		t.Fatalf("expected 1 signature, got %d", len(fs))
	}
	usage := fs[FontSignature{Family: "Weird_Font_1.5", SizePt: 10}]
	if usage == nil {
		t.Fatal("signature not found under field-wise key")
	}
	if usage.Count != 2 || usage.TotalChars != 4 {
		t.Errorf("usage = %+v, want Count=2 TotalChars=4", usage)
	}
}

func TestFontStats_TotalChars(t *testing.T) {
	fs := FontStats{}
	if fs.TotalChars() != 0 {
		t.Errorf("empty stats TotalChars() = %d, want 0", fs.TotalChars())
	}

	fs.Add(TextRun{Text: "abcd", FontFamily: "A", FontSizePt: 12})
	fs.Add(TextRun{Text: "efg", FontFamily: "B", FontSizePt: 14, Bold: true})
	if fs.TotalChars() != 7 {
		t.Errorf("TotalChars() = %d, want 7", fs.TotalChars())
	}
}

func TestLine_Text(t *testing.T) {
	line := Line{Runs: []TextRun{
		{Text: "Hello "},
		{Text: "world"},
	}}
	if line.Text() != "Hello world" {
		t.Errorf("Text() = %q, want %q", line.Text(), "Hello world")
	}
}

func TestPersonaQuery_String(t *testing.T) {
	query := PersonaQuery{
		Role: "Financial Analyst",
		Task: "Summarize key financial risks",
	}

	want := "Persona: Financial Analyst\nJob-to-be-done: Summarize key financial risks"
	if query.String() != want {
		t.Errorf("String() = %q, want %q", query.String(), want)
	}
}
