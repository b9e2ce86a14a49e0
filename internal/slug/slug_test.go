package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Hello World", want: "hello-world"},
		{name: "punctuation", input: "Hello, World! 2026", want: "hello-world-2026"},
		{name: "extra spaces", input: "  spaced   out  ", want: "spaced-out"},
		{name: "already slugged", input: "already-a-slug", want: "already-a-slug"},
		{name: "consecutive hyphens", input: "a -- b", want: "a-b"},
		{name: "empty", input: "", want: ""},
		{name: "symbols only", input: "!!!", want: ""},
		{name: "bengali headline", input: "বাংলাদেশে নতুন সরকার", want: "বাংলাদেশে-নতুন-সরকার"},
		{name: "bengali with digits", input: "বাজেট ২০২৬", want: "বাজেট-২০২৬"},
		{name: "bengali conjuncts survive", input: "নিরাপত্তা পরিষদের বৈঠক", want: "নিরাপত্তা-পরিষদের-বৈঠক"},
		{name: "mixed keeps ascii", input: "ঢাকা Dhaka", want: "dhaka"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
