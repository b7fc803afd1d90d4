package prompt

import "testing"

func TestRenderDiff(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		suggested string
		colorize  bool
		want      string
	}{
		{name: "deletion", existing: "colour", suggested: "color", want: "colo[-u-]r"},
		{name: "insertion", existing: "color", suggested: "colour", want: "colo{+u+}r"},
		{name: "replacement", existing: "a cat", suggested: "a dog", want: "a [-cat-]{+dog+}"},
		{name: "unchanged", existing: "same", suggested: "same", want: "same"},
		{name: "coloured", existing: "colour", suggested: "color", colorize: true, want: "colo" + ansiRed + "u" + ansiReset + "r"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RenderDiff(tc.existing, tc.suggested, tc.colorize); got != tc.want {
				t.Fatalf("RenderDiff = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestResolveColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !ResolveColor(ColorAlways, nil) {
		t.Fatal("always should force colour")
	}
	if ResolveColor(ColorNever, nil) {
		t.Fatal("never should disable colour")
	}
	if ResolveColor(ColorAuto, nil) {
		t.Fatal("auto should honour NO_COLOR")
	}
}
