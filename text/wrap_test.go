package text

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", " \t \n  ", nil},
		{"collapse runs", "  hello    world  ", []string{"hello world"}},
		{"split lines", "one\ntwo", []string{"one", "two"}},
		{"crlf", "one\r\ntwo\rthree", []string{"one", "two", "three"}},
		{"drop empty paragraphs", "a\n\n\nb", []string{"a", "b"}},
		{"nfc", "e\u0301", []string{"\u00e9"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want []string
	}{
		{"fits", "hello world", 11, []string{"hello world"}},
		{"greedy", "the quick brown fox", 9, []string{"the quick", "brown fox"}},
		{"exact boundary", "ab cd", 5, []string{"ab cd"}},
		{"just over", "ab cde", 5, []string{"ab", "cde"}},
		{"hard split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"tail shares line", "abcdefg hi", 5, []string{"abcde", "fg hi"}},
		{"no limit", "a b c", 0, []string{"a b c"}},
		{"runes not bytes", "\u00e9\u00e9\u00e9 \u00e9\u00e9\u00e9", 3, []string{"\u00e9\u00e9\u00e9", "\u00e9\u00e9\u00e9"}},
		{"empty", "", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.in, tt.max)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestWrap_NeverExceedsLimit(t *testing.T) {
	in := strings.Repeat("lorem ipsum dolorsitametconsectetur ", 20)
	for max := 1; max < 30; max++ {
		for _, line := range Wrap(in, max) {
			if n := len([]rune(line)); n > max {
				t.Fatalf("max=%d: line %q has %d runes", max, line, n)
			}
		}
	}
}

func TestCountVisible(t *testing.T) {
	if n := countVisible([]string{"H I", "  "}); n != 2 {
		t.Errorf("Expected 2 visible characters, got %d", n)
	}
}
