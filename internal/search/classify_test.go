package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Strategy
	}{
		{
			name:  "empty input",
			input: "",
			want:  Strategy{Kind: KindNone},
		},
		{
			name:  "whitespace only",
			input: "   \t ",
			want:  Strategy{Kind: KindNone},
		},
		{
			name:  "ten digit phone",
			input: "5551234567",
			want:  Strategy{Kind: KindPhone, Digits: "5551234567"},
		},
		{
			name:  "formatted phone",
			input: "(555) 123-4567",
			want:  Strategy{Kind: KindPhone, Digits: "5551234567"},
		},
		{
			name:  "seven digits is still a phone",
			input: "1234567",
			want:  Strategy{Kind: KindPhone, Digits: "1234567"},
		},
		{
			name:  "eleven digits with country code",
			input: "+1 555 123 4567",
			want:  Strategy{Kind: KindPhone, Digits: "15551234567"},
		},
		{
			name:  "letter disqualifies phone",
			input: "call 5551234567",
			want:  Strategy{Kind: KindDualText, Text: "call 5551234567"},
		},
		{
			name:  "three digit suffix",
			input: "035",
			want:  Strategy{Kind: KindSuffixTicket, Suffix: 35, Number: 35},
		},
		{
			name:  "suffix with surrounding spaces",
			input: " 999 ",
			want:  Strategy{Kind: KindSuffixTicket, Suffix: 999, Number: 999},
		},
		{
			name:  "letter disqualifies suffix",
			input: "A35",
			want:  Strategy{Kind: KindDualText, Text: "A35"},
		},
		{
			name:  "short number is exact ticket",
			input: "42",
			want:  Strategy{Kind: KindExactTicket, Number: 42},
		},
		{
			name:  "six digits is exact ticket",
			input: "123456",
			want:  Strategy{Kind: KindExactTicket, Number: 123456},
		},
		{
			name:  "four digits is exact ticket",
			input: "1234",
			want:  Strategy{Kind: KindExactTicket, Number: 1234},
		},
		{
			name:  "free text",
			input: "cracked iphone screen",
			want:  Strategy{Kind: KindDualText, Text: "cracked iphone screen"},
		},
		{
			name:  "free text is trimmed",
			input: "  smith  ",
			want:  Strategy{Kind: KindDualText, Text: "smith"},
		},
		{
			name:  "twelve digits overflows phone range",
			input: "123456789012",
			want:  Strategy{Kind: KindDualText, Text: "123456789012"},
		},
		{
			name:  "punctuation only falls through to text",
			input: "--",
			want:  Strategy{Kind: KindDualText, Text: "--"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

// TestClassifyOrderPhoneBeforeNumeric verifies the phone rule wins over the
// numeric rules when both could apply.
func TestClassifyOrderPhoneBeforeNumeric(t *testing.T) {
	// 7 bare digits satisfy both "phone" and "entirely numeric"; phone is
	// checked first.
	got := Classify("9876543")
	if got.Kind != KindPhone {
		t.Errorf("Classify(%q).Kind = %v, want %v", "9876543", got.Kind, KindPhone)
	}
}

func TestStrategyString(t *testing.T) {
	tests := []struct {
		s    Strategy
		want string
	}{
		{Strategy{Kind: KindNone}, "none"},
		{Strategy{Kind: KindPhone, Digits: "5551234567"}, "phone(5551234567)"},
		{Strategy{Kind: KindExactTicket, Number: 123}, "exact-ticket(123)"},
		{Strategy{Kind: KindSuffixTicket, Suffix: 35}, "suffix-ticket(035)"},
		{Strategy{Kind: KindDualText, Text: "smith"}, `dual-text("smith")`},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Strategy.String() = %q, want %q", got, tt.want)
		}
	}
}
