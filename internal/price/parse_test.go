package price

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{"US thousands and decimals", "$1,234.56", 1234.56},
		{"European thousands and decimals", "1.234,56 €", 1234.56},
		{"rupee integer", "₹1234", 1234},
		{"yen with comma thousands", "¥123,456", 123456},
		{"hyphen range", "$899 - $1199", 899},
		{"en dash range", "£499–£599", 499},
		{"word range", "$20 to $30", 20},
		{"from qualifier", "From $999", 999},
		{"starting at qualifier", "Starting at $1,099.99", 1099.99},
		{"german qualifier", "ab 799,00 €", 799},
		{"french qualifier", "à partir de 1 299,00 €", 1299},
		{"european decimal only", "49,99 €", 49.99},
		{"european with space thousands", "1 234,56 €", 1234.56},
		{"plain decimal", "19.99", 19.99},
		{"US comma thousands no decimals", "1,234", 1234},
		{"millions US", "$1,234,567.89", 1234567.89},
		{"trailing garbage", "$1,234.56/mo", 1234.56},
		{"empty", "", 0},
		{"garbage", "garbage", 0},
		{"only separators", ".,", 0},
		{"multiple dots keeps leading number", "1.234.567", 1.234},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// A dot followed by three digits is read as a thousands separator even when
// the value was meant as a decimal. Kept for compatibility.
func TestParse_AmbiguousThreeDigitDecimal(t *testing.T) {
	if got := Parse("1.234"); got != 1234 {
		t.Errorf("Parse(\"1.234\") = %v, want 1234 (thousands interpretation)", got)
	}
	if got := Parse("$0.999"); got != 999 {
		t.Errorf("Parse(\"$0.999\") = %v, want 999 (thousands interpretation)", got)
	}
}

func TestParse_Deterministic(t *testing.T) {
	inputs := []string{"$1,234.56", "1.234,56 €", "From $999", "garbage", "1.234"}
	for _, in := range inputs {
		first := Parse(in)
		for i := 0; i < 5; i++ {
			if got := Parse(in); got != first {
				t.Fatalf("Parse(%q) not deterministic: %v then %v", in, first, got)
			}
		}
	}
}
