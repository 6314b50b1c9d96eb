package calculator

import "testing"

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "Rupees Zero Only"},
		{"7400", "Rupees Seven Thousand Four Hundred Only"},
		{"6400.00", "Rupees Six Thousand Four Hundred Only"},
		{"175.115", "Rupees One Hundred Seventy Five and Twelve Paise Only"},
		{"125000.50", "Rupees One Lakh Twenty Five Thousand and Fifty Paise Only"},
		{"23000000", "Rupees Two Crore Thirty Lakh Only"},
		{"-3000", "Minus Rupees Three Thousand Only"},
		{"1000000000000", "Rupees One Lakh Crore Only"},
		{"99999999999999", "Rupees Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		{"100000000000000", "Rupees 10,00,00,00,00,00,000 Only"},
		{"92233720368547758.07", "Rupees 92,23,37,20,36,85,47,758 and Seven Paise Only"},
		{"10000000000000000000", "Rupees 1,00,00,00,00,00,00,00,00,000 Only"},
		{"-10000000000000000000.5", "Minus Rupees 1,00,00,00,00,00,00,00,00,000 and Fifty Paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := AmountInWords(dec(tt.amount)); got != tt.want {
				t.Errorf("AmountInWords(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestGroupDigits(t *testing.T) {
	tests := map[string]string{
		"7":        "7",
		"740":      "740",
		"7400":     "7,400",
		"125000":   "1,25,000",
		"23000000": "2,30,00,000",
	}
	for in, want := range tests {
		if got := groupDigits(in); got != want {
			t.Errorf("groupDigits(%s) = %q, want %q", in, got, want)
		}
	}
}
