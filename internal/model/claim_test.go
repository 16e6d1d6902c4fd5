package model

import "testing"

func TestNormalizeClaimType(t *testing.T) {
	tests := []struct {
		input string
		want  ClaimType
	}{
		{"statistic", ClaimTypeStatistic},
		{"date", ClaimTypeDate},
		{"financial", ClaimTypeFinancial},
		{"technical", ClaimTypeTechnical},
		{"factual", ClaimTypeFactual},
		{"", ClaimTypeFactual},
		{"opinion", ClaimTypeFactual},
		{"Statistic", ClaimTypeFactual}, // case-sensitive on purpose
	}

	for _, tt := range tests {
		if got := NormalizeClaimType(tt.input); got != tt.want {
			t.Errorf("NormalizeClaimType(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
