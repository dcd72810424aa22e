package utils

import "testing"

func TestIsValidWalletAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"checksummed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"lowercase", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"surrounding whitespace", "  0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed  ", true},
		{"missing 0x prefix", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"too short", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae", false},
		{"too long", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed00", false},
		{"non-hex characters", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaeg", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidWalletAddress(tt.addr); got != tt.want {
				t.Errorf("IsValidWalletAddress(%q) = %v, want %v", tt.addr, got, tt.want)
			}
		})
	}
}

func TestChecksumAddress(t *testing.T) {
	got := ChecksumAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	want := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	if got != want {
		t.Errorf("ChecksumAddress() = %s, want %s", got, want)
	}

	// 非法地址原样返回
	if got := ChecksumAddress("not-an-address"); got != "not-an-address" {
		t.Errorf("ChecksumAddress() = %s, want input unchanged", got)
	}
}
