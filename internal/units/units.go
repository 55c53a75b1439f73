package units

import (
	"math/big"
	"strings"
)

// FormatTokens renders base units v as a decimal string with the given decimals.
func FormatTokens(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	if decimals <= 0 {
		return v.String()
	}
	s := new(big.Int).Abs(v).String()
	neg := v.Sign() < 0
	if len(s) <= decimals {
		frac := strings.Repeat("0", decimals-len(s)) + s
		out := "0." + strings.TrimRight(frac, "0")
		if out == "0." {
			out = "0"
		}
		if neg {
			return "-" + out
		}
		return out
	}
	intPart := s[:len(s)-decimals]
	frac := strings.TrimRight(s[len(s)-decimals:], "0")
	out := intPart
	if frac != "" {
		out = intPart + "." + frac
	}
	if neg {
		return "-" + out
	}
	return out
}

// FormatEther renders wei as ETH with 6 fractional digits.
func FormatEther(v *big.Int) string {
	if v == nil {
		return "0"
	}
	r := new(big.Rat).SetFrac(v, big.NewInt(1_000_000_000_000_000_000))
	return r.FloatString(6)
}

// MaskHex hides the middle of a secret for printing.
func MaskHex(h string) string {
	h = strings.TrimSpace(h)
	if len(h) <= 10 {
		return "***"
	}
	return h[:6] + "…" + h[len(h)-4:]
}
