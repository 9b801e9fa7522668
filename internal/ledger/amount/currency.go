package amount

import (
	"encoding/hex"
	"strings"
)

// nonStandardPrefix marks 160-bit currency codes that carry structured data
// ahead of the human-readable part (XLS-14 style NFT codes).
const nonStandardPrefix = 0x02

// NormalizeCurrencyCode renders a wire currency code for display. Standard
// three-character codes pass through, 40-character hex codes are decoded to
// their ASCII form, and anything that decodes to the native asset code but
// is not the real thing is labeled as fake so a spoofed "XRP" token can
// never be mistaken for the native asset.
func NormalizeCurrencyCode(code string) string {
	if code == "" {
		return ""
	}

	if len(code) != 40 {
		if strings.EqualFold(code, NativeAsset) && code != NativeAsset {
			return "Fake" + NativeAsset
		}
		return code
	}

	raw, err := hex.DecodeString(code)
	if err != nil {
		return code
	}

	var decoded string
	if raw[0] == nonStandardPrefix {
		decoded = string(raw[8:])
	} else {
		decoded = string(raw)
	}
	decoded = strings.TrimRight(decoded, "\x00")

	if decoded == "" {
		return code
	}
	if strings.EqualFold(decoded, NativeAsset) {
		return "Fake" + NativeAsset
	}
	return decoded
}
