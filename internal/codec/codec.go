package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Base64ToHex decodes a standard base64 string and returns its lowercase hex encoding.
func Base64ToHex(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid base64 %q: %w", s, err)
	}

	return hex.EncodeToString(raw), nil
}

// FormatAccount rewrites a base64 account id into the "<workchain>:<hex>" raw form.
func FormatAccount(workchain int64, account string) (string, error) {
	h, err := Base64ToHex(account)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(workchain, 10) + ":" + h, nil
}
