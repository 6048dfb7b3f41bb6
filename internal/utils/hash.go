package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded. The remote adapter sends it in the HashSHA256
// header.
//
// Example usage:
//
//	signature := utils.HashString(string(body), "my-secret-key")
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

// VerifyHash reports whether signature is the hex HMAC-SHA256 of data
// under hashKey. The comparison is constant time.
func VerifyHash(data []byte, signature, hashKey string) bool {
	want, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(hashString(data, hashKey), want)
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
