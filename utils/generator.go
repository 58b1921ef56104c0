package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

const DefaultCodeSuffixDigits = 4

// GenerateInstituteCode builds a human-facing institute code: the acronym of
// the alphabetic words in the institute name plus a random numeric suffix of
// the given width. The code is not guaranteed unique; the caller must insert
// against the unique column and call again on collision.
func GenerateInstituteCode(name string, suffixDigits int) string {
	if suffixDigits <= 0 {
		suffixDigits = DefaultCodeSuffixDigits
	}

	var acronym strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) {
				acronym.WriteRune(unicode.ToUpper(r))
				break
			}
		}
	}
	prefix := acronym.String()
	if prefix == "" {
		prefix = "INS"
	}

	max := big.NewInt(1)
	for i := 0; i < suffixDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("institute code generation: %v", err))
	}

	return fmt.Sprintf("%s%0*d", prefix, suffixDigits, n)
}

// GenerateReferenceID returns the opaque token used as the external
// idempotency key of a payment transaction. Uniqueness is enforced by the
// ledger's unique column; the caller retries on collision.
func GenerateReferenceID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("reference id generation: %v", err))
	}
	return "TXN" + strings.ToUpper(hex.EncodeToString(b))
}
