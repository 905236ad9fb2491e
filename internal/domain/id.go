package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the number of hex characters kept from the hash. 128 bits is
// collision-free for practical purposes.
const idLength = 32

// DeriveArticleID computes the deterministic storage id for an article from
// its identity-bearing input: the upstream source id for announcements, the
// canonical URL for blog posts. Re-ingesting the same item always yields the
// same id, which is what makes inserts idempotent.
func DeriveArticleID(identity string) string {
	return shortHash(identity)
}

// DeriveLinkID computes the deterministic id for a cross-reference link.
func DeriveLinkID(articleID, url string) string {
	return shortHash(articleID + ":" + url)
}

func shortHash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:idLength]
}
