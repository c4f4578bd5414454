package apiclient

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
)

// digestKey starts the line of generated source that records the digest.
var digestKey = []byte("Digest:")

// SourceDigest returns the hex SHA-256 of generated source, skipping lines
// that start with "Digest:" so a file can carry its own digest.
func SourceDigest(src []byte) string {
	h := sha256.New()
	for line := range bytes.SplitSeq(src, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimSpace(line), digestKey) {
			continue
		}
		h.Write(line)
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
