package game

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"
)

// Digest fingerprints the state for replay verification and determinism
// checks. GameState holds only slices and scalars, so its JSON encoding is
// canonical and two equal states always hash alike.
func (s GameState) Digest() string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
