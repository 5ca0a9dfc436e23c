package node

import "crypto/sha256"

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// pseudoIdentifier derives a deterministic base58-looking identifier
// from a seed string. It is not a real platform identifier; it only has
// to survive the dashboard's identifier validation.
func pseudoIdentifier(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	out := make([]byte, 44)
	for i := range out {
		out[i] = base58Alphabet[int(sum[i%len(sum)])%len(base58Alphabet)]
	}
	return string(out)
}
