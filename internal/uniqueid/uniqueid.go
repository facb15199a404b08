// Package uniqueid generates the short ticket references handed to
// registrants for payment correlation.
package uniqueid

import (
	"crypto/rand"
	"math/big"
)

const (
	// Alphabet is deliberately small so the reference can be read out over
	// the phone; the 36^4 space makes collisions a store-level concern, not
	// an impossibility.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Length   = 4
)

// Generate returns a fresh Length-character ticket reference with each
// symbol drawn uniformly from Alphabet.
func Generate() string {
	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// there is no meaningful fallback for a payment reference.
			panic(err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf)
}
