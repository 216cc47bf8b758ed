package crypto

import (
	"crypto/rand"
	"math"
)

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
	idSize     = 22 // 22 * 6 = 132 bits of entropy (uuid is 128 bits)
	idMask     = 63 // 64-character alphabet
)

// NewID returns a 22-character URL-safe random identifier, used for
// session record ids.
func NewID() (string, error) {
	step := int(math.Ceil(1.6 * float64(idMask*idSize) / float64(len(idAlphabet))))

	id := make([]byte, idSize)
	buffer := make([]byte, step)

	for position := 0; position < idSize; {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}

		for i := 0; i < step && position < idSize; i++ {
			index := buffer[i] & idMask
			if int(index) < len(idAlphabet) {
				id[position] = idAlphabet[index]
				position++
			}
		}
	}

	return string(id), nil
}
