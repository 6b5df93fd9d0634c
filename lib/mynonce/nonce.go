package mynonce

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"
)

const nonceBytes = 32

//go:generate mockgen -source=nonce.go -package mynonce -destination random_stringer_mock.go RandomStringer
type RandomStringer interface {
	Create() (string, error)
}

type randomStringer struct {
	reader io.Reader
}

func NewRandomStringer() RandomStringer {
	return &randomStringer{reader: rand.Reader}
}

func (s randomStringer) Create() (string, error) {
	return randomBytesInHex(s.reader, nonceBytes)
}

// Equal compares in constant time.
func Equal(a string, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func randomBytesInHex(reader io.Reader, count int) (string, error) {
	buf := make([]byte, count)

	_, err := io.ReadFull(reader, buf)
	if err != nil {
		return "", fmt.Errorf("could not generate %d random bytes: %v", count, err)
	}

	return hex.EncodeToString(buf), nil
}
