package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Alphabet without look-alike characters (0/O, 1/l/I) since these passwords
// get read over the front desk.
const tempPasswordAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

const tempPasswordLength = 10

// TempPasswordGenerator produces temporary passwords for staff-provisioned
// accounts.
type TempPasswordGenerator struct{}

func NewTempPasswordGenerator() *TempPasswordGenerator {
	return &TempPasswordGenerator{}
}

func (g *TempPasswordGenerator) Generate() (string, error) {
	out := make([]byte, tempPasswordLength)
	max := big.NewInt(int64(len(tempPasswordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = tempPasswordAlphabet[n.Int64()]
	}
	return string(out), nil
}
