package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// TTL is how long an issued code stays valid.
const TTL = 15 * time.Minute

// Issuer generates one-time verification codes. Codes are not required to
// be distinct across accounts; lookup is always scoped by email.
type Issuer struct {
	now func() time.Time
}

func NewIssuer() *Issuer {
	return &Issuer{now: time.Now}
}

// Generate returns a 6-digit code drawn uniformly from [100000, 999999]
// and its expiry, exactly TTL from now.
func (i *Issuer) Generate() (string, time.Time) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		// crypto/rand never fails on a healthy system
		panic(err)
	}
	code := strconv.FormatInt(n.Int64()+100000, 10)
	return code, i.now().Add(TTL)
}
