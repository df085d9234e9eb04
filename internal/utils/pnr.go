package utils

import (
    "crypto/rand"
    "fmt"
    "math/big"
)

// pnrSpan covers the 10-digit numerals 1000000000..9999999999. The
// code space is large enough that a collision between concurrently
// generated codes is negligible; the unique index on bookings.pnr
// catches the residual case and callers regenerate once.
var pnrSpan = big.NewInt(9_000_000_000)

// NewPNR returns a confirmation code of the form "PNR" followed by
// ten random digits, drawn from crypto/rand.
func NewPNR() (string, error) {
    n, err := rand.Int(rand.Reader, pnrSpan)
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("PNR%d", n.Int64()+1_000_000_000), nil
}
