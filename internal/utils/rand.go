package utils

import (
	"math/rand"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyz0123456789"
const (
	letterIdxBits = 6                    // bits needed for a letter index
	letterIdxMask = 1<<letterIdxBits - 1 // low letterIdxBits set
	letterIdxMax  = 63 / letterIdxBits   // letter indices per 63 random bits
)

// RandString returns a short random id of length n, used for public
// question and answer ids. The top-level rand source is locked, so this is
// safe from concurrent handlers.
func RandString(n int) string {
	b := make([]byte, n)
	for i, cache, remain := n-1, rand.Int63(), letterIdxMax; i >= 0; {
		if remain == 0 {
			cache, remain = rand.Int63(), letterIdxMax
		}
		if idx := int(cache & letterIdxMask); idx < len(letterBytes) {
			b[i] = letterBytes[idx]
			i--
		}
		cache >>= letterIdxBits
		remain--
	}
	return string(b)
}
