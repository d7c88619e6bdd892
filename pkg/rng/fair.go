package rng

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Fair детерминированный генератор на HMAC-SHA256.
// Раунд r: HMAC(serverSeed, "clientSeed:nonce:r"), каждые 4 байта дают одно число в [0,1)
type Fair struct {
	serverSeed string
	clientSeed string
	nonce      uint64

	round  uint64
	pos    int
	buffer [sha256.Size]byte
}

func NewFair(serverSeed, clientSeed string, nonce uint64) *Fair {
	f := &Fair{
		serverSeed: serverSeed,
		clientSeed: clientSeed,
		nonce:      nonce,
	}
	f.generateRound()
	return f
}

// Float64 следующее число в [0,1)
func (f *Fair) Float64() float64 {
	var result float64
	divider := 1.0
	for i := 0; i < 4; i++ {
		divider *= 256
		result += float64(f.next()) / divider
	}
	return result
}

func (f *Fair) next() byte {
	if f.pos >= len(f.buffer) {
		f.round++
		f.pos = 0
		f.generateRound()
	}
	b := f.buffer[f.pos]
	f.pos++
	return b
}

func (f *Fair) generateRound() {
	h := hmac.New(sha256.New, []byte(f.serverSeed))
	_, _ = fmt.Fprintf(h, "%s:%d:%d", f.clientSeed, f.nonce, f.round)
	copy(f.buffer[:], h.Sum(nil))
}

// Floats первые count чисел для заданных параметров
func Floats(serverSeed, clientSeed string, nonce uint64, count int) []float64 {
	f := NewFair(serverSeed, clientSeed, nonce)
	out := make([]float64, count)
	for i := range out {
		out[i] = f.Float64()
	}
	return out
}

// NewServerSeed случайный серверный сид (256 бит, hex)
func NewServerSeed() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashSeed sha256 сида, его можно публиковать до раскрытия самого сида
func HashSeed(seed string) string {
	h := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(h[:])
}
