// Package ecies implements note encryption: an ECDH-derived key feeding
// ChaCha20-Poly1305, with the X-coordinate-only KDF and wire format spec
// §4.8 fixes.
package ecies

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/craft-ec/cloakcraft-sub003/cloakerr"
	"github.com/craft-ec/cloakcraft-sub003/curve"
	"github.com/craft-ec/cloakcraft-sub003/field"
)

const (
	nonceLen = chacha20poly1305.NonceSize // 12
	tagLen   = 16
	// MaxPayload is the hard upper limit on the AEAD payload
	// nonce(12) || ct || tag(16): Encrypt rejects any plaintext longer
	// than MaxPayload-28 = 222 bytes. The ephemeral key and length
	// prefix of the wire form are not counted against it.
	MaxPayload = 250
)

// Encrypted is an ECIES-encrypted note ready for on-chain storage: the
// ephemeral pubkey plus the AEAD output, already concatenated per the
// wire format in spec §4.8.
type Encrypted struct {
	Ephemeral  curve.Point
	CiphertextWithNonce []byte // nonce (12) || ciphertext
	Tag        [tagLen]byte
}

// Encrypt encrypts plaintext (the serialized note) to recipient. e is
// sampled internally; Ephemeral = e·G is published alongside the
// ciphertext so the recipient can rederive the shared secret.
func Encrypt(recipient curve.Point, plaintext []byte) (Encrypted, error) {
	if len(plaintext) > MaxPayload-nonceLen-tagLen {
		return Encrypted{}, cloakerr.ErrDecryptFailure
	}
	e, err := randSubgroupScalar()
	if err != nil {
		return Encrypted{}, err
	}
	E := curve.MulGenerator(e)
	S := recipient.Mul(e)
	key := kdf(S)

	nonce := make([]byte, nonceLen)
	if _, err := rand.Read(nonce); err != nil {
		return Encrypted{}, err
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return Encrypted{}, err
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	ct := sealed[:len(sealed)-tagLen]
	var tag [tagLen]byte
	copy(tag[:], sealed[len(sealed)-tagLen:])

	return Encrypted{
		Ephemeral:           E,
		CiphertextWithNonce: append(nonce, ct...),
		Tag:                 tag,
	}, nil
}

// Decrypt recovers the plaintext using the recipient's spending scalar.
// It returns ErrDecryptFailure on any AEAD failure. Callers scanning a
// commitment stream should prefer TryDecrypt, which never returns an
// error value that needs distinguishing from "not mine".
func Decrypt(sk *big.Int, enc Encrypted) ([]byte, error) {
	pt, ok := TryDecrypt(sk, enc)
	if !ok {
		return nil, cloakerr.ErrDecryptFailure
	}
	return pt, nil
}

// TryDecrypt attempts decryption and reports success via ok, never via
// an error — spec §4.8 requires scanning code be able to try every
// ciphertext without special-casing failures.
func TryDecrypt(sk *big.Int, enc Encrypted) (plaintext []byte, ok bool) {
	if len(enc.CiphertextWithNonce) < nonceLen {
		return nil, false
	}
	S := enc.Ephemeral.Mul(sk)
	key := kdf(S)
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, false
	}
	nonce := enc.CiphertextWithNonce[:nonceLen]
	ct := enc.CiphertextWithNonce[nonceLen:]
	sealed := append(append([]byte{}, ct...), enc.Tag[:]...)
	pt, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, false
	}
	return pt, true
}

// kdf derives the 32-byte ChaCha20-Poly1305 key as SHA-256(S.x), per
// spec §4.8 step 2.
func kdf(S curve.Point) []byte {
	x := S.X().Bytes()
	sum := sha256.Sum256(x[:])
	return sum[:]
}

// Marshal serializes enc per spec §4.8's wire format: E.x(32) || E.y(32)
// || len_ct_u32(4, little-endian) || ct_including_nonce(len) || tag(16).
func (enc Encrypted) Marshal() []byte {
	ex := enc.Ephemeral.X().Bytes()
	ey := enc.Ephemeral.Y().Bytes()
	out := make([]byte, 0, 32+32+4+len(enc.CiphertextWithNonce)+tagLen)
	out = append(out, ex[:]...)
	out = append(out, ey[:]...)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(enc.CiphertextWithNonce)))
	out = append(out, lenBuf[:]...)
	out = append(out, enc.CiphertextWithNonce...)
	out = append(out, enc.Tag[:]...)
	return out
}

// Unmarshal parses the wire format Marshal produces.
func Unmarshal(b []byte) (Encrypted, error) {
	if len(b) < 32+32+4+tagLen {
		return Encrypted{}, cloakerr.ErrDecryptFailure
	}
	ex := field.FrFromBytes(b[0:32])
	ey := field.FrFromBytes(b[32:64])
	pt, err := curve.FromCoordinates(ex, ey)
	if err != nil {
		return Encrypted{}, err
	}
	ctLen := binary.LittleEndian.Uint32(b[64:68])
	rest := b[68:]
	if uint32(len(rest)) != ctLen+tagLen {
		return Encrypted{}, cloakerr.ErrDecryptFailure
	}
	var tag [tagLen]byte
	copy(tag[:], rest[ctLen:])
	return Encrypted{
		Ephemeral:           pt,
		CiphertextWithNonce: append([]byte{}, rest[:ctLen]...),
		Tag:                 tag,
	}, nil
}

func randSubgroupScalar() (*big.Int, error) {
	for {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, err
		}
		v := new(big.Int).Mod(new(big.Int).SetBytes(b), curve.SubgroupOrder)
		if v.Sign() != 0 {
			return v, nil
		}
	}
}
