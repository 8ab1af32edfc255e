package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gtank/cryptopasta"
)

// hash tags separating the two keys derived from one passphrase
const (
	tagEncryption = "savings.io/encryption"
	tagSignature  = "savings.io/signature"
)

// ErrSignature is returned by Decrypt when the HMAC does not match, i.e. the
// data was signed with another key or has been altered.
var ErrSignature = errors.New("signature validation failed")

// NewRandomKey generates a random key, base64 encoded. It makes a good
// passphrase for DeriveKeys.
func NewRandomKey() (string, error) {
	key := &[33]byte{} // slightly longer than we need to be safe
	_, err := io.ReadFull(rand.Reader, key[:])
	return base64.RawURLEncoding.EncodeToString(key[:]), err
}

// DeriveKeys turns a passphrase into an encryption key and a signing key in
// the format Encrypt and Decrypt expect. The same passphrase always gives the
// same keys.
func DeriveKeys(passphrase string) (encryption, signature string) {
	enc := cryptopasta.Hash(tagEncryption, []byte(passphrase))
	sig := cryptopasta.Hash(tagSignature, []byte(passphrase))
	return base64.RawURLEncoding.EncodeToString(enc), base64.RawURLEncoding.EncodeToString(sig)
}

// Decrypt is the inverse of encrypt, checking the HMAC and decrpyting the
// encoded data, if possible.
func Decrypt(encoded, key, sig string) ([]byte, error) {
	rawkey, err := toKey(key)
	if err != nil {
		return nil, err
	}

	rawsig, err := toKey(sig)
	if err != nil {
		return nil, err
	}

	// split into cyphertext & signature
	bits := strings.SplitN(encoded, ".", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("decryption failed, encoded string invalid")
	}

	cypher, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, err
	}

	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, err
	}

	if !cryptopasta.CheckHMAC(cypher, signature, rawsig) {
		return nil, ErrSignature
	}

	return cryptopasta.Decrypt(cypher, rawkey)
}

// Encrypt encrypts & base64 encodes the result into a string.
// It also attaches a HMAC signature on the end.
func Encrypt(plaintext []byte, key, sig string) (string, error) {
	rawkey, err := toKey(key)
	if err != nil {
		return "", err
	}

	rawsig, err := toKey(sig)
	if err != nil {
		return "", err
	}

	cyphertext, err := cryptopasta.Encrypt(plaintext, rawkey)
	if err != nil {
		return "", err
	}

	signature := cryptopasta.GenerateHMAC(cyphertext, rawsig)

	// smoosh together and we're done
	return fmt.Sprintf(
		"%s.%s",
		base64.RawURLEncoding.EncodeToString(cyphertext),
		base64.RawURLEncoding.EncodeToString(signature),
	), nil
}

// toKey decodes a base64 key of at least 32 bytes into *[32]byte, as needed
// by cryptopasta.
func toKey(s string) (*[32]byte, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("key is not base64: %w", err)
	}
	if len(raw) < 32 {
		return nil, fmt.Errorf("key too short for encryption/signing operation, want at least 32 bytes")
	}
	data := &[32]byte{}
	copy(data[:], raw)
	return data, nil
}
