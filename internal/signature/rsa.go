package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
)

// The chain uses RSA PKCS#1 v1.5 over SHA-1, the scheme the certification
// rules fix for the document hash. The digest choice is isolated here.

// Signer produces document signatures with a private key.
type Signer struct {
	key *rsa.PrivateKey
}

// NewSigner creates a signer from a private key.
func NewSigner(key *rsa.PrivateKey) *Signer {
	return &Signer{key: key}
}

// Sign signs message and returns the base64-encoded signature.
func (s *Signer) Sign(message string) (string, error) {
	if s == nil || s.key == nil {
		return "", ErrNoKey("private")
	}
	digest := sha1.Sum([]byte(message))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA1, digest[:])
	if err != nil {
		return "", ErrSignFailed(err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verifier checks document signatures against a public key.
type Verifier struct {
	key *rsa.PublicKey
}

// NewVerifier creates a verifier from a public key.
func NewVerifier(key *rsa.PublicKey) *Verifier {
	return &Verifier{key: key}
}

// Verify checks the base64-encoded signature against message. A nil return
// means the signature is authentic.
func (v *Verifier) Verify(message, signatureB64 string) error {
	if v == nil || v.key == nil {
		return ErrNoKey("public")
	}
	sig, err := base64.StdEncoding.DecodeString(signatureB64)
	if err != nil {
		return ErrBadEncoding(err)
	}
	digest := sha1.Sum([]byte(message))
	if err := rsa.VerifyPKCS1v15(v.key, crypto.SHA1, digest[:], sig); err != nil {
		return ErrInvalidSignature(err)
	}
	return nil
}
