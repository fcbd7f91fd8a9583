package signature

import "fmt"

// Error codes for signature operations
const (
	ErrCodeInvalidSignature = "INVALID_SIGNATURE"
	ErrCodeBadEncoding      = "BAD_ENCODING"
	ErrCodeKeyParse         = "KEY_PARSE"
	ErrCodeUnsupportedKey   = "UNSUPPORTED_KEY"
	ErrCodeNoKey            = "NO_KEY"
	ErrCodeSignFailed       = "SIGN_FAILED"
)

// SignatureError represents signature operation errors
type SignatureError struct {
	Code    string
	Message string
	Cause   error
}

func (e *SignatureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SignatureError) Unwrap() error {
	return e.Cause
}

// NewSignatureError creates a new signature error
func NewSignatureError(code, message string, cause error) *SignatureError {
	return &SignatureError{Code: code, Message: message, Cause: cause}
}

// ErrInvalidSignature returns error when signature verification fails
func ErrInvalidSignature(cause error) *SignatureError {
	return NewSignatureError(ErrCodeInvalidSignature, "signature verification failed", cause)
}

// ErrBadEncoding returns error when the stored signature is not valid base64
func ErrBadEncoding(cause error) *SignatureError {
	return NewSignatureError(ErrCodeBadEncoding, "signature is not valid base64", cause)
}

// ErrKeyParse returns error when PEM key material cannot be parsed
func ErrKeyParse(cause error) *SignatureError {
	return NewSignatureError(ErrCodeKeyParse, "failed to parse PEM key", cause)
}

// ErrUnsupportedKey returns error for non-RSA key material
func ErrUnsupportedKey(kind string) *SignatureError {
	return NewSignatureError(ErrCodeUnsupportedKey, fmt.Sprintf("unsupported key type: %s", kind), nil)
}

// ErrNoKey returns error when an operation needs a key that was not configured
func ErrNoKey(which string) *SignatureError {
	return NewSignatureError(ErrCodeNoKey, fmt.Sprintf("no %s key configured", which), nil)
}

// ErrSignFailed returns error when producing a signature fails
func ErrSignFailed(cause error) *SignatureError {
	return NewSignatureError(ErrCodeSignFailed, "signing failed", cause)
}
