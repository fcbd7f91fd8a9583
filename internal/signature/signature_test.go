package signature_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/saft-validator/internal/signature"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestBuildMessage(t *testing.T) {
	docDate := time.Date(2019, 10, 5, 0, 0, 0, 0, time.UTC)
	entryDate := time.Date(2019, 10, 5, 17, 4, 30, 0, time.UTC)
	gross := decimal.RequireFromString("877.56")

	msg := signature.BuildMessage(docDate, entryDate, "FT FT/3", gross, "previoushash")
	assert.Equal(t, "2019-10-05;2019-10-05T17:04:30;FT FT/3;877.56;previoushash", msg)
}

func TestBuildMessage_FirstOfSeries(t *testing.T) {
	docDate := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	entryDate := time.Date(2019, 1, 1, 9, 0, 0, 0, time.UTC)

	msg := signature.BuildMessage(docDate, entryDate, "FT FT/1", decimal.NewFromInt(100), "")
	assert.Equal(t, "2019-01-01;2019-01-01T09:00:00;FT FT/1;100.00;", msg)
}

func TestBuildMessage_GrossAlwaysTwoPlaces(t *testing.T) {
	docDate := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	msg := signature.BuildMessage(docDate, docDate, "FT FT/1", decimal.RequireFromString("10.5"), "")
	assert.Contains(t, msg, ";10.50;")
}

func TestSignVerify_RoundTrip(t *testing.T) {
	key := testKey(t)
	signer := signature.NewSigner(key)
	verifier := signature.NewVerifier(&key.PublicKey)

	message := "2019-10-05;2019-10-05T17:04:30;FT FT/3;877.56;"
	sig, err := signer.Sign(message)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	assert.NoError(t, verifier.Verify(message, sig))
}

func TestVerify_TamperedMessage(t *testing.T) {
	key := testKey(t)
	signer := signature.NewSigner(key)
	verifier := signature.NewVerifier(&key.PublicKey)

	sig, err := signer.Sign("2019-10-05;2019-10-05T17:04:30;FT FT/3;877.56;")
	require.NoError(t, err)

	err = verifier.Verify("2019-10-05;2019-10-05T17:04:30;FT FT/3;999.99;", sig)
	require.Error(t, err)

	var sigErr *signature.SignatureError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, signature.ErrCodeInvalidSignature, sigErr.Code)
}

func TestVerify_BadEncoding(t *testing.T) {
	key := testKey(t)
	verifier := signature.NewVerifier(&key.PublicKey)

	err := verifier.Verify("message", "not base64 !!!")
	require.Error(t, err)

	var sigErr *signature.SignatureError
	require.ErrorAs(t, err, &sigErr)
	assert.Equal(t, signature.ErrCodeBadEncoding, sigErr.Code)
}

func TestVerify_WrongKey(t *testing.T) {
	signer := signature.NewSigner(testKey(t))
	other := testKey(t)
	verifier := signature.NewVerifier(&other.PublicKey)

	sig, err := signer.Sign("message")
	require.NoError(t, err)
	assert.Error(t, verifier.Verify("message", sig))
}

func TestSign_NoKey(t *testing.T) {
	signer := signature.NewSigner(nil)
	_, err := signer.Sign("message")
	require.Error(t, err)
}

func TestParsePublicKey_PKIX(t *testing.T) {
	key := testKey(t)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	parsed, err := signature.ParsePublicKey(pemData)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey.N, parsed.N)
}

func TestParsePublicKey_PKCS1(t *testing.T) {
	key := testKey(t)
	pemData := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey),
	})

	parsed, err := signature.ParsePublicKey(pemData)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey.N, parsed.N)
}

func TestParsePublicKey_Invalid(t *testing.T) {
	_, err := signature.ParsePublicKey([]byte("not a key"))
	require.Error(t, err)
}

func TestParsePrivateKey_PKCS1(t *testing.T) {
	key := testKey(t)
	pemData := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})

	parsed, err := signature.ParsePrivateKey(pemData)
	require.NoError(t, err)
	assert.Equal(t, key.D, parsed.D)
}

func TestParsePrivateKey_PKCS8(t *testing.T) {
	key := testKey(t)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	pemData := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	parsed, err := signature.ParsePrivateKey(pemData)
	require.NoError(t, err)
	assert.Equal(t, key.D, parsed.D)
}
