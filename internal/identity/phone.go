package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoVerification  = errors.New("no verification in progress")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrAlreadyVerified = errors.New("phone already verified")
)

// SendPhoneCode generates a 6-digit code, stores its bcrypt hash in the
// caller's metadata and returns the plain code for delivery. The plain code
// is never persisted.
func (s *Service) SendPhoneCode(accessToken, phone string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	code := fmt.Sprintf("%06d", n.Int64())

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	err = s.anon.UpdateMetadata(accessToken, map[string]interface{}{
		"phone":                phone,
		"phone_verified":       false,
		"verification_code":    string(hash),
		"verification_sent_at": s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// VerifyPhoneCode checks the submitted code against the stored hash and
// marks the phone verified on a match.
func (s *Service) VerifyPhoneCode(accessToken, code string) error {
	id, err := s.anon.CurrentUser(accessToken)
	if err != nil {
		return err
	}

	if verified, _ := id.Metadata["phone_verified"].(bool); verified {
		return ErrAlreadyVerified
	}
	hash, _ := id.Metadata["verification_code"].(string)
	if hash == "" {
		return ErrNoVerification
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)); err != nil {
		return ErrCodeMismatch
	}

	return s.anon.UpdateMetadata(accessToken, map[string]interface{}{
		"phone_verified":    true,
		"verification_code": nil,
	})
}
