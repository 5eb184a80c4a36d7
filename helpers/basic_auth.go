package helpers

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything past 72 bytes.
const maxBcryptLength = 72

type BasicAuthenticationMiddleware struct {
	usernameHash []byte
	passwordHash []byte
}

func (bam *BasicAuthenticationMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, authOK := r.BasicAuth()

		if !authOK || bcrypt.CompareHashAndPassword(bam.usernameHash, []byte(username)) != nil || bcrypt.CompareHashAndPassword(bam.passwordHash, []byte(password)) != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CreateBasicAuthMiddleware(logger lager.Logger, ba BasicAuth) (*BasicAuthenticationMiddleware, error) {
	usernameHash, err := hashOf(logger.Session("username"), ba.UsernameHash, ba.Username)
	if err != nil {
		return nil, err
	}

	passwordHash, err := hashOf(logger.Session("password"), ba.PasswordHash, ba.Password)
	if err != nil {
		return nil, err
	}

	return &BasicAuthenticationMiddleware{
		usernameHash: usernameHash,
		passwordHash: passwordHash,
	}, nil
}

// hashOf returns the configured hash, or hashes the cleartext value with
// bcrypt.MinCost when no hash is configured.
func hashOf(logger lager.Logger, hash string, cleartext string) ([]byte, error) {
	if hash != "" {
		return []byte(hash), nil
	}
	if len(cleartext) > maxBcryptLength {
		logger.Error("value-too-long-using-only-first-72-characters", bcrypt.ErrPasswordTooLong, lager.Data{"length": len(cleartext)})
		cleartext = cleartext[:maxBcryptLength]
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(cleartext), bcrypt.MinCost)
	if err != nil {
		logger.Error("failed-to-hash", err)
		return nil, err
	}
	return hashed, nil
}
