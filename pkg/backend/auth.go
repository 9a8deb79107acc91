package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/flowpro/flowpro/pkg/jwk"
	"github.com/flowpro/flowpro/pkg/proto"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const saltySalt = "salty-flowpro"

// TokenAudience is the audience of FlowPro access tokens.
const TokenAudience = "flowpro"

// ErrInvalidToken is returned when an access token cannot be verified.
var ErrInvalidToken = fmt.Errorf("invalid token: %w", proto.ErrUnauthenticated)

// HashPassword hashes the password using bcrypt.
func HashPassword(password string) (string, error) {
	crypt, err := bcrypt.GenerateFromPassword([]byte(password+saltySalt), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(crypt), nil
}

// VerifyPassword verifies the password against the hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password+saltySalt))
	return err == nil
}

// Authenticate returns the user with the given email and password.
func (d *Backend) Authenticate(ctx context.Context, email, password string) (proto.User, error) {
	u, err := d.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil, proto.ErrInvalidCredentials
		}
		return nil, err
	}

	if u.Password() == "" || !VerifyPassword(password, u.Password()) {
		return nil, proto.ErrInvalidCredentials
	}

	return u, nil
}

// KeyPair returns the key pair used to sign access tokens.
func (d *Backend) KeyPair() (jwk.Pair, error) {
	d.keyOnce.Do(func() {
		d.keyPair, d.keyErr = jwk.NewPair(d.cfg)
	})
	return d.keyPair, d.keyErr
}

// IssueToken returns a signed access token for user and its expiry time.
func (d *Backend) IssueToken(ctx context.Context, user proto.User) (string, time.Time, error) {
	return d.IssueTokenFor(ctx, user, d.cfg.TokenExpiry())
}

// IssueTokenFor is like IssueToken but the token expires after expiresIn.
func (d *Backend) IssueTokenFor(_ context.Context, user proto.User, expiresIn time.Duration) (string, time.Time, error) {
	if user == nil {
		return "", time.Time{}, proto.ErrUnauthenticated
	}
	kp, err := d.KeyPair()
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	if expiresIn <= 0 {
		return "", time.Time{}, proto.ValidationError("token expiry must be positive")
	}
	expiresAt := now.Add(expiresIn)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(user.ID(), 10),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    d.cfg.HTTP.PublicURL,
		Audience:  []string{TokenAudience},
	}

	token := jwt.NewWithClaims(jwk.SigningMethod, claims)
	token.Header["kid"] = kp.JWK().KeyID
	j, err := token.SignedString(kp.PrivateKey())
	if err != nil {
		d.logger.Error("failed to sign token", "err", err)
		return "", time.Time{}, err
	}

	return j, expiresAt, nil
}

// UserByToken verifies an access token and returns its user.
func (d *Backend) UserByToken(ctx context.Context, bearer string) (proto.User, error) {
	kp, err := d.KeyPair()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(bearer, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, errors.New("invalid signing method")
		}

		return kp.PublicKey(), nil
	},
		jwt.WithIssuer(d.cfg.HTTP.PublicURL),
		jwt.WithIssuedAt(),
		jwt.WithAudience(TokenAudience),
	)
	if err != nil {
		d.logger.Debug("failed to parse jwt", "err", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !token.Valid || !ok {
		return nil, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		d.logger.Debug("invalid jwt subject", "subject", claims.Subject)
		return nil, ErrInvalidToken
	}

	u, err := d.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, proto.ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	return u, nil
}
