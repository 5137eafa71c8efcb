package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenNotYetValid = errors.New("token not yet valid")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrInvalidKey       = errors.New("invalid key")
)

// Claims carries the registered claims plus the identity of the token holder.
type Claims struct {
	gojwt.RegisteredClaims

	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// Service signs and verifies identity tokens
type Service struct {
	method     gojwt.SigningMethod
	signKey    any
	verifyKey  any
	issuer     string
	expiration time.Duration
}

// Config holds JWT service configuration.
// When PrivateKeyPath or PublicKeyPath is set the service uses RS256,
// otherwise Secret is used with HS256.
type Config struct {
	Secret         string
	PrivateKeyPath string
	PublicKeyPath  string
	Issuer         string
	Expiration     time.Duration
}

// NewService creates a new JWT service
func NewService(cfg Config) (*Service, error) {
	s := &Service{
		issuer:     cfg.Issuer,
		expiration: cfg.Expiration,
	}

	switch {
	case cfg.PrivateKeyPath != "":
		privateKey, err := loadPrivateKey(cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load private key: %w", err)
		}
		s.method = gojwt.SigningMethodRS256
		s.signKey = privateKey
		s.verifyKey = &privateKey.PublicKey
	case cfg.PublicKeyPath != "":
		// verification only
		publicKey, err := loadPublicKey(cfg.PublicKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load public key: %w", err)
		}
		s.method = gojwt.SigningMethodRS256
		s.verifyKey = publicKey
	case cfg.Secret != "":
		s.method = gojwt.SigningMethodHS256
		s.signKey = []byte(cfg.Secret)
		s.verifyKey = []byte(cfg.Secret)
	default:
		return nil, fmt.Errorf("%w: no secret or key path configured", ErrInvalidKey)
	}

	return s, nil
}

// GenerateKeyPair generates a new RSA key pair and saves it as PEM files
func GenerateKeyPair(privateKeyPath, publicKeyPath string) error {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	})
	if err := os.WriteFile(privateKeyPath, privateKeyPEM, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	publicKeyBytes, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to marshal public key: %w", err)
	}
	publicKeyPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: publicKeyBytes,
	})
	if err := os.WriteFile(publicKeyPath, publicKeyPEM, 0644); err != nil {
		return fmt.Errorf("failed to write public key: %w", err)
	}

	return nil
}

// Sign creates a signed JWT token. Issuer, issued-at and not-before are
// always stamped; expiry defaults to the configured lifetime.
func (s *Service) Sign(claims Claims) (string, error) {
	if s.signKey == nil {
		return "", ErrInvalidKey
	}

	now := time.Now()
	claims.Issuer = s.issuer
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.NotBefore = gojwt.NewNumericDate(now)
	if claims.ExpiresAt == nil {
		claims.ExpiresAt = gojwt.NewNumericDate(now.Add(s.expiration))
	}
	if claims.Subject == "" {
		claims.Subject = claims.UserID
	}

	token := gojwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign: %w", err)
	}
	return signed, nil
}

// Validate verifies a JWT token and returns its claims
func (s *Service) Validate(tokenString string) (*Claims, error) {
	if s.verifyKey == nil {
		return nil, ErrInvalidKey
	}

	opts := []gojwt.ParserOption{gojwt.WithValidMethods([]string{s.method.Alg()})}
	if s.issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := gojwt.ParseWithClaims(tokenString, claims, func(*gojwt.Token) (interface{}, error) {
		return s.verifyKey, nil
	}, opts...)
	if err != nil {
		return nil, translateError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}

	return claims, nil
}

// GetExpiration returns the token expiration duration
func (s *Service) GetExpiration() time.Duration {
	return s.expiration
}

// NewTestService creates an HS256 service backed by an in-memory secret.
// This should only be used in tests.
func NewTestService(secret []byte, issuer string, expiration time.Duration) *Service {
	return &Service{
		method:     gojwt.SigningMethodHS256,
		signKey:    secret,
		verifyKey:  secret,
		issuer:     issuer,
		expiration: expiration,
	}
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gojwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, gojwt.ErrTokenNotValidYet):
		return ErrTokenNotYetValid
	case errors.Is(err, gojwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return ErrInvalidToken
	}
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gojwt.ParseRSAPrivateKeyFromPEM(data)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return gojwt.ParseRSAPublicKeyFromPEM(data)
}
