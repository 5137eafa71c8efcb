// Package jwt issues and verifies the identity tokens handed out by the
// job board API.
//
// Tokens are signed with HS256 from a shared secret, or with RS256 when a
// PEM key pair is configured:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    Secret:     os.Getenv("JWT_SECRET"),
//	    Issuer:     "jobboard",
//	    Expiration: 7 * 24 * time.Hour,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: user.ID})
//	claims, err := svc.Validate(token)
//
// Validate reports failures through the package sentinel errors so callers
// can tell a bad token (ErrInvalidToken, ErrInvalidSignature, ErrTokenExpired,
// ErrTokenNotYetValid) from a misconfigured service (ErrInvalidKey).
package jwt
