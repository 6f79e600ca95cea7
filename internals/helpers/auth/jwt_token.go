package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Access token claim keys.
const (
	ClaimID       = "id"
	ClaimRole     = "role"
	ClaimBranchID = "branch_id"
	ClaimName     = "name"
	ClaimExp      = "exp"
	ClaimIat      = "iat"
)

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenNoSubject = errors.New("token has no valid user id")
)

// TokenSubject is what an access token says about its holder.
type TokenSubject struct {
	UserID   uuid.UUID
	Role     string
	BranchID *uuid.UUID
	Name     string
}

// IssueAccessToken signs an HS256 token valid for ttl from now.
func IssueAccessToken(secret string, sub TokenSubject, now time.Time, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, errors.New("JWT_SECRET belum diset")
	}
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		ClaimID:   sub.UserID.String(),
		ClaimRole: sub.Role,
		ClaimName: sub.Name,
		ClaimIat:  now.Unix(),
		ClaimExp:  exp.Unix(),
	}
	if sub.BranchID != nil {
		claims[ClaimBranchID] = sub.BranchID.String()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken verifies signature and expiry (with skew) and returns
// the subject and expiry time.
func ParseAccessToken(secret, raw string, now time.Time, skew time.Duration) (TokenSubject, time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true}
	_, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return TokenSubject{}, time.Time{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	exp, ok := numericClaim(claims[ClaimExp])
	if !ok {
		return TokenSubject{}, time.Time{}, fmt.Errorf("%w: no exp", ErrTokenMalformed)
	}
	expAt := time.Unix(exp, 0).UTC()
	if now.After(expAt.Add(skew)) {
		return TokenSubject{}, expAt, ErrTokenExpired
	}

	idStr, _ := claims[ClaimID].(string)
	userID, err := uuid.Parse(strings.TrimSpace(idStr))
	if err != nil || userID == uuid.Nil {
		return TokenSubject{}, expAt, ErrTokenNoSubject
	}

	sub := TokenSubject{UserID: userID}
	sub.Role, _ = claims[ClaimRole].(string)
	sub.Name, _ = claims[ClaimName].(string)
	if s, ok := claims[ClaimBranchID].(string); ok {
		if b, err := uuid.Parse(strings.TrimSpace(s)); err == nil && b != uuid.Nil {
			sub.BranchID = &b
		}
	}
	return sub, expAt, nil
}

// TokenExpiry reads exp without verifying the signature. Used to size the
// blacklist entry on logout.
func TokenExpiry(raw string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := numericClaim(claims[ClaimExp])
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(exp, 0).UTC(), true
}

func numericClaim(v interface{}) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case int64:
		return t, true
	case int:
		return int64(t), true
	default:
		return 0, false
	}
}
