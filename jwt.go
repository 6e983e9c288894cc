package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errTokenExpired = errors.New("token expired")

// principal is the authenticated caller as named by the token subject.
type principal struct {
	EntityType string `json:"entity_type"`
	ID         string `json:"id"`
}

// parseSubject decodes the auth service subject: base64("entity_type:id").
func parseSubject(sub string) (principal, error) {
	decoded, err := base64.StdEncoding.DecodeString(sub)
	if err != nil {
		return principal{}, fmt.Errorf("subject is not base64: %w", err)
	}
	kind, id, ok := strings.Cut(string(decoded), ":")
	if !ok || kind == "" || id == "" {
		return principal{}, errors.New("subject must be entity_type:id")
	}
	return principal{EntityType: kind, ID: id}, nil
}

// precheckToken reads the token without verifying its signature and rejects
// malformed or expired tokens before the auth service is called. Signature
// and revocation checks belong to the auth service.
func precheckToken(raw string, now time.Time) (principal, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return principal{}, fmt.Errorf("malformed token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return principal{}, fmt.Errorf("bad exp claim: %w", err)
	}
	if exp != nil && !now.Before(exp.Time) {
		return principal{}, errTokenExpired
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return principal{}, errors.New("no subject")
	}
	return parseSubject(sub)
}
