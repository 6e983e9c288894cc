package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

var errTokenRejected = errors.New("token rejected")

type introspectReq struct {
	Token string `json:"token"`
}

// tokenClaims is the body the auth service returns for a valid token.
type tokenClaims struct {
	Sub string `json:"sub"`
	Exp int64  `json:"exp"`
	Iat int64  `json:"iat"`
	Jti string `json:"jti"`
}

// introspector validates tokens against the auth service.
type introspector struct {
	url        string
	client     *http.Client
	maxElapsed time.Duration
}

func newIntrospector(url string) *introspector {
	return &introspector{
		url:        url,
		client:     &http.Client{Timeout: 5 * time.Second},
		maxElapsed: 8 * time.Second,
	}
}

// introspect posts the token to the auth service. Transport errors and 5xx
// answers are retried with exponential backoff; any other non-200 answer
// returns errTokenRejected.
func (in *introspector) introspect(ctx context.Context, token string) (*tokenClaims, error) {
	body, err := json.Marshal(introspectReq{Token: token})
	if err != nil {
		return nil, fmt.Errorf("marshal introspect req: %w", err)
	}

	var out tokenClaims
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, in.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := in.client.Do(req)
		if err != nil {
			return fmt.Errorf("auth service call failed: %w", err)
		}
		defer resp.Body.Close()

		data, _ := io.ReadAll(resp.Body)
		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("auth service %s: %s", resp.Status, string(data))
		case resp.StatusCode != http.StatusOK:
			return backoff.Permanent(errTokenRejected)
		}

		// A 200 with a body we cannot read still means the token is valid.
		out = tokenClaims{}
		_ = json.Unmarshal(data, &out)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = in.maxElapsed
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return &out, nil
}
