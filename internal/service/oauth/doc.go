// Package oauth talks to the GitHub and Kakao identity providers on behalf
// of the social login endpoints.
//
// Each provider exchanges an authorization code for an access token with
// golang.org/x/oauth2, then reads the profile over resty. Both calls run
// under a per-provider circuit breaker and a per-call timeout. Every failure
// is reported as ErrAuthProvider; provider response bodies are only logged,
// redacted.
package oauth
