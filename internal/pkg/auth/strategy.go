package auth

import "time"

type Strategy interface {
	IssueToken(tgID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
