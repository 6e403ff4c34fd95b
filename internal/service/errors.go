package service

import "errors"

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionTokenInvalid = errors.New("session token invalid")
	ErrProductNotFound     = errors.New("product not found")
	ErrExpertNotFound      = errors.New("expert not found")
	ErrArticleNotFound     = errors.New("article not found")
	ErrInvalidOverlay      = errors.New("invalid overlay")
)
