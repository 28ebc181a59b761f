package domain

import "errors"

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateWebhook = errors.New("webhook event already processed")
	ErrInvalidSignature = errors.New("invalid webhook signature")
)
