package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateRequestID returns a short URL-safe identifier for request tracing.
func GenerateRequestID() string {
	id, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 12)
	if err != nil {
		return ""
	}
	return id
}
