package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short opaque identifier, used for request ids and the
// suffix of public scheduling-page slugs.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}
