package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const maxBodyBytes = 1 << 20

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 0 {
		return defaultValue
	}

	return result
}

// ParseID parses a positive numeric identifier from a path or query value.
func ParseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 1 {
		return 0, NewInvalidError(CodeInvalidID, "Valid ID is required")
	}
	return id, nil
}

// ParseOptionalID returns nil for an empty value.
func ParseOptionalID(value string) (*int64, error) {
	if value == "" {
		return nil, nil
	}
	id, err := ParseID(value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseOptionalBool accepts "true"/"false" style values; empty means no filter.
func ParseOptionalBool(value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, NewInvalidError(CodeValidationFailed, fmt.Sprintf("invalid boolean value %q", value))
	}
	return &b, nil
}

// DecodeJSON decodes a single JSON object from the request body and rejects
// fields the target struct does not declare.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		msg := "Invalid request body"
		if strings.HasPrefix(err.Error(), "json: unknown field") {
			msg = "Invalid request body: " + strings.TrimPrefix(err.Error(), "json: ")
		} else if errors.Is(err, io.EOF) {
			msg = "Request body is required"
		}
		return &AppError{Kind: KindInvalid, Code: CodeInvalidBody, Message: msg, Err: err}
	}

	if dec.More() {
		return NewInvalidError(CodeInvalidBody, "Request body must contain a single JSON object")
	}
	return nil
}

// ==================== PASSWORD & TOKEN ====================

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
