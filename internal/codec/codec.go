// Package codec decodes user payloads from request bodies and checks
// identifiers. It validates structure only: any string is a valid username,
// any finite number a valid age, any array a valid list of hobbies.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"

	"github.com/google/uuid"

	"github.com/patric-chuzhbe/usersapi/internal/models"
)

var (
	// ErrInvalidJSON means the body is not a single syntactically valid JSON value.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrInvalidShape means the JSON value is not an object carrying a string
	// username, a numeric age and an array of hobbies.
	ErrInvalidShape = errors.New("invalid user payload shape")
)

const canonicalUUIDLength = 36

// ParseJSON decodes body into generic JSON values. Numbers are kept as
// json.Number so they survive a round trip unchanged.
func ParseJSON(body []byte) (interface{}, error) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return nil, ErrInvalidJSON
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidJSON
	}

	return value, nil
}

// ValidateShape checks a parsed JSON value and extracts the user fields from it.
func ValidateShape(value interface{}) (models.UserPayload, error) {
	object, ok := value.(map[string]interface{})
	if !ok {
		return models.UserPayload{}, ErrInvalidShape
	}

	username, ok := object["username"].(string)
	if !ok {
		return models.UserPayload{}, ErrInvalidShape
	}

	ageNumber, ok := object["age"].(json.Number)
	if !ok {
		return models.UserPayload{}, ErrInvalidShape
	}
	age, err := ageNumber.Float64()
	if err != nil || math.IsInf(age, 0) || math.IsNaN(age) {
		return models.UserPayload{}, ErrInvalidShape
	}

	hobbies, ok := object["hobbies"].([]interface{})
	if !ok {
		return models.UserPayload{}, ErrInvalidShape
	}

	return models.UserPayload{
		Username: username,
		Age:      age,
		Hobbies:  hobbies,
	}, nil
}

// DecodeUserPayload parses body and validates its shape.
func DecodeUserPayload(body []byte) (models.UserPayload, error) {
	value, err := ParseJSON(body)
	if err != nil {
		return models.UserPayload{}, err
	}

	return ValidateShape(value)
}

// IsValidID reports whether s is a UUID in canonical 8-4-4-4-12 form with the
// RFC 4122 variant and a version between 1 and 8. The nil UUID is accepted too.
func IsValidID(s string) bool {
	if len(s) != canonicalUUIDLength {
		return false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}

	if id == uuid.Nil {
		return true
	}

	return id.Variant() == uuid.RFC4122 && id.Version() >= 1 && id.Version() <= 8
}
