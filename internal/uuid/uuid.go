// Package uuid binds resource IDs from request URIs.
package uuid

import (
	"errors"

	google_uuid "github.com/google/uuid"
)

// ErrInvalid is returned for IDs that are not a UUID or are the nil UUID.
var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

// UUID is a resource ID that gin can bind from URI and query parameters.
type UUID struct {
	google_uuid.UUID
}

// Parse parses a resource ID. The nil UUID never identifies a resource
// and is rejected.
func Parse(s string) (UUID, error) {
	parsed, err := google_uuid.Parse(s)
	if err != nil || parsed == google_uuid.Nil {
		return UUID{}, ErrInvalid
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}
