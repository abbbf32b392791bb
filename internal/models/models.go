// Package models defines the data objects shared across lazyworksheets packages.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CacheKeyPrefix prefixes diskv keys holding cached worksheet listings.
const CacheKeyPrefix = "worksheets"

// ID is an opaque server identifier. The server sends user ids as numbers
// or strings depending on the endpoint, so IDs compare by their string form.
type ID string

// UnmarshalJSON accepts JSON numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

// String returns the id as text.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the id is empty.
func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// Permission is the caller's access level on a worksheet.
type Permission int

// Permission levels, matching the server's integer encoding.
const (
	PermissionNone Permission = iota
	PermissionRead
	PermissionWrite
)

// String returns the permission name.
func (p Permission) String() string {
	switch p {
	case PermissionRead:
		return "read"
	case PermissionWrite:
		return "write"
	default:
		return "none"
	}
}

// UnmarshalJSON accepts 0/1/2 or "none"/"read"/"write".
func (p *Permission) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = PermissionNone
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParsePermission(s)
		if err != nil {
			return err
		}
		*p = parsed
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid permission %s: %w", string(data), err)
	}
	if n < int(PermissionNone) || n > int(PermissionWrite) {
		return fmt.Errorf("invalid permission %d", n)
	}
	*p = Permission(n)
	return nil
}

// MarshalJSON encodes the permission as its integer value.
func (p Permission) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(p))), nil
}

// ParsePermission parses a permission name or number.
func ParsePermission(s string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "0":
		return PermissionNone, nil
	case "read", "1":
		return PermissionRead, nil
	case "write", "2":
		return PermissionWrite, nil
	}
	return PermissionNone, fmt.Errorf("unknown permission %q", s)
}

// Worksheet is one record of the worksheet listing. Records are immutable
// snapshots and are replaced wholesale on refetch.
type Worksheet struct {
	UUID       string     `json:"uuid"`
	Name       string     `json:"name"`
	OwnerID    ID         `json:"owner_id"`
	OwnerName  string     `json:"owner_name,omitempty"`
	Permission Permission `json:"permission"`
}

// OwnedBy reports whether the worksheet belongs to the given user.
func (w Worksheet) OwnedBy(userID ID) bool {
	return w.OwnerID.String() == userID.String()
}

// ReadOnly reports whether the caller can only read the worksheet.
func (w Worksheet) ReadOnly() bool {
	return w.Permission == PermissionRead
}

// Byline returns the "by <owner>" caption shown under the worksheet name.
func (w Worksheet) Byline() string {
	if w.OwnerName == "" {
		return ""
	}
	byline := "by " + w.OwnerName
	if w.ReadOnly() {
		byline += " (read-only)"
	}
	return byline
}

// Identity describes the user running the browser. It is supplied by the
// caller rather than discovered.
type Identity struct {
	UserID        ID
	Authenticated bool
}

// CanFilterMine reports whether the "my worksheets only" toggle applies.
func (i Identity) CanFilterMine() bool {
	return i.Authenticated && !i.UserID.IsZero()
}
