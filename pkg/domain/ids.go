// Package domain holds typed identifiers shared across modules. Typed
// wrappers over uuid.UUID keep record ids from being confused with the
// human-readable driver identifier, which is a separate string assigned
// only at approval.
package domain

import "github.com/google/uuid"

// RecordID is the opaque primary key of a driver record. Generated at
// creation and immutable for the record's lifetime.
type RecordID uuid.UUID

func NewRecordID() RecordID { return RecordID(uuid.New()) }

// ParseRecordID parses the wire representation of a record id.
func ParseRecordID(s string) (RecordID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return RecordID{}, err
	}
	return RecordID(u), nil
}

func (id RecordID) String() string { return uuid.UUID(id).String() }

func (id RecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText makes RecordID render as the plain uuid string in JSON.
func (id RecordID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *RecordID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = RecordID(u)
	return nil
}
