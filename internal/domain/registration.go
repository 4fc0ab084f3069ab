package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type RegistrationStatus string

const (
	StatusPending  RegistrationStatus = "PENDING"
	StatusApproved RegistrationStatus = "APPROVED"
	StatusRejected RegistrationStatus = "REJECTED"
)

func (s RegistrationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type Relation string

const (
	RelationSpouse   Relation = "Spouse"
	RelationSon      Relation = "Son"
	RelationDaughter Relation = "Daughter"
	RelationFather   Relation = "Father"
	RelationMother   Relation = "Mother"
	RelationOther    Relation = "Other"
)

func Relations() []Relation {
	return []Relation{RelationSpouse, RelationSon, RelationDaughter, RelationFather, RelationMother, RelationOther}
}

func (r Relation) IsValid() bool {
	for _, known := range Relations() {
		if r == known {
			return true
		}
	}
	return false
}

type FamilyMember struct {
	Name     string   `json:"name"`
	Relation Relation `json:"relation"`
}

type FamilyMemberList []FamilyMember

// Value implements driver.Valuer so the list is stored as a JSON column.
func (l FamilyMemberList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(FamilyMemberList{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for reading the JSON column back.
func (l *FamilyMemberList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for FamilyMemberList: %T", value)
	}

	return json.Unmarshal(bytes, l)
}

// Receipt is the payment proof uploaded with a registration. The binary is
// persisted inline with the record, never exposed through JSON.
type Receipt struct {
	Data        []byte `db:"receipt_data" json:"-"`
	ContentType string `db:"receipt_content_type" json:"content_type"`
	Filename    string `db:"receipt_filename" json:"filename"`
}

// IsImage reports whether the declared content type is an image type.
func (r *Receipt) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(r.ContentType), "image/")
}

// Registration is the single event registration bound to an external Google
// identity. At most one row exists per OAuthUID, enforced by a unique index.
type Registration struct {
	ID         uuid.UUID `db:"id" json:"id"`
	OAuthUID   string    `db:"oauth_uid" json:"oauth_uid"`
	OAuthEmail string    `db:"oauth_email" json:"oauth_email"`

	Name       string  `db:"name" json:"name"`
	Batch      string  `db:"batch" json:"batch"`
	Contact    string  `db:"contact" json:"contact"`
	Email      string  `db:"email" json:"email"`
	LinkedIn   *string `db:"linkedin" json:"linkedin,omitempty"`
	PaymentRef *string `db:"payment_ref" json:"payment_ref,omitempty"`

	ComingWithFamily bool             `db:"coming_with_family" json:"coming_with_family"`
	FamilyMembers    FamilyMemberList `db:"family_members" json:"family_members"`

	// Amount is derived server side from the fee configuration, never taken
	// from the client.
	Amount int64 `db:"amount" json:"amount"`

	Status     RegistrationStatus `db:"status" json:"status"`
	ApprovedAt *time.Time         `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy *string            `db:"approved_by" json:"approved_by,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
