package registry

import (
	"time"

	"github.com/google/uuid"
)

// Domain is a registered domain name in both of its forms.
type Domain struct {
	ID          uuid.UUID `json:"id"`
	ASCIIName   string    `json:"ascii_name"`
	UnicodeName string    `json:"unicode_name"`
	CreatedAt   time.Time `json:"created_at"`
	// VerifiedAt is set once the owner has proven control through DNS.
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
}

// Verified reports whether ownership has been proven.
func (d *Domain) Verified() bool {
	return d.VerifiedAt != nil
}
