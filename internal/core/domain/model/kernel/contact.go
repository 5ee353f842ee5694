package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// ErrContactIsNotConstructed indicates a zero-value Contact that was not
// created through NewContact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError("Contact must be created via NewContact")

// Contact identifies a party of a delivery: the sender handing the package
// over or the receiver taking it. The phone number is what the dispatcher
// and the courier actually use to reach a party, so it is mandatory, while
// the name and address note are free-form.
type Contact struct {
	name    string
	phone   string
	address string

	isConstructed bool
}

// NewContact creates a validated Contact. Phone and address are required,
// name may be empty (walk-in senders are often recorded by phone only).
func NewContact(name, phone, address string) (Contact, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return Contact{}, errs.NewValueIsRequiredError("phone")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return Contact{}, errs.NewValueIsRequiredError("address")
	}

	return Contact{
		name:          strings.TrimSpace(name),
		phone:         phone,
		address:       address,
		isConstructed: true,
	}, nil
}

// Validate reports whether the Contact was created via NewContact.
func (c Contact) Validate() error {
	if !c.isConstructed {
		return ErrContactIsNotConstructed
	}
	return nil
}

// Name returns the party's display name, possibly empty.
func (c Contact) Name() string {
	return c.name
}

// Phone returns the party's phone number.
func (c Contact) Phone() string {
	return c.phone
}

// Address returns the pickup or drop-off address.
func (c Contact) Address() string {
	return c.address
}

// IsEqual compares two contacts field by field.
func (c Contact) IsEqual(other Contact) bool {
	return c.name == other.name && c.phone == other.phone && c.address == other.address
}
