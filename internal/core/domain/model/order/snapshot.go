package order

// ContactInfo is an immutable snapshot of a participant's contact details,
// embedded in the order at the moment of a lifecycle transition. The owner
// snapshot is captured at creation, the courier snapshot at assignment;
// neither is refreshed afterwards, so later profile edits never rewrite
// order history.
type ContactInfo struct {
	name  string
	phone string
	email string
}

// NewContactInfo creates a contact snapshot. Empty fields are allowed: the
// snapshot records whatever the profile held at transition time.
func NewContactInfo(name, phone, email string) ContactInfo {
	return ContactInfo{
		name:  name,
		phone: phone,
		email: email,
	}
}

// Name returns the contact's display name.
func (c ContactInfo) Name() string {
	return c.name
}

// Phone returns the contact's phone number.
func (c ContactInfo) Phone() string {
	return c.phone
}

// Email returns the contact's email address.
func (c ContactInfo) Email() string {
	return c.email
}
