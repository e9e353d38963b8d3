package model

// ContactPerson is one contact entry inside a client's contact_info JSONB.
type ContactPerson struct {
	Role     string `json:"role,omitempty" validate:"max=100"`
	FullName string `json:"full_name,omitempty" validate:"omitempty,min=2,max=150,person_name"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,intl_phone"`
}

// ContactInfo is the structured contact sub-document stored in the client's
// contact_info JSONB column.
type ContactInfo struct {
	GeneralEmail   string          `json:"general_email,omitempty" validate:"omitempty,email"`
	GeneralPhone   string          `json:"general_phone,omitempty" validate:"omitempty,intl_phone"`
	AddressLegal   string          `json:"address_legal,omitempty" validate:"max=255"`
	AddressMailing string          `json:"address_mailing,omitempty" validate:"max=255"`
	Website        string          `json:"website,omitempty" validate:"omitempty,url"`
	Contacts       []ContactPerson `json:"contacts,omitempty" validate:"dive"`
}

// ContactInfoPatch carries a partial contact_info update. Nil pointers mean
// "leave as is". The contacts list is replaced wholesale when provided;
// element-level merging of the list is deliberately not supported.
type ContactInfoPatch struct {
	GeneralEmail   *string          `json:"general_email,omitempty" validate:"omitempty,email"`
	GeneralPhone   *string          `json:"general_phone,omitempty" validate:"omitempty,intl_phone"`
	AddressLegal   *string          `json:"address_legal,omitempty" validate:"omitempty,max=255"`
	AddressMailing *string          `json:"address_mailing,omitempty" validate:"omitempty,max=255"`
	Website        *string          `json:"website,omitempty" validate:"omitempty,url"`
	Contacts       *[]ContactPerson `json:"contacts,omitempty" validate:"omitempty,dive"`
}

// Merge applies the patch on top of existing contact data: top-level keys
// merge, the contacts list is swapped out entirely when present.
func (c *ContactInfo) Merge(patch ContactInfoPatch) {
	if patch.GeneralEmail != nil {
		c.GeneralEmail = *patch.GeneralEmail
	}
	if patch.GeneralPhone != nil {
		c.GeneralPhone = *patch.GeneralPhone
	}
	if patch.AddressLegal != nil {
		c.AddressLegal = *patch.AddressLegal
	}
	if patch.AddressMailing != nil {
		c.AddressMailing = *patch.AddressMailing
	}
	if patch.Website != nil {
		c.Website = *patch.Website
	}
	if patch.Contacts != nil {
		c.Contacts = *patch.Contacts
	}
}
