package models

import (
	"encoding/json"
	"fmt"
)

// PaymentType is the royalty arrangement declared for an author
type PaymentType string

const (
	PaymentRoyalty PaymentType = "royalty"
	PaymentFree    PaymentType = "free"
	PaymentSum     PaymentType = "sum"
	PaymentOther   PaymentType = "other"
)

// AuthorDocs is an author's identity/legal bundle. Exactly one passport
// sub-record is populated, selected by PassportType.
type AuthorDocs struct {
	LicenseOrAlienation bool         `bson:"license_or_alienation" json:"license_or_alienation"`
	PaymentType         PaymentType  `bson:"payment_type" json:"payment_type"`
	PaymentValue        string       `bson:"payment_value" json:"payment_value"`
	PassportType        PassportType `bson:"passport_type" json:"passport_type"`

	RuPassport      *RuPassportData      `bson:"ru_passport,omitempty" json:"-"`
	KzPassport      *KzPassportData      `bson:"kz_passport,omitempty" json:"-"`
	ByPassport      *ByPassportData      `bson:"by_passport,omitempty" json:"-"`
	ForeignPassport *ForeignPassportData `bson:"foreign_passport,omitempty" json:"-"`
}

// Passport returns the populated passport payload
func (d *AuthorDocs) Passport() (Passport, error) {
	switch d.PassportType {
	case PassportRu:
		if d.RuPassport == nil {
			return nil, fmt.Errorf("ru passport selected but not populated")
		}
		return d.RuPassport, nil
	case PassportKz:
		if d.KzPassport == nil {
			return nil, fmt.Errorf("kz passport selected but not populated")
		}
		return d.KzPassport, nil
	case PassportBy:
		if d.ByPassport == nil {
			return nil, fmt.Errorf("by passport selected but not populated")
		}
		return d.ByPassport, nil
	case PassportForeign:
		if d.ForeignPassport == nil {
			return nil, fmt.Errorf("foreign passport selected but not populated")
		}
		return d.ForeignPassport, nil
	default:
		return nil, fmt.Errorf("unknown passport type %q", d.PassportType)
	}
}

// authorDocsWire is the wire shape: a single passport object tagged by passport_type
type authorDocsWire struct {
	LicenseOrAlienation bool            `json:"license_or_alienation"`
	PaymentType         PaymentType     `json:"payment_type"`
	PaymentValue        string          `json:"payment_value"`
	PassportType        PassportType    `json:"passport_type"`
	Passport            json.RawMessage `json:"passport"`
}

// UnmarshalJSON decodes the wire shape, dispatching the passport on passport_type
func (d *AuthorDocs) UnmarshalJSON(data []byte) error {
	var w authorDocsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	d.LicenseOrAlienation = w.LicenseOrAlienation
	d.PaymentType = w.PaymentType
	d.PaymentValue = w.PaymentValue
	d.PassportType = w.PassportType

	if len(w.Passport) == 0 {
		return fmt.Errorf("author docs missing passport")
	}

	switch w.PassportType {
	case PassportRu:
		d.RuPassport = &RuPassportData{}
		return json.Unmarshal(w.Passport, d.RuPassport)
	case PassportKz:
		d.KzPassport = &KzPassportData{}
		return json.Unmarshal(w.Passport, d.KzPassport)
	case PassportBy:
		d.ByPassport = &ByPassportData{}
		return json.Unmarshal(w.Passport, d.ByPassport)
	case PassportForeign:
		d.ForeignPassport = &ForeignPassportData{}
		return json.Unmarshal(w.Passport, d.ForeignPassport)
	default:
		return fmt.Errorf("unknown passport type %q", w.PassportType)
	}
}

// MarshalJSON reproduces the wire shape
func (d AuthorDocs) MarshalJSON() ([]byte, error) {
	passport, err := d.Passport()
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(passport)
	if err != nil {
		return nil, err
	}

	return json.Marshal(authorDocsWire{
		LicenseOrAlienation: d.LicenseOrAlienation,
		PaymentType:         d.PaymentType,
		PaymentValue:        d.PaymentValue,
		PassportType:        d.PassportType,
		Passport:            raw,
	})
}

// Author is a contributor declared on a release request. Data is either an
// identity/legal bundle or an opaque scan-only note.
type Author struct {
	FullName string      `bson:"full_name" json:"full_name"`
	Docs     *AuthorDocs `bson:"docs,omitempty" json:"-"`
	Note     string      `bson:"note,omitempty" json:"-"`
}

// ScanOnly reports whether the author supplied only a free-text note
func (a Author) ScanOnly() bool {
	return a.Docs == nil
}

type authorWire struct {
	FullName string          `json:"full_name"`
	Data     json.RawMessage `json:"data"`
}

// UnmarshalJSON decodes the wire union: data is an object or a plain string
func (a *Author) UnmarshalJSON(data []byte) error {
	var w authorWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	a.FullName = w.FullName
	a.Docs = nil
	a.Note = ""

	if len(w.Data) == 0 {
		return fmt.Errorf("author %q has no data", w.FullName)
	}

	if w.Data[0] == '"' {
		return json.Unmarshal(w.Data, &a.Note)
	}

	a.Docs = &AuthorDocs{}
	return json.Unmarshal(w.Data, a.Docs)
}

// MarshalJSON reproduces the wire union
func (a Author) MarshalJSON() ([]byte, error) {
	var payload any = a.Note
	if a.Docs != nil {
		payload = a.Docs
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(authorWire{FullName: a.FullName, Data: raw})
}
