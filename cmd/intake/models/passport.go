package models

import "fmt"

// PassportType selects one of the four passport schemas
type PassportType string

const (
	PassportRu      PassportType = "ru"
	PassportKz      PassportType = "kz"
	PassportBy      PassportType = "by"
	PassportForeign PassportType = "foreign"
)

// Domestic reports whether the passport routes to the domestic slot bucket.
// The domestic block of the destination template carries RU passport columns
// (series code, registration date) that only an RU passport can fill.
func (t PassportType) Domestic() bool {
	return t == PassportRu
}

// Passport is the type-tagged passport payload. Consumers dispatch on the
// concrete type and must cover all four schemas.
type Passport interface {
	Kind() PassportType
}

// RuPassportData holds RU passport fields
type RuPassportData struct {
	FullName         string `bson:"full_name" json:"full_name"`
	BirthDate        string `bson:"birth_date" json:"birth_date"`
	Number           string `bson:"number" json:"number"`
	IssuedBy         string `bson:"issued_by" json:"issued_by"`
	IssueDate        string `bson:"issue_date" json:"issue_date"`
	Code             string `bson:"code" json:"code"`
	RegistrationDate string `bson:"registration_date" json:"registration_date"`
}

func (*RuPassportData) Kind() PassportType { return PassportRu }

// KzPassportData holds KZ passport fields
type KzPassportData struct {
	FullName  string `bson:"full_name" json:"full_name"`
	BirthDate string `bson:"birth_date" json:"birth_date"`
	Number    string `bson:"number" json:"number"`
	IDNumber  string `bson:"id_number" json:"id_number"`
	IssuedBy  string `bson:"issued_by" json:"issued_by"`
	IssueDate string `bson:"issue_date" json:"issue_date"`
	EndDate   string `bson:"end_date" json:"end_date"`
}

func (*KzPassportData) Kind() PassportType { return PassportKz }

// ByPassportData holds BY passport fields
type ByPassportData struct {
	FullName            string `bson:"full_name" json:"full_name"`
	BirthDate           string `bson:"birth_date" json:"birth_date"`
	Number              string `bson:"number" json:"number"`
	IssuedBy            string `bson:"issued_by" json:"issued_by"`
	IssueDate           string `bson:"issue_date" json:"issue_date"`
	RegistrationAddress string `bson:"registration_address" json:"registration_address"`
}

func (*ByPassportData) Kind() PassportType { return PassportBy }

// ForeignPassportData holds foreign passport fields
type ForeignPassportData struct {
	FullName            string `bson:"full_name" json:"full_name"`
	Citizenship         string `bson:"citizenship" json:"citizenship"`
	BirthDate           string `bson:"birth_date" json:"birth_date"`
	Number              string `bson:"number" json:"number"`
	IDNumber            string `bson:"id_number" json:"id_number"`
	IssuedBy            string `bson:"issued_by" json:"issued_by"`
	IssueDate           string `bson:"issue_date" json:"issue_date"`
	EndDate             string `bson:"end_date" json:"end_date"`
	RegistrationAddress string `bson:"registration_address" json:"registration_address"`
}

func (*ForeignPassportData) Kind() PassportType { return PassportForeign }

// NewPassport returns an empty passport payload of the given schema
func NewPassport(typ PassportType) (Passport, error) {
	switch typ {
	case PassportRu:
		return &RuPassportData{}, nil
	case PassportKz:
		return &KzPassportData{}, nil
	case PassportBy:
		return &ByPassportData{}, nil
	case PassportForeign:
		return &ForeignPassportData{}, nil
	default:
		return nil, fmt.Errorf("unknown passport type %q", typ)
	}
}
