package models

import "fmt"

// LegalEntityType selects one of the four legal-entity schemas
type LegalEntityType string

const (
	LegalEntitySelf       LegalEntityType = "self"
	LegalEntityIndividual LegalEntityType = "individual"
	LegalEntityOoo        LegalEntityType = "ooo"
	LegalEntityForeign    LegalEntityType = "foreign"
)

// RuPassport is the RU passport sub-record with scan references
type RuPassport struct {
	FirstPageScanID  string         `bson:"first_page_scan_id" json:"first_page_scan_id"`
	SecondPageScanID string         `bson:"second_page_scan_id" json:"second_page_scan_id"`
	Data             RuPassportData `bson:"data" json:"data"`
}

// KzPassport is the KZ passport sub-record with scan references
type KzPassport struct {
	FirstPageScanID  string         `bson:"first_page_scan_id" json:"first_page_scan_id"`
	SecondPageScanID string         `bson:"second_page_scan_id" json:"second_page_scan_id"`
	Data             KzPassportData `bson:"data" json:"data"`
}

// ByPassport is the BY passport sub-record with scan references
type ByPassport struct {
	FirstPageScanID  string         `bson:"first_page_scan_id" json:"first_page_scan_id"`
	SecondPageScanID string         `bson:"second_page_scan_id" json:"second_page_scan_id"`
	Data             ByPassportData `bson:"data" json:"data"`
}

// ForeignPassport is the foreign passport sub-record with scan references
type ForeignPassport struct {
	FirstPageScanID  string              `bson:"first_page_scan_id" json:"first_page_scan_id"`
	SecondPageScanID string              `bson:"second_page_scan_id" json:"second_page_scan_id"`
	Data             ForeignPassportData `bson:"data" json:"data"`
}

// SelfEmployedEntity holds self-employed payout details
type SelfEmployedEntity struct {
	INN                  string `bson:"inn" json:"inn"`
	BankName             string `bson:"bank_name" json:"bank_name"`
	CheckingAccount      string `bson:"checking_account" json:"checking_account"`
	BIK                  string `bson:"bik" json:"bik"`
	CorrespondentAccount string `bson:"correspondent_account" json:"correspondent_account"`
}

// IndividualEntrepreneurEntity holds individual entrepreneur details
type IndividualEntrepreneurEntity struct {
	FullName             string `bson:"full_name" json:"full_name"`
	OGRNIP               string `bson:"ogrnip" json:"ogrnip"`
	INN                  string `bson:"inn" json:"inn"`
	RegistrationAddress  string `bson:"registration_address" json:"registration_address"`
	BankName             string `bson:"bank_name" json:"bank_name"`
	CheckingAccount      string `bson:"checking_account" json:"checking_account"`
	BIK                  string `bson:"bik" json:"bik"`
	CorrespondentAccount string `bson:"correspondent_account" json:"correspondent_account"`
	EdoAvailability      string `bson:"edo_availability" json:"edo_availability"`
}

// OooEntity holds OOO (limited liability company) details
type OooEntity struct {
	EntityName           string `bson:"entity_name" json:"entity_name"`
	DirectorFullName     string `bson:"director_full_name" json:"director_full_name"`
	OGRN                 string `bson:"ogrn" json:"ogrn"`
	INN                  string `bson:"inn" json:"inn"`
	KPP                  string `bson:"kpp" json:"kpp"`
	LegalAddress         string `bson:"legal_address" json:"legal_address"`
	ActualAddress        string `bson:"actual_address" json:"actual_address"`
	BankName             string `bson:"bank_name" json:"bank_name"`
	CheckingAccount      string `bson:"checking_account" json:"checking_account"`
	BIK                  string `bson:"bik" json:"bik"`
	CorrespondentAccount string `bson:"correspondent_account" json:"correspondent_account"`
	EdoAvailability      string `bson:"edo_availability" json:"edo_availability"`
	UsnOrNds             bool   `bson:"usn_or_nds" json:"usn_or_nds"`
}

// ForeignEntity holds foreign legal entity details
type ForeignEntity struct {
	EntityName         string `bson:"entity_name" json:"entity_name"`
	RegistrationNumber string `bson:"registration_number" json:"registration_number"`
	Address            string `bson:"address" json:"address"`
	BankName           string `bson:"bank_name" json:"bank_name"`
	IBAN               string `bson:"iban" json:"iban"`
	SWIFT              string `bson:"swift" json:"swift"`
}

// Profile is a user's legal/identity data. The two selector fields always
// point at a populated sub-record; unselected sub-records stay as all-empty
// placeholders so the document shape is fixed.
type Profile struct {
	CurrentPassport    PassportType    `bson:"current_passport" json:"current_passport"`
	CurrentLegalEntity LegalEntityType `bson:"current_legal_entity" json:"current_legal_entity"`

	RuPassport      RuPassport      `bson:"ru_passport" json:"ru_passport"`
	KzPassport      KzPassport      `bson:"kz_passport" json:"kz_passport"`
	ByPassport      ByPassport      `bson:"by_passport" json:"by_passport"`
	ForeignPassport ForeignPassport `bson:"foreign_passport" json:"foreign_passport"`

	SelfEmployed           SelfEmployedEntity           `bson:"self_employed_legal_entity" json:"self_employed_legal_entity"`
	IndividualEntrepreneur IndividualEntrepreneurEntity `bson:"individual_entrepreneur_legal_entity" json:"individual_entrepreneur_legal_entity"`
	Ooo                    OooEntity                    `bson:"ooo_legal_entity" json:"ooo_legal_entity"`
	ForeignEntity          ForeignEntity                `bson:"foreign_legal_entity" json:"foreign_legal_entity"`
}

// NewProfile returns the initial all-empty profile with default selectors
func NewProfile() Profile {
	return Profile{
		CurrentPassport:    PassportRu,
		CurrentLegalEntity: LegalEntitySelf,
	}
}

// CurrentPassportData returns the selected passport payload
func (p *Profile) CurrentPassportData() (Passport, error) {
	switch p.CurrentPassport {
	case PassportRu:
		return &p.RuPassport.Data, nil
	case PassportKz:
		return &p.KzPassport.Data, nil
	case PassportBy:
		return &p.ByPassport.Data, nil
	case PassportForeign:
		return &p.ForeignPassport.Data, nil
	default:
		return nil, fmt.Errorf("unknown passport selector %q", p.CurrentPassport)
	}
}

// FullName returns the legal name from the selected passport
func (p *Profile) FullName() string {
	switch p.CurrentPassport {
	case PassportKz:
		return p.KzPassport.Data.FullName
	case PassportBy:
		return p.ByPassport.Data.FullName
	case PassportForeign:
		return p.ForeignPassport.Data.FullName
	default:
		return p.RuPassport.Data.FullName
	}
}

// PassportFilled reports whether at least one passport sub-record is complete
func (p *Profile) PassportFilled() bool {
	ru := p.RuPassport
	if ru.FirstPageScanID != "" && ru.SecondPageScanID != "" && allSet(
		ru.Data.FullName, ru.Data.BirthDate, ru.Data.Number,
		ru.Data.IssuedBy, ru.Data.IssueDate, ru.Data.Code, ru.Data.RegistrationDate) {
		return true
	}

	kz := p.KzPassport
	if kz.FirstPageScanID != "" && kz.SecondPageScanID != "" && allSet(
		kz.Data.FullName, kz.Data.BirthDate, kz.Data.Number,
		kz.Data.IDNumber, kz.Data.IssuedBy, kz.Data.IssueDate, kz.Data.EndDate) {
		return true
	}

	by := p.ByPassport
	if by.FirstPageScanID != "" && by.SecondPageScanID != "" && allSet(
		by.Data.FullName, by.Data.BirthDate, by.Data.Number,
		by.Data.IssuedBy, by.Data.IssueDate, by.Data.RegistrationAddress) {
		return true
	}

	fr := p.ForeignPassport
	if fr.FirstPageScanID != "" && fr.SecondPageScanID != "" && allSet(
		fr.Data.FullName, fr.Data.Citizenship, fr.Data.BirthDate, fr.Data.Number,
		fr.Data.IDNumber, fr.Data.IssuedBy, fr.Data.IssueDate, fr.Data.EndDate,
		fr.Data.RegistrationAddress) {
		return true
	}

	return false
}

// LegalEntityFilled reports whether at least one legal-entity sub-record is complete
func (p *Profile) LegalEntityFilled() bool {
	se := p.SelfEmployed
	if allSet(se.INN, se.BankName, se.CheckingAccount, se.BIK, se.CorrespondentAccount) {
		return true
	}

	ie := p.IndividualEntrepreneur
	if allSet(ie.FullName, ie.OGRNIP, ie.INN, ie.RegistrationAddress, ie.BankName,
		ie.CheckingAccount, ie.BIK, ie.CorrespondentAccount, ie.EdoAvailability) {
		return true
	}

	ooo := p.Ooo
	if allSet(ooo.EntityName, ooo.DirectorFullName, ooo.OGRN, ooo.INN, ooo.KPP,
		ooo.LegalAddress, ooo.ActualAddress, ooo.BankName, ooo.CheckingAccount,
		ooo.BIK, ooo.CorrespondentAccount, ooo.EdoAvailability) {
		return true
	}

	fe := p.ForeignEntity
	if allSet(fe.EntityName, fe.RegistrationNumber, fe.Address, fe.BankName, fe.IBAN, fe.SWIFT) {
		return true
	}

	return false
}

func allSet(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return false
		}
	}
	return true
}
