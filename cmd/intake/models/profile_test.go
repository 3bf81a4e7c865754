package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledRuProfile() Profile {
	p := NewProfile()
	p.RuPassport = RuPassport{
		FirstPageScanID:  "scan1",
		SecondPageScanID: "scan2",
		Data: RuPassportData{
			FullName:         "Иванов Иван Иванович",
			BirthDate:        "1990-01-01",
			Number:           "1234 567890",
			IssuedBy:         "ОВД",
			IssueDate:        "2010-01-01",
			Code:             "770-001",
			RegistrationDate: "2010-02-01",
		},
	}
	p.SelfEmployed = SelfEmployedEntity{
		INN:                  "123456789012",
		BankName:             "Bank",
		CheckingAccount:      "40817810000000000001",
		BIK:                  "044525225",
		CorrespondentAccount: "30101810400000000225",
	}
	return p
}

func TestPassportFilled(t *testing.T) {
	p := filledRuProfile()
	assert.True(t, p.PassportFilled())

	p.RuPassport.Data.Code = ""
	assert.False(t, p.PassportFilled())

	p.RuPassport.Data.Code = "770-001"
	p.RuPassport.SecondPageScanID = ""
	assert.False(t, p.PassportFilled(), "scans are part of a complete passport")
}

func TestLegalEntityFilled(t *testing.T) {
	p := filledRuProfile()
	assert.True(t, p.LegalEntityFilled())

	p.SelfEmployed.BIK = ""
	assert.False(t, p.LegalEntityFilled())

	// Any fully filled entity counts, not only the selected one
	p.ForeignEntity = ForeignEntity{
		EntityName:         "DNK Ltd",
		RegistrationNumber: "HE 123",
		Address:            "Nicosia",
		BankName:           "Bank of Cyprus",
		IBAN:               "CY123",
		SWIFT:              "BCYPCY2N",
	}
	assert.True(t, p.LegalEntityFilled())
}

func TestCurrentPassportData(t *testing.T) {
	p := filledRuProfile()
	passport, err := p.CurrentPassportData()
	require.NoError(t, err)
	assert.Equal(t, PassportRu, passport.Kind())

	p.CurrentPassport = "unknown"
	_, err = p.CurrentPassportData()
	require.Error(t, err)
}
