package service

import (
	"fmt"
	"strings"

	"github.com/dnk-music/intake/cmd/intake/models"
)

// The docs sheet is 350 columns wide, one row per release: a release block,
// a signer legal-entity block, a signer passport block, then per-role author
// slot blocks. Unselected sub-blocks stay blank so the template shape holds.
const docsWidth = 350

// release block
const (
	docsColDate = iota
	docsColImprint
	docsColUsername
	docsColPerformers
	docsColTitle
	docsColVersion
	docsColGenre
	docsColSizeClass
	docsColTrackCount
	docsColTrackList
	docsColSignerName
	docsColLegalEntityType
	docsColPassportType
	docsColCoverLink
	docsColFolderLink
	docsColProfileChanged
)

// signer legal-entity block, one sub-block per entity type
const (
	docsColSelfEmployed   = 16 // 5 columns
	docsColIndividual     = 21 // 9 columns
	docsColOoo            = 30 // 13 columns
	docsColForeignEntity  = 43 // 6 columns
	docsColSignerScan1    = 49
	docsColSignerScan2    = 50
	docsColRuPassport     = 51 // 7 columns
	docsColKzPassport     = 58 // 7 columns
	docsColByPassport     = 65 // 6 columns
	docsColForeignPasport = 71 // 9 columns
)

// author slot blocks. A slot is 15 columns: name, license/alienation,
// payment terms, passport type, then the passport fields.
const (
	slotWidth = 15

	musicAuthorsBlock       = 80  // domestic 80,95,110; foreign 125,140,155; scans 170
	lyricistsBlock          = 171 // domestic 171,186,201; foreign 216,231,246; scans 261
	phonogramProducersBlock = 262 // domestic 262,277,292; foreign 307,322; scans 337
)

const (
	slotColFullName = iota
	slotColLicense
	slotColPaymentType
	slotColPaymentValue
	slotColPassportType
	slotColPassportData // 9 columns
)

// DocsRow is one docs-sheet row, built per release
type DocsRow struct {
	Date    string
	Imprint string

	Username   string
	Performers string
	Title      string
	Version    string
	Genre      string
	TrackCount int
	TrackList  string

	CoverLink      string
	FolderLink     string
	ProfileChanged bool

	Signer models.Profile
	Class  *Classification
}

// Columns renders the row as a fixed-width cell list
func (r *DocsRow) Columns() ([]string, error) {
	row := make([]string, docsWidth)

	row[docsColDate] = reorderDate(r.Date)
	row[docsColImprint] = r.Imprint
	row[docsColUsername] = r.Username
	row[docsColPerformers] = r.Performers
	row[docsColTitle] = r.Title
	row[docsColVersion] = r.Version
	row[docsColGenre] = r.Genre
	row[docsColSizeClass] = sizeClassRu(r.TrackCount)
	row[docsColTrackCount] = itoa(r.TrackCount)
	row[docsColTrackList] = r.TrackList
	row[docsColSignerName] = r.Signer.FullName()
	row[docsColLegalEntityType] = string(r.Signer.CurrentLegalEntity)
	row[docsColPassportType] = string(r.Signer.CurrentPassport)
	row[docsColCoverLink] = r.CoverLink
	row[docsColFolderLink] = r.FolderLink
	row[docsColProfileChanged] = yesNo(r.ProfileChanged)

	if err := writeSignerEntity(row, &r.Signer); err != nil {
		return nil, err
	}
	if err := writeSignerPassport(row, &r.Signer); err != nil {
		return nil, err
	}

	if err := writeRoleBlock(row, musicAuthorsBlock, &r.Class.MusicAuthors); err != nil {
		return nil, err
	}
	if err := writeRoleBlock(row, lyricistsBlock, &r.Class.Lyricists); err != nil {
		return nil, err
	}
	if err := writeRoleBlock(row, phonogramProducersBlock, &r.Class.PhonogramProducers); err != nil {
		return nil, err
	}

	return row, nil
}

func writeSignerEntity(row []string, p *models.Profile) error {
	switch p.CurrentLegalEntity {
	case models.LegalEntitySelf:
		se := p.SelfEmployed
		writeAt(row, docsColSelfEmployed,
			se.INN, se.BankName, se.CheckingAccount, se.BIK, se.CorrespondentAccount)
	case models.LegalEntityIndividual:
		ie := p.IndividualEntrepreneur
		writeAt(row, docsColIndividual,
			ie.FullName, ie.OGRNIP, ie.INN, ie.RegistrationAddress, ie.BankName,
			ie.CheckingAccount, ie.BIK, ie.CorrespondentAccount, ie.EdoAvailability)
	case models.LegalEntityOoo:
		ooo := p.Ooo
		writeAt(row, docsColOoo,
			ooo.EntityName, ooo.DirectorFullName, ooo.OGRN, ooo.INN, ooo.KPP,
			ooo.LegalAddress, ooo.ActualAddress, ooo.BankName, ooo.CheckingAccount,
			ooo.BIK, ooo.CorrespondentAccount, ooo.EdoAvailability, yesNo(ooo.UsnOrNds))
	case models.LegalEntityForeign:
		fe := p.ForeignEntity
		writeAt(row, docsColForeignEntity,
			fe.EntityName, fe.RegistrationNumber, fe.Address, fe.BankName, fe.IBAN, fe.SWIFT)
	default:
		return fmt.Errorf("unknown legal entity selector %q", p.CurrentLegalEntity)
	}
	return nil
}

func writeSignerPassport(row []string, p *models.Profile) error {
	switch p.CurrentPassport {
	case models.PassportRu:
		row[docsColSignerScan1] = p.RuPassport.FirstPageScanID
		row[docsColSignerScan2] = p.RuPassport.SecondPageScanID
		writeAt(row, docsColRuPassport, passportFields(&p.RuPassport.Data)...)
	case models.PassportKz:
		row[docsColSignerScan1] = p.KzPassport.FirstPageScanID
		row[docsColSignerScan2] = p.KzPassport.SecondPageScanID
		writeAt(row, docsColKzPassport, passportFields(&p.KzPassport.Data)...)
	case models.PassportBy:
		row[docsColSignerScan1] = p.ByPassport.FirstPageScanID
		row[docsColSignerScan2] = p.ByPassport.SecondPageScanID
		writeAt(row, docsColByPassport, passportFields(&p.ByPassport.Data)...)
	case models.PassportForeign:
		row[docsColSignerScan1] = p.ForeignPassport.FirstPageScanID
		row[docsColSignerScan2] = p.ForeignPassport.SecondPageScanID
		writeAt(row, docsColForeignPasport, passportFields(&p.ForeignPassport.Data)...)
	default:
		return fmt.Errorf("unknown passport selector %q", p.CurrentPassport)
	}
	return nil
}

// passportFields flattens a passport payload into its template column order
func passportFields(p models.Passport) []string {
	switch data := p.(type) {
	case *models.RuPassportData:
		return []string{data.FullName, data.BirthDate, data.Number, data.IssuedBy,
			data.IssueDate, data.Code, data.RegistrationDate}
	case *models.KzPassportData:
		return []string{data.FullName, data.BirthDate, data.Number, data.IDNumber,
			data.IssuedBy, data.IssueDate, data.EndDate}
	case *models.ByPassportData:
		return []string{data.FullName, data.BirthDate, data.Number, data.IssuedBy,
			data.IssueDate, data.RegistrationAddress}
	case *models.ForeignPassportData:
		return []string{data.FullName, data.Citizenship, data.BirthDate, data.Number,
			data.IDNumber, data.IssuedBy, data.IssueDate, data.EndDate,
			data.RegistrationAddress}
	default:
		return nil
	}
}

func writeRoleBlock(row []string, start int, slots *RoleSlots) error {
	offset := start
	for _, a := range slots.Domestic.Slots {
		if err := writeSlot(row, offset, a); err != nil {
			return err
		}
		offset += slotWidth
	}

	offset = start + domesticSlots*slotWidth
	for _, a := range slots.Foreign.Slots {
		if err := writeSlot(row, offset, a); err != nil {
			return err
		}
		offset += slotWidth
	}

	scansCol := start + (domesticSlots+slots.Foreign.capacity)*slotWidth
	row[scansCol] = joinScans(slots.Scans)
	return nil
}

func writeSlot(row []string, start int, a models.Author) error {
	passport, err := a.Docs.Passport()
	if err != nil {
		return fmt.Errorf("author %q: %w", a.FullName, err)
	}

	row[start+slotColFullName] = a.FullName
	row[start+slotColLicense] = licenseLabel(a.Docs.LicenseOrAlienation)
	row[start+slotColPaymentType] = string(a.Docs.PaymentType)
	row[start+slotColPaymentValue] = a.Docs.PaymentValue
	row[start+slotColPassportType] = string(a.Docs.PassportType)
	writeAt(row, start+slotColPassportData, passportFields(passport)...)
	return nil
}

func joinScans(authors []models.Author) string {
	parts := make([]string, 0, len(authors))
	for _, a := range authors {
		parts = append(parts, a.FullName+": "+a.Note)
	}
	return strings.Join(parts, "; ")
}

func licenseLabel(license bool) string {
	if license {
		return "license"
	}
	return "alienation"
}

func writeAt(row []string, start int, cells ...string) {
	for i, cell := range cells {
		row[start+i] = cell
	}
}
