// Package patterns holds the static regex and keyword rules used to spot
// and dissect real-estate legal notices in bulletin text.
package patterns

import (
	"regexp"

	"NoticeScanner/internal/domain"
)

// CaseNumber patterns are tried in order; the first match wins. The bare
// civil-case format outranks labelled forms because labelled text often
// repeats the number with extra noise around it.
var CaseNumber = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z]{2}-\d{2}-\d{6,9}\b`),
	regexp.MustCompile(`(?i)Court\s+File\s+No\.?\s*:?\s*([A-Z0-9][A-Z0-9/-]+)`),
	regexp.MustCompile(`(?i)Case\s+No\.?\s*:?\s*([A-Z0-9][A-Z0-9/-]+)`),
	regexp.MustCompile(`(?i)File\s+No\.?\s*:?\s*([A-Z0-9][A-Z0-9/-]+)`),
}

const streetTypes = `(?i:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Boulevard|Blvd|Court|Crt|Crescent|Cres|Lane|Ln|Place|Pl|Way|Trail|Circle|Cir|Terrace|Terr)`

// province accepts "Ontario" in any case but the bare abbreviation only in
// uppercase: lowercase "on" is almost always the preposition, and treating
// it as a province token would validate mid-sentence street fragments.
const province = `(?:ON|(?i:Ontario))`

// AddressFull matches a civic address through to a Canadian postal code.
// AddressLoose drops the postal code; matches from it must still carry a
// province token to be accepted.
var (
	AddressFull = regexp.MustCompile(
		`\d+\s+[A-Za-z][A-Za-z.'-]*(?:\s+[A-Za-z.'-]+)*\s+` + streetTypes +
			`[.,\s]+[A-Za-z.'-]+(?:\s+[A-Za-z.'-]+)*[,\s]+` + province + `\b[,\s]*(?:[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d)`)
	AddressLoose = regexp.MustCompile(
		`\d+\s+[A-Za-z][A-Za-z.'-]*(?:\s+[A-Za-z.'-]+)*\s+` + streetTypes +
			`[.,\s]+[A-Za-z.'-]+(?:\s+[A-Za-z.'-]+)*[,\s]+` + province + `\b`)

	PostalCode = regexp.MustCompile(`[A-Za-z]\d[A-Za-z]\s?\d[A-Za-z]\d`)
	Province   = regexp.MustCompile(`\bON\b|(?i:\bOntario\b)`)
)

// Money matches dollar figures like $750,000 or $1,250,000.50.
var Money = regexp.MustCompile(`\$\d[\d,]*(?:\.\d{2})?`)

// RealEstateKeywords gate relevance: a bulletin item must mention at least
// one of these before pattern checks are applied.
var RealEstateKeywords = []string{
	"power of sale",
	"foreclosure",
	"mortgage",
	"lien",
	"estate sale",
	"probate",
	"sheriff sale",
	"sheriff's sale",
	"tax sale",
	"tax arrears",
	"bankruptcy",
	"receivership",
	"construction lien",
	"property",
	"residential",
	"commercial",
	"real estate",
	"land",
	"premises",
	"condominium",
}

// TypeRule binds one filing type to its trigger pattern.
type TypeRule struct {
	Type    domain.FilingType
	Pattern *regexp.Regexp
}

// TypeRules is the single ordered classification table; the first rule
// whose pattern matches decides the filing type.
var TypeRules = []TypeRule{
	{domain.FilingPowerOfSale, regexp.MustCompile(`(?i)power\s+of\s+sale|notice\s+of\s+sale\s+under\s+mortgage|mortgage\s+sale`)},
	{domain.FilingForeclosure, regexp.MustCompile(`(?i)foreclos`)},
	{domain.FilingBankruptcy, regexp.MustCompile(`(?i)bankrupt|insolvenc|receivership`)},
	{domain.FilingEstateSale, regexp.MustCompile(`(?i)\bestate\b|probate`)},
	{domain.FilingTaxSale, regexp.MustCompile(`(?i)tax\s+sale|tax\s+arrears`)},
	{domain.FilingLien, regexp.MustCompile(`(?i)\blien\b|\bcharge\b`)},
}

// Urgency signals feeding the priority score.
var (
	Urgent       = regexp.MustCompile(`(?i)\burgent\b|\bimmediate\b`)
	FinalNotice  = regexp.MustCompile(`(?i)\bfinal\b|\bnotice\b`)
	PowerOfSale  = TypeRules[0].Pattern
	TaxSale      = regexp.MustCompile(`(?i)tax\s+sale|tax\s+arrears`)
	Foreclosure  = regexp.MustCompile(`(?i)foreclos`)
	Receivership = regexp.MustCompile(`(?i)receivership`)
)

// Jurisdiction markers reward the accuracy score. The bare ON abbreviation
// is only trusted in uppercase, as in the address patterns.
var Jurisdiction = regexp.MustCompile(`\bON\b|(?i:\bOntario\b|\bToronto\b|superior\s+court\s+of\s+justice)`)
