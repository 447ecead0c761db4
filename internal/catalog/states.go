package catalog

import "sort"

// Law identifies a statute a jurisdiction applies to AI hiring tools.
type Law struct {
	Name      string // Full statutory name
	ShortName string // Compact name used in gap reports
}

// JurisdictionRecord identifies a regulated state or city.
type JurisdictionRecord struct {
	Code          string
	Name          string
	LawName       string   // Headline statute, empty for unregulated jurisdictions
	EffectiveDate string   // Human-readable effective date
	Requirements  []string // Employer obligations under the headline statute
	Penalties     string
}

// regulated is the set of jurisdictions with AI-hiring statutes in force or
// imminent. Membership drives the state component of the risk score.
var regulated = map[string]bool{
	"IL": true, "CO": true, "CA": true, "NYC": true, "MD": true, "TX": true,
}

// stateLaws maps jurisdiction codes to the statutes a high- or medium-risk
// tool match surfaces in gap reports.
var stateLaws = map[string][]Law{
	"IL":  {{Name: "Illinois AI Video Interview Act (820 ILCS 42)", ShortName: "IL AIVI Act"}},
	"CO":  {{Name: "Colorado AI Act (SB 21-169)", ShortName: "CO AI Act"}},
	"NY":  {{Name: "NYC Local Law 144 (AEDT)", ShortName: "NYC LL144"}},
	"NYC": {{Name: "NYC Local Law 144 (AEDT)", ShortName: "NYC LL144"}},
	"CA":  {{Name: "California CCPA/CPRA AI Provisions", ShortName: "CA CCPA"}},
	"MD":  {{Name: "Maryland HB 1202 (Facial Recognition)", ShortName: "MD HB1202"}},
	"TX":  {{Name: "Texas CUBI Act (Biometric Data)", ShortName: "TX CUBI"}},
	"NJ":  {{Name: "New Jersey AEDT Legislation", ShortName: "NJ AEDT"}},
	"DC":  {{Name: "DC Stop Discrimination by Algorithms Act", ShortName: "DC SDAA"}},
	"CT":  {{Name: "Connecticut AI Bill (SB 1103)", ShortName: "CT AI Bill"}},
	"VT":  {{Name: "Vermont AI Transparency Act", ShortName: "VT AI Act"}},
}

// monitoringPrivacyLaws are additional statutes triggered by employee
// monitoring tools regardless of AI-specific regulation.
var monitoringPrivacyLaws = map[string]string{
	"CT": "CT Employee Monitoring Act",
	"DE": "DE Employee Monitoring Law",
	"NY": "NY Electronic Monitoring Act (§52-c)",
	"CA": "CA Privacy Rights (CCPA/CPRA)",
	"CO": "CO Privacy Act",
}

// disclosureLawNames are the full statutory citations substituted into
// generated document text per state.
var disclosureLawNames = map[string]string{
	"IL":  "Illinois AI Video Interview Act (820 ILCS 42) and HB 3773",
	"CO":  "Colorado AI Act (SB24-205)",
	"CA":  "California Consumer Privacy Act and proposed AEDT regulations",
	"NYC": "NYC Local Law 144",
}

var jurisdictions = []JurisdictionRecord{
	{Code: "IL", Name: "Illinois", LawName: "HB 3773 - AI Employment Decision Act", EffectiveDate: "January 1, 2026",
		Requirements: []string{
			"Notify employees when AI is used in employment decisions",
			"Prohibit AI-driven discrimination based on protected classes",
			"Cannot use zip code as proxy for protected characteristics",
			"Must disclose AI system name, purpose, and data collected",
		},
		Penalties: "Civil rights violation under Illinois Human Rights Act. Employees can file charges with Human Rights Commission or pursue civil complaints."},
	{Code: "CO", Name: "Colorado", LawName: "Colorado AI Act (SB24-205)", EffectiveDate: "June 30, 2026",
		Requirements: []string{
			"Use reasonable care to protect consumers from algorithmic discrimination",
			"Implement risk management programs (NIST AI RMF recommended)",
			"Complete impact assessments annually or within 90 days of substantial modification",
			"Provide consumer notifications before consequential decisions",
			"Give statement of reasons for adverse decisions",
			"Allow opportunity to correct incorrect personal data",
			"Provide opportunity to appeal with human review",
		},
		Penalties: "Up to $20,000 per violation. Enforced by Colorado Attorney General as unfair or deceptive trade practice."},
	{Code: "CA", Name: "California", LawName: "CCPA ADMT Regulations", EffectiveDate: "January 1, 2026 (partial), January 1, 2027 (full)",
		Requirements: []string{
			"Provide pre-use notice explaining ADMT purpose and opt-out rights",
			"Allow consumers to opt out of ADMT for significant decisions",
			"Conduct risk assessments for ADMT in employment contexts",
			"Human reviewers must be able to interpret and override ADMT decisions",
			"Applies to any tech that 'replaces or substantially replaces human decision-making'",
		},
		Penalties: "$2,500 per unintentional violation, $7,500 per intentional violation. Each affected consumer counts as separate violation."},
	{Code: "NYC", Name: "New York City", LawName: "Local Law 144", EffectiveDate: "Active (July 5, 2023)",
		Requirements: []string{
			"Annual bias audit by independent auditor",
			"Publish audit results on company website",
			"Notify candidates 10 business days before use",
			"Allow candidates to request alternative selection process",
			"Applies to automated employment decision tools (AEDT)",
		},
		Penalties: "$500 for first violation, $500-$1,500 per subsequent violation per day."},
	{Code: "MD", Name: "Maryland", LawName: "HB 1202 - Facial Recognition in Hiring", EffectiveDate: "October 1, 2020",
		Requirements: []string{
			"Employers may not use facial recognition technology during job interviews without written consent",
			"Applicant must sign a waiver authorizing facial recognition use",
			"Applies to all employers conducting interviews in Maryland",
			"Covers any technology that creates a facial geometry template",
		},
		Penalties: "Enforced under Maryland employment law. Applicants may file complaints with the Maryland Commissioner of Labor."},
	{Code: "TX", Name: "Texas", LawName: "TRAIGA (Texas Responsible AI Governance Act) - HB 149", EffectiveDate: "September 1, 2025",
		Requirements: []string{
			"Deployers must implement a risk management policy for high-risk AI systems",
			"Complete impact assessments before deploying high-risk AI systems",
			"Provide clear notice to individuals subject to high-risk AI decisions",
			"Maintain human oversight capabilities for high-risk AI systems",
			"Document AI system purpose, intended use, and known limitations",
		},
		Penalties: "Enforced by Texas Attorney General. Civil penalties up to $100,000 per violation. 90-day cure period before enforcement action."},
}

// allStateNames maps every selectable jurisdiction code to its display name.
var allStateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NYC": "New York City", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "DC": "Washington D.C.",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
}

// IsRegulated reports whether the jurisdiction has an AI-hiring statute.
func IsRegulated(code string) bool {
	return regulated[code]
}

// RegulatedStates returns the codes of all regulated jurisdictions.
func RegulatedStates() []string {
	return []string{"IL", "CO", "CA", "NYC", "MD", "TX"}
}

// IsKnownState reports whether the code names any selectable jurisdiction.
func IsKnownState(code string) bool {
	_, ok := allStateNames[code]
	return ok
}

// StateName returns the display name for a jurisdiction code, or the code
// itself when unknown.
func StateName(code string) string {
	if name, ok := allStateNames[code]; ok {
		return name
	}
	return code
}

// StateLaws returns the gap-report statutes for a jurisdiction, nil when none.
func StateLaws(code string) []Law {
	return stateLaws[code]
}

// MonitoringPrivacyLaw returns the employee-monitoring statute for a
// jurisdiction, empty when none.
func MonitoringPrivacyLaw(code string) string {
	return monitoringPrivacyLaws[code]
}

// DisclosureLawName returns the full citation substituted into generated
// documents for a state, with a generic fallback for states without a
// specific statute.
func DisclosureLawName(code string) string {
	if name, ok := disclosureLawNames[code]; ok {
		return name
	}
	return "applicable state and local laws"
}

// StateOption is one selectable jurisdiction in the scan funnel.
type StateOption struct {
	Code string
	Name string
}

// AllStates returns every selectable jurisdiction sorted by display name.
func AllStates() []StateOption {
	out := make([]StateOption, 0, len(allStateNames))
	for code, name := range allStateNames {
		out = append(out, StateOption{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Jurisdictions returns the regulated jurisdiction table for content pages.
func Jurisdictions() []JurisdictionRecord {
	return jurisdictions
}

// JurisdictionByCode looks up a regulated jurisdiction.
func JurisdictionByCode(code string) (JurisdictionRecord, bool) {
	for _, j := range jurisdictions {
		if j.Code == code {
			return j, true
		}
	}
	return JurisdictionRecord{}, false
}
