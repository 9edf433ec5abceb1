package refdata

import (
	"fmt"
	"strings"
)

// Variable keys populated by the facility cascade.
const (
	VarFacilityName        = "FACILITY_NAME"
	VarFacilityLocation    = "FACILITY_LOCATION"
	VarFacilityOperator    = "FACILITY_OPERATOR"
	VarWardenName          = "WARDEN_NAME"
	VarWardenTitle         = "WARDEN_TITLE"
	VarFieldOfficeName     = "FIELD_OFFICE_NAME"
	VarFieldOfficeDirector = "FIELD_OFFICE_DIRECTOR"
	VarFieldOfficeAddress  = "FIELD_OFFICE_ADDRESS"
	VarCourtDistrict       = "COURT_DISTRICT"
	VarCourtDivision       = "COURT_DIVISION"
	VarCourtLocation       = "COURT_LOCATION"
	VarCourtAddress        = "COURT_ADDRESS"
	VarAttorneyGeneralName = "ATTORNEY_GENERAL_NAME"
	VarDHSSecretaryName    = "DHS_SECRETARY_NAME"
	VarICEDirectorName     = "ICE_DIRECTOR_NAME"
)

// Variable keys populated by the country cascade.
const (
	VarPetitionerCountry       = "PETITIONER_COUNTRY"
	VarPetitionerCountryFormal = "PETITIONER_COUNTRY_FORMAL"
	VarPetitionerNationality   = "PETITIONER_NATIONALITY"
)

// Cascade is the result of deriving dependent values from one facility
// selection. Variables holds the flat merge-variable mapping; the resolved
// entities ride along for display. A missing sub-lookup omits its keys and
// leaves the corresponding entity nil; the cascade itself never fails.
type Cascade struct {
	Variables       map[string]string `json:"variables"`
	Facility        *Facility         `json:"facility,omitempty"`
	FieldOffice     *FieldOffice      `json:"field_office,omitempty"`
	Warden          *PositionRecord   `json:"warden,omitempty"`
	SuggestedCourts []Court           `json:"suggested_courts,omitempty"`
}

// BuildCascade derives the full variable set that follows from a single
// facility selection: the facility itself, its field office by foreign key,
// the current warden, courts sharing the facility's state, and the current
// national officials. asOf is an ISO date; empty means today.
func BuildCascade(facilityID string, refs RefSets, asOf string) *Cascade {
	cascade := &Cascade{Variables: map[string]string{}}
	put := cascade.put

	facility := refs.FacilityByID(facilityID)
	if facility != nil {
		cascade.Facility = facility
		put(VarFacilityName, facility.Name)
		put(VarFacilityLocation, facility.Location)
		put(VarFacilityOperator, facility.Operator)

		if office := refs.FieldOfficeByID(facility.FieldOfficeID); office != nil {
			cascade.FieldOffice = office
			put(VarFieldOfficeName, office.Name)
			put(VarFieldOfficeAddress, office.Address)

			director := ResolveCurrent(refs.Positions, SubjectKey{
				Title:         TitleFieldOfficeDirector,
				FieldOfficeID: office.ID,
			}, asOf)
			if director != nil {
				put(VarFieldOfficeDirector, officialName(director))
			}
		}

		warden := ResolveCurrent(refs.Positions, SubjectKey{
			Title:      TitleWarden,
			FacilityID: facility.ID,
		}, asOf)
		if warden != nil {
			cascade.Warden = warden
			put(VarWardenName, officialName(warden))
			put(VarWardenTitle, warden.Title)
		}

		cascade.SuggestedCourts = courtsForState(refs.Courts, facility.Location)
		if len(cascade.SuggestedCourts) > 0 {
			court := cascade.SuggestedCourts[0]
			put(VarCourtDistrict, court.District)
			put(VarCourtDivision, court.Division)
			put(VarCourtLocation, court.Location)
			put(VarCourtAddress, court.Address)
		}
	}

	for title, key := range map[string]string{
		TitleAttorneyGeneral: VarAttorneyGeneralName,
		TitleDHSSecretary:    VarDHSSecretaryName,
		TitleICEDirector:     VarICEDirectorName,
	} {
		if official := ResolveCurrent(refs.Positions, SubjectKey{Title: title}, asOf); official != nil {
			put(key, officialName(official))
		}
	}

	return cascade
}

// put stores a variable, omitting empty values so missing data never shows
// up as blank placeholders.
func (c *Cascade) put(key, value string) {
	if value != "" {
		c.Variables[key] = value
	}
}

// officialName returns the record's name, prefixed with "Acting " when the
// officeholder serves in an acting capacity.
func officialName(record *PositionRecord) string {
	if record.Acting {
		return "Acting " + record.Name
	}
	return record.Name
}

// courtsForState returns the courts whose location shares its trailing
// comma-delimited token with the facility location. The match is a
// state-level heuristic over free-text locations, compared
// case-insensitively.
func courtsForState(courts []Court, facilityLocation string) []Court {
	state := trailingToken(facilityLocation)
	if state == "" {
		return nil
	}
	var matched []Court
	for _, court := range courts {
		if strings.EqualFold(trailingToken(court.Location), state) {
			matched = append(matched, court)
		}
	}
	return matched
}

// trailingToken returns the last comma-delimited token of a free-text
// location, trimmed.
func trailingToken(location string) string {
	parts := strings.Split(location, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

// CountryCascade maps a selected country into petitioner variables. The
// formal name falls back to the plain name when absent.
func CountryCascade(country Country) map[string]string {
	vars := map[string]string{}
	if country.Name != "" {
		vars[VarPetitionerCountry] = country.Name
	}
	formal := country.FormalName
	if formal == "" {
		formal = country.Name
	}
	if formal != "" {
		vars[VarPetitionerCountryFormal] = formal
	}
	if country.Demonym != "" {
		vars[VarPetitionerNationality] = country.Demonym
	}
	return vars
}

// AttorneyCascade maps one attorney into slot-prefixed variables
// (ATTORNEY_1_NAME, ATTORNEY_2_NAME, ...) so several attorneys can coexist
// without key collisions. Slots are 1-based.
func AttorneyCascade(attorney Attorney, slot int) map[string]string {
	prefix := fmt.Sprintf("ATTORNEY_%d_", slot)
	fields := map[string]string{
		"NAME":       attorney.Name,
		"BAR_NUMBER": attorney.BarNumber,
		"FIRM":       attorney.Firm,
		"ADDRESS":    attorney.Address,
		"PHONE":      attorney.Phone,
		"EMAIL":      attorney.Email,
	}
	vars := map[string]string{}
	for field, value := range fields {
		if value != "" {
			vars[prefix+field] = value
		}
	}
	return vars
}
