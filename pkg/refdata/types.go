// Package refdata resolves effective-dated reference records (wardens,
// national officials, field-office directors) and cascades a single
// facility, country, or attorney selection into a flat merge-variable set.
package refdata

// Well-known position titles used as subject keys for succession records.
const (
	TitleWarden              = "Warden"
	TitleFieldOfficeDirector = "Field Office Director"
	TitleAttorneyGeneral     = "Attorney General"
	TitleDHSSecretary        = "Secretary of Homeland Security"
	TitleICEDirector         = "ICE Director"
)

// PositionRecord is one entry in a succession list for an officeholder.
// Records are append-only: replacing an officeholder means adding a new
// record with a later effective date, never mutating an old one.
type PositionRecord struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Title string `json:"title" yaml:"title"`

	// EffectiveDate is an ISO-8601 date (YYYY-MM-DD). For a given subject
	// key the record with the greatest effective date not after the
	// evaluation date is "current".
	EffectiveDate string `json:"effective_date" yaml:"effective_date"`

	// FacilityID scopes facility-level positions such as wardens.
	FacilityID string `json:"facility_id,omitempty" yaml:"facility_id,omitempty"`

	// FieldOfficeID scopes office-level positions such as directors.
	FieldOfficeID string `json:"field_office_id,omitempty" yaml:"field_office_id,omitempty"`

	// Acting marks officials serving in an acting capacity; cascaded names
	// carry an "Acting " prefix.
	Acting bool `json:"acting,omitempty" yaml:"acting,omitempty"`

	// Predecessor is a lineage back-reference kept for display only; the
	// resolver orders records by effective date and never traverses it.
	Predecessor string `json:"predecessor,omitempty" yaml:"predecessor,omitempty"`
}

// Facility is a detention facility.
type Facility struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Location string `json:"location" yaml:"location"`
	Operator string `json:"operator,omitempty" yaml:"operator,omitempty"`

	// FieldOfficeID links the facility to its supervising field office.
	FieldOfficeID string `json:"field_office_id,omitempty" yaml:"field_office_id,omitempty"`
}

// FieldOffice is an enforcement field office.
type FieldOffice struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Court is a federal district court. Location shares its trailing state
// token with the facilities in its jurisdiction.
type Court struct {
	ID       string `json:"id" yaml:"id"`
	District string `json:"district" yaml:"district"`
	Division string `json:"division,omitempty" yaml:"division,omitempty"`
	Location string `json:"location" yaml:"location"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
}

// Country holds the name forms used when describing a petitioner's
// citizenship.
type Country struct {
	Code       string `json:"code" yaml:"code"`
	Name       string `json:"name" yaml:"name"`
	FormalName string `json:"formal_name,omitempty" yaml:"formal_name,omitempty"`
	Demonym    string `json:"demonym,omitempty" yaml:"demonym,omitempty"`
}

// Attorney identifies counsel of record for the signature block.
type Attorney struct {
	Name      string `json:"name" yaml:"name"`
	BarNumber string `json:"bar_number,omitempty" yaml:"bar_number,omitempty"`
	Firm      string `json:"firm,omitempty" yaml:"firm,omitempty"`
	Address   string `json:"address,omitempty" yaml:"address,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
}

// RefSets bundles the reference collections a cascade draws from. The
// collections are treated as immutable during a call.
type RefSets struct {
	Facilities   []Facility       `json:"facilities" yaml:"facilities"`
	FieldOffices []FieldOffice    `json:"field_offices" yaml:"field_offices"`
	Courts       []Court          `json:"courts" yaml:"courts"`
	Positions    []PositionRecord `json:"positions" yaml:"positions"`
}

// FacilityByID returns the facility with the given ID, or nil.
func (r RefSets) FacilityByID(id string) *Facility {
	for i := range r.Facilities {
		if r.Facilities[i].ID == id {
			return &r.Facilities[i]
		}
	}
	return nil
}

// FieldOfficeByID returns the field office with the given ID, or nil.
func (r RefSets) FieldOfficeByID(id string) *FieldOffice {
	for i := range r.FieldOffices {
		if r.FieldOffices[i].ID == id {
			return &r.FieldOffices[i]
		}
	}
	return nil
}
