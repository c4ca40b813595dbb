package model

import "time"

// PersonResult is one row of a person search: the person plus their burial
// and plot placement when one exists
type PersonResult struct {
	ID           int64      `db:"id" json:"id"`
	FirstName    string     `db:"first_name" json:"firstName"`
	MiddleName   *string    `db:"middle_name" json:"middleName,omitempty"`
	LastName     string     `db:"last_name" json:"lastName"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
	DateOfDeath  *time.Time `db:"date_of_death" json:"dateOfDeath,omitempty"`
	AgeAtDeath   *int       `db:"age_at_death" json:"ageAtDeath,omitempty"`
	Gender       *string    `db:"gender" json:"gender,omitempty"`
	Occupation   *string    `db:"occupation" json:"occupation,omitempty"`
	BurialID     *int64     `db:"burial_id" json:"burialId,omitempty"`
	BurialDate   *time.Time `db:"burial_date" json:"burialDate,omitempty"`
	PlotID       *int64     `db:"plot_id" json:"plotId,omitempty"`
	PlotNumber   *string    `db:"plot_number" json:"plotNumber,omitempty"`
	CemeteryID   *int64     `db:"cemetery_id" json:"cemeteryId,omitempty"`
	CemeteryName *string    `db:"cemetery_name" json:"cemeteryName,omitempty"`

	MatchedReasons []string `db:"-" json:"matchedReasons"`
}

// FullName joins the first and last name the way the general search does
func (p *PersonResult) FullName() string {
	return p.FirstName + " " + p.LastName
}
