package model

import "time"

// PermitSubmission is a permit filed by the external permitting system
type PermitSubmission struct {
	ID                int64     `db:"id" json:"id"`
	ExternalID        string    `db:"external_id" json:"externalId" binding:"required,max=64"`
	PermitType        string    `db:"permit_type" json:"permitType" binding:"required,oneof=burial exhumation transfer cremation"`
	ApplicantName     string    `db:"applicant_name" json:"applicantName" binding:"required,max=200"`
	ApplicantEmail    *string   `db:"applicant_email" json:"applicantEmail,omitempty" binding:"omitempty,email"`
	DeceasedFirstName string    `db:"deceased_first_name" json:"deceasedFirstName" binding:"required,max=100"`
	DeceasedLastName  string    `db:"deceased_last_name" json:"deceasedLastName" binding:"required,max=100"`
	DateOfDeath       *string   `db:"date_of_death" json:"dateOfDeath,omitempty" binding:"omitempty,datetime=2006-01-02"`
	CemeteryID        int64     `db:"cemetery_id" json:"cemeteryId" binding:"required,gt=0"`
	PlotID            *int64    `db:"plot_id" json:"plotId,omitempty" binding:"omitempty,gt=0"`
	Notes             *string   `db:"notes" json:"notes,omitempty" binding:"omitempty,max=2000"`
	SubmittedBy       string    `db:"submitted_by" json:"submittedBy"`
	ReceivedAt        time.Time `db:"received_at" json:"receivedAt"`
}
