package model

import "time"

// Scholarship is a catalog entry describing a scholarship offered by a
// university.  Entries are created and maintained exclusively by
// admins; students and moderators only ever read them.  All monetary
// amounts are stored in cents to avoid floating point rounding.
//
// Fields:
//  ID                   – primary key identifier.
//  Name                 – scholarship name.
//  UniversityName       – name of the offering university.
//  Country              – university country.
//  City                 – university city.
//  WorldRank            – university world ranking.
//  SubjectCategory      – subject area (e.g. Engineering, Medicine).
//  ScholarshipCategory  – funding class (Full fund, Partial fund,
//                         Research, Merit-based).
//  Degree               – degree level (Diploma, Bachelor, Masters).
//  TuitionFeesCents     – annual tuition in cents (0 when fully funded).
//  ApplicationFeesCents – application fee in cents.
//  ServiceChargeCents   – portal service charge in cents.
//  ApplicationDeadline  – last date applications are accepted.
//  PostedByEmail        – email of the admin who posted the entry.
//  PostedAt             – creation timestamp.
//  UpdatedAt            – last update timestamp.
type Scholarship struct {
	ID                   uint64    // scholarships.id
	Name                 string    // scholarships.name
	UniversityName       string    // scholarships.university_name
	Country              string    // scholarships.country
	City                 string    // scholarships.city
	WorldRank            uint32    // scholarships.world_rank
	SubjectCategory      string    // scholarships.subject_category
	ScholarshipCategory  string    // scholarships.scholarship_category
	Degree               string    // scholarships.degree
	TuitionFeesCents     uint32    // scholarships.tuition_fees_cents
	ApplicationFeesCents uint32    // scholarships.application_fees_cents
	ServiceChargeCents   uint32    // scholarships.service_charge_cents
	ApplicationDeadline  time.Time // scholarships.application_deadline
	PostedByEmail        string    // scholarships.posted_by_email
	PostedAt             time.Time // scholarships.posted_at
	UpdatedAt            time.Time // scholarships.updated_at
}
