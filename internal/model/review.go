package model

import "time"

// Review is a student's rating of a scholarship they completed an
// application for.  Scholarship and university names are copied from
// that application at creation time and never re-derived afterwards.
// Author identity fields are denormalized so review lists render
// without joining the users table.
//
// Fields:
//  ID              – primary key identifier.
//  ScholarshipID   – reviewed scholarship.
//  ScholarshipName – denormalized scholarship name.
//  UniversityName  – denormalized university name.
//  UserID          – author's user ID.
//  UserName        – author's display name at creation time.
//  UserEmail       – author's email.
//  UserImage       – author's avatar URL (may be empty).
//  RatingPoint     – integer rating, 1 through 5.
//  ReviewComment   – free-text comment, non-empty after trimming.
//  ReviewDate      – when the review was posted.
//  UpdatedAt       – last update timestamp.
type Review struct {
	ID              uint64    // reviews.id
	ScholarshipID   uint64    // reviews.scholarship_id
	ScholarshipName string    // reviews.scholarship_name
	UniversityName  string    // reviews.university_name
	UserID          uint64    // reviews.user_id
	UserName        string    // reviews.user_name
	UserEmail       string    // reviews.user_email
	UserImage       string    // reviews.user_image
	RatingPoint     uint8     // reviews.rating_point
	ReviewComment   string    // reviews.review_comment
	ReviewDate      time.Time // reviews.review_date
	UpdatedAt       time.Time // reviews.updated_at
}
