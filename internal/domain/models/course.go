// internal/domain/models/course.go
package models

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a single catalog entry as stored in the "courses" collection.
// Field names match the documents written by earlier versions of the catalog.
type Course struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CourseName  string             `bson:"courseName" json:"courseName"`
	CourseCode  string             `bson:"courseCode" json:"courseCode"` // always upper case
	Credits     float64            `bson:"credits" json:"credits"`
	Description string             `bson:"description" json:"description"`
	Instructor  string             `bson:"instructor" json:"instructor"`
	Semester    Semester           `bson:"semester" json:"semester"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewCourse returns a Course carrying the defaults applied on create.
func NewCourse() Course {
	return Course{
		Semester: DefaultSemester,
		IsActive: true,
	}
}

// FullTitle renders the course as "CPAN212 - Web Programming".
func (c Course) FullTitle() string {
	return c.CourseCode + " - " + c.CourseName
}

// FormattedCredits renders credits for display: "1 credit", "3.5 credits".
func (c Course) FormattedCredits() string {
	n := strconv.FormatFloat(c.Credits, 'f', -1, 64)
	if c.Credits == 1 {
		return n + " credit"
	}
	return n + " credits"
}
