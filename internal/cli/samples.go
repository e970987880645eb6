package cli

import (
	"strconv"

	"github.com/dalemusser/coursecatalog/internal/app/system/courseval"
	"github.com/dalemusser/coursecatalog/internal/domain/models"
)

type sample struct {
	code, name  string
	credits     float64
	semester    models.Semester
	active      bool
	description string
}

var sampleCourses = []sample{
	{"CPAN212", "Web Programming with JavaScript", 3, models.SemesterFall, true,
		"Modern web development with JavaScript, HTML5 and CSS3, building interactive front-end and back-end applications."},
	{"MATH201", "Calculus for Computer Science", 4, models.SemesterFall, true,
		"Differential and integral calculus applied to computing: limits, derivatives, optimization and numerical methods."},
	{"PHYS141", "Physics for Engineers I", 3.5, models.SemesterWinter, true,
		"Mechanics, waves, thermodynamics and energy systems, with laboratory experiments and data analysis."},
	{"CHEM105", "General Chemistry", 3, models.SemesterFall, true,
		"Atomic structure, chemical bonding, stoichiometry and reactions, with lab sessions on technique and safety."},
	{"CPAN213", "Database Systems and MongoDB", 3, models.SemesterWinter, true,
		"Database design and implementation with an emphasis on document stores: modeling, querying and administration."},
	{"MATH301", "Linear Algebra and Statistics", 3.5, models.SemesterSummer, true,
		"Matrices, vector spaces, eigenvalues and statistical analysis for data science and machine learning."},
	{"BIOL120", "Introduction to Biotechnology", 2.5, models.SemesterSummer, true,
		"Genetic engineering, molecular biology techniques and bioethics, explored through case studies and lab work."},
	{"ENGR150", "Engineering Design and Analysis", 4, models.SemesterWinter, true,
		"Engineering problem solving and design thinking using CAD, prototyping and project management."},
	{"STAT200", "Applied Statistics for STEM", 3, models.SemesterFall, true,
		"Hypothesis testing, regression, experimental design and statistical software for science and engineering."},
	{"CYBR301", "Cybersecurity Fundamentals", 3.5, models.SemesterSummer, false,
		"Network security, encryption, threat assessment and incident response, including ethical hacking practice."},
}

var instructorNames = []string{
	"Dr. Sarah Johnson",
	"Prof. Michael Chen",
	"Dr. Emily Rodriguez",
	"Prof. David Kim",
	"Dr. Jennifer Smith",
	"Prof. Robert Wilson",
	"Dr. Lisa Thompson",
	"Prof. James Anderson",
	"Dr. Maria Garcia",
	"Prof. Thomas Brown",
	"Dr. Ashley Davis",
	"Prof. Kevin Lee",
	"Dr. Rachel White",
	"Prof. Daniel Martinez",
	"Dr. Amanda Clark",
}

// samplePayloads builds the seed batch. pick(n) chooses an instructor index
// in [0, n).
func samplePayloads(pick func(n int) int) []courseval.Payload {
	out := make([]courseval.Payload, 0, len(sampleCourses))
	for _, s := range sampleCourses {
		out = append(out, courseval.Payload{
			CourseName:  courseval.String(s.name),
			CourseCode:  courseval.String(s.code),
			Credits:     courseval.String(strconv.FormatFloat(s.credits, 'f', -1, 64)),
			Description: courseval.String(s.description),
			Instructor:  courseval.String(instructorNames[pick(len(instructorNames))]),
			Semester:    courseval.String(string(s.semester)),
			IsActive:    courseval.Bool(s.active),
		})
	}
	return out
}
