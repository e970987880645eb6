// internal/app/features/courses/payload.go
package courses

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/dalemusser/coursecatalog/internal/app/system/apperr"
	"github.com/dalemusser/coursecatalog/internal/app/system/courseval"
	"github.com/dalemusser/coursecatalog/internal/app/system/inputval"
	"github.com/dalemusser/coursecatalog/internal/app/system/normalize"
)

const maxBodyBytes = 64 << 10

// jsonBody accepts credits as a number or a string, and isActive as a bool
// or a checkbox-style string.
type jsonBody struct {
	CourseName  *string         `json:"courseName"`
	CourseCode  *string         `json:"courseCode"`
	Credits     json.RawMessage `json:"credits"`
	Description *string         `json:"description"`
	Instructor  *string         `json:"instructor"`
	Semester    *string         `json:"semester"`
	IsActive    json.RawMessage `json:"isActive"`
}

// formFields are the form names submitted by the course forms.
var formFields = []string{"courseName", "courseCode", "credits", "description", "instructor", "semester"}

// readPayload decodes a JSON or url-encoded body into a Payload. On update
// an unchecked isActive checkbox is absent from the form and means false.
func readPayload(w http.ResponseWriter, r *http.Request, update bool) (courseval.Payload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		return readJSON(r)
	}
	return readForm(r, update)
}

func readJSON(r *http.Request) (courseval.Payload, error) {
	var b jsonBody
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&b); err != nil {
		return courseval.Payload{}, badBody("Request body must be a valid JSON object.")
	}

	p := courseval.Payload{
		CourseName:  b.CourseName,
		CourseCode:  b.CourseCode,
		Description: b.Description,
		Instructor:  b.Instructor,
		Semester:    b.Semester,
	}

	if raw := bytes.TrimSpace(b.Credits); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var s string
		if raw[0] == '"' {
			if err := json.Unmarshal(raw, &s); err != nil {
				return courseval.Payload{}, badBody("Request body must be a valid JSON object.")
			}
		} else {
			s = string(raw)
		}
		p.Credits = courseval.String(s)
	}

	if raw := bytes.TrimSpace(b.IsActive); len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
		var v bool
		var s string
		switch {
		case json.Unmarshal(raw, &v) == nil:
			p.IsActive = courseval.Bool(v)
		case json.Unmarshal(raw, &s) == nil:
			p.IsActive = courseval.Bool(normalize.Checkbox(s))
		default:
			return courseval.Payload{}, fieldErr("isActive", "boolean", "Active must be true or false.")
		}
	}
	return p, nil
}

func readForm(r *http.Request, update bool) (courseval.Payload, error) {
	if err := r.ParseForm(); err != nil {
		return courseval.Payload{}, badBody("Request body could not be read.")
	}

	vals := make(map[string]*string, len(formFields))
	for _, name := range formFields {
		if _, ok := r.PostForm[name]; ok {
			vals[name] = courseval.String(r.PostForm.Get(name))
		}
	}

	p := courseval.Payload{
		CourseName:  vals["courseName"],
		CourseCode:  vals["courseCode"],
		Credits:     vals["credits"],
		Description: vals["description"],
		Instructor:  vals["instructor"],
		Semester:    vals["semester"],
	}
	if _, ok := r.PostForm["isActive"]; ok {
		p.IsActive = courseval.Bool(normalize.Checkbox(r.PostForm.Get("isActive")))
	} else if update {
		p.IsActive = courseval.Bool(false)
	}
	return p, nil
}

func badBody(msg string) *apperr.Error {
	return fieldErr("body", "decode", msg)
}

func fieldErr(field, rule, msg string) *apperr.Error {
	res := &inputval.Result{}
	res.Add(field, rule, msg)
	return apperr.Validation(res)
}
