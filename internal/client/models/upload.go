package models

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// UploadCandidate is the upload form being edited. It survives a failed
// submission so the user can retry without re-entering anything.
type UploadCandidate struct {
	File    *File
	Date    time.Time
	Heads   Heads
	Tags    TagSet
	Remarks string
}

// UploadMetadata is the JSON "data" part of the upload request.
type UploadMetadata struct {
	MajorHead       string   `json:"major_head"`
	MinorHead       string   `json:"minor_head"`
	DocumentDate    string   `json:"document_date"`
	DocumentRemarks string   `json:"document_remarks"`
	Tags            []TagRef `json:"tags"`
	UserID          string   `json:"user_id"`
}

// SelectFile replaces the selected file. Files of a disallowed type are
// rejected immediately and the previous selection is kept.
func (c *UploadCandidate) SelectFile(f *File) error {
	if err := validateFileType(f); err != nil {
		return err
	}
	c.File = f
	return nil
}

// Reset empties the form after a successful upload.
func (c *UploadCandidate) Reset() {
	*c = UploadCandidate{}
}

// Validate checks that every required field is present and that the file
// type is allowed.
func (c *UploadCandidate) Validate() error {
	view := uploadView{
		File:      c.File,
		MajorHead: string(c.Heads.Major()),
		MinorHead: c.Heads.Minor(),
	}
	if c.File != nil {
		view.MIMEType = c.File.MIMEType
	}
	if !c.Date.IsZero() {
		view.Date = FormatWireDate(c.Date)
	}

	err := uploadValidator.Struct(view)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newValidationError("", err.Error())
	}
	fe := verrs[0]
	field := uploadFieldNames[fe.StructField()]
	switch fe.Tag() {
	case "allowed_mime":
		return validateFileType(c.File)
	case "required":
		return newValidationError(field, "please fill in all required fields")
	default:
		return newValidationError(field, "invalid value")
	}
}

// Metadata builds the "data" part for userID. Tags are always sent as a list.
func (c *UploadCandidate) Metadata(userID string) UploadMetadata {
	tags := c.Tags.Refs()
	if tags == nil {
		tags = []TagRef{}
	}
	return UploadMetadata{
		MajorHead:       string(c.Heads.Major()),
		MinorHead:       c.Heads.Minor(),
		DocumentDate:    FormatWireDate(c.Date),
		DocumentRemarks: c.Remarks,
		Tags:            tags,
		UserID:          userID,
	}
}

type uploadView struct {
	File      *File  `validate:"required"`
	MIMEType  string `validate:"required,allowed_mime"`
	Date      string `validate:"required"`
	MajorHead string `validate:"required,oneof=Personal Professional"`
	MinorHead string `validate:"required"`
}

var uploadFieldNames = map[string]string{
	"File":      "file",
	"MIMEType":  "file",
	"Date":      "document_date",
	"MajorHead": "major_head",
	"MinorHead": "minor_head",
}

var uploadValidator = newUploadValidator()

func newUploadValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("allowed_mime", func(fl validator.FieldLevel) bool {
		return IsAllowedMIME(fl.Field().String())
	})
	return v
}
