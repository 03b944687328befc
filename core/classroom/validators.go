package classroom

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/einsteinium08/class-bloom-space/core"
)

// The store never calls these: validating input is the caller's job.

var errNegativePoints = "points cannot be negative"

// Validate cleans and checks na before it is handed to Service.AddAssignment.
func (na *NewAssignment) Validate(validate *validator.Validate, translator ut.Translator) error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	na.Subject = core.CleanString(na.Subject)
	na.CreatedBy = core.CleanString(na.CreatedBy)

	var flds []core.FieldError
	if err := validate.Struct(na); err != nil {
		vErr, ok := core.TranslateValidationErrors(err, translator).(*core.ValidationError)
		if !ok {
			return err
		}
		flds = append(flds, vErr.Fields...)
	}
	if na.Points.Valid && na.Points.Int < 0 {
		flds = append(flds, core.FieldError{Field: "points", Error: errNegativePoints})
	}
	if len(flds) > 0 {
		return core.NewValidationError(nil, flds...)
	}
	return nil
}

// Validate cleans and checks na before it is handed to Service.AddAnnouncement.
func (na *NewAnnouncement) Validate(validate *validator.Validate, translator ut.Translator) error {
	na.Title = core.CleanString(na.Title)
	na.Message = core.CleanString(na.Message)
	na.CreatedBy = core.CleanString(na.CreatedBy)

	if err := validate.Struct(na); err != nil {
		return core.TranslateValidationErrors(err, translator)
	}
	return nil
}
