package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"pupils-backend/apperror"
)

const (
	msgRequired     = "Missing data for required field."
	msgNull         = "Field may not be null."
	msgNotString    = "Not a valid string."
	msgNotDate      = "Not a valid date."
	msgUnknownField = "Unknown field."
	msgInvalidInput = "Invalid input type."
)

// pupilInput is the shape validated on create. Pointers tell a missing
// field apart from an empty one.
type pupilInput struct {
	FirstName *string `json:"first_name" validate:"required,min=2"`
	LastName  *string `json:"last_name" validate:"required,min=2"`
	BirthDate *string `json:"birth_date" validate:"required,birthdate"`
}

// NewPupil is a create payload that passed the schema.
type NewPupil struct {
	FirstName string
	LastName  string
	BirthDate time.Time
}

// PupilPatch holds only the fields present in the request body.
type PupilPatch struct {
	FirstName *string
	LastName  *string
	BirthDate *time.Time
}

func (p PupilPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.BirthDate == nil
}

var loadableFields = map[string]bool{
	"first_name":   true,
	"last_name":    true,
	"birth_date":   true,
	"school_class": true,
}

type Loader struct {
	validate *validator.Validate
}

func NewLoader() *Loader {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("birthdate", func(fl validator.FieldLevel) bool {
		_, err := ParseBirthDate(fl.Field().String())
		return err == nil
	})
	return &Loader{validate: v}
}

// LoadPupil validates a create body. Unknown keys are rejected; the nested
// school_class key is accepted and ignored.
func (l *Loader) LoadPupil(body []byte) (NewPupil, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return NewPupil{}, err
	}

	errs := apperror.FieldErrors{}
	for name := range fields {
		if !loadableFields[name] {
			errs.Add(name, msgUnknownField)
		}
	}

	var in pupilInput
	in.FirstName = stringField(fields, "first_name", msgNotString, errs)
	in.LastName = stringField(fields, "last_name", msgNotString, errs)
	in.BirthDate = stringField(fields, "birth_date", msgNotDate, errs)

	if err := l.validate.Struct(in); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return NewPupil{}, apperror.Internal(err)
		}
		for _, fe := range verrs {
			if _, seen := errs[fe.Field()]; seen {
				continue
			}
			errs.Add(fe.Field(), messageFor(fe))
		}
	}

	if len(errs) > 0 {
		return NewPupil{}, apperror.Validation(errs)
	}

	birth, err := ParseBirthDate(*in.BirthDate)
	if err != nil {
		return NewPupil{}, apperror.Validation(apperror.FieldErrors{"birth_date": {msgNotDate}})
	}

	return NewPupil{
		FirstName: *in.FirstName,
		LastName:  *in.LastName,
		BirthDate: birth,
	}, nil
}

// LoadPupilPatch reads a partial update. Only type and date format are
// checked here; unrelated keys are ignored.
func (l *Loader) LoadPupilPatch(body []byte) (PupilPatch, error) {
	fields, err := decodeObject(body)
	if err != nil && !isEmptyObject(err, body) {
		return PupilPatch{}, err
	}

	errs := apperror.FieldErrors{}
	patch := PupilPatch{
		FirstName: stringField(fields, "first_name", msgNotString, errs),
		LastName:  stringField(fields, "last_name", msgNotString, errs),
	}

	if raw := stringField(fields, "birth_date", msgNotDate, errs); raw != nil {
		if err := l.validate.Var(*raw, "birthdate"); err != nil {
			errs.Add("birth_date", msgNotDate)
		} else {
			birth, _ := ParseBirthDate(*raw)
			patch.BirthDate = &birth
		}
	}

	if len(errs) > 0 {
		return PupilPatch{}, apperror.Validation(errs)
	}
	return patch, nil
}

// decodeObject returns the top level keys of a JSON object body. Bodies that
// carry no data (nothing, null, {}, [], "") are reported as missing.
func decodeObject(body []byte) (map[string]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, apperror.MissingBody()
	}

	var generic any
	if err := json.Unmarshal(body, &generic); err != nil {
		return nil, apperror.InvalidJSON(err)
	}

	switch v := generic.(type) {
	case nil:
		return nil, apperror.MissingBody()
	case map[string]any:
		if len(v) == 0 {
			return nil, apperror.MissingBody()
		}
	case []any:
		if len(v) == 0 {
			return nil, apperror.MissingBody()
		}
		return nil, apperror.Validation(apperror.FieldErrors{"_schema": {msgInvalidInput}})
	case string:
		if v == "" {
			return nil, apperror.MissingBody()
		}
		return nil, apperror.Validation(apperror.FieldErrors{"_schema": {msgInvalidInput}})
	case bool:
		if !v {
			return nil, apperror.MissingBody()
		}
		return nil, apperror.Validation(apperror.FieldErrors{"_schema": {msgInvalidInput}})
	case float64:
		if v == 0 {
			return nil, apperror.MissingBody()
		}
		return nil, apperror.Validation(apperror.FieldErrors{"_schema": {msgInvalidInput}})
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, apperror.InvalidJSON(err)
	}
	return fields, nil
}

// isEmptyObject: a PATCH with {} is a valid no-op.
func isEmptyObject(err error, body []byte) bool {
	return apperror.Is(err, apperror.KindMissingBody) && string(bytes.TrimSpace(body)) == "{}"
}

func stringField(fields map[string]json.RawMessage, name, typeMsg string, errs apperror.FieldErrors) *string {
	raw, ok := fields[name]
	if !ok {
		return nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		errs.Add(name, msgNull)
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		errs.Add(name, typeMsg)
		return nil
	}
	return &s
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "min":
		return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
	case "birthdate":
		return msgNotDate
	default:
		return fmt.Sprintf("Failed %s validation.", fe.Tag())
	}
}

// SortedFields lists the keys of a field error map in a stable order, used
// for logging.
func SortedFields(errs apperror.FieldErrors) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
