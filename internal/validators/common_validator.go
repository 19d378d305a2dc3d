package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("slot_code", validateSlotCode)
	validate.RegisterValidation("station_code", validateStationCode)
	validate.RegisterValidation("hhmm", validateHHMM)
	validate.RegisterValidation("vehicle_number", validateVehicleNumber)
	validate.RegisterValidation("upi_vpa", validateUPIVPA)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Fields flattens the errors into a field-to-message map for API responses.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "slot_code":
		return "Invalid slot code, expected the slXXX form"
	case "station_code":
		return "Invalid station code"
	case "hhmm":
		return "Invalid time, expected HH:MM"
	case "vehicle_number":
		return "Invalid vehicle registration number"
	case "upi_vpa":
		return "Invalid UPI address"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

var (
	slotCodeRegex      = regexp.MustCompile(`^sl\d{3,}$`)
	stationCodeRegex   = regexp.MustCompile(`^st\d{2,}$`)
	hhmmRegex          = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)
	vehicleNumberRegex = regexp.MustCompile(`^[A-Z]{2}\d{1,2}[A-Z]{1,3}\d{4}$`)
	upiVPARegex        = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
)

// Custom validation functions
func validateObjectID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateSlotCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return slotCodeRegex.MatchString(value)
}

// validateStationCode accepts either the short stXX code or a hex _id;
// slot documents carry both forms.
func validateStationCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if stationCodeRegex.MatchString(value) {
		return true
	}
	_, err := primitive.ObjectIDFromHex(value)
	return err == nil
}

func validateHHMM(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return hhmmRegex.MatchString(value)
}

func validateVehicleNumber(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return vehicleNumberRegex.MatchString(strings.ToUpper(strings.ReplaceAll(value, " ", "")))
}

func validateUPIVPA(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return upiVPARegex.MatchString(value)
}
