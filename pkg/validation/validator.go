package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Request limits
	MaxSystems    = 10000
	MaxConnectors = 50000
	MaxInterfaces = 10000
	MinBatchSize  = 1
	MaxBatchSize  = 10000

	// MaxStoredNetworks bounds the in-memory network store
	MaxStoredNetworks = 10000
)

func init() {
	validate = validator.New()
}

// GenerateRequest represents a request to generate a network
type GenerateRequest struct {
	Systems    int     `json:"systems" yaml:"systems" validate:"gte=0,lte=10000"`
	Connectors int     `json:"connectors" yaml:"connectors" validate:"gte=0,lte=50000"`
	Interfaces int     `json:"interfaces" yaml:"interfaces" validate:"gte=0,lte=10000"`
	Seed       *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// IsolateRequest represents a request to isolate a batch of systems
type IsolateRequest struct {
	BatchSize int    `json:"batchSize" yaml:"batchSize" validate:"required,gte=1,lte=10000"`
	Criterion string `json:"criterion" yaml:"criterion" validate:"required,oneof=load priority"`
}

// ValidateGenerateRequest validates a network generation request
func ValidateGenerateRequest(req *GenerateRequest) error {
	if req == nil {
		return errors.New("generate request cannot be nil")
	}
	return Struct(req)
}

// ValidateIsolateRequest validates a batch isolation request
func ValidateIsolateRequest(req *IsolateRequest) error {
	if req == nil {
		return errors.New("isolate request cannot be nil")
	}
	if err := Struct(req); err != nil {
		return err
	}
	return ValidateBatchSize(req.BatchSize)
}

// ValidateBatchSize validates the size of a batch request
func ValidateBatchSize(size int) error {
	if size < MinBatchSize {
		return fmt.Errorf("batch size must be at least %d, got %d", MinBatchSize, size)
	}
	if size > MaxBatchSize {
		return fmt.Errorf("batch size must not exceed %d, got %d", MaxBatchSize, size)
	}
	return nil
}

// Struct validates any tagged struct and formats the first failure
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
