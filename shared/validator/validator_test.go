package validator_test

import (
	"strings"
	"testing"

	"boda/shared/validator"
)

type guestPayload struct {
	Name     string `validate:"required" json:"name"`
	Email    string `validate:"omitempty,email" json:"email"`
	Seats    int    `validate:"gte=1,lte=20" json:"seats"`
	MealType string `validate:"oneof=normal vegetarian vegan child" json:"meal_type"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		data        *guestPayload
		expectError bool
	}{
		{
			name: "valid struct",
			data: &guestPayload{
				Name:     "Ana García",
				Email:    "ana@example.com",
				Seats:    2,
				MealType: "normal",
			},
			expectError: false,
		},
		{
			name: "missing required field",
			data: &guestPayload{
				Email:    "ana@example.com",
				Seats:    2,
				MealType: "normal",
			},
			expectError: true,
		},
		{
			name: "invalid email",
			data: &guestPayload{
				Name:     "Ana García",
				Email:    "invalid-email",
				Seats:    2,
				MealType: "normal",
			},
			expectError: true,
		},
		{
			name: "seats out of range",
			data: &guestPayload{
				Name:     "Ana García",
				Email:    "ana@example.com",
				Seats:    50,
				MealType: "normal",
			},
			expectError: true,
		},
		{
			name: "invalid meal type",
			data: &guestPayload{
				Name:     "Ana García",
				Email:    "ana@example.com",
				Seats:    2,
				MealType: "paleo",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(tt.data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       interface{}
		tag         string
		expectError bool
	}{
		{
			name:        "valid required string",
			field:       "Table 1",
			tag:         "required",
			expectError: false,
		},
		{
			name:        "empty required string",
			field:       "",
			tag:         "required",
			expectError: true,
		},
		{
			name:        "valid email",
			field:       "guest@example.com",
			tag:         "email",
			expectError: false,
		},
		{
			name:        "invalid email",
			field:       "invalid-email",
			tag:         "email",
			expectError: true,
		},
		{
			name:        "valid number in range",
			field:       8,
			tag:         "gte=1,lte=100",
			expectError: false,
		},
		{
			name:        "number out of range",
			field:       150,
			tag:         "gte=1,lte=100",
			expectError: true,
		},
		{
			name:        "valid oneof",
			field:       "round",
			tag:         "oneof=round square",
			expectError: false,
		},
		{
			name:        "invalid oneof",
			field:       "triangle",
			tag:         "oneof=round square",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:        "valid JSON",
			jsonBody:    `{"name":"Ana García","email":"ana@example.com","seats":2,"meal_type":"normal"}`,
			expectError: false,
		},
		{
			name:        "invalid field value",
			jsonBody:    `{"name":"Ana García","email":"invalid-email","seats":2,"meal_type":"normal"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Ana García","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := strings.NewReader(tt.jsonBody)
			var data guestPayload
			err := validator.Validate(reader, &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidationMessages(t *testing.T) {
	data := &guestPayload{}
	err := validator.ValidateStruct(data)

	if err == nil {
		t.Fatal("expected validation error for empty struct")
	}

	errorMsg := err.Error()

	if !strings.Contains(errorMsg, "required") || errorMsg == "" {
		t.Errorf("expected descriptive error message containing 'required', got: %s", errorMsg)
	}
}
