package validator

import (
	"strings"
	"testing"
)

func validRequest() RegistrationCreateRequest {
	return RegistrationCreateRequest{
		FullName:   "John Doe",
		RollNumber: "21051234",
		Email:      "john@example.com",
		Phone:      "9999999999",
		University: "KIIT",
		Gender:     "Male",
	}
}

func TestValidRegistrationPasses(t *testing.T) {
	v := New()
	if err := v.Validate(validRequest()); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
}

func TestMissingFieldsReported(t *testing.T) {
	v := New()
	err := v.Validate(RegistrationCreateRequest{})
	if err == nil {
		t.Fatal("empty request must fail validation")
	}

	ve, ok := err.(*ValidationErrors)
	if !ok {
		t.Fatalf("err type = %T, want *ValidationErrors", err)
	}
	if len(ve.Fields) != 6 {
		t.Errorf("got %d field errors, want 6: %v", len(ve.Fields), ve)
	}
	if !strings.Contains(ve.Error(), "full name") {
		t.Errorf("message should name the missing field, got %q", ve.Error())
	}
}

func TestFieldRules(t *testing.T) {
	v := New()
	tests := []struct {
		name   string
		mutate func(*RegistrationCreateRequest)
		wantOK bool
	}{
		{"bad email", func(r *RegistrationCreateRequest) { r.Email = "not-an-email" }, false},
		{"bad gender", func(r *RegistrationCreateRequest) { r.Gender = "X" }, false},
		{"bad roll number", func(r *RegistrationCreateRequest) { r.RollNumber = "!!" }, false},
		{"lowercase ticket id", func(r *RegistrationCreateRequest) { r.UniqueID = "ab12" }, false},
		{"short ticket id", func(r *RegistrationCreateRequest) { r.UniqueID = "AB1" }, false},
		{"valid ticket id", func(r *RegistrationCreateRequest) { r.UniqueID = "AB12" }, true},
		{"gender Other", func(r *RegistrationCreateRequest) { r.Gender = "Other" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			err := v.Validate(req)
			if (err == nil) != tt.wantOK {
				t.Errorf("Validate = %v, wantOK %v", err, tt.wantOK)
			}
		})
	}
}

func TestAdminLoginRequest(t *testing.T) {
	v := New()
	if err := v.Validate(AdminLoginRequest{Username: "alice", Password: "pw"}); err != nil {
		t.Errorf("valid login rejected: %v", err)
	}
	if err := v.Validate(AdminLoginRequest{Username: "alice"}); err == nil {
		t.Error("missing password must fail")
	}
}
