package validator

import "testing"

type slotRequest struct {
	Date       string   `json:"date" validate:"required,calendar_date"`
	Time       string   `json:"time" validate:"required,clock"`
	PackageIDs []string `json:"package_ids" validate:"max=10,dive,required"`
}

func TestValidateAcceptsWellFormedRequest(t *testing.T) {
	errs := Validate(&slotRequest{Date: "2024-06-10", Time: "14:30", PackageIDs: []string{"pkg-1"}})
	if errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	errs := Validate(&slotRequest{Date: "10.06.2024", Time: "2:30pm"})
	if errs["date"] != "Invalid date. Expected format: YYYY-MM-DD" {
		t.Fatalf("unexpected date error: %v", errs)
	}
	if errs["time"] != "Invalid time. Expected format: HH:mm" {
		t.Fatalf("unexpected time error: %v", errs)
	}
}

func TestClockRequiresFixedWidth(t *testing.T) {
	for _, in := range []string{"9:30", "09:30:00", "24:00"} {
		if err := ValidateVar(in, "clock"); err == nil {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
	if err := ValidateVar("09:30", "clock"); err != nil {
		t.Fatalf("expected 09:30 to pass: %v", err)
	}
}

func TestValidateRequired(t *testing.T) {
	errs := Validate(&slotRequest{})
	if errs["date"] != "This field is required" || errs["time"] != "This field is required" {
		t.Fatalf("unexpected errors: %v", errs)
	}
}
