package handlers

import (
	"errors"
	"testing"
	"time"

	"khoborpress/internal/errs"
)

func TestCategoryInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      categoryInput
		wantErr bool
	}{
		{"valid", categoryInput{Name: "Sports", NameBn: "খেলা"}, false},
		{"missing name", categoryInput{NameBn: "খেলা"}, true},
		{"missing bengali name", categoryInput{Name: "Sports"}, true},
		{"empty", categoryInput{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errs.ErrInvalid) {
				t.Errorf("validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestAdInput_Validate(t *testing.T) {
	now := time.Now()
	earlier := now.Add(-time.Hour)

	base := adInput{
		Name:      "Launch banner",
		Placement: "header",
		ImageURL:  "https://cdn.example.com/banner.png",
		TargetURL: "https://example.com",
	}

	t.Run("valid", func(t *testing.T) {
		in := base
		if err := in.validate(); err != nil {
			t.Errorf("validate() = %v, want nil", err)
		}
	})

	t.Run("open ended window", func(t *testing.T) {
		in := base
		in.StartsAt = &earlier
		if err := in.validate(); err != nil {
			t.Errorf("validate() = %v, want nil", err)
		}
	})

	t.Run("unknown placement", func(t *testing.T) {
		in := base
		in.Placement = "popup"
		if err := in.validate(); !errors.Is(err, errs.ErrInvalid) {
			t.Errorf("validate() = %v, want ErrInvalid", err)
		}
	})

	t.Run("window ends before it starts", func(t *testing.T) {
		in := base
		in.StartsAt = &now
		in.EndsAt = &earlier
		if err := in.validate(); !errors.Is(err, errs.ErrInvalid) {
			t.Errorf("validate() = %v, want ErrInvalid", err)
		}
	})

	t.Run("missing image", func(t *testing.T) {
		in := base
		in.ImageURL = ""
		if err := in.validate(); !errors.Is(err, errs.ErrInvalid) {
			t.Errorf("validate() = %v, want ErrInvalid", err)
		}
	})
}
