package wa

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/enum"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"08160860973", "2348160860973"},
		{"+2348160860973", "2348160860973"},
		{"2348160860973", "2348160860973"},
		{"8160860973", "2348160860973"},
		{"0816 086 0973", "2348160860973"},
		{"0816-086-0973", "2348160860973"},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{
		"08160860973",
		"+2348160860973",
		"2348160860973",
		"0816 086 0973",
		"07012345678",
		"09112345678",
	}
	for _, p := range valid {
		if !ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = false, want true", p)
		}
	}

	invalid := []string{
		"",
		"12345",
		"0616086097",     // bad operator prefix
		"081608609",      // too short
		"081608609731",   // too long
		"1234567890123",  // wrong country
		"not a number",
	}
	for _, p := range invalid {
		if ValidatePhone(p) {
			t.Errorf("ValidatePhone(%q) = true, want false", p)
		}
	}
}

func TestFormatNaira(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₦0"},
		{"500", "₦500"},
		{"12000", "₦12,000"},
		{"1234567", "₦1,234,567"},
		{"2500.50", "₦2,500.50"},
		{"-1500", "-₦1,500"},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if got := FormatNaira(d); got != tt.want {
			t.Errorf("FormatNaira(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeTextUsesPercentTwenty(t *testing.T) {
	got := encodeText("hello world")
	if strings.Contains(got, "+") {
		t.Errorf("encoded text contains '+': %q", got)
	}
	if got != "hello%20world" {
		t.Errorf("encodeText = %q, want %q", got, "hello%20world")
	}
}

func TestBuildOrderAlert(t *testing.T) {
	o := Order{
		OrderID:      "ORD-20260831-12345",
		CustomerName: "Ada Obi",
		Phone:        "08160860973",
		Address:      "12 Allen Avenue, Ikeja, Lagos",
		Items: []Line{
			{Name: "Meat Pie", Quantity: 2, Price: decimal.NewFromInt(1500)},
			{Name: "Jollof Rice", Quantity: 1, Price: decimal.NewFromInt(3500)},
		},
		Total:     decimal.NewFromInt(6500),
		CreatedAt: time.Date(2026, 8, 31, 14, 30, 0, 0, time.UTC),
	}

	got, err := BuildOrderAlert("2348160860973", o)
	if err != nil {
		t.Fatalf("BuildOrderAlert: %v", err)
	}
	if !strings.HasPrefix(got, "https://wa.me/2348160860973?text=") {
		t.Errorf("link not addressed to business number: %q", got)
	}
	for _, want := range []string{
		"ORD-20260831-12345",
		"Ada%20Obi",
		"Meat%20Pie%20x2",
		"%E2%82%A66%2C500", // ₦6,500
	}{
		if !strings.Contains(got, want) {
			t.Errorf("link missing %q: %q", want, got)
		}
	}
}

func TestBuildOrderAlert_NoBusinessNumber(t *testing.T) {
	_, err := BuildOrderAlert("", Order{OrderID: "ORD-1"})
	if err == nil {
		t.Fatal("expected error for missing business number")
	}
}

func TestBuildOrderAlert_SpecialInstructionsOptional(t *testing.T) {
	o := Order{OrderID: "ORD-1", Total: decimal.NewFromInt(100)}

	got, err := BuildOrderAlert("2348160860973", o)
	if err != nil {
		t.Fatalf("BuildOrderAlert: %v", err)
	}
	if strings.Contains(got, "Special%20Instructions") {
		t.Errorf("link should omit instructions section when empty: %q", got)
	}

	o.SpecialInstructions = "no pepper"
	got, err = BuildOrderAlert("2348160860973", o)
	if err != nil {
		t.Fatalf("BuildOrderAlert: %v", err)
	}
	if !strings.Contains(got, "no%20pepper") {
		t.Errorf("link missing instructions: %q", got)
	}
}

func TestBuildCustomerConfirmation(t *testing.T) {
	o := Order{OrderID: "ORD-20260831-12345", Total: decimal.NewFromInt(6500)}

	got := BuildCustomerConfirmation("08160860973", o)
	if !strings.HasPrefix(got, "https://wa.me/2348160860973?text=") {
		t.Errorf("link not addressed to normalized customer number: %q", got)
	}
	if !strings.Contains(got, "ORD-20260831-12345") {
		t.Errorf("link missing order ID: %q", got)
	}
}

func TestBuildStatusUpdate(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{enum.OrderStatusPreparing, "being%20prepared"},
		{enum.OrderStatusReady, "ready%20for%20delivery"},
		{enum.OrderStatusCompleted, "been%20delivered"},
		{"on-hold", "status%20updated%3A%20on-hold"}, // generic fallback
	}
	for _, tt := range tests {
		got := BuildStatusUpdate("08160860973", "ORD-1", tt.status)
		if !strings.Contains(got, tt.want) {
			t.Errorf("BuildStatusUpdate(%q) missing %q: %q", tt.status, tt.want, got)
		}
	}
}

func TestContactLink(t *testing.T) {
	if got := ContactLink("2348160860973", ""); got != "https://wa.me/2348160860973" {
		t.Errorf("bare contact link = %q", got)
	}
	got := ContactLink("2348160860973", "I have a question")
	if !strings.Contains(got, "?text=I%20have%20a%20question") {
		t.Errorf("contact link with text = %q", got)
	}
}
