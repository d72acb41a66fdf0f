// Package wa builds WhatsApp deep links. Everything here is pure string
// work: a wa.me URL with a pre-filled message is the entire fulfillment
// channel. The order row in the database is a record, not a notification.
// Opening the link is the caller's job; if the host environment blocks it,
// the user retries by hand.
package wa

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/success-meals/api/internal/enum"
)

const (
	businessName  = "Success Signature Meals"
	businessLine  = "0816 086 0973"
	countryPrefix = "234"
)

// Line is one snapshot item in an order message.
type Line struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// Order carries the fields the message templates need.
type Order struct {
	OrderID             string
	CustomerName        string
	Phone               string
	Address             string
	SpecialInstructions string
	Items               []Line
	Total               decimal.Decimal
	CreatedAt           time.Time
}

// BuildOrderAlert builds the new-order deep link addressed to the business
// number. This is the message the fulfiller actually works from.
func BuildOrderAlert(businessPhone string, o Order) (string, error) {
	if businessPhone == "" {
		return "", fmt.Errorf("whatsapp number not configured")
	}

	var sb strings.Builder
	sb.WriteString("🍽️ *NEW ORDER ALERT!*\n\n")
	sb.WriteString(fmt.Sprintf("📋 *Order ID:* %s\n", o.OrderID))
	sb.WriteString(fmt.Sprintf("📅 *Date:* %s\n\n", o.CreatedAt.Format("2 Jan 2006, 3:04 PM")))

	sb.WriteString("👤 *Customer Details:*\n")
	sb.WriteString(fmt.Sprintf("Name: %s\n", o.CustomerName))
	sb.WriteString(fmt.Sprintf("Phone: %s\n", o.Phone))
	sb.WriteString(fmt.Sprintf("Address: %s\n\n", o.Address))

	sb.WriteString("🛒 *Order Items:*\n")
	for i, item := range o.Items {
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		sb.WriteString(fmt.Sprintf("%d. %s x%d - %s\n", i+1, item.Name, item.Quantity, FormatNaira(lineTotal)))
	}

	sb.WriteString(fmt.Sprintf("\n💰 *Total: %s*\n", FormatNaira(o.Total)))

	if o.SpecialInstructions != "" {
		sb.WriteString(fmt.Sprintf("\n📝 *Special Instructions:*\n%s\n", o.SpecialInstructions))
	}

	sb.WriteString("\n✅ Please confirm this order.")

	return link(businessPhone, sb.String()), nil
}

// BuildCustomerConfirmation builds the post-checkout thank-you link
// addressed to the customer.
func BuildCustomerConfirmation(customerPhone string, o Order) string {
	var sb strings.Builder
	sb.WriteString("✅ *Order Confirmed!*\n\n")
	sb.WriteString("Thank you for your order!\n\n")
	sb.WriteString(fmt.Sprintf("📋 Order ID: %s\n", o.OrderID))
	sb.WriteString(fmt.Sprintf("💰 Total: %s\n\n", FormatNaira(o.Total)))
	sb.WriteString("Your order is being prepared and will be delivered soon.\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", businessName))
	sb.WriteString(fmt.Sprintf("📞 %s", businessLine))

	return link(NormalizePhone(customerPhone), sb.String())
}

// BuildStatusUpdate builds a short status message for the customer. The
// three known in-flight statuses get their own wording; anything else
// falls back to a generic line rather than failing.
func BuildStatusUpdate(customerPhone, orderID, status string) string {
	var statusMessage string
	switch status {
	case enum.OrderStatusPreparing:
		statusMessage = "👨‍🍳 Your order is being prepared!"
	case enum.OrderStatusReady:
		statusMessage = "✅ Your order is ready for delivery/pickup!"
	case enum.OrderStatusCompleted:
		statusMessage = "🎉 Your order has been delivered! Enjoy your meal!"
	default:
		statusMessage = fmt.Sprintf("📦 Order status updated: %s", status)
	}

	var sb strings.Builder
	sb.WriteString("*Order Update*\n\n")
	sb.WriteString(fmt.Sprintf("📋 Order ID: %s\n\n", orderID))
	sb.WriteString(statusMessage)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", businessName))
	sb.WriteString(fmt.Sprintf("📞 %s", businessLine))

	return link(NormalizePhone(customerPhone), sb.String())
}

// ContactLink builds a general-purpose contact link with optional
// pre-filled text.
func ContactLink(businessPhone, text string) string {
	if text == "" {
		return "https://wa.me/" + businessPhone
	}
	return link(businessPhone, text)
}

func link(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + encodeText(message)
}

// encodeText percent-encodes a message for the wa.me text parameter.
// QueryEscape's "+" for space is not understood by WhatsApp, so spaces
// become %20.
func encodeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// NormalizePhone converts a Nigerian local-format number to international
// digits: a leading 0 becomes the country code, a leading + is dropped,
// and an already-international number is left alone. Bare subscriber
// numbers get the country code prepended.
func NormalizePhone(phone string) string {
	cleaned := cleanPhone(phone)
	switch {
	case strings.HasPrefix(cleaned, "0"):
		return countryPrefix + cleaned[1:]
	case strings.HasPrefix(cleaned, "+"+countryPrefix):
		return cleaned[1:]
	case strings.HasPrefix(cleaned, countryPrefix):
		return cleaned
	default:
		return countryPrefix + cleaned
	}
}

var phonePattern = regexp.MustCompile(`^(\+?234|0)[7-9][0-1]\d{8}$`)

// ValidatePhone reports whether phone is a plausible Nigerian mobile
// number: 080..., 234... or +234... forms.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(cleanPhone(phone))
}

var phoneJunk = regexp.MustCompile(`[\s\-()]`)

func cleanPhone(phone string) string {
	return phoneJunk.ReplaceAllString(phone, "")
}

// FormatNaira renders an amount as ₦ with thousands grouping, e.g.
// ₦12,000. Whole-naira amounts drop the kobo digits.
func FormatNaira(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	out := sign + "₦" + sb.String()
	if fracPart != "00" {
		out += "." + fracPart
	}
	return out
}
