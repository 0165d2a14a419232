package domain

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	nameRegex       = regexp.MustCompile(`^[\p{L} ]+$`)
	phoneRegex      = regexp.MustCompile(`^\d{10,11}$`)
	nationalIDRegex = regexp.MustCompile(`^\d{11}$`)
)

// fieldChecker collects the first violation; later checks are skipped.
type fieldChecker struct {
	err error
}

func (c *fieldChecker) fail(format string, args ...interface{}) {
	if c.err == nil {
		c.err = NewValidationError(fmt.Sprintf(format, args...))
	}
}

func (c *fieldChecker) required(field, value string) bool {
	if c.err != nil {
		return false
	}
	if strings.TrimSpace(value) == "" {
		c.fail("%s is required", field)
		return false
	}
	return true
}

func (c *fieldChecker) length(field, value string, min, max int) {
	if c.err != nil {
		return
	}
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		c.fail("%s must be between %d and %d characters", field, min, max)
	}
}

func (c *fieldChecker) maxLength(field, value string, max int) {
	if c.err != nil {
		return
	}
	if utf8.RuneCountInString(value) > max {
		c.fail("%s must be at most %d characters", field, max)
	}
}

func (c *fieldChecker) match(field, value string, re *regexp.Regexp, msg string) {
	if c.err != nil {
		return
	}
	if !re.MatchString(value) {
		c.fail("%s %s", field, msg)
	}
}

func (c *fieldChecker) email(field, value string) {
	if c.err != nil {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value || !strings.Contains(value[strings.LastIndex(value, "@")+1:], ".") {
		c.fail("%s must be a valid email address", field)
	}
}

func (c *fieldChecker) url(field, value string) {
	if c.err != nil {
		return
	}
	u, err := url.ParseRequestURI(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.fail("%s must be a valid URL", field)
	}
}

func (c *fieldChecker) positiveID(field string, id *int64) {
	if c.err != nil || id == nil {
		return
	}
	if *id <= 0 {
		c.fail("%s must be a positive identifier", field)
	}
}

// Validate checks the property payload field rules.
func (in PropertyInput) Validate() error {
	c := &fieldChecker{}
	if c.required("title", in.Title) {
		c.length("title", in.Title, 2, 255)
	}
	if c.required("description", in.Description) {
		c.length("description", in.Description, 2, 1000)
	}
	if c.err == nil && in.Price <= 0 {
		c.fail("price must be positive")
	}
	if c.required("address", in.Address) {
		c.length("address", in.Address, 2, 255)
	}
	if c.err == nil && !in.Type.Valid() {
		c.fail("type must be one of HOUSE, APARTMENT, LAND, COMMERCIAL")
	}
	if c.err == nil && in.Bedrooms < 0 {
		c.fail("bedrooms must not be negative")
	}
	if c.err == nil && in.Bathrooms < 0 {
		c.fail("bathrooms must not be negative")
	}
	if c.err == nil && in.Area <= 0 {
		c.fail("area must be positive")
	}
	if c.err == nil && !in.Status.Valid() {
		c.fail("status must be one of AVAILABLE, SOLD, RENTED, PENDING")
	}
	if in.ImageURL != "" {
		c.maxLength("imageUrl", in.ImageURL, 255)
		c.url("imageUrl", in.ImageURL)
	}
	if c.required("category", in.Category) {
		c.length("category", in.Category, 2, 50)
	}
	c.positiveID("ownerId", in.OwnerID)
	for _, id := range in.ConsultantIDs {
		id := id
		c.positiveID("consultantIds", &id)
	}
	return c.err
}

// Validate checks the consultant payload field rules.
func (in ConsultantInput) Validate() error {
	c := &fieldChecker{}
	if c.required("name", in.Name) {
		c.length("name", in.Name, 2, 100)
		c.match("name", in.Name, nameRegex, "must contain only letters and spaces")
	}
	if c.required("email", in.Email) {
		c.maxLength("email", in.Email, 255)
		c.email("email", in.Email)
	}
	if in.Phone != "" {
		c.match("phone", in.Phone, phoneRegex, "must have 10 or 11 digits")
	}
	return c.err
}

// Validate checks the user payload field rules.
func (in UserInput) Validate() error {
	c := &fieldChecker{}
	if c.required("email", in.Email) {
		c.maxLength("email", in.Email, 255)
		c.email("email", in.Email)
	}
	if c.required("password", in.Password) {
		c.length("password", in.Password, 6, 255)
	}
	if c.required("name", in.Name) {
		c.length("name", in.Name, 2, 100)
		c.match("name", in.Name, nameRegex, "must contain only letters and spaces")
	}
	if c.required("phone", in.Phone) {
		c.match("phone", in.Phone, phoneRegex, "must have 10 or 11 digits")
	}
	if c.required("nationalId", in.NationalID) {
		c.match("nationalId", in.NationalID, nationalIDRegex, "must have exactly 11 digits")
	}
	c.positiveID("consultantId", in.ConsultantID)
	return c.err
}

// Validate checks the contact payload field rules.
func (in ContactInput) Validate() error {
	c := &fieldChecker{}
	if c.required("email", in.Email) {
		c.maxLength("email", in.Email, 255)
		c.email("email", in.Email)
	}
	if c.required("message", in.Message) {
		c.length("message", in.Message, 2, 1000)
	}
	if c.err == nil && in.Status != "" && !in.Status.Valid() {
		c.fail("status must be one of PENDING, IN_PROGRESS, ANSWERED, CLOSED")
	}
	c.positiveID("userId", in.UserID)
	c.positiveID("propertyId", in.PropertyID)
	c.positiveID("consultantId", in.ConsultantID)
	return c.err
}
