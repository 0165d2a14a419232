package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Property - a listed real-estate object.
type Property struct {
	ID           int64
	Title        string
	Description  string
	Price        float64
	Address      string
	Type         PropertyType
	Bedrooms     int
	Bathrooms    int
	Area         float64
	Status       PropertyStatus
	ImageURL     string
	Category     string
	RegisteredAt time.Time
	OwnerID      *int64

	// Filled only when the property is loaded together with its associations.
	Links *PropertyLinks
}

// PropertyLinks - the property side of every association it takes part in.
type PropertyLinks struct {
	AssignedConsultantIDs   []int64
	HistoricalConsultantIDs []int64
	CommissionConsultantIDs []int64
	InterestedUserIDs       []int64
	TransactedUserIDs       []int64
	RelatedPropertyIDs      []int64
	ContactIDs              []int64
}

// Members returns the ids held for the given family.
func (l *PropertyLinks) Members(f AssociationFamily) []int64 {
	if l == nil {
		return nil
	}
	switch f {
	case FamilyAssigned:
		return l.AssignedConsultantIDs
	case FamilyHistorical:
		return l.HistoricalConsultantIDs
	case FamilyCommission:
		return l.CommissionConsultantIDs
	case FamilyInterested:
		return l.InterestedUserIDs
	case FamilyTransacted:
		return l.TransactedUserIDs
	case FamilyRelated:
		return l.RelatedPropertyIDs
	}
	return nil
}

// SetMembers replaces the ids held for the given family.
func (l *PropertyLinks) SetMembers(f AssociationFamily, ids []int64) {
	switch f {
	case FamilyAssigned:
		l.AssignedConsultantIDs = ids
	case FamilyHistorical:
		l.HistoricalConsultantIDs = ids
	case FamilyCommission:
		l.CommissionConsultantIDs = ids
	case FamilyInterested:
		l.InterestedUserIDs = ids
	case FamilyTransacted:
		l.TransactedUserIDs = ids
	case FamilyRelated:
		l.RelatedPropertyIDs = ids
	}
}

// PropertyInput - complete desired state of a property for create and update.
type PropertyInput struct {
	Title       string
	Description string
	Price       float64
	Address     string
	Type        PropertyType
	Bedrooms    int
	Bathrooms   int
	Area        float64
	Status      PropertyStatus
	ImageURL    string
	Category    string
	OwnerID     *int64

	// Complete assigned-consultant list; on update it replaces the current set.
	ConsultantIDs []int64
}

// Apply overwrites every mutable field. Identity and RegisteredAt are kept.
func (p *Property) Apply(in PropertyInput) {
	p.Title = in.Title
	p.Description = in.Description
	p.Price = in.Price
	p.Address = in.Address
	p.Type = in.Type
	p.Bedrooms = in.Bedrooms
	p.Bathrooms = in.Bathrooms
	p.Area = in.Area
	p.Status = in.Status
	p.ImageURL = in.ImageURL
	p.Category = in.Category
	p.OwnerID = in.OwnerID
}

// Consultant - a real-estate agent.
type Consultant struct {
	ID    int64
	Name  string
	Email string
	Phone string

	Links *ConsultantLinks
}

// ConsultantLinks - inverse side of the three property/consultant families.
type ConsultantLinks struct {
	AssignedPropertyIDs   []int64
	HistoricalPropertyIDs []int64
	CommissionPropertyIDs []int64
}

func (l *ConsultantLinks) Properties(f AssociationFamily) []int64 {
	if l == nil {
		return nil
	}
	switch f {
	case FamilyAssigned:
		return l.AssignedPropertyIDs
	case FamilyHistorical:
		return l.HistoricalPropertyIDs
	case FamilyCommission:
		return l.CommissionPropertyIDs
	}
	return nil
}

type ConsultantInput struct {
	Name  string
	Email string
	Phone string
}

func (c *Consultant) Apply(in ConsultantInput) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
}

// User - an end user of the platform.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	NationalID   string
	ConsultantID *int64

	Links *UserLinks
}

// UserLinks - inverse side of the interested and transacted families.
type UserLinks struct {
	InterestedPropertyIDs []int64
	TransactedPropertyIDs []int64
}

func (l *UserLinks) Properties(f AssociationFamily) []int64 {
	if l == nil {
		return nil
	}
	switch f {
	case FamilyInterested:
		return l.InterestedPropertyIDs
	case FamilyTransacted:
		return l.TransactedPropertyIDs
	}
	return nil
}

type UserInput struct {
	Email        string
	Password     string
	Name         string
	Phone        string
	NationalID   string
	ConsultantID *int64
}

// Apply overwrites every mutable field; the password is stored hashed.
func (u *User) Apply(in UserInput) error {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return err
	}
	u.Email = in.Email
	u.PasswordHash = hash
	u.Name = in.Name
	u.Phone = in.Phone
	u.NationalID = in.NationalID
	u.ConsultantID = in.ConsultantID
	return nil
}

// HashPassword hashes a plaintext credential with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares the plaintext credential with the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Contact - an inquiry sent through the platform.
type Contact struct {
	ID           int64
	Email        string
	Message      string
	Status       ContactStatus
	CreatedAt    time.Time
	UserID       *int64
	PropertyID   *int64
	ConsultantID *int64
}

type ContactInput struct {
	Email        string
	Message      string
	Status       ContactStatus
	UserID       *int64
	PropertyID   *int64
	ConsultantID *int64
}

// Apply overwrites every mutable field. A missing status falls back to PENDING.
func (c *Contact) Apply(in ContactInput) {
	c.Email = in.Email
	c.Message = in.Message
	c.Status = in.Status
	if c.Status == "" {
		c.Status = ContactStatusPending
	}
	c.UserID = in.UserID
	c.PropertyID = in.PropertyID
	c.ConsultantID = in.ConsultantID
}
