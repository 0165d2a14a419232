package rest

import (
	"strings"
	"time"

	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
)

// PageResponse - one page of a listing.
type PageResponse[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"totalCount"`
	TotalPages int   `json:"totalPages"`
}

func toPageResponse[E any, T any](page *domain.Page[E], mapFn func(E) T) PageResponse[T] {
	return PageResponse[T]{
		Items:      mapSlice(page.Items, mapFn),
		Page:       page.Page,
		Size:       page.Size,
		TotalCount: page.TotalCount,
		TotalPages: page.TotalPages,
	}
}

func mapSlice[E any, T any](items []E, mapFn func(E) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = mapFn(item)
	}
	return out
}

// AssociationRequest - body of POST .../{family}.
type AssociationRequest struct {
	ID int64 `json:"id"`
}

// --- Property ---

type PropertyRequest struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Address       string  `json:"address"`
	Type          string  `json:"type"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	Area          float64 `json:"area"`
	Status        string  `json:"status"`
	ImageURL      string  `json:"imageUrl"`
	Category      string  `json:"category"`
	OwnerID       *int64  `json:"ownerId"`
	ConsultantIDs []int64 `json:"consultantIds"`
}

func (r PropertyRequest) toInput() domain.PropertyInput {
	return domain.PropertyInput{
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		Address:       r.Address,
		Type:          domain.PropertyType(strings.ToUpper(strings.TrimSpace(r.Type))),
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Area:          r.Area,
		Status:        domain.PropertyStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		ImageURL:      r.ImageURL,
		Category:      r.Category,
		OwnerID:       r.OwnerID,
		ConsultantIDs: r.ConsultantIDs,
	}
}

type PropertyLinksResponse struct {
	AssignedConsultantIDs   []int64 `json:"assignedConsultantIds"`
	HistoricalConsultantIDs []int64 `json:"historicalConsultantIds"`
	CommissionConsultantIDs []int64 `json:"commissionConsultantIds"`
	InterestedUserIDs       []int64 `json:"interestedUserIds"`
	TransactedUserIDs       []int64 `json:"transactedUserIds"`
	RelatedPropertyIDs      []int64 `json:"relatedPropertyIds"`
	ContactIDs              []int64 `json:"contactIds"`
}

type PropertyResponse struct {
	ID                int64                  `json:"id"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Price             float64                `json:"price"`
	Address           string                 `json:"address"`
	Type              string                 `json:"type"`
	TypeDescription   string                 `json:"typeDescription"`
	Bedrooms          int                    `json:"bedrooms"`
	Bathrooms         int                    `json:"bathrooms"`
	Area              float64                `json:"area"`
	Status            string                 `json:"status"`
	StatusDescription string                 `json:"statusDescription"`
	ImageURL          string                 `json:"imageUrl"`
	Category          string                 `json:"category"`
	RegisteredAt      time.Time              `json:"registeredAt"`
	OwnerID           *int64                 `json:"ownerId"`
	Links             *PropertyLinksResponse `json:"links,omitempty"`
}

func toPropertyResponse(p domain.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:                p.ID,
		Title:             p.Title,
		Description:       p.Description,
		Price:             p.Price,
		Address:           p.Address,
		Type:              string(p.Type),
		TypeDescription:   p.Type.Description(),
		Bedrooms:          p.Bedrooms,
		Bathrooms:         p.Bathrooms,
		Area:              p.Area,
		Status:            string(p.Status),
		StatusDescription: p.Status.Description(),
		ImageURL:          p.ImageURL,
		Category:          p.Category,
		RegisteredAt:      p.RegisteredAt,
		OwnerID:           p.OwnerID,
	}
	if p.Links != nil {
		resp.Links = &PropertyLinksResponse{
			AssignedConsultantIDs:   ids(p.Links.AssignedConsultantIDs),
			HistoricalConsultantIDs: ids(p.Links.HistoricalConsultantIDs),
			CommissionConsultantIDs: ids(p.Links.CommissionConsultantIDs),
			InterestedUserIDs:       ids(p.Links.InterestedUserIDs),
			TransactedUserIDs:       ids(p.Links.TransactedUserIDs),
			RelatedPropertyIDs:      ids(p.Links.RelatedPropertyIDs),
			ContactIDs:              ids(p.Links.ContactIDs),
		}
	}
	return resp
}

// ids renders a missing id list as [] rather than null.
func ids(in []int64) []int64 {
	if in == nil {
		return []int64{}
	}
	return in
}

// --- Consultant ---

type ConsultantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r ConsultantRequest) toInput() domain.ConsultantInput {
	return domain.ConsultantInput{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

type ConsultantLinksResponse struct {
	AssignedPropertyIDs   []int64 `json:"assignedPropertyIds"`
	HistoricalPropertyIDs []int64 `json:"historicalPropertyIds"`
	CommissionPropertyIDs []int64 `json:"commissionPropertyIds"`
}

type ConsultantResponse struct {
	ID    int64                    `json:"id"`
	Name  string                   `json:"name"`
	Email string                   `json:"email"`
	Phone string                   `json:"phone"`
	Links *ConsultantLinksResponse `json:"links,omitempty"`
}

func toConsultantResponse(c domain.Consultant) ConsultantResponse {
	resp := ConsultantResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
	if c.Links != nil {
		resp.Links = &ConsultantLinksResponse{
			AssignedPropertyIDs:   ids(c.Links.AssignedPropertyIDs),
			HistoricalPropertyIDs: ids(c.Links.HistoricalPropertyIDs),
			CommissionPropertyIDs: ids(c.Links.CommissionPropertyIDs),
		}
	}
	return resp
}

// --- User ---

type UserRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	NationalID   string `json:"nationalId"`
	ConsultantID *int64 `json:"consultantId"`
}

func (r UserRequest) toInput() domain.UserInput {
	return domain.UserInput{
		Email:        r.Email,
		Password:     r.Password,
		Name:         r.Name,
		Phone:        r.Phone,
		NationalID:   r.NationalID,
		ConsultantID: r.ConsultantID,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserLinksResponse struct {
	InterestedPropertyIDs []int64 `json:"interestedPropertyIds"`
	TransactedPropertyIDs []int64 `json:"transactedPropertyIds"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID           int64              `json:"id"`
	Email        string             `json:"email"`
	Name         string             `json:"name"`
	Phone        string             `json:"phone"`
	NationalID   string             `json:"nationalId"`
	ConsultantID *int64             `json:"consultantId"`
	Links        *UserLinksResponse `json:"links,omitempty"`
}

func toUserResponse(u domain.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		NationalID:   u.NationalID,
		ConsultantID: u.ConsultantID,
	}
	if u.Links != nil {
		resp.Links = &UserLinksResponse{
			InterestedPropertyIDs: ids(u.Links.InterestedPropertyIDs),
			TransactedPropertyIDs: ids(u.Links.TransactedPropertyIDs),
		}
	}
	return resp
}

// --- Contact ---

type ContactRequest struct {
	Email        string `json:"email"`
	Message      string `json:"message"`
	Status       string `json:"status"`
	UserID       *int64 `json:"userId"`
	PropertyID   *int64 `json:"propertyId"`
	ConsultantID *int64 `json:"consultantId"`
}

func (r ContactRequest) toInput() domain.ContactInput {
	return domain.ContactInput{
		Email:        r.Email,
		Message:      r.Message,
		Status:       domain.ContactStatus(strings.ToUpper(strings.TrimSpace(r.Status))),
		UserID:       r.UserID,
		PropertyID:   r.PropertyID,
		ConsultantID: r.ConsultantID,
	}
}

type ContactResponse struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UserID       *int64    `json:"userId"`
	PropertyID   *int64    `json:"propertyId"`
	ConsultantID *int64    `json:"consultantId"`
}

func toContactResponse(c domain.Contact) ContactResponse {
	return ContactResponse{
		ID:           c.ID,
		Email:        c.Email,
		Message:      c.Message,
		Status:       string(c.Status),
		CreatedAt:    c.CreatedAt,
		UserID:       c.UserID,
		PropertyID:   c.PropertyID,
		ConsultantID: c.ConsultantID,
	}
}
