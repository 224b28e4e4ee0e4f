package models

import (
	"strings"
	"time"
)

type WorkerStatus string

const (
	StatusPending   WorkerStatus = "pending"
	StatusApproved  WorkerStatus = "approved"
	StatusRejected  WorkerStatus = "rejected"
	StatusSuspended WorkerStatus = "suspended"
)

// IsModerationTarget reports whether status may be assigned by a moderator.
func (s WorkerStatus) IsModerationTarget() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

type Category string

const (
	CategoryCasa     Category = "casa"
	CategoryCuidados Category = "cuidados"
	CategoryAulas    Category = "aulas"
	CategoryBeleza   Category = "beleza"
	CategoryOutros   Category = "outros"
	CategoryEsportes Category = "esportes"
	CategoryPets     Category = "pets"
)

const (
	categoryValidator   = "oneof=casa cuidados aulas beleza outros esportes pets"
	subServiceValidator = "oneof=limpeza passar-roupa faz-tudo mudanca encanador pintor eletricista eletrodomesticos reformas jardinagem chaveiro climatizacao"
)

func IsValidCategory(c string) bool {
	return Validate.Var(c, "required,"+categoryValidator) == nil
}

func IsValidSubService(s string) bool {
	return Validate.Var(s, "required,"+subServiceValidator) == nil
}

type PriceRange struct {
	Min  float64 `bson:"min" json:"min" validate:"gte=0"`
	Max  float64 `bson:"max" json:"max" validate:"gtefield=Min"`
	Unit string  `bson:"unit" json:"unit" validate:"oneof=hora servico dia"`
}

// WeeklyAvailability is the worker's declared schedule. Times are "HH:MM".
type WeeklyAvailability struct {
	Monday    bool   `bson:"monday" json:"monday"`
	Tuesday   bool   `bson:"tuesday" json:"tuesday"`
	Wednesday bool   `bson:"wednesday" json:"wednesday"`
	Thursday  bool   `bson:"thursday" json:"thursday"`
	Friday    bool   `bson:"friday" json:"friday"`
	Saturday  bool   `bson:"saturday" json:"saturday"`
	Sunday    bool   `bson:"sunday" json:"sunday"`
	StartTime string `bson:"start_time,omitempty" json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime   string `bson:"end_time,omitempty" json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
}

type WorkerStats struct {
	Views    int64 `bson:"views" json:"views"`
	Contacts int64 `bson:"contacts" json:"contacts"`
	Hires    int64 `bson:"hires" json:"hires"`
}

type StatField string

const (
	StatViews    StatField = "views"
	StatContacts StatField = "contacts"
)

type Worker struct {
	UserBase     `bson:",inline"`
	CompanyName  string              `bson:"company_name,omitempty" json:"companyName,omitempty"`
	TaxID        string              `bson:"tax_id,omitempty" json:"taxId,omitempty"`
	Description  string              `bson:"description" json:"description"`
	Category     Category            `bson:"category" json:"category"`
	SubServices  []string            `bson:"sub_services" json:"subServices"`
	Status       WorkerStatus        `bson:"status" json:"status"`
	Verified     bool                `bson:"verified" json:"verified"`
	Available    bool                `bson:"available" json:"available"`
	Rating       float64             `bson:"rating" json:"rating"`
	ReviewCount  int                 `bson:"review_count" json:"reviewCount"`
	PriceRange   *PriceRange         `bson:"price_range,omitempty" json:"priceRange,omitempty"`
	Availability *WeeklyAvailability `bson:"availability,omitempty" json:"availabilitySchedule,omitempty"`
	Portfolio    []string            `bson:"portfolio" json:"portfolio"`
	Stats        WorkerStats         `bson:"stats" json:"stats"`
}

type CreateWorkerInput struct {
	UID          string              `json:"uid" validate:"required"`
	Email        string              `json:"email" validate:"required,email"`
	Name         string              `json:"name" validate:"required"`
	Phone        string              `json:"phone"`
	PhotoURL     string              `json:"photoURL"`
	CompanyName  string              `json:"companyName"`
	TaxID        string              `json:"taxId"`
	Description  string              `json:"description" validate:"required"`
	Category     Category            `json:"category" validate:"required,oneof=casa cuidados aulas beleza outros esportes pets"`
	SubServices  []string            `json:"subServices" validate:"omitempty,dive,oneof=limpeza passar-roupa faz-tudo mudanca encanador pintor eletricista eletrodomesticos reformas jardinagem chaveiro climatizacao"`
	PriceRange   *PriceRange         `json:"priceRange" validate:"omitempty"`
	Availability *WeeklyAvailability `json:"availabilitySchedule" validate:"omitempty"`
	Location     *Location           `json:"location" validate:"omitempty"`
}

// Normalize trims the free-text fields so that whitespace-only input fails
// validation. Emails are stored lower-case.
func (in *CreateWorkerInput) Normalize() {
	in.UID = strings.TrimSpace(in.UID)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = Category(strings.TrimSpace(string(in.Category)))
}

// NewWorker builds a freshly registered worker. Moderation and engagement
// fields always start from their initial values.
func NewWorker(in CreateWorkerInput, now time.Time) *Worker {
	subServices := in.SubServices
	if subServices == nil {
		subServices = []string{}
	}
	return &Worker{
		UserBase: UserBase{
			UID:       in.UID,
			Email:     in.Email,
			Name:      in.Name,
			Phone:     in.Phone,
			PhotoURL:  in.PhotoURL,
			UserType:  UserTypeWorker,
			Location:  in.Location,
			CreatedAt: now,
			UpdatedAt: now,
		},
		CompanyName:  in.CompanyName,
		TaxID:        in.TaxID,
		Description:  in.Description,
		Category:     in.Category,
		SubServices:  subServices,
		Status:       StatusPending,
		Verified:     false,
		Available:    true,
		Rating:       0,
		ReviewCount:  0,
		PriceRange:   in.PriceRange,
		Availability: in.Availability,
		Portfolio:    []string{},
		Stats:        WorkerStats{},
	}
}

// WorkerPatch lists the profile fields reachable through a partial update.
// Moderation state, ratings and counters are not patchable.
type WorkerPatch struct {
	Name         *string             `json:"name" validate:"omitempty,min=1"`
	Phone        *string             `json:"phone"`
	PhotoURL     *string             `json:"photoURL"`
	Location     *Location           `json:"location" validate:"omitempty"`
	CompanyName  *string             `json:"companyName"`
	Description  *string             `json:"description" validate:"omitempty,min=1"`
	SubServices  []string            `json:"subServices" validate:"omitempty,dive,oneof=limpeza passar-roupa faz-tudo mudanca encanador pintor eletricista eletrodomesticos reformas jardinagem chaveiro climatizacao"`
	Category     *Category           `json:"category" validate:"omitempty,oneof=casa cuidados aulas beleza outros esportes pets"`
	Available    *bool               `json:"available"`
	PriceRange   *PriceRange         `json:"priceRange" validate:"omitempty"`
	Availability *WeeklyAvailability `json:"availabilitySchedule" validate:"omitempty"`
	Portfolio    []string            `json:"portfolio"`
}

// Normalize trims the fields that creation requires to be non-empty.
func (p *WorkerPatch) Normalize() {
	if p == nil {
		return
	}
	trimPtr(p.Name)
	trimPtr(p.Description)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func (p *WorkerPatch) IsEmpty() bool {
	return p == nil || len(p.SetFields()) == 0
}

// SetFields returns the bson field paths written by the patch.
func (p *WorkerPatch) SetFields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Phone != nil {
		fields["phone"] = *p.Phone
	}
	if p.PhotoURL != nil {
		fields["photo_url"] = *p.PhotoURL
	}
	if p.Location != nil {
		fields["location"] = p.Location
	}
	if p.CompanyName != nil {
		fields["company_name"] = *p.CompanyName
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.SubServices != nil {
		fields["sub_services"] = p.SubServices
	}
	if p.Category != nil {
		fields["category"] = *p.Category
	}
	if p.Available != nil {
		fields["available"] = *p.Available
	}
	if p.PriceRange != nil {
		fields["price_range"] = p.PriceRange
	}
	if p.Availability != nil {
		fields["availability"] = p.Availability
	}
	if p.Portfolio != nil {
		fields["portfolio"] = p.Portfolio
	}
	return fields
}

func (p *WorkerPatch) ApplyTo(w *Worker) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Phone != nil {
		w.Phone = *p.Phone
	}
	if p.PhotoURL != nil {
		w.PhotoURL = *p.PhotoURL
	}
	if p.Location != nil {
		loc := *p.Location
		w.Location = &loc
	}
	if p.CompanyName != nil {
		w.CompanyName = *p.CompanyName
	}
	if p.Description != nil {
		w.Description = *p.Description
	}
	if p.SubServices != nil {
		w.SubServices = append([]string{}, p.SubServices...)
	}
	if p.Category != nil {
		w.Category = *p.Category
	}
	if p.Available != nil {
		w.Available = *p.Available
	}
	if p.PriceRange != nil {
		pr := *p.PriceRange
		w.PriceRange = &pr
	}
	if p.Availability != nil {
		av := *p.Availability
		w.Availability = &av
	}
	if p.Portfolio != nil {
		w.Portfolio = append([]string{}, p.Portfolio...)
	}
}
