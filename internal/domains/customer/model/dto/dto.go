package dto

import (
	"net/http"
	"net/url"

	bookingModel "pmsconsole/internal/domains/booking/model"
	"pmsconsole/internal/domains/customer/model"
	gDto "pmsconsole/shared/dto"
	"pmsconsole/shared/validator"
)

// Form is the customer form. It is also the body of create and update calls,
// and the nested customer of a new booking.
type Form struct {
	Name          string `form:"name"            json:"name"                      validate:"required,max=100"`
	Email         string `form:"email"           json:"email"                     validate:"required,email,max=100"`
	Phone         string `form:"phone"           json:"phone,omitempty"           validate:"omitempty,max=20"`
	Address       string `form:"address"         json:"address,omitempty"         validate:"omitempty,max=255"`
	IDProofType   string `form:"id_proof_type"   json:"id_proof_type,omitempty"   validate:"omitempty,max=50"`
	IDProofNumber string `form:"id_proof_number" json:"id_proof_number,omitempty" validate:"omitempty,max=50"`
}

// NewForm fills the edit form from an existing customer.
func NewForm(c model.Customer) Form {
	return Form{
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		IDProofType:   c.IDProofType,
		IDProofNumber: c.IDProofNumber,
	}
}

func (f *Form) FromForm(r *http.Request) validator.FieldErrors {
	reader := gDto.NewFormReader(r)
	f.Read(reader, "")

	return reader.Errors()
}

// Read fills the form from fields named prefix + field.
func (f *Form) Read(reader *gDto.FormReader, prefix string) {
	f.Name = reader.String(prefix + "name")
	f.Email = reader.String(prefix + "email")
	f.Phone = reader.String(prefix + "phone")
	f.Address = reader.String(prefix + "address")
	f.IDProofType = reader.String(prefix + "id_proof_type")
	f.IDProofNumber = reader.String(prefix + "id_proof_number")
}

func (Form) Messages() map[string]string {
	return map[string]string{
		"email.email": "Enter a valid email address",
	}
}

type ListRequest struct {
	Search     string
	Pagination gDto.Pagination
}

func (l *ListRequest) FromRequest(r *http.Request) {
	l.Pagination.FromRequest(r)
	l.Search = r.URL.Query().Get(model.FieldSearch)
}

// Values is the backend query of the list call.
func (l ListRequest) Values() url.Values {
	values := url.Values{}
	l.Pagination.Encode(values)

	if l.Search != "" {
		values.Set(model.FieldSearch, l.Search)
	}

	return values
}

// Filters are the page URL parameters kept across pager links.
func (l ListRequest) Filters() url.Values {
	return url.Values{model.FieldSearch: {l.Search}}
}

type ListResponse struct {
	Customers []model.Customer
	Page      gDto.PageMeta
}

// DetailResponse is a customer with the booking history fetched alongside it.
type DetailResponse struct {
	Customer model.Customer
	Bookings []bookingModel.Booking
}
