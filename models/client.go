package models

// Client is an agency client record. Documents snapshot the client fields
// they need at creation time; this table only backs prefill and the client
// list view.
type Client struct {
	Id          uint   `json:"id" gorm:"primaryKey"`
	UserID      string `json:"-" gorm:"index;not null"`
	CompanyName string `json:"company_name" gorm:"not null"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Zip         string `json:"zip"`
	Notes       string `json:"notes"`
}
