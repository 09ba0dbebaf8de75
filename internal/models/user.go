package models

// Address is the delivery address embedded in the user record.
type Address struct {
	Line    string `json:"line"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// User represents a storefront account. Email is stored case-folded and is
// the unique login identifier; phone is indexed so OTP login can resolve
// the account. Phone stays non-unique because password signups may leave it
// empty.
type User struct {
	BaseModel
	Name         string  `json:"name"`
	Email        string  `gorm:"uniqueIndex" json:"email"`
	PasswordHash string  `json:"-"`
	Phone        string  `gorm:"index" json:"phone"`
	Role         string  `gorm:"default:customer" json:"role"`
	IsAdmin      bool    `json:"is_admin"`
	Address      Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Orders       []Order `json:"orders,omitempty"`
}

// PublicUser is the shape returned by auth and profile endpoints.
type PublicUser struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Role    string  `json:"role"`
	IsAdmin bool    `json:"is_admin"`
	Address Address `json:"address"`
}

// Public strips credential fields for API responses.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:      u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		Phone:   u.Phone,
		Role:    u.Role,
		IsAdmin: u.IsAdmin,
		Address: u.Address,
	}
}
