package user

// Roles stored on the account row. Admin unlocks the back-office order and
// catalog endpoints.
const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

// PointRate is how much order value earns one loyalty point when an order
// reaches PAID. One point is worth 1 currency unit at checkout.
const PointRate = 10000

type Account struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password,omitempty"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Points    int    `json:"point"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
