package domain

type Role int64

const (
	RoleCustomer Role = 1
	RoleWorker   Role = 2
	RoleAdmin    Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleWorker:
		return "worker"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

type User struct {
	ID           int64
	FirstName    string
	LastName     string
	PhoneNumber  string
	Email        string
	PasswordHash string
	RoleID       Role
}
