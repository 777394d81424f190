package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// UserType es una opcion del selector de rol.
type UserType struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// UserTypes son los roles conocidos, con su nombre visible.
var UserTypes = []UserType{
	{Code: RoleUser, Name: "Người dùng"},
	{Code: RoleAdmin, Name: "Quản trị"},
}

type UserForm struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password,omitempty"`
	Phone    *string `json:"phone"`
	Birthday string  `json:"birthday"`
	Avatar   *string `json:"avatar,omitempty"`
	Gender   bool    `json:"gender"`
	Role     string  `json:"role"`
}

type User struct {
	ID int `json:"id"`
	UserForm
}

// Profile es la vista del usuario autenticado.
type Profile struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Birthday  string `json:"birthday,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Gender    *bool  `json:"gender,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
