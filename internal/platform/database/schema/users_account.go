package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                string
	ID                   string
	Username             string
	Email                string
	Role                 string
	Bio                  string
	FirstName            string
	LastName             string
	ConfirmationCodeHash string
	CodeIssuedAt         string
	CreatedAt            string
	UpdatedAt            string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                "users.account",
	ID:                   "id",
	Username:             "username",
	Email:                "email",
	Role:                 "role",
	Bio:                  "bio",
	FirstName:            "firstname",
	LastName:             "lastname",
	ConfirmationCodeHash: "confirmationcodehash",
	CodeIssuedAt:         "codeissuedat",
	CreatedAt:            "createdat",
	UpdatedAt:            "updatedat",
}
