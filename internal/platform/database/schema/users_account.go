package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table            string
	ID               string
	Username         string
	Email            string
	FullName         string
	Password         string
	Role             string
	AvatarID         string
	AvatarURL        string
	CoverImageID     string
	CoverImageURL    string
	RefreshTokenHash string
	CreatedAt        string
	UpdatedAt        string
	DeletedAt        string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:            "users.account",
	ID:               "id",
	Username:         "username",
	Email:            "email",
	FullName:         "fullname",
	Password:         "passwordhash",
	Role:             "role",
	AvatarID:         "avatarid",
	AvatarURL:        "avatarurl",
	CoverImageID:     "coverimageid",
	CoverImageURL:    "coverimageurl",
	RefreshTokenHash: "refreshtokenhash",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
	DeletedAt:        "deletedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.FullName, t.Password, t.Role,
		t.AvatarID, t.AvatarURL, t.CoverImageID, t.CoverImageURL,
		t.RefreshTokenHash, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
