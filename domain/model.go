package domain

import (
	"encoding/json"
	"io"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	Student  Role = "student"
	Merchant Role = "merchant"
	Admin    Role = "admin"
)

// DashboardRoute is the default landing route for a role. Unknown roles
// land on home.
func (r Role) DashboardRoute() string {
	switch r {
	case Student:
		return "/student/dashboard"
	case Merchant:
		return "/merchant/dashboard"
	case Admin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}

type Profile struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Email       string             `bson:"email" json:"email"`
	FullName    string             `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	AvatarURL   string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Role        Role               `bson:"role" json:"role"`
	Preferences map[string]string  `bson:"preferences,omitempty" json:"preferences,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

type Credentials struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
	Role     Role               `bson:"role" json:"role"`
	Verified bool               `bson:"verified" json:"verified"`
}

type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required,fullName"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role" validate:"required,oneof=student merchant admin"`
}

type RegisterValidation struct {
	UserToken string `json:"user_token"`
	MailToken string `json:"mail_token"`
}

type ResendVerificationRequest struct {
	UserToken string `json:"user_token"`
	UserMail  string `json:"user_mail"`
}

type RecoverPasswordRequest struct {
	UserID      string `json:"user_id"`
	NewPassword string `json:"new_password"`
	RepeatedNew string `json:"repeated_new"`
}

type PasswordChange struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

func (request *RegisterRequest) Validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("fullName", fullNameField)
	if err != nil {
		return err
	}

	return validate.Struct(request)
}

// Allows letters, spaces, dots and hyphens, 2-60 characters
func fullNameField(fl validator.FieldLevel) bool {
	re := regexp.MustCompile(`^[a-zA-Z][a-zA-Z .'-]{1,59}$`)
	return re.MatchString(fl.Field().String())
}

func (request *RegisterRequest) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(request)
}

func (profile *Profile) ToJSON(w io.Writer) error {
	e := json.NewEncoder(w)
	return e.Encode(profile)
}

func (profile *Profile) FromJSON(r io.Reader) error {
	d := json.NewDecoder(r)
	return d.Decode(profile)
}
