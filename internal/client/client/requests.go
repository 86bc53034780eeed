package client

import "github.com/dmitrijs2005/trustcart/internal/client/models"

// Upload is one file part of a multipart request.
type Upload struct {
	Filename string
	Content  []byte
}

// SignInResult is the token issued by POST /users/signin. User is set when
// the response embeds the signed-in user.
type SignInResult struct {
	Token string
	User  *models.User
}

type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	URL             string `json:"url,omitempty"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UpdateMeRequest is sent as multipart/form-data; Photo is optional.
type UpdateMeRequest struct {
	Name  string
	Email string
	Photo *Upload
}

// ProductRequest is sent as multipart/form-data. On update a nil ImageCover
// and empty Images leave the stored images untouched.
type ProductRequest struct {
	Title       string
	Description string
	Price       string
	Brand       string
	Category    string
	ImageCover  *Upload
	Images      []Upload
}

type UserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password,omitempty"`
	PasswordConfirm string `json:"passwordConfirm,omitempty"`
	Role            string `json:"role"`
}

type ReviewRequest struct {
	Rating float64 `json:"rating"`
	Review string  `json:"review"`
}
