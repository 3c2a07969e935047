package models

import usermodels "ton-arcade-backend/internal/features/user/models"

// TelegramLoginRequest is the field set posted by the Telegram login widget.
// hash is the hex HMAC the widget computed over the remaining fields.
type TelegramLoginRequest struct {
	ID        int64  `json:"id" binding:"required" example:"123456789"`
	FirstName string `json:"first_name" example:"John"`
	LastName  string `json:"last_name" example:"Doe"`
	Username  string `json:"username" example:"johndoe"`
	PhotoURL  string `json:"photo_url" example:"https://t.me/i/userpic/320/johndoe.jpg"`
	AuthDate  int64  `json:"auth_date" binding:"required" example:"1735689600"`
	Hash      string `json:"hash" binding:"required"`
}

func (r *TelegramLoginRequest) Profile() usermodels.Profile {
	return usermodels.Profile{
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		PhotoURL:  r.PhotoURL,
	}
}

// WebAppLoginRequest carries raw Telegram Mini App init data.
type WebAppLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

// WalletLoginRequest is the canonical dual-encoding wallet body: the raw
// workchain:hash form and the user-friendly base64 form.
type WalletLoginRequest struct {
	WalletRaw          string `json:"wallet_raw" binding:"required" example:"0:0000000000000000000000000000000000000000000000000000000000000000"`
	WalletUserFriendly string `json:"wallet_user_friendly" binding:"required" example:"EQAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAM9c"`
}

type LoginResponse struct {
	Message string           `json:"message"`
	User    *usermodels.User `json:"user"`
}
