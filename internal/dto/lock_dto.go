package dto

type SetLockPasswordRequest struct {
	Password string `json:"password" validate:"required,min=4,max=64"`
}

type VerifyLockPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type VerifyLockPasswordResponse struct {
	Success bool `json:"success"`
}

type LockSetupResponse struct {
	HasPassword bool `json:"hasPassword"`
}
