package user

import "github.com/gatekit/authcore/pkg/errors"

// CheckStatus gates the account after successful credential proof.
// Erased accounts return the generic login-failed code so their prior
// existence is not confirmed; disabled and unconfirmed accounts return
// status-specific codes, acceptable to leak at this point.
func CheckStatus(u User) error {
	if u.ErasedAt != nil {
		return errors.New(errors.ErrCodeLoginFailed, "login failed")
	}

	if !u.IsConfirmed {
		return errors.New(errors.ErrCodeAccountNotConfirmed, "account is not confirmed")
	}

	if u.IsDisabled {
		return errors.New(errors.ErrCodeAccountDisabled, "account is disabled")
	}

	return nil
}
