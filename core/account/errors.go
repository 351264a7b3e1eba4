package account

import "errors"

var (
	ErrNotAccountOwner          = errors.New("account: caller lacks the account owner role")
	ErrNotAnAuthorizedDepositor = errors.New("account: caller is not an authorized depositor for this resource")
	ErrNoVaultForResource       = errors.New("account: account holds no vault for this resource")
)
