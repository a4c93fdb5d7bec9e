package payment

import "errors"

var (
	ErrMissingOrderID       = errors.New("merchant_trans_id is required")
	ErrMissingPrepareID     = errors.New("merchant_prepare_id is required to complete a payment")
	ErrNegativeAmount       = errors.New("amount must not be negative")
	ErrMissingSignature     = errors.New("sign_string is required")
	ErrMissingTransactionID = errors.New("click_trans_id is required")
)
