package payment_click_post

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"relay/internal/service/payment"
)

var errMissingAmount = errors.New("amount is required")

func parseForm(form url.Values) (payment.ClickRequest, error) {
	var (
		req payment.ClickRequest
		err error
	)

	if req.ClickTransID, err = requiredInt64(form, "click_trans_id"); err != nil {
		return payment.ClickRequest{}, err
	}
	if req.ServiceID, err = requiredInt64(form, "service_id"); err != nil {
		return payment.ClickRequest{}, err
	}
	if req.ClickPaydocID, err = optionalInt64(form, "click_paydoc_id"); err != nil {
		return payment.ClickRequest{}, err
	}
	if req.MerchantPrepareID, err = optionalInt64(form, "merchant_prepare_id"); err != nil {
		return payment.ClickRequest{}, err
	}

	action, err := requiredInt64(form, "action")
	if err != nil {
		return payment.ClickRequest{}, err
	}
	req.Action = int(action)

	errCode, err := optionalInt64(form, "error")
	if err != nil {
		return payment.ClickRequest{}, err
	}
	if errCode != nil {
		req.Error = int(*errCode)
	}

	req.RawAmount = strings.TrimSpace(form.Get("amount"))
	if req.RawAmount == "" {
		return payment.ClickRequest{}, errMissingAmount
	}
	if req.Amount, err = decimal.NewFromString(req.RawAmount); err != nil {
		return payment.ClickRequest{}, fmt.Errorf("amount: %w", err)
	}

	req.MerchantTransID = strings.TrimSpace(form.Get("merchant_trans_id"))
	req.ErrorNote = form.Get("error_note")
	req.SignTime = form.Get("sign_time")
	req.SignString = form.Get("sign_string")

	return req, nil
}

func requiredInt64(form url.Values, key string) (int64, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func optionalInt64(form url.Values, key string) (*int64, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &v, nil
}
