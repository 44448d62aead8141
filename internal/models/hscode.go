package models

import (
	"github.com/go-playground/validator/v10"
)

type HSCodeRequest struct {
	GoodName string `json:"goodName" validate:"required"`
	Token    string `json:"token" validate:"required"`
}

// ClassificationRecord is one (good, code) group of the declaration history.
type ClassificationRecord struct {
	GoodName string `db:"good_name" json:"goodName"`
	HSCode   string `db:"hs_code" json:"hsCode"`
	Count    int64  `db:"use_count" json:"count"`
}

type QueryResult struct {
	Success bool                   `json:"success"`
	Msg     string                 `json:"msg"`
	Expire  string                 `json:"expire,omitempty"`
	Data    []ClassificationRecord `json:"data"`

	// Outcome labels the result for metrics and is not serialized.
	Outcome string `json:"-"`
}

func (r *HSCodeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
