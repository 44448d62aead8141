package app

import (
	"fmt"

	"github.com/shrimpsizemoose/precate/internal/models"
)

const (
	OutcomeFound        = "found"
	OutcomeNoData       = "no_data"
	OutcomeInvalidToken = "invalid_token"
	OutcomeUnavailable  = "unavailable"
	OutcomeBadRequest   = "bad_request"
)

const (
	msgInvalidToken = "token '%s' not found or expired, please reapply"
	msgNoData       = "no declaration data found for good name '%s'"
	msgFound        = "retrieved HS code(s) for good '%s' successfully"
	msgUnavailable  = "service temporarily unavailable, please retry later"
	msgBadRequest   = "invalid request: goodName and token are required"
)

func InvalidTokenResult(token string) *models.QueryResult {
	return &models.QueryResult{
		Success: false,
		Msg:     fmt.Sprintf(msgInvalidToken, token),
		Data:    []models.ClassificationRecord{},
		Outcome: OutcomeInvalidToken,
	}
}

// BuildResult shapes the rows of a successful query. Row order is kept.
func BuildResult(goodName string, token models.TokenStatus, records []models.ClassificationRecord) *models.QueryResult {
	if len(records) == 0 {
		return &models.QueryResult{
			Success: false,
			Msg:     fmt.Sprintf(msgNoData, goodName),
			Expire:  token.ExpiryDescription(),
			Data:    []models.ClassificationRecord{},
			Outcome: OutcomeNoData,
		}
	}

	data := make([]models.ClassificationRecord, len(records))
	copy(data, records)

	return &models.QueryResult{
		Success: true,
		Msg:     fmt.Sprintf(msgFound, goodName),
		Expire:  token.ExpiryDescription(),
		Data:    data,
		Outcome: OutcomeFound,
	}
}

// UnavailableResult is used when redis or the database failed. token is nil
// when the failure happened before the token could be checked.
func UnavailableResult(token *models.TokenStatus) *models.QueryResult {
	result := &models.QueryResult{
		Success: false,
		Msg:     msgUnavailable,
		Data:    []models.ClassificationRecord{},
		Outcome: OutcomeUnavailable,
	}
	if token != nil && token.Valid {
		result.Expire = token.ExpiryDescription()
	}
	return result
}

func BadRequestResult() *models.QueryResult {
	return &models.QueryResult{
		Success: false,
		Msg:     msgBadRequest,
		Data:    []models.ClassificationRecord{},
		Outcome: OutcomeBadRequest,
	}
}
