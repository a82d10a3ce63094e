package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/peoplehub/hrdocs/internal/http/response"
)

// EnvelopeVersion is the version reported in every response envelope.
const EnvelopeVersion = response.Version

// APIEnvelope wraps success payloads and bare error strings.
type APIEnvelope = response.Envelope //nolint:revive // API prefix is intentional for clarity

// APIErrorEnvelope carries a coded error.
type APIErrorEnvelope = response.ErrorEnvelope //nolint:revive // API prefix is intentional for clarity

// EnvelopeTransformer wraps every huma response body in the shared envelope.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	code, err := strconv.Atoi(status)
	if err != nil || code < 400 {
		return response.Success(v), nil
	}

	switch e := v.(type) {
	case *APIError:
		return response.Failure(e.Code, e.Message, e.Details), nil
	case error:
		return APIEnvelope{Version: EnvelopeVersion, Error: e.Error()}, nil
	default:
		return APIEnvelope{Version: EnvelopeVersion, Data: v}, nil
	}
}
