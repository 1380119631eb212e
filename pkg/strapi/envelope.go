package strapi

import "encoding/json"

// envelopeKind tags the decoded shape of a response body.
type envelopeKind int

const (
	// envelopeNull is a literal null body (absent resource).
	envelopeNull envelopeKind = iota

	// envelopeError is an object carrying a statusCode field.
	envelopeError

	// envelopeCollection is a JSON array of items.
	envelopeCollection

	// envelopeEntity is any other JSON object.
	envelopeEntity

	// envelopeUnrecognized is a scalar or otherwise unexpected body.
	envelopeUnrecognized
)

// envelope is the tagged-variant decode of a response body. Exactly one of
// collection/entity is set, depending on kind.
type envelope struct {
	kind       envelopeKind
	statusCode int
	collection []any
	entity     map[string]any
}

// decodeEnvelope classifies a raw response body into one of the envelope
// variants. A body that is not valid JSON decodes as unrecognized.
func decodeEnvelope(body []byte) envelope {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return envelope{kind: envelopeUnrecognized}
	}

	switch v := decoded.(type) {
	case nil:
		return envelope{kind: envelopeNull}
	case []any:
		return envelope{kind: envelopeCollection, collection: v}
	case map[string]any:
		if code, ok := v["statusCode"].(float64); ok {
			return envelope{kind: envelopeError, statusCode: int(code), entity: v}
		}
		return envelope{kind: envelopeEntity, entity: v}
	default:
		return envelope{kind: envelopeUnrecognized}
	}
}
