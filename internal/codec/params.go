package codec

import "github.com/dwilkie/tropo-message/internal/domain"

// Resolver is the read side of a message: resolved field values plus the
// raw local params.
type Resolver interface {
	Get(field domain.Field) string
	Params() domain.Params
}

var (
	requiredResponseFields = []domain.Field{
		domain.FieldTo,
		domain.FieldChannel,
		domain.FieldNetwork,
	}
	optionalResponseFields = []domain.Field{
		domain.FieldFrom,
		domain.FieldTimeout,
		domain.FieldAnswerOnMedia,
		domain.FieldHeaders,
		domain.FieldRecording,
	}
	requestOnlyFields = []domain.Field{
		domain.FieldToken,
		domain.FieldAction,
	}
)

// ResponseParams returns the parameters for an outbound response payload:
// to, channel and network always, followed by from, timeout, answerOnMedia,
// headers and recording when they resolve to a non-empty value.
func ResponseParams(m Resolver) domain.Params {
	var out domain.Params
	for _, f := range requiredResponseFields {
		out.Set(string(f), m.Get(f))
	}
	appendPresent(&out, m, optionalResponseFields)
	return out
}

// RequestParams returns ResponseParams followed by token and action when
// they are set.
func RequestParams(m Resolver) domain.Params {
	out := ResponseParams(m)
	appendPresent(&out, m, requestOnlyFields)
	return out
}

func appendPresent(out *domain.Params, m Resolver, fields []domain.Field) {
	for _, f := range fields {
		if v := m.Get(f); v != "" {
			out.Set(string(f), v)
		}
	}
}
