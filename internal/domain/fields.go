package domain

// Field names a logical message field. The value doubles as the key used
// in both the local params and the session parameters.
type Field string

const (
	FieldToken         Field = "token"
	FieldTo            Field = "to"
	FieldFrom          Field = "from"
	FieldChannel       Field = "channel"
	FieldNetwork       Field = "network"
	FieldText          Field = "text"
	FieldTimeout       Field = "timeout"
	FieldAnswerOnMedia Field = "answerOnMedia"
	FieldHeaders       Field = "headers"
	FieldRecording     Field = "recording"
	FieldAction        Field = "action"
)

// Default values for fields that are never absent.
const (
	DefaultChannel = "TEXT"
	DefaultNetwork = "SMS"
)

// Fields lists every logical field in declaration order.
var Fields = []Field{
	FieldToken,
	FieldTo,
	FieldFrom,
	FieldChannel,
	FieldNetwork,
	FieldText,
	FieldTimeout,
	FieldAnswerOnMedia,
	FieldHeaders,
	FieldRecording,
	FieldAction,
}

var fieldDefaults = map[Field]string{
	FieldChannel: DefaultChannel,
	FieldNetwork: DefaultNetwork,
}

// Default returns the value used when neither source supplies the field.
func (f Field) Default() (string, bool) {
	v, ok := fieldDefaults[f]
	return v, ok
}

// Known reports whether f is one of the fixed logical fields.
func (f Field) Known() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) String() string {
	return string(f)
}
