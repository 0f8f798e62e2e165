package domain

// Resolve returns the value of field given the locally set params and the
// session parameters. Precedence:
//
//  1. a non-empty local value
//  2. a non-empty session value, returned verbatim
//  3. the field default, or "" when the field has none
//
// Session values are not percent-decoded. Inbound bodies arrive as JSON, and
// decoding would turn the "+" of an E.164 number into a space.
func Resolve(local, session Params, field Field) string {
	if v, ok := local.Get(string(field)); ok && v != "" {
		return v
	}
	if v, ok := session.Get(string(field)); ok && v != "" {
		return v
	}
	v, _ := field.Default()
	return v
}
