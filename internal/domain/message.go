package domain

// Message is a single platform message. It is either built locally through
// its setters (outbound) or attached to an inbound session through Parse.
// Locally set params always take precedence over the session parameters.
//
// A Message is not safe for concurrent mutation.
type Message struct {
	params   Params
	snapshot Snapshot
}

// Option configures a Message at construction time.
type Option func(*Message)

// WithParams sets the initial local params.
func WithParams(p Params) Option {
	return func(m *Message) {
		m.params = p.Clone()
	}
}

// WithSnapshot attaches an inbound session snapshot.
func WithSnapshot(s Snapshot) Option {
	return func(m *Message) {
		m.snapshot = s.Clone()
	}
}

// NewMessage creates an empty Message and applies opts.
func NewMessage(opts ...Option) *Message {
	m := &Message{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Parse attaches snapshot, replacing any previous one entirely.
func (m *Message) Parse(snapshot Snapshot) {
	m.snapshot = snapshot.Clone()
}

// Snapshot returns a copy of the attached session snapshot.
func (m *Message) Snapshot() Snapshot {
	return m.snapshot.Clone()
}

// Params returns a copy of the locally set params.
func (m *Message) Params() Params {
	return m.params.Clone()
}

// SetParams replaces the local params wholesale.
func (m *Message) SetParams(p Params) {
	m.params = p.Clone()
}

// Set writes a single local param.
func (m *Message) Set(field Field, value string) {
	m.params.Set(string(field), value)
}

// Get resolves field against the local params, the session parameters and
// the field default, in that order.
func (m *Message) Get(field Field) string {
	return Resolve(m.params, m.snapshot.Parameters(), field)
}

// Outgoing reports whether the attached session carries parameters, which
// is the case for sessions launched by a token request.
func (m *Message) Outgoing() bool {
	return m.snapshot.HasParameters()
}

func (m *Message) Token() string         { return m.Get(FieldToken) }
func (m *Message) To() string            { return m.Get(FieldTo) }
func (m *Message) From() string          { return m.Get(FieldFrom) }
func (m *Message) Channel() string       { return m.Get(FieldChannel) }
func (m *Message) Network() string       { return m.Get(FieldNetwork) }
func (m *Message) Text() string          { return m.Get(FieldText) }
func (m *Message) Timeout() string       { return m.Get(FieldTimeout) }
func (m *Message) AnswerOnMedia() string { return m.Get(FieldAnswerOnMedia) }
func (m *Message) Headers() string       { return m.Get(FieldHeaders) }
func (m *Message) Recording() string     { return m.Get(FieldRecording) }
func (m *Message) Action() string        { return m.Get(FieldAction) }

// Msg is an alias for Text.
func (m *Message) Msg() string { return m.Text() }

func (m *Message) SetToken(v string) { m.Set(FieldToken, v) }
func (m *Message) SetTo(v string)    { m.Set(FieldTo, v) }
func (m *Message) SetFrom(v string)  { m.Set(FieldFrom, v) }
func (m *Message) SetText(v string)  { m.Set(FieldText, v) }

// SetMsg is an alias for SetText.
func (m *Message) SetMsg(v string) { m.SetText(v) }
