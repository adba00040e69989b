package email

// Message is one outbound email. At least one of TextBody and HTMLBody is
// required; with both, HTML is sent as the alternative part.
type Message struct {
	To       []string
	ReplyTo  string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}
