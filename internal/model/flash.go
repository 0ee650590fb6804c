package model

// Flash kinds. The kind ends up as a CSS class on the flash banner,
// so the values are lowercase identifiers.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot status message shown on the next rendered page.
//
// A flash survives exactly one redirect: the handler that redirects
// stores it, the view that renders next reads it and clears it in the
// same response. At most one flash is pending per client — setting a
// new one overwrites any message that hasn't been shown yet.
type Flash struct {
	Kind string `json:"kind"` // FlashSuccess or FlashError
	Text string `json:"text"`
}
