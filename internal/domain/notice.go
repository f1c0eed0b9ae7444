package domain

// NoticeKind classifies a recoverable parse condition.
type NoticeKind string

const (
	// NoticeStructuralAssumption: an expected page shape is missing, e.g. a
	// numbered etymology without preamble text.
	NoticeStructuralAssumption NoticeKind = "structural_assumption_violation"
	// NoticeUnmatchedTemplate: no rule matches a template name.
	NoticeUnmatchedTemplate NoticeKind = "unmatched_template"
	// NoticeUnhandledSection: a section went through the default handler.
	NoticeUnhandledSection NoticeKind = "unhandled_section"
	// NoticeClassificationMiss: a section title has no category.
	NoticeClassificationMiss NoticeKind = "classification_miss"
)

// AllNoticeKinds lists every NoticeKind.
var AllNoticeKinds = []NoticeKind{
	NoticeStructuralAssumption,
	NoticeUnmatchedTemplate,
	NoticeUnhandledSection,
	NoticeClassificationMiss,
}

func (k NoticeKind) String() string { return string(k) }

func (k NoticeKind) IsValid() bool {
	switch k {
	case NoticeStructuralAssumption, NoticeUnmatchedTemplate, NoticeUnhandledSection, NoticeClassificationMiss:
		return true
	}
	return false
}

// Notice is one diagnostic produced while parsing a page.
type Notice struct {
	Kind NoticeKind `json:"kind"`
	// Subject is the template name or section title the notice is about.
	Subject string `json:"subject"`
	Detail  string `json:"detail,omitempty"`
}

// Notices accumulates diagnostics for a single parse. Not safe for
// concurrent use.
type Notices struct {
	items []Notice
}

// Add records a notice.
func (n *Notices) Add(kind NoticeKind, subject, detail string) {
	n.items = append(n.items, Notice{Kind: kind, Subject: subject, Detail: detail})
}

// List returns the accumulated notices in the order they were added.
func (n *Notices) List() []Notice {
	return n.items
}

// Count returns the number of notices per kind.
func (n *Notices) Count() map[NoticeKind]int {
	out := make(map[NoticeKind]int)
	for _, it := range n.items {
		out[it.Kind]++
	}
	return out
}

// NoticeStat aggregates stored notices sharing a kind and subject.
type NoticeStat struct {
	Kind        NoticeKind `json:"kind"`
	Subject     string     `json:"subject"`
	Occurrences int        `json:"occurrences"`
	Pages       int        `json:"pages"`
}
