package model

// SourceKind identifies which evidence stream a text unit came from
type SourceKind string

const (
	SourceForum SourceKind = "reddit"  // Discussion threads and their comments
	SourceVideo SourceKind = "youtube" // Video records with transcript and stats
)

// Engagement carries the counters attached to a text unit.
// Forum units set Upvotes; video units set Views and Likes.
type Engagement struct {
	Upvotes int `json:"upvotes,omitempty" yaml:"upvotes,omitempty"`
	Views   int `json:"views,omitempty" yaml:"views,omitempty"`
	Likes   int `json:"likes,omitempty" yaml:"likes,omitempty"`
}

// TextUnit is one atomic piece of evidence: a comment or a video transcript
type TextUnit struct {
	Text       string     `json:"text"`
	Engagement Engagement `json:"engagement"`
	OriginURL  string     `json:"origin_url"`
	Title      string     `json:"title,omitempty"`
}

// Comment is a single forum comment as delivered by an evidence source
type Comment struct {
	Text      string `json:"text" yaml:"text"`
	Upvotes   int    `json:"upvotes" yaml:"upvotes"`
	SourceURL string `json:"source_url,omitempty" yaml:"source_url,omitempty"` // Permalink when it differs from the thread URL
}

// ForumThread is a discussion thread with its relevant comments
type ForumThread struct {
	Title    string    `json:"title" yaml:"title"`
	URL      string    `json:"url" yaml:"url"`
	Comments []Comment `json:"comments" yaml:"comments"`
}

// Video is a video record with its transcript and engagement stats
type Video struct {
	Title      string `json:"title" yaml:"title"`
	URL        string `json:"url" yaml:"url"`
	Transcript string `json:"transcript" yaml:"transcript"`
	Views      int    `json:"views" yaml:"views"`
	Likes      int    `json:"likes" yaml:"likes"`
}

// Evidence bundles both streams for one request
type Evidence struct {
	Threads []ForumThread `json:"threads" yaml:"threads"`
	Videos  []Video       `json:"videos" yaml:"videos"`
}

// TextUnits flattens forum threads into text units.
// A comment's own permalink wins over the thread URL.
func (t ForumThread) TextUnits() []TextUnit {
	units := make([]TextUnit, 0, len(t.Comments))
	for _, c := range t.Comments {
		origin := t.URL
		if c.SourceURL != "" {
			origin = c.SourceURL
		}
		units = append(units, TextUnit{
			Text:       c.Text,
			Engagement: Engagement{Upvotes: c.Upvotes},
			OriginURL:  origin,
			Title:      t.Title,
		})
	}
	return units
}

// TextUnit converts a video into its single text unit
func (v Video) TextUnit() TextUnit {
	return TextUnit{
		Text:       v.Transcript,
		Engagement: Engagement{Views: v.Views, Likes: v.Likes},
		OriginURL:  v.URL,
		Title:      v.Title,
	}
}
