package models

const unknownAuthor = "unknown"

// CommitAuthor is the author identity attached to a listed commit;
// empty fields mean the upstream did not supply them
type CommitAuthor struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// CommitDetail holds the per-commit payload only available from the detail endpoint
type CommitDetail struct {
	Additions       int      `json:"additions"`
	Deletions       int      `json:"deletions"`
	Files           []string `json:"files"`
	AuthorLogin     string   `json:"author_login"`
	AuthorAvatarURL string   `json:"author_avatar_url"`
}

// RawCommit represents a commit as returned by the upstream commit list
type RawCommit struct {
	SHA         string        `json:"sha"`
	Message     string        `json:"message"`
	Author      CommitAuthor  `json:"author"`
	ParentCount int           `json:"parent_count"`
	Detail      *CommitDetail `json:"detail,omitempty"`
}

// IsMergeCommit reports whether the commit has more than one parent
func (c *RawCommit) IsMergeCommit() bool {
	return c.ParentCount > 1
}

// Additions returns the added line count, or 0 when details are unavailable
func (c *RawCommit) Additions() int {
	if c.Detail == nil {
		return 0
	}
	return c.Detail.Additions
}

// Deletions returns the deleted line count, or 0 when details are unavailable
func (c *RawCommit) Deletions() int {
	if c.Detail == nil {
		return 0
	}
	return c.Detail.Deletions
}

// Files returns the changed file paths, or nil when details are unavailable
func (c *RawCommit) Files() []string {
	if c.Detail == nil {
		return nil
	}
	return c.Detail.Files
}

// AuthorIdentity resolves the username a commit is credited to:
// list login, detail login, display name, then "unknown"
func (c *RawCommit) AuthorIdentity() string {
	if c.Author.Login != "" {
		return c.Author.Login
	}
	if c.Detail != nil && c.Detail.AuthorLogin != "" {
		return c.Detail.AuthorLogin
	}
	if c.Author.Name != "" {
		return c.Author.Name
	}
	return unknownAuthor
}

// AuthorAvatar resolves the avatar URL, falling back to the detail payload and then to ""
func (c *RawCommit) AuthorAvatar() string {
	if c.Author.AvatarURL != "" {
		return c.Author.AvatarURL
	}
	if c.Detail != nil {
		return c.Detail.AuthorAvatarURL
	}
	return ""
}

// ScoredCommit is a commit with its resolved change type and score
type ScoredCommit struct {
	Commit *RawCommit
	Type   ChangeType
	Score  float64
}
