package domain

const (
	DefaultFormName = "hl3-submissions"

	DefaultPage    = 1
	DefaultPerPage = 100
	MinPerPage     = 1
	MaxPerPage     = 100
)

const (
	HeaderPage    = "x-page"
	HeaderPerPage = "x-per-page"
)

const (
	EnvAccessToken = "NETLIFY_API_KEY"
	EnvSiteID      = "NETLIFY_SITE_ID"
)
