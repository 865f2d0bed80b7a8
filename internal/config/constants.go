package config

const (
	// DefaultDatabasePath is the default path for the deck list database
	DefaultDatabasePath = "./advisor.db"

	DefaultMetastatsBaseURL  = "http://metastats.net"
	DefaultHSReplayBaseURL   = "https://hsreplay.net"
	DefaultHSReplayGameTypes = "RANKED_STANDARD,RANKED_WILD"

	DefaultImportSchedule = "0 6 * * *" // Daily at 06:00
	DefaultUserAgent      = "advisor/1.0 (+https://github.com/mrlokans/advisor)"
)
