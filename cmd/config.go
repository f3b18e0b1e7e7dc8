package cmd

// Config holds the settings read from the environment at start-up.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret string

	// NotifierDriver selects the email transport: "ses" or "log".
	NotifierDriver     string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	EmailSender        string

	DispatchSchedule  string
	DispatchBatchSize int
}

const (
	NotifierSES = "ses"
	NotifierLog = "log"

	DefaultDispatchSchedule  = "*/10 * * * * *"
	DefaultDispatchBatchSize = 50
)
