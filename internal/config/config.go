package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for costs.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	BaseURL       string // public base URL used when building reset links
	MongoURI      string // MongoDB connection string
	MongoDB       string // MongoDB database name
	SessionSecret string // secret used to sign session cookies
	BcryptCost    int    // bcrypt cost for password hashing
	MailAPIURL    string // transactional mail API endpoint
	MailAPIKey    string // transactional mail API key
	MailFrom      string // sender address for outbound mail
	PaystackKey   string // Paystack secret key for payment verification
	PaystackBase  string // Paystack API base URL (overridable for tests)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The session secret
// has exactly one source of truth: the environment. There is no fallback.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),             // environment (dev/test/prod)
		Port:          must("APP_PORT"),            // port to bind the HTTP server
		BaseURL:       must("BASE_URL"),            // e.g. http://localhost:3000
		MongoURI:      must("MONGODB_URI"),         // document store connection string
		MongoDB:       must("MONGODB_DB"),          // document store database name
		SessionSecret: must("SESSION_SECRET"),      // cookie signing secret
		BcryptCost:    mustInt("BCRYPT_COST"),      // bcrypt cost factor
		MailAPIURL:    must("MAIL_API_URL"),        // mail provider endpoint
		MailAPIKey:    must("MAIL_API_KEY"),        // mail provider credential
		MailFrom:      must("MAIL_FROM"),           // from address on reset mails
		PaystackKey:   must("PAYSTACK_SECRET_KEY"), // payment provider secret
		PaystackBase:  os.Getenv("PAYSTACK_BASE_URL"),
	}
	if cfg.PaystackBase == "" {
		cfg.PaystackBase = "https://api.paystack.co"
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
