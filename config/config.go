package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DatabaseName      string   `mapstructure:"DATABASE_NAME"`
	Env               string   `mapstructure:"ENV"`
	JWTSecret         string   `mapstructure:"JWT_SECRET"`
	JWTTTL            string   `mapstructure:"JWT_TTL"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisCodeDB   int    `mapstructure:"REDIS_CODE_DB"`

	// Outgoing mail.
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	MailFrom     string `mapstructure:"MAIL_FROM"`

	// Clinic and scheduling.
	ClinicName          string `mapstructure:"CLINIC_NAME"`
	ClinicTimezone      string `mapstructure:"CLINIC_TIMEZONE"`
	ReminderInterval    string `mapstructure:"REMINDER_INTERVAL"`
	ReminderLeadTime    string `mapstructure:"REMINDER_LEAD_TIME"`
	VerificationCodeTTL string `mapstructure:"VERIFICATION_CODE_TTL"`

	// Seeded administrator account.
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// CORS_ORIGINS arrives as a comma-separated string when set through the environment.
	if len(AppConfig.CORSOrigins) == 1 && strings.Contains(AppConfig.CORSOrigins[0], ",") {
		AppConfig.CORSOrigins = splitList(AppConfig.CORSOrigins[0])
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "okclinic")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_TTL", "2h")
	viper.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_CODE_DB", 2)
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("MAIL_FROM", "")
	viper.SetDefault("CLINIC_NAME", "OK Clinic")
	viper.SetDefault("CLINIC_TIMEZONE", "UTC")
	viper.SetDefault("REMINDER_INTERVAL", "5m")
	viper.SetDefault("REMINDER_LEAD_TIME", "12h")
	viper.SetDefault("VERIFICATION_CODE_TTL", "10m")
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("ADMIN_PASSWORD", "")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ClinicLocation returns the timezone appointment slots are expressed in.
func ClinicLocation() *time.Location {
	if AppConfig.ClinicTimezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(AppConfig.ClinicTimezone)
	if err != nil {
		log.Printf("Unknown CLINIC_TIMEZONE %q, falling back to UTC", AppConfig.ClinicTimezone)
		return time.UTC
	}
	return loc
}

// Duration parses a duration setting, returning fallback when it is empty or malformed.
func Duration(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Invalid duration %q, using %s", value, fallback)
		return fallback
	}
	return d
}
