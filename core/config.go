package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf is set by NewConfig. Packages that cannot receive a *Config by
// injection (token signing, email defaults) read it directly.
var Conf *Config

type Config struct {
	Debug    bool
	TestMode bool
	Env      string // DEV (default), TEST, QA, PROD
	Build    string

	AppName         string
	SecretKey       []byte
	FrontendBaseURL string
	DefaultFromName string
	DefaultFromAddr string
	SendgridApiKey  string
	RollbarToken    string

	PasswordResetTimeoutDelta time.Duration

	Server struct {
		Host               string
		Port               string
		DebugHost          string
		JWTExpirationDelta time.Duration
		ShutdownTimeout    time.Duration
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          string
		DisableTLS    bool
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
		StatsTTL time.Duration
	}
}

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "SmartEdu")
	v.SetDefault("secretKey", "q0w(e5r-smartedu*dev&key!do#not$use^in%prod")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromName", "SmartEdu")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("passwordResetTimeoutDelta", 3*24*time.Hour)

	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", "5000")
	v.SetDefault("serverDebugHost", "0.0.0.0:6060")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "smartedu")
	v.SetDefault("databaseUser", "smartedu")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseDisableTLS", true)

	v.SetDefault("redisAddr", "") // empty disables the stats cache
	v.SetDefault("redisPassword", "")
	v.SetDefault("redisDB", 0)
	v.SetDefault("redisStatsTTL", time.Minute)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := ".env." + strings.ToLower(env)
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Debug:    v.GetBool("debug"),
		TestMode: env == "TEST",
		Env:      env,
		Build:    v.GetString("build"),

		AppName:         v.GetString("appName"),
		SecretKey:       []byte(v.GetString("secretKey")),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		DefaultFromName: v.GetString("defaultFromName"),
		DefaultFromAddr: v.GetString("defaultFromEmail"),
		SendgridApiKey:  v.GetString("sendgridApiKey"),
		RollbarToken:    v.GetString("rollbarToken"),

		PasswordResetTimeoutDelta: v.GetDuration("passwordResetTimeoutDelta"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetString("serverPort")
	conf.Server.DebugHost = v.GetString("serverDebugHost")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")

	conf.Database.Engine = v.GetString("databaseEngine")
	conf.Database.Name = v.GetString("databaseName")
	conf.Database.User = v.GetString("databaseUser")
	conf.Database.Password = v.GetString("databasePassword")
	conf.Database.AdminUser = v.GetString("databaseAdminUser")
	conf.Database.AdminPassword = v.GetString("databaseAdminPassword")
	conf.Database.Host = v.GetString("databaseHost")
	conf.Database.Port = v.GetString("databasePort")
	conf.Database.DisableTLS = v.GetBool("databaseDisableTLS")

	conf.Redis.Addr = v.GetString("redisAddr")
	conf.Redis.Password = v.GetString("redisPassword")
	conf.Redis.DB = v.GetInt("redisDB")
	conf.Redis.StatsTTL = v.GetDuration("redisStatsTTL")

	Conf = conf
	return conf
}

func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

func (c *Config) DatabaseAddress() string {
	return fmt.Sprintf("%s:%s", c.Database.Host, c.Database.Port)
}

func (c *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: c.DefaultFromName, Address: c.DefaultFromAddr}
}

func init() {
	if Conf == nil {
		NewConfig()
	}
}
