package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"shikkha/internal/domain/entities"
)

const minJWTSecretLength = 32

// Server configures cmd/site.
type Server struct {
	DatabaseURL      string        `env:"DATABASE_URL" envDefault:"postgres://localhost:5432/shikkha?sslmode=disable"`
	Addr             string        `env:"SITE_ADDR" envDefault:":8080"`
	PublicURL        string        `env:"SITE_PUBLIC_URL"`
	JWTSecret        string        `env:"JWT_SECRET"`
	JWTTTL           time.Duration `env:"JWT_TTL" envDefault:"24h"`
	CORSOrigins      []string      `env:"CORS_ORIGINS" envSeparator:","`
	AdminEmail       string        `env:"ADMIN_EMAIL"`
	AdminPassword    string        `env:"ADMIN_PASSWORD"`
	AdminName        string        `env:"ADMIN_NAME"`
	DiscordToken     string        `env:"DISCORD_TOKEN"`
	DiscordChannelID string        `env:"DISCORD_CHANNEL_ID"`
	AnnounceInterval time.Duration `env:"ANNOUNCE_INTERVAL" envDefault:"1m"`
	DefaultLocale    string        `env:"DEFAULT_LOCALE" envDefault:"en"`
}

// Console configures cmd/admin.
type Console struct {
	APIURL    string        `env:"SITE_API_URL" envDefault:"http://localhost:8080"`
	StateFile string        `env:"STATE_FILE"`
	ToastTTL  time.Duration `env:"TOAST_TTL" envDefault:"5s"`
}

// LoadServer reads the backend configuration from the environment and
// validates it.
func LoadServer() (*Server, error) {
	loadDotEnv()
	cfg := &Server{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConsole reads the admin console configuration.
func LoadConsole() (*Console, error) {
	loadDotEnv()
	cfg := &Console{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDotEnv() {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()
}

// DiscordEnabled reports whether announcements can be sent.
func (c *Server) DiscordEnabled() bool {
	return c.DiscordToken != "" && c.DiscordChannelID != ""
}

// BootstrapAdmin reports whether an admin account should be ensured at startup.
func (c *Server) BootstrapAdmin() bool {
	return c.AdminEmail != "" || c.AdminPassword != ""
}

func (c *Server) validate() error {
	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
	}

	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("config: JWT_SECRET is required and must be at least %d characters", minJWTSecretLength)
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("config: JWT_TTL must be positive")
	}

	if c.BootstrapAdmin() && (strings.TrimSpace(c.AdminEmail) == "" || c.AdminPassword == "") {
		return fmt.Errorf("config: ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	if (c.DiscordToken == "") != (c.DiscordChannelID == "") {
		return fmt.Errorf("config: DISCORD_TOKEN and DISCORD_CHANNEL_ID must be set together")
	}
	for _, r := range c.DiscordChannelID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: DISCORD_CHANNEL_ID must be a Discord channel id (digits only)")
		}
	}

	if c.PublicURL != "" {
		if u, err := url.Parse(c.PublicURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: invalid SITE_PUBLIC_URL (%q)", c.PublicURL)
		}
	}

	if _, ok := entities.ParseLocale(c.DefaultLocale); !ok {
		return fmt.Errorf("config: DEFAULT_LOCALE %q is not supported", c.DefaultLocale)
	}

	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
	return nil
}

func (c *Console) validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: invalid SITE_API_URL (%q)", c.APIURL)
	}
	if c.ToastTTL <= 0 {
		return fmt.Errorf("config: TOAST_TTL must be positive")
	}
	if strings.TrimSpace(c.StateFile) == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("config: STATE_FILE not set and no user config dir: %w", err)
		}
		c.StateFile = filepath.Join(dir, "shikkha", "state.toml")
	}
	return nil
}
