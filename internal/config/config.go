package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port              string
	BaseURL           string
	DataDir           string
	StoreDriver       string
	DBDSN             string
	JWTSecret         string
	JWTTTL            time.Duration
	CookieSecure      bool
	CORSOrigins       []string
	AllowRegistration bool
	GeminiAPIKey      string
	GeminiModel       string
	WebDir            string
	Shop              ShopInfo
}

// ShopInfo comes from the optional [shop] table in config/config.toml.
type ShopInfo struct {
	Name     string `mapstructure:"name"`
	Currency string `mapstructure:"currency"`
}

// Load reads .env (if present), then the process environment, then the
// optional TOML file for shop details.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}
	return fromViper(newViper(), "config/config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("BASE_URL", "")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("JWT_TTL_HOURS", 24)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("ALLOW_REGISTRATION", false)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash-001")
	v.SetDefault("WEB_DIR", "./web")
	return v
}

func fromViper(v *viper.Viper, shopFile string) *Config {
	cfg := &Config{
		Port:              v.GetString("PORT"),
		BaseURL:           v.GetString("BASE_URL"),
		DataDir:           v.GetString("DATA_DIR"),
		StoreDriver:       strings.ToLower(v.GetString("STORE_DRIVER")),
		DBDSN:             v.GetString("DB_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTTTL:            time.Duration(v.GetInt("JWT_TTL_HOURS")) * time.Hour,
		CookieSecure:      v.GetBool("COOKIE_SECURE"),
		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
		AllowRegistration: v.GetBool("ALLOW_REGISTRATION"),
		GeminiAPIKey:      v.GetString("GEMINI_API_KEY"),
		GeminiModel:       v.GetString("GEMINI_MODEL"),
		WebDir:            v.GetString("WEB_DIR"),
		Shop:              ShopInfo{Name: "Laptop Ledger", Currency: "KES"},
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	if cfg.JWTSecret == "" {
		log.Println("⚠️ WARNING: JWT_SECRET is not set, using a random secret. Sessions end when the server restarts.")
		cfg.JWTSecret = randomSecret()
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"http://localhost:5173"}
	}
	if cfg.JWTTTL <= 0 {
		cfg.JWTTTL = 24 * time.Hour
	}

	shop := viper.New()
	shop.SetConfigFile(shopFile)
	shop.SetConfigType("toml")
	if err := shop.ReadInConfig(); err != nil {
		log.Printf("Warning: %s not found, using default shop info", shopFile)
	} else if err := shop.UnmarshalKey("shop", &cfg.Shop); err != nil {
		log.Printf("Error: failed to read shop info from %s: %v", shopFile, err)
	}
	return cfg
}

// randomSecret returns 32 random bytes, hex encoded.
func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal("Failed to generate a JWT secret: ", err)
	}
	return hex.EncodeToString(b)
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
