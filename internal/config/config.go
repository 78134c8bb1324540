package config

import (
	"log"

	"github.com/spf13/viper"
)

// Placeholder values shipped in example env files. A credential equal to its
// placeholder is treated as unset so misconfiguration is caught before any
// network call.
const (
	DomainPlaceholder = "your-shop-name.myshopify.com"
	TokenPlaceholder  = "your_public_storefront_access_token"
)

type Config struct {
	Server  ServerConfig
	Shopify ShopifyConfig
	Cart    CartConfig
	Catalog CatalogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ShopifyConfig struct {
	Domain     string
	Token      string
	APIVersion string
}

type CartConfig struct {
	StoragePath string // SQLite file backing the persistence slot
	SlotKey     string
}

type CatalogConfig struct {
	PageSize int
}

// Configured reports whether both credentials are present and not placeholders.
func (c ShopifyConfig) Configured() bool {
	return c.Domain != "" && c.Domain != DomainPlaceholder &&
		c.Token != "" && c.Token != TokenPlaceholder
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("SHOPIFY_API_VERSION", "2024-04")
	viper.SetDefault("CART_STORAGE_PATH", "storefront.db")
	viper.SetDefault("CART_SLOT_KEY", "shopify_headless_express_cart")
	viper.SetDefault("CATALOG_PAGE_SIZE", 12)
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Shopify: Shopify(),
		Cart: CartConfig{
			StoragePath: viper.GetString("CART_STORAGE_PATH"),
			SlotKey:     viper.GetString("CART_SLOT_KEY"),
		},
		Catalog: CatalogConfig{
			PageSize: viper.GetInt("CATALOG_PAGE_SIZE"),
		},
	}
}

// Shopify reads the storefront credentials from the environment. The catalog
// client calls this per request rather than caching values at startup, so a fix
// to the environment takes effect without a restart and a misconfiguration is
// reported on every call that hits it.
func Shopify() ShopifyConfig {
	return ShopifyConfig{
		Domain:     viper.GetString("SHOPIFY_STORE_DOMAIN"),
		Token:      viper.GetString("SHOPIFY_STOREFRONT_ACCESS_TOKEN"),
		APIVersion: viper.GetString("SHOPIFY_API_VERSION"),
	}
}
