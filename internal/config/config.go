package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	DatabaseURL string `env:"DATABASE_URL"`

	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Order    Order    `envPrefix:"ORDER_"`
}

type Razorpay struct {
	BaseApiURL string `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string `env:"KEY_ID"`
	KeySecret  string `env:"KEY_SECRET"`
}

type Order struct {
	// ApplyGST adds 18% GST on top of the subtotal. Off by default; the
	// storefront currently quotes tax-inclusive prices.
	ApplyGST       bool   `env:"APPLY_GST" envDefault:"false"`
	DefaultCountry string `env:"DEFAULT_COUNTRY" envDefault:"India"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsDevelopment() bool {
	return e.Name == "development"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
