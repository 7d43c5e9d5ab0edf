package config

type Config struct {
	Environment   Environment
	Log           Log
	HTTP          HTTPServer
	BaseURL       string `env:"BASE_URL" envDefault:"http://localhost:5173"`
	NotifyBaseURL string `env:"NOTIFY_BASE_URL" envDefault:"http://localhost:8080"`
	ListingsFile  string `env:"LISTINGS_FILE"`

	Database  Database  `envPrefix:"DATABASE_"`
	Auth      Auth      `envPrefix:"AUTH_"`
	Payment   Payment   `envPrefix:"PAYMENT_"`
	Cashfree  Cashfree  `envPrefix:"CASHFREE_"`
	Midtrans  Midtrans  `envPrefix:"MIDTRANS_"`
	BrainTree Braintree `envPrefix:"BRAINTREE_"`
	UPI       UPI       `envPrefix:"UPI_"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"`
	URL    string `env:"URL" envDefault:"directory.db"`
}

type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER"`
}

type Payment struct {
	Provider string `env:"PROVIDER" envDefault:"cashfree"`
	Currency string `env:"CURRENCY" envDefault:"INR"`
}

type Cashfree struct {
	BaseApiURL   string `env:"BASE_API_URL" envDefault:"https://sandbox.cashfree.com"`
	AppID        string `env:"APP_ID"`
	SecretKey    string `env:"SECRET_KEY"`
	ApiVersion   string `env:"API_VERSION" envDefault:"2023-08-01"`
	CustomerName string `env:"CUSTOMER_NAME" envDefault:"GSINFO Customer"`
	OrderNote    string `env:"ORDER_NOTE" envDefault:"Annual Business Registration"`
}

type Midtrans struct {
	Environment string `env:"ENVIRONMENT" envDefault:"sandbox"`
	ServerKey   string `env:"SERVER_KEY"`
}

type Braintree struct {
	Environment string `env:"ENVIRONMENT"`
	MerchantID  string `env:"MERCHANT_ID"`
	PublicKey   string `env:"PUBLIC_KEY"`
	PrivateKey  string `env:"PRIVATE_KEY"`
}

type UPI struct {
	PayeeVPA  string `env:"PAYEE_VPA" envDefault:"mannavagroups@paytm"`
	PayeeName string `env:"PAYEE_NAME" envDefault:"Mannava Groups"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
