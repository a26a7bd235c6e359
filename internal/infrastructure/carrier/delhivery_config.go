package carrier

import (
	"errors"
)

// DelhiveryConfig holds configuration for the Delhivery courier API integration
type DelhiveryConfig struct {
	// APIKey is the per-deployment API token issued by Delhivery
	APIKey string
	// BaseURL is the base URL for the Delhivery API (production or staging)
	BaseURL string
	// ClientName is the registered seller/client name used on shipment labels
	ClientName string
	// PickupLocation is the registered warehouse name shipments are picked from
	PickupLocation string
	// Return holds the return/seller address defaults stamped on every shipment
	Return ReturnAddress
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// ReturnAddress is the warehouse address used for returns and seller details
type ReturnAddress struct {
	Address string
	City    string
	State   string
	Pin     string
	Phone   string
	Country string
}

const (
	// DelhiveryProductionURL is the production API endpoint
	DelhiveryProductionURL = "https://track.delhivery.com"
	// DelhiveryStagingURL is the staging API endpoint
	DelhiveryStagingURL = "https://staging-express.delhivery.com"
)

// Errors for Delhivery configuration
var (
	ErrDelhiveryConfigMissingAPIKey     = errors.New("delhivery: API key is required")
	ErrDelhiveryConfigMissingClientName = errors.New("delhivery: client name is required")
)

// NewDelhiveryConfig creates a new Delhivery configuration with defaults
func NewDelhiveryConfig(apiKey, clientName string) *DelhiveryConfig {
	return &DelhiveryConfig{
		APIKey:         apiKey,
		ClientName:     clientName,
		BaseURL:        DelhiveryProductionURL,
		Return:         defaultReturnAddress(),
		TimeoutSeconds: 30,
	}
}

func defaultReturnAddress() ReturnAddress {
	return ReturnAddress{
		Address: "Warehouse Address",
		City:    "Mumbai",
		State:   "Maharashtra",
		Pin:     "400001",
		Phone:   "9999999999",
		Country: "India",
	}
}

// Validate validates the Delhivery configuration and fills defaults
func (c *DelhiveryConfig) Validate() error {
	if c.APIKey == "" {
		return ErrDelhiveryConfigMissingAPIKey
	}
	if c.ClientName == "" {
		return ErrDelhiveryConfigMissingClientName
	}
	if c.BaseURL == "" {
		c.BaseURL = DelhiveryProductionURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}

	defaults := defaultReturnAddress()
	if c.Return.Address == "" {
		c.Return.Address = defaults.Address
	}
	if c.Return.City == "" {
		c.Return.City = defaults.City
	}
	if c.Return.State == "" {
		c.Return.State = defaults.State
	}
	if c.Return.Pin == "" {
		c.Return.Pin = defaults.Pin
	}
	if c.Return.Phone == "" {
		c.Return.Phone = defaults.Phone
	}
	if c.Return.Country == "" {
		c.Return.Country = defaults.Country
	}

	return nil
}
